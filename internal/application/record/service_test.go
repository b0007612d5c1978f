package record

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/doeshing/tmuxcast/internal/domain"
	"github.com/doeshing/tmuxcast/internal/infrastructure/cleanup"
	"github.com/doeshing/tmuxcast/internal/infrastructure/paths"
	"github.com/doeshing/tmuxcast/internal/infrastructure/recorder"
	"github.com/doeshing/tmuxcast/internal/infrastructure/report"
	"github.com/doeshing/tmuxcast/internal/ports"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

type fakeConfGen struct{ dir string }

func (f fakeConfGen) TmuxConf() (string, error) { return filepath.Join(f.dir, "generated_tmux.conf"), nil }

func (f fakeConfGen) Zshrc() (string, error) { return filepath.Join(f.dir, ".zshrc"), nil }

// fakeSessions behaves like a tmux session that ends almost immediately after
// recording starts.
type fakeSessions struct {
	name   string
	exists bool
}

func (f *fakeSessions) SessionName() string { return f.name }

func (f *fakeSessions) Create(context.Context, string) error {
	f.exists = true
	return nil
}

func (f *fakeSessions) Exists(context.Context) bool { return f.exists }

func (f *fakeSessions) Terminate(context.Context) error {
	f.exists = false
	return nil
}

func (f *fakeSessions) WaitForExit(context.Context) error {
	f.exists = false
	return nil
}

type fakeCaster struct{}

func (fakeCaster) Record(context.Context, string) error { return nil }

// fakeEncoder pretends to be ffmpeg: it writes a non-empty artifact on start
// and stays alive until stopped.
type fakeEncoder struct {
	videoFile string
	alive     bool
}

func (f *fakeEncoder) Start(string, ...string) error {
	if err := os.WriteFile(f.videoFile, []byte("frames"), 0o644); err != nil {
		return err
	}
	f.alive = true
	return nil
}

func (f *fakeEncoder) Wait() error { return nil }

func (f *fakeEncoder) Alive() bool { return f.alive }

func (f *fakeEncoder) GracefulStop(time.Duration) error {
	f.alive = false
	return nil
}

func testConfig(logRoot string) domain.Config {
	return domain.Config{
		Paths: domain.PathSettings{LogRoot: logRoot},
		Video: domain.VideoSettings{Quality: "medium", Framerate: domain.DefaultFramerate, Display: ":0.0"},
		Recording: domain.RecordingSettings{
			PollIntervalSeconds: 1,
			StopTimeoutSeconds:  1,
		},
	}
}

func okLookPath(tool string) (string, error) { return "/usr/bin/" + tool, nil }

func newScratchDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "session-test")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestRunTerminalOnlySession(t *testing.T) {
	cfg := testConfig(t.TempDir())
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	p, err := paths.NewSession(cfg, "demo", now)
	if err != nil {
		t.Fatal(err)
	}
	scratch := newScratchDir(t)

	sessions := &fakeSessions{name: paths.SessionName(p)}
	terminal := recorder.NewTmuxAsciinemaRecorder(cfg, p, fakeConfGen{dir: scratch}, sessions, fakeCaster{}, nopLogger{})
	composite := recorder.NewComposite(nopLogger{})
	composite.Add(terminal)

	var out bytes.Buffer
	svc := &Service{
		Recorder: composite,
		Reporters: []NamedReporter{
			{Name: terminal.Name(), Reporter: report.NewTmuxSessionReporter(&out)},
		},
		Cleaner:       cleanup.NewScratchCleaner(scratch),
		Logger:        nopLogger{},
		RequiredTools: []string{"tmux", "zsh", "asciinema"},
		LookPath:      okLookPath,
		Out:           &out,
	}

	results, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("results = %d entries, want exactly 1: %v", len(results), results)
	}
	result, ok := results["TmuxAsciinemaRecorder"]
	if !ok {
		t.Fatalf("terminal recorder entry missing: %v", results)
	}
	if got := result.Outputs[domain.OutputAsciinema]; filepath.Base(got) != "030405.cast" {
		t.Errorf("cast file = %q, want basename 030405.cast", got)
	}
	if got := result.Outputs[domain.OutputZshHistory]; filepath.Base(got) != "030405.zsh_history" {
		t.Errorf("history file = %q, want basename 030405.zsh_history", got)
	}
	if got := result.Outputs[domain.OutputTmuxLogs]; filepath.Base(got) != "tmux" {
		t.Errorf("tmux log dir = %q, want basename tmux", got)
	}
	if result.Metadata[domain.MetaProjectName] != "demo" {
		t.Errorf("project metadata = %q, want demo", result.Metadata[domain.MetaProjectName])
	}

	if sessions.exists {
		t.Error("tmux session still exists after the run")
	}
	if _, err := os.Stat(scratch); !os.IsNotExist(err) {
		t.Errorf("scratch directory was not cleaned up: %v", err)
	}
	if !strings.Contains(out.String(), "Recording session for project: demo") {
		t.Error("session banner missing from output")
	}
}

func TestRunSessionWithVideo(t *testing.T) {
	cfg := testConfig(t.TempDir())
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	p, err := paths.NewSession(cfg, "demo", now)
	if err != nil {
		t.Fatal(err)
	}
	scratch := newScratchDir(t)

	sessions := &fakeSessions{name: paths.SessionName(p)}
	terminal := recorder.NewTmuxAsciinemaRecorder(cfg, p, fakeConfGen{dir: scratch}, sessions, fakeCaster{}, nopLogger{})
	video := recorder.NewVideoRecorder(cfg, p, "low", 10, func() ports.Encoder {
		return &fakeEncoder{videoFile: p.VideoFile}
	}, nopLogger{})

	composite := recorder.NewComposite(nopLogger{})
	composite.Add(terminal)
	composite.Add(video)

	var out bytes.Buffer
	svc := &Service{
		Recorder: composite,
		Reporters: []NamedReporter{
			{Name: terminal.Name(), Reporter: report.NewTmuxSessionReporter(&out)},
			{Name: video.Name(), Reporter: report.NewVideoReporter(&out)},
		},
		Cleaner:       cleanup.NewScratchCleaner(scratch),
		Logger:        nopLogger{},
		RequiredTools: []string{"tmux", "zsh", "asciinema", "ffmpeg"},
		LookPath:      okLookPath,
		Out:           &out,
	}

	results, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("results = %d entries, want 2: %v", len(results), results)
	}
	videoResult, ok := results["VideoRecorder"]
	if !ok {
		t.Fatalf("video recorder entry missing: %v", results)
	}
	if got := videoResult.Outputs[domain.OutputVideo]; filepath.Base(got) != "demo_20250102_030405.mp4" {
		t.Errorf("video file = %q, want basename demo_20250102_030405.mp4", got)
	}
	if videoResult.Metadata[domain.MetaProjectName] != "demo" {
		t.Errorf("video project metadata = %q, want demo", videoResult.Metadata[domain.MetaProjectName])
	}
	if _, ok := results["TmuxAsciinemaRecorder"]; !ok {
		t.Fatalf("terminal recorder entry missing: %v", results)
	}

	if !strings.Contains(out.String(), "Quality: low, Framerate: 10") {
		t.Error("video banner missing from output")
	}
}

func TestRunFailsPreflightOnMissingTool(t *testing.T) {
	composite := recorder.NewComposite(nopLogger{})
	scratch := newScratchDir(t)

	svc := &Service{
		Recorder:      composite,
		Cleaner:       cleanup.NewScratchCleaner(scratch),
		Logger:        nopLogger{},
		RequiredTools: []string{"tmux", "asciinema"},
		LookPath: func(tool string) (string, error) {
			if tool == "asciinema" {
				return "", errors.New("executable file not found in $PATH")
			}
			return "/usr/bin/" + tool, nil
		},
	}

	_, err := svc.Run(context.Background())
	if !errors.Is(err, domain.ErrToolMissing) {
		t.Fatalf("Run() error = %v, want ErrToolMissing", err)
	}
	if !strings.Contains(err.Error(), "asciinema") {
		t.Errorf("error %q does not name the missing tool", err)
	}
	// Cleanup still runs on the failure path.
	if _, statErr := os.Stat(scratch); !os.IsNotExist(statErr) {
		t.Errorf("scratch directory was not cleaned up: %v", statErr)
	}
}

func TestRunKeepsScratchWhenRequested(t *testing.T) {
	scratch := newScratchDir(t)
	svc := &Service{
		Recorder:    recorder.NewComposite(nopLogger{}),
		Cleaner:     cleanup.NewScratchCleaner(scratch),
		Logger:      nopLogger{},
		Quiet:       true,
		KeepScratch: true,
		LookPath:    okLookPath,
	}

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, err := os.Stat(scratch); err != nil {
		t.Fatalf("scratch directory should survive with KeepScratch: %v", err)
	}
}

func TestRunQuietSuppressesReporting(t *testing.T) {
	cfg := testConfig(t.TempDir())
	p, err := paths.NewSession(cfg, "demo", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	scratch := newScratchDir(t)

	sessions := &fakeSessions{name: paths.SessionName(p)}
	terminal := recorder.NewTmuxAsciinemaRecorder(cfg, p, fakeConfGen{dir: scratch}, sessions, fakeCaster{}, nopLogger{})
	composite := recorder.NewComposite(nopLogger{})
	composite.Add(terminal)

	var out bytes.Buffer
	svc := &Service{
		Recorder: composite,
		Reporters: []NamedReporter{
			{Name: terminal.Name(), Reporter: report.NewTmuxSessionReporter(&out)},
		},
		Cleaner:  cleanup.NewScratchCleaner(scratch),
		Logger:   nopLogger{},
		Quiet:    true,
		LookPath: okLookPath,
		Out:      &out,
	}

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("quiet run wrote output:\n%s", out.String())
	}
}
