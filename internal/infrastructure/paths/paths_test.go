package paths

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/tmuxcast/internal/domain"
)

func TestNewSessionLayout(t *testing.T) {
	root := t.TempDir()
	cfg := domain.Config{Paths: domain.PathSettings{LogRoot: root}}
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	got, err := NewSession(cfg, "demo", now)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	base := filepath.Join(root, "demo", "Log", "20250102")
	want := domain.SessionPaths{
		ProjectName:    "demo",
		DateStr:        "20250102",
		TimeStr:        "030405",
		BaseDir:        base,
		AsciinemaFile:  filepath.Join(base, "asciinema", "030405.cast"),
		ZshHistoryFile: filepath.Join(base, "zsh", "030405.zsh_history"),
		TmuxLogDir:     filepath.Join(base, "tmux"),
		VideoDir:       filepath.Join(base, "video"),
		VideoFile:      filepath.Join(base, "video", "demo_20250102_030405.mp4"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("session paths mismatch (-want +got):\n%s", diff)
	}

	for _, dir := range []string{
		filepath.Join(base, "asciinema"),
		filepath.Join(base, "zsh"),
		filepath.Join(base, "tmux"),
		filepath.Join(base, "video"),
	} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("directory %s was not created: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
}

func TestNewSessionIsStableAcrossSameDayRuns(t *testing.T) {
	root := t.TempDir()
	cfg := domain.Config{Paths: domain.PathSettings{LogRoot: root}}

	first, err := NewSession(cfg, "demo", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	second, err := NewSession(cfg, "demo", time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	if first.BaseDir != second.BaseDir {
		t.Errorf("same-day sessions use different base dirs: %s vs %s", first.BaseDir, second.BaseDir)
	}
	if first.AsciinemaFile == second.AsciinemaFile {
		t.Error("same-day sessions must not collide on the cast file")
	}
}

func TestSessionName(t *testing.T) {
	p := domain.SessionPaths{ProjectName: "demo", DateStr: "20250102", TimeStr: "030405"}
	if got := SessionName(p); got != "demo_20250102_030405" {
		t.Fatalf("SessionName() = %q, want demo_20250102_030405", got)
	}
}
