package recorder

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/doeshing/tmuxcast/internal/domain"
	"github.com/doeshing/tmuxcast/internal/ports"
)

// joinTimeout bounds how long Stop waits for the capture goroutine after the
// encoder process has exited. A goroutine that fails to finish in time is
// abandoned, not fatal.
const joinTimeout = 5 * time.Second

// VideoRecorder captures the full screen to a single mp4 via an external
// encoder process hosted on a dedicated goroutine.
//
// The process handle and recording flag are written by the control thread and
// observed by the capture goroutine, so both live behind a mutex.
type VideoRecorder struct {
	cfg       domain.Config
	paths     domain.SessionPaths
	quality   string
	framerate int

	newEncoder func() ports.Encoder
	log        ports.Logger

	mu        sync.Mutex
	recording bool
	enc       ports.Encoder
	encDone   chan struct{}
	startTime time.Time
}

// NewVideoRecorder wires a screen recorder. Quality and framerate override the
// configured defaults when non-zero.
func NewVideoRecorder(
	cfg domain.Config,
	paths domain.SessionPaths,
	quality string,
	framerate int,
	newEncoder func() ports.Encoder,
	log ports.Logger,
) *VideoRecorder {
	if quality == "" {
		quality = cfg.Video.Quality
	}
	if framerate <= 0 {
		framerate = cfg.Video.Framerate
	}
	if framerate <= 0 {
		framerate = domain.DefaultFramerate
	}
	return &VideoRecorder{
		cfg:        cfg,
		paths:      paths,
		quality:    quality,
		framerate:  framerate,
		newEncoder: newEncoder,
		log:        log,
	}
}

func (r *VideoRecorder) Name() string { return "VideoRecorder" }

func (r *VideoRecorder) Kind() ports.RecorderKind { return ports.KindScreen }

// IsRecording reports the flag combined with process liveness, so a recorder
// whose encoder died on its own no longer counts as recording.
func (r *VideoRecorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording && r.enc != nil && r.enc.Alive()
}

// Setup ensures the output directory exists.
func (r *VideoRecorder) Setup(context.Context) error {
	if err := os.MkdirAll(r.paths.VideoDir, 0o755); err != nil {
		return fmt.Errorf("create video output directory: %w", err)
	}
	return nil
}

// Start spawns the encoder and hosts its blocking wait on a goroutine, so the
// caller's control thread is never held by the capture. A second Start is a
// warned no-op; a spawn failure propagates.
func (r *VideoRecorder) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.recording {
		r.mu.Unlock()
		r.log.Warn("video recording is already in progress", nil)
		return nil
	}

	if err := os.MkdirAll(r.paths.VideoDir, 0o755); err != nil {
		r.mu.Unlock()
		return fmt.Errorf("create video output directory: %w", err)
	}

	enc := r.newEncoder()
	if err := enc.Start("ffmpeg", r.encoderArgs()...); err != nil {
		r.mu.Unlock()
		return fmt.Errorf("start video encoder: %w", err)
	}

	done := make(chan struct{})
	r.enc = enc
	r.encDone = done
	r.recording = true
	r.startTime = time.Now()
	r.mu.Unlock()

	go func() {
		if err := enc.Wait(); err != nil {
			r.log.Error("video encoder exited with error", err, nil)
		}
		close(done)
	}()
	return nil
}

// encoderArgs builds the fixed ffmpeg command line: X11 screen grab at the
// configured framerate, even-height crop, quality preset, single mp4 output.
func (r *VideoRecorder) encoderArgs() []string {
	args := []string{
		"-f", "x11grab",
		"-framerate", strconv.Itoa(r.framerate),
		"-i", r.cfg.Video.Display,
		"-r", strconv.Itoa(r.framerate),
		"-vf", "crop=iw:floor(ih/2)*2",
	}
	args = append(args, domain.ResolveQuality(r.quality).Args()...)
	args = append(args,
		"-pix_fmt", "yuv420p",
		"-f", "mp4",
		"-loglevel", "error",
		r.paths.VideoFile,
	)
	return args
}

// Stop gracefully stops the encoder, escalating to a kill on timeout, joins
// the capture goroutine, and builds the result from the final artifact: a
// missing or empty file yields an empty result plus a diagnostic. Guarded by
// the flag and process liveness, so a race with a self-terminating encoder
// cannot double-stop.
func (r *VideoRecorder) Stop(context.Context) (domain.Result, error) {
	r.mu.Lock()
	if !r.recording || r.enc == nil || !r.enc.Alive() {
		r.log.Warn("no video recording in progress", nil)
		r.recording = false
		r.enc = nil
		r.encDone = nil
		r.mu.Unlock()
		return domain.Result{}, nil
	}
	r.recording = false
	enc := r.enc
	done := r.encDone
	started := r.startTime
	r.mu.Unlock()

	stopTimeout := time.Duration(r.cfg.Recording.StopTimeoutSeconds) * time.Second
	if err := enc.GracefulStop(stopTimeout); err != nil {
		r.log.Error("error stopping video encoder", err, nil)
	}

	select {
	case <-done:
	case <-time.After(joinTimeout):
		r.log.Warn("capture goroutine did not finish in time, abandoning", nil)
	}

	result := r.inspectArtifact(started)

	r.mu.Lock()
	r.enc = nil
	r.encDone = nil
	r.mu.Unlock()

	return result, nil
}

func (r *VideoRecorder) inspectArtifact(started time.Time) domain.Result {
	info, err := os.Stat(r.paths.VideoFile)
	switch {
	case err != nil:
		r.log.Warn("recorded video file was not generated", map[string]interface{}{
			"file": r.paths.VideoFile,
		})
		return domain.Result{}
	case info.Size() == 0:
		r.log.Warn("recorded video file is empty", map[string]interface{}{
			"file": r.paths.VideoFile,
		})
		return domain.Result{}
	}

	elapsed := time.Since(started)
	return domain.Result{
		Outputs: map[domain.OutputKind]string{
			domain.OutputVideo: r.paths.VideoFile,
		},
		Metadata: map[string]string{
			domain.MetaProjectName: r.paths.ProjectName,
			domain.MetaDuration:    elapsed.String(),
			domain.MetaElapsed:     formatElapsed(elapsed),
		},
	}
}

// formatElapsed renders a wall-clock duration as {hours}h_{minutes}m_{seconds}s.
func formatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%dh_%dm_%ds", hours, minutes, seconds)
}

// WaitForCompletion is a no-op: a screen recording is done only when an
// external Stop says so, never because the encoder exited on its own.
func (r *VideoRecorder) WaitForCompletion(context.Context) error { return nil }

// SessionInfo returns a snapshot for reporting. No side effects.
func (r *VideoRecorder) SessionInfo() domain.SessionInfo {
	return domain.SessionInfo{
		ProjectName:  r.paths.ProjectName,
		Date:         r.paths.DateStr,
		Time:         r.paths.TimeStr,
		VideoQuality: r.quality,
		Framerate:    r.framerate,
		VideoFile:    r.paths.VideoFile,
		VideoDir:     r.paths.VideoDir,
	}
}

var _ ports.Recorder = (*VideoRecorder)(nil)
