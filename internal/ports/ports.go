// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core depends on these contracts only; the concrete adapters
// (tmux, asciinema, ffmpeg, filesystem, console) live under infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/tmuxcast/internal/domain"
)

// RecorderKind is the closed set of recorder variants. The composite uses it
// to hold typed references for its ordering decisions instead of comparing
// type names.
type RecorderKind string

const (
	// KindTerminal marks the recorder whose completion is the authoritative
	// "session ended" signal.
	KindTerminal RecorderKind = "terminal"
	// KindScreen marks a display-capture recorder that must start before any
	// terminal capture and must not outlive it.
	KindScreen RecorderKind = "screen"
	// KindAux marks recorders with no ordering constraints.
	KindAux RecorderKind = "aux"
)

// Recorder is the uniform lifecycle contract shared by every variant.
//
// Setup prepares the environment and fails loudly when a required tool or file
// is missing. Start transitions not-recording to recording and never blocks on
// the capture itself; a second Start is a warned no-op. Stop transitions back
// exactly once and returns the artifacts; Stop while idle returns an empty
// result without side effects. WaitForCompletion blocks until the recorder's
// notion of "done" is reached.
type Recorder interface {
	Name() string
	Kind() RecorderKind
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) (domain.Result, error)
	WaitForCompletion(ctx context.Context) error
	SessionInfo() domain.SessionInfo
	IsRecording() bool
}

// SessionRecorder is the composite contract the record service drives: one
// setup/start/wait/stop cycle producing results keyed by recorder name.
type SessionRecorder interface {
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	WaitForCompletion(ctx context.Context) error
	Stop(ctx context.Context) map[string]domain.Result
	SessionInfo() domain.CompositeSessionInfo
}

// SessionManager wraps lifecycle queries and termination for one named
// multiplexer session.
type SessionManager interface {
	SessionName() string
	Create(ctx context.Context, confPath string) error
	Exists(ctx context.Context) bool
	Terminate(ctx context.Context) error
	WaitForExit(ctx context.Context) error
}

// Caster records an attached multiplexer session to a cast file. Record blocks
// until the attached session ends, so callers run it off the control thread.
type Caster interface {
	Record(ctx context.Context, sessionName string) error
}

// ConfGenerator renders the session-scoped tmux and zsh configuration files.
type ConfGenerator interface {
	TmuxConf() (string, error)
	Zshrc() (string, error)
}

// Encoder supervises one external encoder process: spawn, liveness, graceful
// quit with kill escalation.
type Encoder interface {
	Start(name string, args ...string) error
	Wait() error
	Alive() bool
	GracefulStop(timeout time.Duration) error
}

// Reporter turns session snapshots and results into console output. It is a
// pure sink and never feeds back into control flow.
type Reporter interface {
	SessionStart(info domain.SessionInfo)
	RecordingStart()
	RecordingEnd()
	RecorderResults(result domain.Result)
}

// Cleaner removes run-scoped scratch resources.
type Cleaner interface {
	Cleanup() error
}

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.tmuxcast/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
