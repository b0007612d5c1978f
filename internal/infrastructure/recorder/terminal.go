// Package recorder holds the recorder variants and the composite that
// coordinates them through one lifecycle contract.
package recorder

import (
	"context"
	"fmt"

	"github.com/doeshing/tmuxcast/internal/domain"
	"github.com/doeshing/tmuxcast/internal/ports"
)

// TmuxAsciinemaRecorder captures a tmux session with asciinema, together with
// the session's zsh history and per-pane tmux logs.
//
// Lifecycle: Setup renders configuration and creates the detached tmux
// session; Start attaches asciinema off the control thread; the recording
// naturally ends when the tmux session itself ends, so Stop only tears down a
// possibly-still-running session and packages the artifact paths.
type TmuxAsciinemaRecorder struct {
	cfg      domain.Config
	paths    domain.SessionPaths
	confgen  ports.ConfGenerator
	sessions ports.SessionManager
	caster   ports.Caster
	log      ports.Logger

	recording bool
}

// NewTmuxAsciinemaRecorder wires a terminal recorder from its collaborators.
func NewTmuxAsciinemaRecorder(
	cfg domain.Config,
	paths domain.SessionPaths,
	confgen ports.ConfGenerator,
	sessions ports.SessionManager,
	caster ports.Caster,
	log ports.Logger,
) *TmuxAsciinemaRecorder {
	return &TmuxAsciinemaRecorder{
		cfg:      cfg,
		paths:    paths,
		confgen:  confgen,
		sessions: sessions,
		caster:   caster,
		log:      log,
	}
}

func (r *TmuxAsciinemaRecorder) Name() string { return "TmuxAsciinemaRecorder" }

func (r *TmuxAsciinemaRecorder) Kind() ports.RecorderKind { return ports.KindTerminal }

func (r *TmuxAsciinemaRecorder) IsRecording() bool { return r.recording }

// Setup renders the dynamic tmux and zsh configuration and creates the
// detached tmux session. Failures propagate: continuing with a broken
// environment would silently lose data.
func (r *TmuxAsciinemaRecorder) Setup(ctx context.Context) error {
	confPath, err := r.confgen.TmuxConf()
	if err != nil {
		return fmt.Errorf("generate tmux conf: %w", err)
	}
	if _, err := r.confgen.Zshrc(); err != nil {
		return fmt.Errorf("generate zshrc: %w", err)
	}
	if err := r.sessions.Create(ctx, confPath); err != nil {
		return fmt.Errorf("create tmux session: %w", err)
	}
	return nil
}

// Start attaches asciinema to the session. The caster blocks until the
// session ends, so it runs on its own goroutine; Start itself only launches.
func (r *TmuxAsciinemaRecorder) Start(ctx context.Context) error {
	if r.recording {
		r.log.Warn("recording is already in progress", nil)
		return nil
	}
	r.recording = true

	go func() {
		if err := r.caster.Record(ctx, r.sessions.SessionName()); err != nil {
			r.log.Error("asciinema recording failed", err, map[string]interface{}{
				"session": r.sessions.SessionName(),
			})
		}
	}()
	return nil
}

// Stop tears down the tmux session if it still exists and packages the three
// artifact paths, regardless of whether they are non-empty. Stop while idle
// returns an empty result with no side effects.
func (r *TmuxAsciinemaRecorder) Stop(ctx context.Context) (domain.Result, error) {
	if !r.recording {
		return domain.Result{}, nil
	}
	r.recording = false

	if r.sessions.Exists(ctx) {
		if err := r.sessions.Terminate(ctx); err != nil {
			r.log.Warn("could not terminate tmux session", map[string]interface{}{
				"session": r.sessions.SessionName(),
				"error":   err.Error(),
			})
		}
	}

	return domain.Result{
		Outputs: map[domain.OutputKind]string{
			domain.OutputAsciinema:  r.paths.AsciinemaFile,
			domain.OutputZshHistory: r.paths.ZshHistoryFile,
			domain.OutputTmuxLogs:   r.paths.TmuxLogDir,
		},
		Metadata: map[string]string{
			domain.MetaProjectName: r.paths.ProjectName,
		},
	}, nil
}

// WaitForCompletion blocks until the tmux session terminates. The session
// ending externally is the authoritative signal that the recording is done.
func (r *TmuxAsciinemaRecorder) WaitForCompletion(ctx context.Context) error {
	if !r.recording {
		return nil
	}
	return r.sessions.WaitForExit(ctx)
}

// SessionInfo returns a snapshot for reporting. No side effects.
func (r *TmuxAsciinemaRecorder) SessionInfo() domain.SessionInfo {
	return domain.SessionInfo{
		ProjectName:    r.paths.ProjectName,
		Date:           r.paths.DateStr,
		Time:           r.paths.TimeStr,
		TmuxSession:    r.sessions.SessionName(),
		AsciinemaFile:  r.paths.AsciinemaFile,
		ZshHistoryFile: r.paths.ZshHistoryFile,
		TmuxLogDir:     r.paths.TmuxLogDir,
	}
}

var _ ports.Recorder = (*TmuxAsciinemaRecorder)(nil)
