// Package tmux manages the lifecycle of one named tmux session: creation with
// a generated configuration, existence polling, and best-effort termination.
package tmux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/doeshing/tmuxcast/internal/domain"
	"github.com/doeshing/tmuxcast/internal/ports"
)

// Runner executes one external command to completion. Factored out so tests
// can observe and fake tmux invocations.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// Manager wraps lifecycle operations for one named tmux session.
type Manager struct {
	session string
	poll    time.Duration
	log     ports.Logger
	runner  Runner
}

// NewManager builds a manager for the named session. pollInterval governs the
// existence poll in WaitForExit.
func NewManager(session string, pollInterval time.Duration, log ports.Logger) *Manager {
	return &Manager{
		session: session,
		poll:    pollInterval,
		log:     log,
		runner:  execRunner{},
	}
}

// SessionName returns the managed session's name.
func (m *Manager) SessionName() string { return m.session }

// Create starts a detached tmux session running zsh under the generated
// configuration, so asciinema can attach to it afterwards. Failures are typed:
// a missing tmux binary is distinguished from a rejected command.
func (m *Manager) Create(ctx context.Context, confPath string) error {
	err := m.runner.Run(ctx, "tmux", "-f", confPath, "new-session", "-d", "-s", m.session, "zsh")
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return domain.NewToolMissing("tmux", err)
	}
	return domain.NewToolRejected("tmux", err)
}

// Exists reports whether the session is currently alive. tmux signals
// existence purely through the has-session exit code.
func (m *Manager) Exists(ctx context.Context) bool {
	return m.runner.Run(ctx, "tmux", "has-session", "-t", m.session) == nil
}

// Terminate kills the session if it still exists. Best effort: a session that
// is already gone is not an error.
func (m *Manager) Terminate(ctx context.Context) error {
	if !m.Exists(ctx) {
		return nil
	}
	m.log.Info("terminating tmux session", map[string]interface{}{"session": m.session})
	if err := m.runner.Run(ctx, "tmux", "kill-session", "-t", m.session); err != nil {
		return fmt.Errorf("kill tmux session %s: %w", m.session, err)
	}
	return nil
}

// WaitForExit blocks until the session no longer exists, polling at the
// configured interval, or until the context is cancelled.
func (m *Manager) WaitForExit(ctx context.Context) error {
	ticker := time.NewTicker(m.poll)
	defer ticker.Stop()
	for {
		if !m.Exists(ctx) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

var _ ports.SessionManager = (*Manager)(nil)
