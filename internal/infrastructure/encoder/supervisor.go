// Package encoder supervises one long-running external encoder process:
// spawn with piped stdin, liveness, graceful quit, kill escalation.
package encoder

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/doeshing/tmuxcast/internal/domain"
	"github.com/doeshing/tmuxcast/internal/ports"
)

// Supervisor owns a single process. Start spawns it and an internal waiter
// goroutine collects its exit, so liveness and the stop escalation can both
// observe termination without a second Wait on the command.
type Supervisor struct {
	log ports.Logger

	mu      sync.Mutex
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	started bool
	waitErr error

	done chan struct{}
}

// NewSupervisor builds an idle supervisor.
func NewSupervisor(log ports.Logger) *Supervisor {
	return &Supervisor{log: log}
}

// Start spawns the process with a piped stdin. A missing binary is reported
// as a typed tool error.
func (s *Supervisor) Start(name string, args ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("encoder process already started")
	}

	cmd := exec.Command(name, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("pipe encoder stdin: %w", err)
	}

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return domain.NewToolMissing(name, err)
		}
		return domain.NewToolRejected(name, err)
	}

	s.cmd = cmd
	s.stdin = stdin
	s.started = true
	s.done = make(chan struct{})

	go func() {
		err := cmd.Wait()
		s.mu.Lock()
		s.waitErr = err
		s.mu.Unlock()
		close(s.done)
	}()

	return nil
}

// Wait blocks until the process exits and returns its exit error.
func (s *Supervisor) Wait() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	done := s.done
	s.mu.Unlock()

	<-done

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waitErr
}

// Alive reports whether the process was started and has not yet exited.
func (s *Supervisor) Alive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// GracefulStop writes the encoder's quit command to its stdin, waits up to
// timeout for a clean exit, then kills and waits unbounded. Residual failures
// during the escalation are logged, never raised.
func (s *Supervisor) GracefulStop(timeout time.Duration) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	cmd := s.cmd
	stdin := s.stdin
	done := s.done
	s.mu.Unlock()

	if _, err := io.WriteString(stdin, "q\n"); err != nil {
		s.log.Warn("encoder stdin closed, skipping quit command", map[string]interface{}{
			"error": err.Error(),
		})
	}

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
	}

	s.log.Warn("timeout waiting for encoder to stop, forcing kill", nil)
	if err := cmd.Process.Kill(); err != nil {
		s.log.Error("kill encoder process", err, nil)
	}
	<-done
	return nil
}

var _ ports.Encoder = (*Supervisor)(nil)
