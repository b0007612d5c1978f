// Package record orchestrates one recording run: preflight, setup, start,
// wait for the session to end, stop, report, and scoped scratch cleanup.
package record

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/doeshing/tmuxcast/internal/domain"
	"github.com/doeshing/tmuxcast/internal/ports"
)

// NamedReporter pairs a reporter with the recorder name whose results it
// renders. Order follows recorder registration.
type NamedReporter struct {
	Name     string
	Reporter ports.Reporter
}

// Service runs one recording session end to end.
//
// Setup and start failures are fatal: continuing with a half-initialized
// recorder risks silently losing data. Stop-time failures are surfaced as
// diagnostics only, because partial data already exists by then.
type Service struct {
	Recorder  ports.SessionRecorder
	Reporters []NamedReporter
	Cleaner   ports.Cleaner
	Logger    ports.Logger

	Quiet       bool
	KeepScratch bool

	// RequiredTools are checked on PATH before anything starts.
	RequiredTools []string
	// LookPath is swappable for tests; defaults to exec.LookPath.
	LookPath func(string) (string, error)

	// Out receives the closing separator; defaults to stdout.
	Out io.Writer
}

// Run executes the full lifecycle and returns the collected results.
func (s *Service) Run(ctx context.Context) (map[string]domain.Result, error) {
	defer func() {
		if s.KeepScratch || s.Cleaner == nil {
			return
		}
		if err := s.Cleaner.Cleanup(); err != nil {
			s.Logger.Warn("could not remove scratch directory", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	if err := s.preflight(); err != nil {
		return nil, err
	}

	info := s.Recorder.SessionInfo()
	if !s.Quiet {
		for _, nr := range s.Reporters {
			nr.Reporter.SessionStart(info.ByName[nr.Name])
		}
	}

	if err := s.Recorder.Setup(ctx); err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}

	// Announce in start order: the screen recorder launches before the
	// terminal one, so its reporter speaks first.
	if !s.Quiet {
		for i := len(s.Reporters) - 1; i >= 0; i-- {
			s.Reporters[i].Reporter.RecordingStart()
		}
	}

	if err := s.Recorder.Start(ctx); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	if err := s.Recorder.WaitForCompletion(ctx); err != nil {
		return nil, fmt.Errorf("wait for completion: %w", err)
	}

	results := s.Recorder.Stop(ctx)

	if !s.Quiet {
		for _, nr := range s.Reporters {
			nr.Reporter.RecordingEnd()
			if result, ok := results[nr.Name]; ok {
				nr.Reporter.RecorderResults(result)
			}
		}
		fmt.Fprintln(s.out(), strings.Repeat("=", 60))
	}

	return results, nil
}

// preflight verifies every required external tool is on PATH, failing loudly
// with the tool's name before any recording starts.
func (s *Service) preflight() error {
	lookPath := s.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	for _, tool := range s.RequiredTools {
		if _, err := lookPath(tool); err != nil {
			return domain.NewToolMissing(tool, err)
		}
	}
	return nil
}

func (s *Service) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stdout
}
