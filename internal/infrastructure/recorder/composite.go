package recorder

import (
	"context"
	"time"

	"github.com/doeshing/tmuxcast/internal/domain"
	"github.com/doeshing/tmuxcast/internal/ports"
)

// defaultSettle is how long Start pauses after launching the screen recorder
// before verifying it actually transitioned to recording.
const defaultSettle = time.Second

// Composite aggregates heterogeneous recorders behind the single-recorder
// contract and owns the cross-recorder ordering policy:
//
//   - screen capture starts before terminal capture, so no terminal activity
//     is missed;
//   - completion is delegated to the terminal recorder when present, and the
//     screen recorder is stopped as soon as the terminal session ends;
//   - stop fans out in registration order and tolerates individual failures.
type Composite struct {
	log    ports.Logger
	settle time.Duration

	recorders []ports.Recorder
	terminal  ports.Recorder
	screen    ports.Recorder

	recording bool
	// results gathered before the final Stop (the screen recorder stopped
	// automatically when the terminal session ended).
	collected map[string]domain.Result
}

// NewComposite builds an empty composite.
func NewComposite(log ports.Logger) *Composite {
	return &Composite{
		log:       log,
		settle:    defaultSettle,
		collected: map[string]domain.Result{},
	}
}

// Add registers a recorder. Registration order is preserved; the first
// terminal and screen recorders are additionally tracked by kind for the
// ordering decisions.
func (c *Composite) Add(r ports.Recorder) {
	for _, existing := range c.recorders {
		if existing == r {
			return
		}
	}
	c.recorders = append(c.recorders, r)

	switch r.Kind() {
	case ports.KindTerminal:
		if c.terminal == nil {
			c.terminal = r
		}
	case ports.KindScreen:
		if c.screen == nil {
			c.screen = r
		}
	}
}

// Remove unregisters a recorder.
func (c *Composite) Remove(r ports.Recorder) {
	for i, existing := range c.recorders {
		if existing == r {
			c.recorders = append(c.recorders[:i], c.recorders[i+1:]...)
			break
		}
	}
	if c.terminal == r {
		c.terminal = nil
	}
	if c.screen == r {
		c.screen = nil
	}
}

// Recorders returns the members in registration order.
func (c *Composite) Recorders() []ports.Recorder { return c.recorders }

// IsRecording reports the composite's own flag.
func (c *Composite) IsRecording() bool { return c.recording }

// Setup prepares every member in registration order. The first failure aborts:
// partial setup is not repaired automatically.
func (c *Composite) Setup(ctx context.Context) error {
	for _, r := range c.recorders {
		if err := r.Setup(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Start begins recording on all members. The screen recorder goes first and
// is verified after a short settle pause; its failure is a warning only,
// because screen capture failing must not abort the terminal capture. The
// terminal recorder and any remaining members start next, and their failures
// propagate.
func (c *Composite) Start(ctx context.Context) error {
	if c.recording {
		c.log.Warn("recording is already in progress", nil)
		return nil
	}
	c.recording = true

	if c.screen != nil {
		if err := c.screen.Start(ctx); err != nil {
			c.log.Warn("screen recorder failed to start", map[string]interface{}{
				"recorder": c.screen.Name(),
				"error":    err.Error(),
			})
		} else {
			time.Sleep(c.settle)
			if !c.screen.IsRecording() {
				c.log.Warn("screen recorder did not transition to recording", map[string]interface{}{
					"recorder": c.screen.Name(),
				})
			}
		}
	}

	if c.terminal != nil {
		if err := c.terminal.Start(ctx); err != nil {
			return err
		}
	}

	for _, r := range c.recorders {
		if r == c.terminal || r == c.screen {
			continue
		}
		if err := r.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

// WaitForCompletion blocks until the session is logically complete. With a
// terminal recorder present its completion is authoritative; once it returns,
// a screen recorder still recording is stopped immediately so the encoder
// never outlives the session it accompanies. Without a terminal recorder,
// every member is waited on independently.
func (c *Composite) WaitForCompletion(ctx context.Context) error {
	if c.terminal == nil {
		for _, r := range c.recorders {
			if err := r.WaitForCompletion(ctx); err != nil {
				return err
			}
		}
		return nil
	}

	if err := c.terminal.WaitForCompletion(ctx); err != nil {
		return err
	}

	if c.screen != nil && c.screen.IsRecording() {
		result, err := c.screen.Stop(ctx)
		if err != nil {
			c.log.Warn("screen recorder failed to stop", map[string]interface{}{
				"recorder": c.screen.Name(),
				"error":    err.Error(),
			})
		} else if !result.Empty() {
			c.collected[c.screen.Name()] = result
		}
	}
	return nil
}

// Stop stops every member in registration order regardless of individual
// failures, which surface as diagnostics and omitted entries only. Non-empty
// results are keyed by recorder variant name; recorders that legitimately
// completed with nothing are omitted rather than included as empty entries.
func (c *Composite) Stop(ctx context.Context) map[string]domain.Result {
	if !c.recording {
		return map[string]domain.Result{}
	}
	c.recording = false

	results := make(map[string]domain.Result, len(c.recorders))
	for name, result := range c.collected {
		results[name] = result
	}

	for _, r := range c.recorders {
		result, err := r.Stop(ctx)
		if err != nil {
			c.log.Warn("recorder failed to stop", map[string]interface{}{
				"recorder": r.Name(),
				"error":    err.Error(),
			})
			continue
		}
		if !result.Empty() {
			results[r.Name()] = result
		}
	}
	return results
}

// SessionInfo aggregates member snapshots keyed by recorder name.
func (c *Composite) SessionInfo() domain.CompositeSessionInfo {
	info := domain.CompositeSessionInfo{
		ByName: make(map[string]domain.SessionInfo, len(c.recorders)),
	}
	for _, r := range c.recorders {
		info.Recorders = append(info.Recorders, r.Name())
		info.ByName[r.Name()] = r.SessionInfo()
	}
	return info
}
