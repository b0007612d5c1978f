package domain

import (
	"errors"
	"fmt"
)

// ErrToolMissing marks a required external binary that is not on PATH.
var ErrToolMissing = errors.New("tool not found")

// ErrToolRejected marks an external command that ran but was rejected.
var ErrToolRejected = errors.New("command rejected")

// ToolError wraps a failure invoking an external tool, distinguishing a
// missing binary from a rejected command via errors.Is.
type ToolError struct {
	Tool   string
	Reason error
	Err    error
}

func (e *ToolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Tool, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Tool, e.Reason)
}

func (e *ToolError) Unwrap() error { return e.Reason }

// NewToolMissing builds a ToolError for a binary absent from PATH.
func NewToolMissing(tool string, err error) *ToolError {
	return &ToolError{Tool: tool, Reason: ErrToolMissing, Err: err}
}

// NewToolRejected builds a ToolError for a command the tool refused.
func NewToolRejected(tool string, err error) *ToolError {
	return &ToolError{Tool: tool, Reason: ErrToolRejected, Err: err}
}
