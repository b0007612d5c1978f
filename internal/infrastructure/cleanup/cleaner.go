// Package cleanup removes the run-scoped scratch directory.
package cleanup

import (
	"fmt"
	"os"

	"github.com/doeshing/tmuxcast/internal/ports"
)

// ScratchCleaner removes one scratch directory tree.
type ScratchCleaner struct {
	dir string
}

// NewScratchCleaner builds a cleaner for dir.
func NewScratchCleaner(dir string) *ScratchCleaner {
	return &ScratchCleaner{dir: dir}
}

// Cleanup removes the scratch directory recursively. A directory that is
// already gone is not an error.
func (c *ScratchCleaner) Cleanup() error {
	if c.dir == "" {
		return nil
	}
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("remove scratch directory %s: %w", c.dir, err)
	}
	return nil
}

var _ ports.Cleaner = (*ScratchCleaner)(nil)
