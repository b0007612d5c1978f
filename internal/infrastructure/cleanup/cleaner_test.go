package cleanup

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCleanupRemovesScratchTree(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "session-abc")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".zshrc"), []byte("export HISTFILE=/tmp/h"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := NewScratchCleaner(dir).Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("scratch directory still present: %v", err)
	}
}

func TestCleanupToleratesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")
	if err := NewScratchCleaner(dir).Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v for an absent directory", err)
	}
}

func TestCleanupNoopOnEmptyPath(t *testing.T) {
	if err := NewScratchCleaner("").Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v for an empty path", err)
	}
}
