// Package asciinema wraps the asciinema CLI to record an attached tmux
// session into a cast file.
package asciinema

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/doeshing/tmuxcast/internal/domain"
	"github.com/doeshing/tmuxcast/internal/ports"
)

// CLICaster shells out to asciinema. Stdio is inherited so the user interacts
// with the recorded session directly.
type CLICaster struct {
	outputFile string
}

// NewCLICaster builds a caster writing to outputFile.
func NewCLICaster(outputFile string) *CLICaster {
	return &CLICaster{outputFile: outputFile}
}

// Record runs `asciinema rec -c "tmux attach -t <session>" <file>`. The call
// blocks until the attached session ends; run it off the control thread.
func (c *CLICaster) Record(ctx context.Context, sessionName string) error {
	cmd := exec.CommandContext(ctx, "asciinema",
		"rec",
		"-c", "tmux attach -t "+sessionName,
		c.outputFile,
	)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return domain.NewToolMissing("asciinema", err)
		}
		return domain.NewToolRejected("asciinema", err)
	}
	return nil
}

var _ ports.Caster = (*CLICaster)(nil)
