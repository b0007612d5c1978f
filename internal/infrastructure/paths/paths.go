// Package paths computes and creates the per-session artifact layout:
//
//	<log_root>/<project>/Log/<date>/asciinema/<time>.cast
//	<log_root>/<project>/Log/<date>/zsh/<time>.zsh_history
//	<log_root>/<project>/Log/<date>/tmux/            (pane logs, tmux-named)
//	<log_root>/<project>/Log/<date>/video/<project>_<date>_<time>.mp4
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/doeshing/tmuxcast/internal/domain"
)

const (
	dateLayout = "20060102"
	timeLayout = "150405"
)

// NewSession builds the path bundle for one recording session and creates
// every directory in it. Timestamps in filenames allow multiple sessions on
// the same day.
func NewSession(cfg domain.Config, projectName string, now time.Time) (domain.SessionPaths, error) {
	dateStr := now.Format(dateLayout)
	timeStr := now.Format(timeLayout)

	baseDir := filepath.Join(cfg.Paths.LogRoot, projectName, "Log", dateStr)
	asciinemaDir := filepath.Join(baseDir, "asciinema")
	zshDir := filepath.Join(baseDir, "zsh")
	tmuxDir := filepath.Join(baseDir, "tmux")
	videoDir := filepath.Join(baseDir, "video")

	for _, dir := range []string{asciinemaDir, zshDir, tmuxDir, videoDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.SessionPaths{}, fmt.Errorf("create session directory: %w", err)
		}
	}

	return domain.SessionPaths{
		ProjectName:    projectName,
		DateStr:        dateStr,
		TimeStr:        timeStr,
		BaseDir:        baseDir,
		AsciinemaFile:  filepath.Join(asciinemaDir, timeStr+".cast"),
		ZshHistoryFile: filepath.Join(zshDir, timeStr+".zsh_history"),
		TmuxLogDir:     tmuxDir,
		VideoDir:       videoDir,
		VideoFile:      filepath.Join(videoDir, fmt.Sprintf("%s_%s_%s.mp4", projectName, dateStr, timeStr)),
	}, nil
}

// SessionName derives the default multiplexer session name.
func SessionName(p domain.SessionPaths) string {
	return fmt.Sprintf("%s_%s_%s", p.ProjectName, p.DateStr, p.TimeStr)
}
