// Package report renders session snapshots and recording results for the
// console. Reporters are pure sinks.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/tmuxcast/internal/domain"
	"github.com/doeshing/tmuxcast/internal/ports"
)

// Separator is the banner line width used across reporters.
const Separator = 60

// TmuxSessionReporter reports terminal-session recording progress and results.
type TmuxSessionReporter struct {
	out io.Writer
}

// NewTmuxSessionReporter builds a reporter; nil out defaults to stdout.
func NewTmuxSessionReporter(out io.Writer) *TmuxSessionReporter {
	if out == nil {
		out = os.Stdout
	}
	return &TmuxSessionReporter{out: out}
}

func (r *TmuxSessionReporter) SessionStart(info domain.SessionInfo) {
	fmt.Fprintln(r.out, strings.Repeat("=", Separator))
	fmt.Fprintf(r.out, "Recording session for project: %s\n", info.ProjectName)
	fmt.Fprintf(r.out, "Date: %s, Time: %s\n", info.Date, info.Time)
	fmt.Fprintf(r.out, "Tmux session: %s\n", info.TmuxSession)
}

func (r *TmuxSessionReporter) RecordingStart() {
	fmt.Fprintln(r.out, "[+] Starting asciinema recording.")
}

func (r *TmuxSessionReporter) RecordingEnd() {
	fmt.Fprintln(r.out, "[✓] Asciinema recording completed.")
}

func (r *TmuxSessionReporter) RecorderResults(result domain.Result) {
	fmt.Fprintln(r.out, "\nRecording outputs:")
	if path, ok := result.Outputs[domain.OutputAsciinema]; ok {
		fmt.Fprintf(r.out, "- Asciinema recording: %s%s\n", path, sizeSuffix(path))
	}
	if path, ok := result.Outputs[domain.OutputZshHistory]; ok {
		fmt.Fprintf(r.out, "- Zsh history: %s\n", path)
	}
	if path, ok := result.Outputs[domain.OutputTmuxLogs]; ok {
		fmt.Fprintf(r.out, "- Tmux logs: %s/*.log\n", path)
	}
}

// VideoReporter reports screen recording progress and results.
type VideoReporter struct {
	out io.Writer
}

// NewVideoReporter builds a reporter; nil out defaults to stdout.
func NewVideoReporter(out io.Writer) *VideoReporter {
	if out == nil {
		out = os.Stdout
	}
	return &VideoReporter{out: out}
}

func (r *VideoReporter) SessionStart(info domain.SessionInfo) {
	fmt.Fprintln(r.out, strings.Repeat("-", Separator))
	fmt.Fprintln(r.out, "Video recording: Enabled")
	fmt.Fprintf(r.out, "Quality: %s, Framerate: %d\n", info.VideoQuality, info.Framerate)
	fmt.Fprintln(r.out, strings.Repeat("-", Separator))
}

func (r *VideoReporter) RecordingStart() {
	fmt.Fprintln(r.out, "[+] Starting video recording...")
}

func (r *VideoReporter) RecordingEnd() {
	fmt.Fprintln(r.out, "[✓] Video recording completed.")
}

func (r *VideoReporter) RecorderResults(result domain.Result) {
	path, ok := result.Outputs[domain.OutputVideo]
	if !ok {
		return
	}
	fmt.Fprintf(r.out, "- Video recording: %s%s\n", path, sizeSuffix(path))
	if elapsed, ok := result.Metadata[domain.MetaElapsed]; ok {
		fmt.Fprintf(r.out, "- Recording time: %s\n", elapsed)
	}
}

// sizeSuffix renders a humanized file size, or nothing when the file cannot
// be inspected.
func sizeSuffix(path string) string {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	return fmt.Sprintf(" (%s)", humanize.Bytes(uint64(info.Size())))
}

var (
	_ ports.Reporter = (*TmuxSessionReporter)(nil)
	_ ports.Reporter = (*VideoReporter)(nil)
)
