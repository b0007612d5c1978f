// Package conf renders the session-scoped tmux and zsh configuration files
// into the run's scratch directory, layering logging hooks on top of the
// user's own settings without touching them.
package conf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/doeshing/tmuxcast/assets"
	"github.com/doeshing/tmuxcast/internal/domain"
	"github.com/doeshing/tmuxcast/internal/ports"
)

// Tmux format specifiers (#{...}) and strftime patterns below are expanded by
// tmux itself at hook time, not by this template.
const tmuxHookTemplate = `
set-hook -g after-split-window 'pipe-pane -o "cat >> {{.LogDir}}/#{session_name}-#{window_index}-#{pane_index}-%Y%m%d-%H%M%S.log"'
set-hook -g after-new-window 'pipe-pane -o "cat >> {{.LogDir}}/#{session_name}-#{window_index}-#{pane_index}-%Y%m%d-%H%M%S.log"'
set-hook -g session-created 'pipe-pane -o "cat >> {{.LogDir}}/#{session_name}-#{window_index}-#{pane_index}-%Y%m%d-%H%M%S.log"'
set-environment -g ZDOTDIR {{.ScratchDir}}
`

const zshrcTemplate = `
source {{.UserZshrc}}
export HISTFILE={{.HistoryFile}}
export HISTSIZE=10000
export SAVEHIST=10000
setopt INC_APPEND_HISTORY
setopt SHARE_HISTORY
`

var (
	tmuxHookTmpl = template.Must(template.New("tmux-hooks").Parse(tmuxHookTemplate))
	zshrcTmpl    = template.Must(template.New("zshrc").Parse(zshrcTemplate))
)

// Generator writes the dynamic tmux.conf and scratch .zshrc for one session.
type Generator struct {
	cfg        domain.Config
	paths      domain.SessionPaths
	scratchDir string
	log        ports.Logger
}

// NewGenerator builds a generator writing into scratchDir.
func NewGenerator(cfg domain.Config, paths domain.SessionPaths, scratchDir string, log ports.Logger) *Generator {
	return &Generator{cfg: cfg, paths: paths, scratchDir: scratchDir, log: log}
}

// TmuxConf renders the dynamic tmux configuration: the user's ~/.tmux.conf
// (or an embedded minimal default when absent) plus pipe-pane logging hooks
// keyed to the session log directory and a ZDOTDIR pointing at the scratch
// directory. Returns the generated file's path.
func (g *Generator) TmuxConf() (string, error) {
	base, err := os.ReadFile(g.cfg.Paths.TmuxConf)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("read user tmux conf: %w", err)
		}
		g.log.Warn("user tmux config not found, using minimal default", map[string]interface{}{
			"path": g.cfg.Paths.TmuxConf,
		})
		base = []byte(assets.MinimalTmuxConf)
	}

	var hooks strings.Builder
	err = tmuxHookTmpl.Execute(&hooks, struct {
		LogDir     string
		ScratchDir string
	}{LogDir: g.paths.TmuxLogDir, ScratchDir: g.scratchDir})
	if err != nil {
		return "", fmt.Errorf("render tmux hooks: %w", err)
	}

	confPath := filepath.Join(g.scratchDir, "generated_tmux.conf")
	content := string(base) + "\n" + hooks.String()
	if err := os.WriteFile(confPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write generated tmux conf: %w", err)
	}
	return confPath, nil
}

// Zshrc writes a scratch .zshrc that sources the user's own zshrc and then
// redirects history into the session's history file. Returns the written
// file's path; tmux picks it up through the ZDOTDIR environment variable.
func (g *Generator) Zshrc() (string, error) {
	var content strings.Builder
	err := zshrcTmpl.Execute(&content, struct {
		UserZshrc   string
		HistoryFile string
	}{UserZshrc: g.cfg.Paths.Zshrc, HistoryFile: g.paths.ZshHistoryFile})
	if err != nil {
		return "", fmt.Errorf("render zshrc: %w", err)
	}

	rcPath := filepath.Join(g.scratchDir, ".zshrc")
	if err := os.WriteFile(rcPath, []byte(content.String()), 0o644); err != nil {
		return "", fmt.Errorf("write scratch zshrc: %w", err)
	}
	return rcPath, nil
}

var _ ports.ConfGenerator = (*Generator)(nil)
