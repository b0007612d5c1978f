package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/tmuxcast/internal/domain"
	"github.com/doeshing/tmuxcast/internal/pkg/filesystem"
	"github.com/doeshing/tmuxcast/internal/ports"
)

// FileLoader loads YAML configuration from ~/.tmuxcast/config.yaml
// (overridable via TMUXCAST_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing config file is not an
// error: defaults are written out and returned.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("TMUXCAST_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".tmuxcast", "config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func defaultConfig() domain.Config {
	home := filesystem.UserHomeDir()
	return domain.Config{
		ConfigFormatVersion: "1",
		Paths: domain.PathSettings{
			LogRoot:     filepath.Join(home, "project"),
			TmuxConf:    filepath.Join(home, ".tmux.conf"),
			Zshrc:       filepath.Join(home, ".zshrc"),
			ScratchRoot: filepath.Join(home, ".tmuxcast", "tmp"),
		},
		Video: domain.VideoSettings{
			Quality:   "medium",
			Framerate: domain.DefaultFramerate,
			Display:   ":0.0",
		},
		Recording: domain.RecordingSettings{
			PollIntervalSeconds: 1,
			StopTimeoutSeconds:  10,
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	home := filesystem.UserHomeDir()
	if cfg.Paths.LogRoot == "" {
		cfg.Paths.LogRoot = filepath.Join(home, "project")
	}
	if cfg.Paths.TmuxConf == "" {
		cfg.Paths.TmuxConf = filepath.Join(home, ".tmux.conf")
	}
	if cfg.Paths.Zshrc == "" {
		cfg.Paths.Zshrc = filepath.Join(home, ".zshrc")
	}
	if cfg.Paths.ScratchRoot == "" {
		cfg.Paths.ScratchRoot = filepath.Join(home, ".tmuxcast", "tmp")
	}
	if cfg.Video.Quality == "" {
		cfg.Video.Quality = "medium"
	}
	if cfg.Video.Framerate == 0 {
		cfg.Video.Framerate = domain.DefaultFramerate
	}
	if cfg.Video.Display == "" {
		cfg.Video.Display = ":0.0"
	}
	if cfg.Recording.PollIntervalSeconds == 0 {
		cfg.Recording.PollIntervalSeconds = 1
	}
	if cfg.Recording.StopTimeoutSeconds == 0 {
		cfg.Recording.StopTimeoutSeconds = 10
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
