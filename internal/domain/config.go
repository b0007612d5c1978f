package domain

// Config mirrors ~/.tmuxcast/config.yaml. It holds the process-wide static
// settings; everything session-scoped lives in SessionPaths.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Paths               PathSettings      `yaml:"paths"`
	Video               VideoSettings     `yaml:"video"`
	Recording           RecordingSettings `yaml:"recording"`
}

// PathSettings locates the user's own configuration files and the roots under
// which artifacts and scratch files are written.
type PathSettings struct {
	LogRoot     string `yaml:"log_root"`
	TmuxConf    string `yaml:"tmux_conf"`
	Zshrc       string `yaml:"zshrc"`
	ScratchRoot string `yaml:"scratch_root"`
}

// VideoSettings carries the defaults for screen capture.
type VideoSettings struct {
	Quality   string `yaml:"quality"`
	Framerate int    `yaml:"framerate"`
	Display   string `yaml:"display"`
}

// RecordingSettings tunes lifecycle timings. Values are in seconds.
type RecordingSettings struct {
	PollIntervalSeconds int `yaml:"poll_interval"`
	StopTimeoutSeconds  int `yaml:"stop_timeout"`
}
