package assets

import (
	_ "embed"
)

// MinimalTmuxConf is the embedded fallback used when the user has no
// ~/.tmux.conf of their own.
//
//go:embed defaults/tmux.conf
var MinimalTmuxConf string
