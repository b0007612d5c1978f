package domain

// OutputKind identifies one artifact produced by a recorder.
type OutputKind string

const (
	OutputAsciinema  OutputKind = "asciinema"
	OutputZshHistory OutputKind = "zsh_history"
	OutputTmuxLogs   OutputKind = "tmux_logs"
	OutputVideo      OutputKind = "video"
)

// Metadata keys attached to recorder results.
const (
	MetaProjectName = "project_name"
	MetaDuration    = "duration"
	MetaElapsed     = "time"
)

// Result is what stopping a recorder yields: artifact paths keyed by kind plus
// auxiliary metadata. An empty Result means the recording produced nothing
// usable, which is distinct from an error.
type Result struct {
	Outputs  map[OutputKind]string
	Metadata map[string]string
}

// Empty reports whether the result carries no outputs and no metadata.
func (r Result) Empty() bool {
	return len(r.Outputs) == 0 && len(r.Metadata) == 0
}
