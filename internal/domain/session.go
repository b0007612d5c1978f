package domain

// SessionPaths is the per-session path bundle. All directories referenced here
// exist by the time the bundle is handed to a recorder.
type SessionPaths struct {
	ProjectName string
	DateStr     string
	TimeStr     string

	BaseDir        string
	AsciinemaFile  string
	ZshHistoryFile string
	TmuxLogDir     string
	VideoDir       string
	VideoFile      string
}

// SessionInfo is a read-only snapshot of a recorder's identity and
// configuration. Reporters consume it; it never drives control flow.
type SessionInfo struct {
	ProjectName string
	Date        string
	Time        string

	TmuxSession    string
	AsciinemaFile  string
	ZshHistoryFile string
	TmuxLogDir     string

	VideoQuality string
	Framerate    int
	VideoFile    string
	VideoDir     string
}

// CompositeSessionInfo aggregates member snapshots keyed by recorder name,
// preserving registration order.
type CompositeSessionInfo struct {
	Recorders []string
	ByName    map[string]SessionInfo
}
