package domain

import "strconv"

// DefaultFramerate is the capture framerate used when none is configured.
const DefaultFramerate = 15

// EncoderSettings is the libx264 parameter pair selected by a quality preset.
type EncoderSettings struct {
	Preset string
	CRF    int
}

var qualityPresets = map[string]EncoderSettings{
	"low":    {Preset: "ultrafast", CRF: 28},
	"medium": {Preset: "medium", CRF: 23},
	"high":   {Preset: "slow", CRF: 18},
}

// ResolveQuality maps a quality name to encoder settings. Unrecognized names
// fall back to "medium", so the mapping is total.
func ResolveQuality(name string) EncoderSettings {
	if settings, ok := qualityPresets[name]; ok {
		return settings
	}
	return qualityPresets["medium"]
}

// Args renders the settings as ffmpeg video-codec arguments.
func (e EncoderSettings) Args() []string {
	return []string{"-c:v", "libx264", "-preset", e.Preset, "-crf", strconv.Itoa(e.CRF)}
}
