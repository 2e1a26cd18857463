package vo

import "fmt"

// SegmentDurationSeconds is the fixed HLS segment length shared by every
// rendition of a job.
const SegmentDurationSeconds = 10

// Rendition is one target resolution/bitrate of the adaptive ladder.
type Rendition struct {
	Label       string
	MaxWidth    int
	MaxHeight   int
	BitrateKbps int
}

// Bitrate returns the ffmpeg-style bitrate argument, e.g. "3000k".
func (r Rendition) Bitrate() string {
	return fmt.Sprintf("%dk", r.BitrateKbps)
}

// BufferSize returns the encoder buffer size, fixed at twice the bitrate.
func (r Rendition) BufferSize() string {
	return fmt.Sprintf("%dk", r.BitrateKbps*2)
}

// ManifestName is the per-rendition VOD playlist file name.
func (r Rendition) ManifestName() string {
	return r.Label + ".m3u8"
}

// SegmentPattern is the ffmpeg segment filename pattern for this rendition.
func (r Rendition) SegmentPattern() string {
	return r.Label + "_%03d.ts"
}

// defaultLadder is the fixed rendition catalog; it is not user
// configurable.
var defaultLadder = []Rendition{
	{Label: "240p", MaxWidth: 426, MaxHeight: 240, BitrateKbps: 800},
	{Label: "480p", MaxWidth: 854, MaxHeight: 480, BitrateKbps: 1500},
	{Label: "720p", MaxWidth: 1280, MaxHeight: 720, BitrateKbps: 3000},
	{Label: "1080p", MaxWidth: 1920, MaxHeight: 1080, BitrateKbps: 5000},
}

// DefaultLadder returns a copy of the rendition catalog.
func DefaultLadder() []Rendition {
	ladder := make([]Rendition, len(defaultLadder))
	copy(ladder, defaultLadder)
	return ladder
}

// FindRendition looks a label up in the catalog.
func FindRendition(label string) (Rendition, bool) {
	for _, r := range defaultLadder {
		if r.Label == label {
			return r, true
		}
	}
	return Rendition{}, false
}
