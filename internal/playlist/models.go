package playlist

// Resolution is a video resolution parsed from a RESOLUTION attribute ("1280x720").
type Resolution struct {
	Width  int
	Height int
}

// VariantStream is one quality rendition declared by a master playlist.
// Bandwidth and Codecs are mandatory; the remaining attributes are optional
// and left at their zero value (Resolution nil) when absent.
type VariantStream struct {
	Bandwidth  int64
	Codecs     string
	Resolution *Resolution
	FrameRate  float64
	VideoRange string
	URI        string
}

// MasterPlaylist is the top-level manifest listing alternate-quality variants.
// Variants preserve declaration order.
type MasterPlaylist struct {
	Version  int
	Variants []VariantStream
}

// Segment is one downloadable media chunk of a media playlist.
type Segment struct {
	Duration float64
	URI      string
}

// MediaPlaylist is a per-variant manifest. Segments preserve declaration
// order, which is playback order.
type MediaPlaylist struct {
	Version        int
	TargetDuration int
	Segments       []Segment
}
