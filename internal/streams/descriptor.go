package streams

import (
	"fmt"
	"strings"
)

// Kind classifies a container track.
type Kind int

const (
	Unknown Kind = iota
	Video
	Audio
	Subtitle
	Attachment
)

func (k Kind) String() string {
	switch k {
	case Video:
		return "Video"
	case Audio:
		return "Audio"
	case Subtitle:
		return "Subtitle"
	case Attachment:
		return "Attachment"
	default:
		return "Unknown"
	}
}

// Descriptor is the normalized metadata for one track. Zero values mean the
// probe did not report the field.
type Descriptor struct {
	Index    int
	Kind     Kind
	Codec    string
	Language string
	Title    string
	Default  bool
	Forced   bool

	SizeBytes       int64
	DurationSeconds float64

	// Video
	Width     int
	Height    int
	FrameRate float64
	HDR       bool

	// Audio
	Channels   int
	SampleRate int
	BitRate    int64

	// Subtitle
	SubtitleFormat string
}

// HasLanguage reports whether the track carries a language tag.
func (d Descriptor) HasLanguage() bool {
	return strings.TrimSpace(d.Language) != ""
}

// Resolution renders WIDTHxHEIGHT, or "" when unknown.
func (d Descriptor) Resolution() string {
	if d.Width <= 0 || d.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// UnknownStream is the synthetic single track used when no probe succeeded.
func UnknownStream() Descriptor {
	return Descriptor{Index: 0, Kind: Unknown, Codec: "unknown"}
}

// CountByKind returns the number of descriptors of kind.
func CountByKind(list []Descriptor, kind Kind) int {
	n := 0
	for _, d := range list {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// TotalBytes sums the known sizes.
func TotalBytes(list []Descriptor) int64 {
	var total int64
	for _, d := range list {
		total += d.SizeBytes
	}
	return total
}
