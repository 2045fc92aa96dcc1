package streams

import (
	"strconv"
	"strings"

	"mkvslim/internal/language"
	"mkvslim/internal/media/ffprobe"
)

// FromFFprobe converts ffprobe streams into descriptors, indexed in reported order.
func FromFFprobe(result ffprobe.Result) []Descriptor {
	out := make([]Descriptor, 0, len(result.Streams))
	for i, stream := range result.Streams {
		out = append(out, fromFFprobeStream(i, stream))
	}
	return out
}

func fromFFprobeStream(index int, stream ffprobe.Stream) Descriptor {
	d := Descriptor{
		Index:    index,
		Kind:     kindFromCodecType(stream.CodecType),
		Codec:    firstNonEmpty(stream.CodecName, stream.CodecLong, "unknown"),
		Language: language.ExtractFromTags(stream.Tags),
		Title:    stream.Tag("title"),
		Default:  stream.Flag("default"),
		Forced:   stream.Flag("forced"),
	}

	bitRate := parseInt(stream.BitRate)
	d.DurationSeconds = streamDuration(stream)
	if bytes := parseInt(stream.Tag("NUMBER_OF_BYTES")); bytes > 0 {
		d.SizeBytes = bytes
	} else if bitRate > 0 && d.DurationSeconds > 0 {
		d.SizeBytes = int64(float64(bitRate) * d.DurationSeconds / 8)
	}

	switch d.Kind {
	case Video:
		d.Width = stream.Width
		d.Height = stream.Height
		d.FrameRate = ParseFrameRate(stream.RFrameRate)
		d.HDR = IsHDRColorSpace(stream.ColorSpace)
	case Audio:
		d.Channels = stream.Channels
		d.SampleRate = int(parseInt(stream.SampleRate))
		d.BitRate = bitRate
	case Subtitle:
		d.SubtitleFormat = d.Codec
	}
	return d
}

// streamDuration prefers the DURATION metadata tag over the computed field.
func streamDuration(stream ffprobe.Stream) float64 {
	if tag := stream.Tag("DURATION"); tag != "" {
		if seconds, ok := ParseClockDuration(tag); ok {
			return seconds
		}
	}
	if value, err := strconv.ParseFloat(strings.TrimSpace(stream.Duration), 64); err == nil && value > 0 {
		return value
	}
	return 0
}

func kindFromCodecType(codecType string) Kind {
	switch strings.ToLower(strings.TrimSpace(codecType)) {
	case "video":
		return Video
	case "audio":
		return Audio
	case "subtitle", "subtitles":
		return Subtitle
	case "attachment":
		return Attachment
	default:
		return Unknown
	}
}

// ParseClockDuration parses "HH:MM:SS.fraction" into seconds.
func ParseClockDuration(value string) (float64, bool) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || seconds < 0 || seconds >= 60 {
		return 0, false
	}
	return float64(hours)*3600 + float64(minutes)*60 + seconds, true
}

// ParseFrameRate accepts "num/den" or a bare decimal. Zero means unknown.
func ParseFrameRate(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if num, den, ok := strings.Cut(value, "/"); ok {
		n, err1 := strconv.ParseFloat(strings.TrimSpace(num), 64)
		m, err2 := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err1 != nil || err2 != nil || m == 0 {
			return 0
		}
		return n / m
	}
	rate, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return rate
}

// IsHDRColorSpace reports whether a colour space name signals BT.2020.
func IsHDRColorSpace(colorSpace string) bool {
	return strings.Contains(strings.ToLower(colorSpace), "bt2020")
}

func parseInt(value string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
