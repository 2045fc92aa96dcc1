package streams

import (
	"strconv"
	"strings"

	"mkvslim/internal/language"
	"mkvslim/internal/media/mkvinfo"
)

// FromMkvmerge converts an mkvmerge identification report into descriptors.
// Tracks keep their mkvmerge IDs; attachments follow the tracks.
func FromMkvmerge(result mkvinfo.Result) []Descriptor {
	out := make([]Descriptor, 0, len(result.Tracks)+len(result.Attachments))
	next := 0
	for _, track := range result.Tracks {
		d := fromMkvmergeTrack(track, result.Container.Properties.Duration)
		out = append(out, d)
		if d.Index >= next {
			next = d.Index + 1
		}
	}
	for _, att := range result.Attachments {
		out = append(out, Descriptor{
			Index:     next,
			Kind:      Attachment,
			Codec:     firstNonEmpty(att.ContentType, "unknown"),
			Title:     att.FileName,
			SizeBytes: att.Size,
		})
		next++
	}
	return out
}

func fromMkvmergeTrack(track mkvinfo.Track, containerNanos int64) Descriptor {
	props := track.Properties
	lang := language.Normalize(props.Language)
	if lang == "" {
		lang = language.Normalize(props.LanguageIETF)
	}
	d := Descriptor{
		Index:    track.ID,
		Kind:     kindFromCodecType(track.Type),
		Codec:    firstNonEmpty(track.Codec, props.CodecID, "unknown"),
		Language: lang,
		Title:    strings.TrimSpace(props.TrackName),
		Default:  props.DefaultTrack,
		Forced:   props.ForcedTrack,
	}

	if seconds, ok := ParseClockDuration(props.Duration); ok {
		d.DurationSeconds = seconds
	} else if containerNanos > 0 {
		d.DurationSeconds = float64(containerNanos) / 1e9
	}
	bitRate := parseInt(props.BPS)
	if bytes := parseInt(props.NumberOfBytes); bytes > 0 {
		d.SizeBytes = bytes
	} else if bitRate > 0 && d.DurationSeconds > 0 {
		d.SizeBytes = int64(float64(bitRate) * d.DurationSeconds / 8)
	}

	switch d.Kind {
	case Video:
		if w, h, ok := strings.Cut(props.PixelDimensions, "x"); ok {
			d.Width, _ = strconv.Atoi(w)
			d.Height, _ = strconv.Atoi(h)
		}
		if props.DefaultDuration > 0 {
			d.FrameRate = 1e9 / float64(props.DefaultDuration)
		}
	case Audio:
		d.Channels = props.AudioChannels
		d.SampleRate = props.SamplingFreq
		d.BitRate = bitRate
	case Subtitle:
		d.SubtitleFormat = d.Codec
	}
	return d
}
