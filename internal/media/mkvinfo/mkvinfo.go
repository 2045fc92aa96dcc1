package mkvinfo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result is the subset of `mkvmerge -J` identification output used for track metadata.
type Result struct {
	Container   Container    `json:"container"`
	Tracks      []Track      `json:"tracks"`
	Attachments []Attachment `json:"attachments"`
}

// Container carries container-wide properties.
type Container struct {
	Recognized bool                `json:"recognized"`
	Supported  bool                `json:"supported"`
	Type       string              `json:"type"`
	Properties ContainerProperties `json:"properties"`
}

// ContainerProperties reports the segment duration in nanoseconds.
type ContainerProperties struct {
	Duration int64 `json:"duration"`
}

// Track is one identified track. Type is "video", "audio" or "subtitles".
type Track struct {
	ID         int             `json:"id"`
	Type       string          `json:"type"`
	Codec      string          `json:"codec"`
	Properties TrackProperties `json:"properties"`
}

// TrackProperties are the per-track properties reported by mkvmerge.
type TrackProperties struct {
	Language        string `json:"language"`
	LanguageIETF    string `json:"language_ietf"`
	TrackName       string `json:"track_name"`
	DefaultTrack    bool   `json:"default_track"`
	ForcedTrack     bool   `json:"forced_track"`
	CodecID         string `json:"codec_id"`
	PixelDimensions string `json:"pixel_dimensions"`
	DefaultDuration int64  `json:"default_duration"`
	AudioChannels   int    `json:"audio_channels"`
	SamplingFreq    int    `json:"audio_sampling_frequency"`
	NumberOfBytes   string `json:"tag_number_of_bytes"`
	Duration        string `json:"tag_duration"`
	BPS             string `json:"tag_bps"`
}

// Attachment is an embedded file such as a font.
type Attachment struct {
	ID          int    `json:"id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Description string `json:"description"`
	Size        int64  `json:"size"`
}

// Identify runs `mkvmerge -J` against path and decodes the report.
func Identify(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "mkvmerge"
	}
	if strings.TrimSpace(path) == "" {
		return Result{}, errors.New("mkvmerge identify: empty path")
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, "-J", path)
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return Result{}, fmt.Errorf("mkvmerge identify: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return Parse(output)
}

// Parse decodes an identification document. Unrecognized containers are an error.
func Parse(data []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("mkvmerge identify parse: %w", err)
	}
	if !result.Container.Recognized {
		return Result{}, errors.New("mkvmerge identify: container not recognized")
	}
	return result, nil
}
