package mkvinfo

import (
	"context"
	"testing"
)

const identifyJSON = `{
  "container": {"recognized": true, "supported": true, "type": "Matroska",
                "properties": {"duration": 2530125000000}},
  "tracks": [
    {"id": 0, "type": "video", "codec": "HEVC/H.265/MPEG-H",
     "properties": {"language": "und", "pixel_dimensions": "1920x1080", "default_track": true,
                    "default_duration": 41708333}},
    {"id": 1, "type": "audio", "codec": "E-AC-3",
     "properties": {"language": "eng", "track_name": "Surround 5.1", "default_track": false,
                    "audio_channels": 6, "audio_sampling_frequency": 48000,
                    "tag_number_of_bytes": "202408000"}},
    {"id": 2, "type": "subtitles", "codec": "SubRip/SRT",
     "properties": {"language": "eng", "forced_track": true}}
  ],
  "attachments": [
    {"id": 1, "file_name": "font.ttf", "content_type": "font/ttf", "size": 1024}
  ]
}`

func TestParse(t *testing.T) {
	result, err := Parse([]byte(identifyJSON))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Tracks) != 3 || len(result.Attachments) != 1 {
		t.Fatalf("unexpected counts: %d tracks, %d attachments", len(result.Tracks), len(result.Attachments))
	}
	if result.Container.Properties.Duration != 2530125000000 {
		t.Fatalf("unexpected duration %d", result.Container.Properties.Duration)
	}
	audio := result.Tracks[1]
	if audio.Properties.AudioChannels != 6 || audio.Properties.NumberOfBytes != "202408000" {
		t.Fatalf("unexpected audio properties: %+v", audio.Properties)
	}
	if !result.Tracks[2].Properties.ForcedTrack {
		t.Fatal("expected forced subtitle")
	}
}

func TestParseRejectsUnrecognized(t *testing.T) {
	if _, err := Parse([]byte(`{"container": {"recognized": false}}`)); err == nil {
		t.Fatal("expected error for unrecognized container")
	}
	if _, err := Parse([]byte(`{`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestIdentifyRejectsEmptyPath(t *testing.T) {
	if _, err := Identify(context.Background(), "mkvmerge", ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
