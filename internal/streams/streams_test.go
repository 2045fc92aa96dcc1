package streams

import (
	"context"
	"errors"
	"math"
	"testing"

	"mkvslim/internal/media/ffprobe"
	"mkvslim/internal/media/mkvinfo"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestFromFFprobe(t *testing.T) {
	result := ffprobe.Result{Streams: []ffprobe.Stream{
		{
			CodecType: "video", CodecName: "hevc", Width: 3840, Height: 2160,
			RFrameRate: "24000/1001", ColorSpace: "BT2020nc",
			Disposition: map[string]int{"default": 1},
			Tags:        map[string]string{"DURATION": "01:00:00.500000000", "NUMBER_OF_BYTES": "1000"},
		},
		{
			CodecType: "audio", CodecName: "ac3", Channels: 6, SampleRate: "48000",
			BitRate: "640000", Duration: "10.0",
			Tags: map[string]string{"language": "ENG", "title": "Main"},
		},
		{
			CodecType: "audio", CodecLong: "Opus", BitRate: "128000", Duration: "99",
			Tags: map[string]string{"DURATION": "00:00:20.000"},
		},
		{
			CodecType: "subtitle", CodecName: "subrip",
			Disposition: map[string]int{"default": 0, "forced": 1},
			Tags:        map[string]string{"language": "spa"},
		},
		{CodecType: "attachment", CodecName: "ttf"},
		{CodecType: "data"},
	}}

	got := FromFFprobe(result)
	if len(got) != 6 {
		t.Fatalf("expected 6 descriptors, got %d", len(got))
	}
	for i, d := range got {
		if d.Index != i {
			t.Fatalf("descriptor %d has index %d", i, d.Index)
		}
	}

	video := got[0]
	if video.Kind != Video || !video.Default || !video.HDR || video.Resolution() != "3840x2160" {
		t.Fatalf("unexpected video descriptor: %+v", video)
	}
	if !approx(video.FrameRate, 23.976023976) {
		t.Fatalf("unexpected frame rate %v", video.FrameRate)
	}
	if !approx(video.DurationSeconds, 3600.5) || video.SizeBytes != 1000 {
		t.Fatalf("expected tag duration and byte count, got %v / %d", video.DurationSeconds, video.SizeBytes)
	}

	audio := got[1]
	if audio.Kind != Audio || audio.Language != "eng" || audio.Title != "Main" {
		t.Fatalf("unexpected audio descriptor: %+v", audio)
	}
	if audio.SizeBytes != 800000 || audio.Channels != 6 || audio.SampleRate != 48000 {
		t.Fatalf("expected derived size 800000, got %+v", audio)
	}

	opus := got[2]
	if opus.Codec != "Opus" || opus.HasLanguage() {
		t.Fatalf("unexpected codec fallback: %+v", opus)
	}
	if !approx(opus.DurationSeconds, 20) || opus.SizeBytes != 320000 {
		t.Fatalf("duration tag should win over field: %+v", opus)
	}

	sub := got[3]
	if sub.Kind != Subtitle || sub.Default || !sub.Forced || sub.SubtitleFormat != "subrip" {
		t.Fatalf("unexpected subtitle descriptor: %+v", sub)
	}
	if got[4].Kind != Attachment || got[5].Kind != Unknown || got[5].Codec != "unknown" {
		t.Fatalf("unexpected trailing kinds: %v %v", got[4].Kind, got[5].Kind)
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"25/1", 25},
		{"30000/1001", 29.97002997},
		{"23.976", 23.976},
		{"1/0", 0},
		{"abc", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ParseFrameRate(tt.in); !approx(got, tt.want) {
			t.Errorf("ParseFrameRate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseClockDuration(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"00:42:10.125000000", 2530.125, true},
		{"1:00:00", 3600, true},
		{"00:61:00", 0, false},
		{"42.5", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseClockDuration(tt.in)
		if ok != tt.ok || !approx(got, tt.want) {
			t.Errorf("ParseClockDuration(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFromMkvmerge(t *testing.T) {
	result := mkvinfo.Result{
		Container: mkvinfo.Container{Recognized: true, Properties: mkvinfo.ContainerProperties{Duration: 60_000_000_000}},
		Tracks: []mkvinfo.Track{
			{ID: 0, Type: "video", Codec: "AVC", Properties: mkvinfo.TrackProperties{PixelDimensions: "1920x1080", DefaultDuration: 40_000_000, DefaultTrack: true}},
			{ID: 1, Type: "audio", Codec: "AAC", Properties: mkvinfo.TrackProperties{Language: "jpn", AudioChannels: 2, SamplingFreq: 48000, BPS: "128000"}},
			{ID: 2, Type: "subtitles", Codec: "SubRip/SRT", Properties: mkvinfo.TrackProperties{LanguageIETF: "en", TrackName: "Full", ForcedTrack: true}},
		},
		Attachments: []mkvinfo.Attachment{{ID: 1, FileName: "a.ttf", ContentType: "font/ttf", Size: 2048}},
	}

	got := FromMkvmerge(result)
	if len(got) != 4 {
		t.Fatalf("expected 4 descriptors, got %d", len(got))
	}
	if got[0].Width != 1920 || got[0].Height != 1080 || !approx(got[0].FrameRate, 25) {
		t.Fatalf("unexpected video: %+v", got[0])
	}
	if got[1].Language != "jpn" || got[1].SizeBytes != 960000 {
		t.Fatalf("unexpected audio: %+v", got[1])
	}
	if got[2].Kind != Subtitle || got[2].Language != "en" || got[2].Title != "Full" || !got[2].Forced {
		t.Fatalf("unexpected subtitle: %+v", got[2])
	}
	if got[3].Kind != Attachment || got[3].Index != 3 || got[3].SizeBytes != 2048 {
		t.Fatalf("unexpected attachment: %+v", got[3])
	}
}

func TestProberFallbackChain(t *testing.T) {
	ffprobeOK := func(context.Context, string, string) (ffprobe.Result, error) {
		return ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "video"}}}, nil
	}
	ffprobeFail := func(context.Context, string, string) (ffprobe.Result, error) {
		return ffprobe.Result{}, errors.New("exit status 1")
	}
	identifyOK := func(context.Context, string, string) (mkvinfo.Result, error) {
		return mkvinfo.Result{Tracks: []mkvinfo.Track{{ID: 0, Type: "video"}, {ID: 1, Type: "audio"}}}, nil
	}
	identifyFail := func(context.Context, string, string) (mkvinfo.Result, error) {
		return mkvinfo.Result{}, errors.New("not found")
	}

	tests := []struct {
		name      string
		ffprobe   string
		inspect   inspectFunc
		identify  identifyFunc
		want      Source
		wantCount int
	}{
		{"ffprobe succeeds", "ffprobe", ffprobeOK, identifyFail, SourceFFprobe, 1},
		{"ffprobe fails", "ffprobe", ffprobeFail, identifyOK, SourceMkvmerge, 2},
		{"ffprobe missing", "", ffprobeOK, identifyOK, SourceMkvmerge, 2},
		{"nothing works", "ffprobe", ffprobeFail, identifyFail, SourceFallback, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProber(tt.ffprobe, "mkvmerge", nil)
			p.inspect = tt.inspect
			p.identify = tt.identify
			got, source := p.Probe(context.Background(), "/media/movie.mkv")
			if source != tt.want || len(got) != tt.wantCount {
				t.Fatalf("got %s with %d streams, want %s with %d", source, len(got), tt.want, tt.wantCount)
			}
			if source == SourceFallback && got[0].Kind != Unknown {
				t.Fatalf("fallback should be unknown stream, got %v", got[0].Kind)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if Video.String() != "Video" || Kind(42).String() != "Unknown" {
		t.Fatal("unexpected kind names")
	}
}

func TestCountByKindAndTotalBytes(t *testing.T) {
	list := []Descriptor{
		{Index: 0, Kind: Video, SizeBytes: 900},
		{Index: 1, Kind: Audio, SizeBytes: 60},
		{Index: 2, Kind: Audio, SizeBytes: 40},
		{Index: 3, Kind: Subtitle},
	}
	if n := CountByKind(list, Audio); n != 2 {
		t.Fatalf("CountByKind(Audio) = %d, want 2", n)
	}
	if n := CountByKind(list, Attachment); n != 0 {
		t.Fatalf("CountByKind(Attachment) = %d, want 0", n)
	}
	if total := TotalBytes(list); total != 1000 {
		t.Fatalf("TotalBytes = %d, want 1000", total)
	}
}
