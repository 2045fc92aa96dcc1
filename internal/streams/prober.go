package streams

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"mkvslim/internal/logging"
	"mkvslim/internal/media/ffprobe"
	"mkvslim/internal/media/mkvinfo"
)

// Source names the probe that produced a descriptor list.
type Source string

const (
	SourceFFprobe  Source = "ffprobe"
	SourceMkvmerge Source = "mkvmerge"
	SourceFallback Source = "fallback"
)

type inspectFunc func(ctx context.Context, binary, path string) (ffprobe.Result, error)

type identifyFunc func(ctx context.Context, binary, path string) (mkvinfo.Result, error)

// Prober acquires descriptors, degrading from ffprobe to mkvmerge to a single
// unknown stream. An empty binary disables that source.
type Prober struct {
	FFprobeBinary  string
	MkvmergeBinary string

	logger   *slog.Logger
	inspect  inspectFunc
	identify identifyFunc
}

// NewProber builds a prober over the given tool binaries.
func NewProber(ffprobeBinary, mkvmergeBinary string, logger *slog.Logger) *Prober {
	return &Prober{
		FFprobeBinary:  strings.TrimSpace(ffprobeBinary),
		MkvmergeBinary: strings.TrimSpace(mkvmergeBinary),
		logger:         logging.NewComponentLogger(logger, "probe"),
		inspect:        ffprobe.Inspect,
		identify:       mkvinfo.Identify,
	}
}

var errNoStreams = errors.New("probe reported no streams")

// Probe never fails: the worst case is one synthetic unknown stream.
func (p *Prober) Probe(ctx context.Context, path string) ([]Descriptor, Source) {
	logger := p.logger.With(logging.String(logging.FieldFile, path))

	if p.FFprobeBinary != "" {
		result, err := p.inspect(ctx, p.FFprobeBinary, path)
		if err == nil && len(result.Streams) == 0 {
			err = errNoStreams
		}
		if err == nil {
			return FromFFprobe(result), SourceFFprobe
		}
		logging.WarnWithContext(logger, "ffprobe failed; trying mkvmerge identification", "probe_fallback",
			logging.Error(err),
			logging.String(logging.FieldImpact, "stream details may be incomplete"),
			logging.String(logging.FieldErrorHint, "install ffprobe or check the file is readable"),
		)
	}

	if p.MkvmergeBinary != "" {
		result, err := p.identify(ctx, p.MkvmergeBinary, path)
		if err == nil && len(result.Tracks) == 0 {
			err = errNoStreams
		}
		if err == nil {
			return FromMkvmerge(result), SourceMkvmerge
		}
		logging.WarnWithContext(logger, "mkvmerge identification failed", "probe_fallback",
			logging.Error(err),
			logging.String(logging.FieldImpact, "stream details unavailable"),
		)
	}

	logging.WarnWithContext(logger, "no stream information available; using fallback", "probe_unavailable",
		logging.String(logging.FieldImpact, "file is treated as a single unknown stream and passed through"),
		logging.String(logging.FieldErrorHint, "install ffprobe for full stream analysis"),
	)
	return []Descriptor{UnknownStream()}, SourceFallback
}
