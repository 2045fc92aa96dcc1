package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mkvslim/internal/apperr"
	"mkvslim/internal/container"
	"mkvslim/internal/fileutil"
	"mkvslim/internal/logging"
	"mkvslim/internal/mkvmerge"
	"mkvslim/internal/preflight"
	"mkvslim/internal/retention"
	"mkvslim/internal/scan"
	"mkvslim/internal/sonarr"
	"mkvslim/internal/streams"
	"mkvslim/internal/transfer"
)

// Prober acquires stream descriptors for a file.
type Prober interface {
	Probe(ctx context.Context, path string) ([]streams.Descriptor, streams.Source)
}

// Merger executes a synthesized mkvmerge command.
type Merger interface {
	Run(ctx context.Context, cmd mkvmerge.Command) error
}

// Transferer places a file unchanged at its destination.
type Transferer interface {
	ResolveMode(raw string) transfer.Mode
	Transfer(src, dst string, mode transfer.Mode) (transfer.Outcome, error)
}

// Options are the per-run processing settings.
type Options struct {
	AudioLanguages []string
	SubtitlePrefs  []retention.SubtitlePreference
	DryRun         bool
	Overwrite      bool
	// TransferMode is the raw hint; unrecognized values fall back to the
	// default chain with a warning.
	TransferMode   string
	MkvmergeBinary string
}

// DecisionHook observes a task and its decision before anything is written.
type DecisionHook func(Task, retention.Decision, bool)

// Processor runs single files through probe, decide, and merge or transfer.
type Processor struct {
	opts     Options
	mode     transfer.Mode
	logger   *slog.Logger
	prober   Prober
	merger   Merger
	transfer Transferer
	reporter *sonarr.Reporter
	hook     DecisionHook

	remove    func(string) error
	freeSpace func(name, dir string, need int64) preflight.Result
	dirAccess func(name, dir string) preflight.Result
}

// NewProcessor wires a processor. The transfer mode hint is resolved once so
// an unrecognized value warns a single time per run.
func NewProcessor(opts Options, prober Prober, merger Merger, transferer Transferer, reporter *sonarr.Reporter, logger *slog.Logger) *Processor {
	if strings.TrimSpace(opts.MkvmergeBinary) == "" {
		opts.MkvmergeBinary = mkvmerge.DefaultBinary
	}
	return &Processor{
		opts:      opts,
		mode:      transferer.ResolveMode(opts.TransferMode),
		logger:    logging.NewComponentLogger(logger, "pipeline"),
		prober:    prober,
		merger:    merger,
		transfer:  transferer,
		reporter:  reporter,
		remove:    os.Remove,
		freeSpace: preflight.CheckFreeSpace,
		dirAccess: preflight.CheckDirectoryAccess,
	}
}

// WithDecisionHook registers fn to observe each decision.
func (p *Processor) WithDecisionHook(fn DecisionHook) {
	if p != nil {
		p.hook = fn
	}
}

// Mode returns the resolved transfer mode.
func (p *Processor) Mode() transfer.Mode {
	return p.mode
}

// Process handles one file. outputName may be empty to keep the source name.
func (p *Processor) Process(ctx context.Context, source, targetDir, outputName string) (Result, error) {
	logger := logging.WithContext(ctx, p.logger).With(logging.String(logging.FieldFile, source))

	if err := container.Validate(source); err != nil {
		return Result{}, err
	}

	descriptors, probeSource := p.prober.Probe(ctx, source)
	task := Task{
		Source:      source,
		TargetDir:   targetDir,
		Streams:     descriptors,
		ProbeSource: probeSource,
		OutputName:  outputName,
	}
	decision := retention.Select(task.Streams, p.opts.AudioLanguages, p.opts.SubtitlePrefs)
	if decision.Empty() {
		return Result{}, apperr.Validation("decide", "no tracks would be retained")
	}
	necessary := retention.IsNecessary(task.Streams, decision)

	result := Result{
		Source:      source,
		Destination: task.OutputPath(),
		DryRun:      p.opts.DryRun,
		Streams:     task.Streams,
		ProbeSource: probeSource,
		Decision:    decision,
		BytesBefore: fileutil.FileSize(source),
		Action:      ActionTransfer,
	}
	if necessary {
		result.Action = ActionMerge
	}

	reason := "all tracks kept with correct default flags"
	if necessary {
		reason = fmt.Sprintf("%d of %d tracks retained or default flags change", len(decision.Retained), len(task.Streams))
	}
	logger.Info("retention decided",
		logging.Args(append(logging.DecisionAttrs("remux", string(result.Action), reason),
			logging.String("probe_source", string(probeSource)),
			logging.Int("retained", len(decision.Retained)),
			logging.Int("streams", len(task.Streams)),
			logging.Int("audio_streams", streams.CountByKind(task.Streams, streams.Audio)),
			logging.Int("subtitle_streams", streams.CountByKind(task.Streams, streams.Subtitle)),
		)...)...,
	)
	if p.hook != nil {
		p.hook(task, decision, necessary)
	}

	if err := p.checkDestination(source, result.Destination); err != nil {
		return Result{}, err
	}

	if necessary {
		cmd, err := mkvmerge.Build(task.Streams, decision, source, result.Destination)
		if err != nil {
			return Result{}, err
		}
		cmd.Binary = p.opts.MkvmergeBinary
		result.Command = &cmd
	}

	if p.opts.DryRun {
		if necessary {
			kept, _ := retention.Partition(task.Streams, decision)
			result.BytesAfter = streams.TotalBytes(kept)
		}
		logger.Info("dry run; nothing written", logging.String("destination", result.Destination))
		return result, nil
	}

	if err := scan.EnsureParent(result.Destination); err != nil {
		return Result{}, err
	}
	if check := p.dirAccess("target directory", filepath.Dir(result.Destination)); !check.Passed {
		return Result{}, apperr.Validation("prepare", check.Detail)
	}

	if necessary {
		if err := p.merge(ctx, logger, &result); err != nil {
			return Result{}, err
		}
		return result, nil
	}
	if err := p.place(logger, &result); err != nil {
		return Result{}, err
	}
	return result, nil
}

func (p *Processor) merge(ctx context.Context, logger *slog.Logger, result *Result) error {
	kept, _ := retention.Partition(result.Streams, result.Decision)
	if need := streams.TotalBytes(kept); need > 0 {
		if check := p.freeSpace("target directory", filepath.Dir(result.Destination), need); !check.Passed {
			return apperr.Wrap(apperr.ErrMergeExecution, "merge", "preflight", "not enough disk space: "+check.Detail, nil)
		}
	}

	if err := p.merger.Run(ctx, *result.Command); err != nil {
		return err
	}
	result.BytesAfter = fileutil.FileSize(result.Destination)
	logger.Info("remux complete",
		logging.String("destination", result.Destination),
		logging.Sizes(result.BytesBefore, result.BytesAfter),
	)

	if p.mode == transfer.Move {
		if err := p.remove(result.Source); err != nil {
			logging.WarnWithContext(logger, "could not delete source after remux", "source_delete_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "source and remuxed output both remain"),
				logging.String(logging.FieldErrorHint, "delete the source manually"),
			)
		}
	}
	if err := p.reporter.Rewritten(); err != nil {
		logger.Debug("status report failed", logging.Error(err))
	}
	return nil
}

func (p *Processor) place(logger *slog.Logger, result *Result) error {
	if p.opts.Overwrite {
		if err := p.remove(result.Destination); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return apperr.Wrap(apperr.ErrTransfer, "transfer", "replace destination", result.Destination, err)
		}
	}
	outcome, err := p.transfer.Transfer(result.Source, result.Destination, p.mode)
	if err != nil {
		return err
	}
	result.Transfer = outcome
	result.BytesAfter = outcome.Bytes
	if err := p.reporter.Transferred(); err != nil {
		logger.Debug("status report failed", logging.Error(err))
	}
	return nil
}

// checkDestination refuses to write over the source or, unless overwriting
// is enabled, over an existing file.
func (p *Processor) checkDestination(source, destination string) error {
	srcCanon, srcErr := scan.Canonical(source)
	dstCanon, dstErr := scan.Canonical(destination)
	if srcErr == nil && dstErr == nil && srcCanon == dstCanon {
		return apperr.Validation("prepare", fmt.Sprintf("destination %s is the source file", destination))
	}
	info, err := os.Lstat(destination)
	if err != nil {
		return nil
	}
	if info.IsDir() {
		return apperr.Validation("prepare", fmt.Sprintf("destination %s is a directory", destination))
	}
	if !p.opts.Overwrite {
		return apperr.Validation("prepare", fmt.Sprintf("destination %s already exists (set processing.overwrite_existing to replace it)", destination))
	}
	return nil
}
