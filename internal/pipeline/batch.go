package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"mkvslim/internal/apperr"
	"mkvslim/internal/logging"
	"mkvslim/internal/scan"
)

// FileProcessor is the per-file step a batch drives.
type FileProcessor interface {
	Process(ctx context.Context, source, targetDir, outputName string) (Result, error)
}

// Batch processes every matching file under a source directory.
type Batch struct {
	Source    string
	Target    string
	Recursive bool
	Pattern   string

	processor FileProcessor
	logger    *slog.Logger
	// OnFile, when set, is called after each file with its 1-based position.
	OnFile    func(pos, total int, path string, result Result, err error)
}

// NewBatch constructs a batch over source and target.
func NewBatch(source, target string, recursive bool, pattern string, processor FileProcessor, logger *slog.Logger) *Batch {
	return &Batch{
		Source:    source,
		Target:    target,
		Recursive: recursive,
		Pattern:   pattern,
		processor: processor,
		logger:    logging.NewComponentLogger(logger, "batch"),
	}
}

// Run validates the paths, locks the target, discovers files and processes
// them sequentially. Errors returned are run-level; per-file failures are in
// the BatchResult.
func (b *Batch) Run(ctx context.Context) (*BatchResult, error) {
	if err := scan.ValidateSourceTarget(b.Source, b.Target); err != nil {
		return nil, err
	}
	unlock, err := AcquireTargetLock(b.Target)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if _, ok := logging.CorrelationIDFromContext(ctx); !ok {
		ctx = logging.WithCorrelationID(ctx, uuid.NewString())
	}
	logger := logging.WithContext(ctx, b.logger)

	files, err := scan.Discover(b.Source, b.Recursive, b.Pattern)
	if err != nil {
		return nil, err
	}
	result := NewBatchResult(len(files))
	logger.Info("batch started",
		logging.String(logging.FieldEventType, "batch_start"),
		logging.String("source", b.Source),
		logging.String("target", b.Target),
		logging.Bool("recursive", b.Recursive),
		logging.String("pattern", b.Pattern),
		logging.Int("files", len(files)),
	)

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			for _, skipped := range files[i:] {
				result.RecordFailure(skipped, err)
			}
			logging.WarnWithContext(logger, "batch cancelled", "batch_cancelled",
				logging.Int("skipped", len(files)-i),
				logging.String(logging.FieldImpact, "remaining files were not processed"),
			)
			return result, err
		}

		res, err := b.processFile(ctx, file)
		if err != nil {
			result.RecordFailure(file, err)
			logging.FileFailed(logger, file, err, logging.Int("position", i+1))
		} else {
			result.RecordSuccess(res)
		}
		if b.OnFile != nil {
			b.OnFile(i+1, len(files), file, res, err)
		}
		if err != nil && apperr.IsFatalForRun(err) {
			for _, skipped := range files[i+1:] {
				result.RecordFailure(skipped, err)
			}
			logger.Error("batch stopped",
				logging.String(logging.FieldEventType, "batch_aborted"),
				logging.Error(err),
				logging.Int("skipped", len(files)-i-1),
			)
			return result, err
		}
	}

	logger.Info("batch finished",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int("successful", result.Successful),
		logging.Int("failed", result.Failed),
		logging.String("outcome", result.Outcome().String()),
	)
	return result, nil
}

func (b *Batch) processFile(ctx context.Context, file string) (Result, error) {
	target, err := scan.TargetPath(b.Source, file, b.Target, b.Recursive)
	if err != nil {
		return Result{}, err
	}
	return b.processor.Process(ctx, file, filepath.Dir(target), filepath.Base(target))
}
