package pipeline

import (
	"fmt"
	"sort"
	"sync"

	"mkvslim/internal/mkvmerge"
	"mkvslim/internal/retention"
	"mkvslim/internal/streams"
	"mkvslim/internal/transfer"
)

// Action is what the processor did, or would do in a dry run, with a file.
type Action string

const (
	ActionMerge    Action = "merge"
	ActionTransfer Action = "transfer"
)

// Result describes one processed file.
type Result struct {
	Source      string
	Destination string
	Action      Action
	DryRun      bool
	Streams     []streams.Descriptor
	ProbeSource streams.Source
	Decision    retention.Decision
	Command     *mkvmerge.Command
	Transfer    transfer.Outcome
	BytesBefore int64
	BytesAfter  int64
}

// Saved returns the bytes removed by a merge, never negative.
func (r Result) Saved() int64 {
	if r.Action != ActionMerge || r.BytesAfter <= 0 || r.BytesAfter >= r.BytesBefore {
		return 0
	}
	return r.BytesBefore - r.BytesAfter
}

// Outcome classifies a finished batch.
type Outcome int

const (
	OutcomeEmpty Outcome = iota
	OutcomeAllSucceeded
	OutcomePartial
	OutcomeAllFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAllSucceeded:
		return "all files processed successfully"
	case OutcomePartial:
		return "batch completed with some failures"
	case OutcomeAllFailed:
		return "batch processing failed completely"
	default:
		return "no matching files found"
	}
}

// BatchResult accumulates per-file results. It is safe for concurrent use
// although batches currently record from a single goroutine.
type BatchResult struct {
	mu          sync.Mutex
	Total       int
	Successful  int
	Failed      int
	Merged      int
	Transferred int
	BytesSaved  int64
	Errors      map[string]string
}

// NewBatchResult prepares a result for total discovered files.
func NewBatchResult(total int) *BatchResult {
	return &BatchResult{Total: total, Errors: make(map[string]string)}
}

// RecordSuccess counts a processed file.
func (b *BatchResult) RecordSuccess(r Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Successful++
	switch r.Action {
	case ActionMerge:
		b.Merged++
	case ActionTransfer:
		b.Transferred++
	}
	b.BytesSaved += r.Saved()
}

// RecordFailure stores err against path.
func (b *BatchResult) RecordFailure(path string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Failed++
	if err == nil {
		err = fmt.Errorf("unknown failure")
	}
	b.Errors[path] = err.Error()
}

// FailedFiles returns failed paths in sorted order.
func (b *BatchResult) FailedFiles() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	paths := make([]string, 0, len(b.Errors))
	for path := range b.Errors {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Outcome reports whether the batch fully succeeded, partly failed, fully
// failed, or found nothing to do.
func (b *BatchResult) Outcome() Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case b.Total == 0:
		return OutcomeEmpty
	case b.Failed == 0 && b.Successful == b.Total:
		return OutcomeAllSucceeded
	case b.Successful > 0:
		return OutcomePartial
	default:
		return OutcomeAllFailed
	}
}
