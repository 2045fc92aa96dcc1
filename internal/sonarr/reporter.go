package sonarr

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Status lines Sonarr reads from script output.
const (
	StatusMoveComplete    = "[MoveStatus] MoveComplete"
	StatusRenameRequested = "[MoveStatus] RenameRequested"
)

// Reporter emits move status lines. A Reporter built from an absent Context
// stays silent so standalone runs print nothing extra.
type Reporter struct {
	enabled bool
	mu      sync.Mutex
	out     io.Writer
}

// NewReporter returns a Reporter writing to stdout when ctx is present.
func NewReporter(ctx Context) *Reporter {
	return &Reporter{enabled: ctx.IsPresent(), out: os.Stdout}
}

// WithWriter replaces the output writer (primarily for tests).
func (r *Reporter) WithWriter(w io.Writer) *Reporter {
	if r == nil || w == nil {
		return r
	}
	r.out = w
	return r
}

// Enabled reports whether status lines will be written.
func (r *Reporter) Enabled() bool {
	return r != nil && r.enabled
}

// Transferred reports a file placed unchanged at its destination.
func (r *Reporter) Transferred() error {
	return r.emit(StatusMoveComplete)
}

// Rewritten reports a file produced by a merge. Sonarr must rescan it.
func (r *Reporter) Rewritten() error {
	return r.emit(StatusRenameRequested)
}

func (r *Reporter) emit(line string) error {
	if !r.Enabled() {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := fmt.Fprintln(r.out, line)
	return err
}
