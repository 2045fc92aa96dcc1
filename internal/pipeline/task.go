package pipeline

import (
	"path/filepath"

	"mkvslim/internal/streams"
)

// Task is one probed file awaiting a decision.
type Task struct {
	Source      string
	TargetDir   string
	Streams     []streams.Descriptor
	ProbeSource streams.Source
	// OutputName overrides the source file name at the destination.
	OutputName string
}

// OutputPath returns where the processed file is written.
func (t Task) OutputPath() string {
	name := t.OutputName
	if name == "" {
		name = filepath.Base(t.Source)
	}
	return filepath.Join(t.TargetDir, name)
}
