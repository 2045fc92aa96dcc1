package mkvmerge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"mkvslim/internal/apperr"
	"mkvslim/internal/logging"
)

// exitWarnings is mkvmerge's "completed with warnings" status.
const exitWarnings = 1

// ExitError reports a non-zero mkvmerge exit status with its captured output.
type ExitError struct {
	Code   int
	Output string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

type commandRunner func(ctx context.Context, name string, args ...string) (string, error)

// Runner executes synthesized commands, writing to a temporary file beside the
// destination and renaming it into place on success.
type Runner struct {
	binary string
	logger *slog.Logger
	run    commandRunner
}

// NewRunner constructs a runner for the given mkvmerge binary.
func NewRunner(binary string, logger *slog.Logger) *Runner {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary
	}
	return &Runner{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "mkvmerge"),
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (r *Runner) WithCommandRunner(fn commandRunner) {
	if r != nil && fn != nil {
		r.run = fn
	}
}

// TempPath is the hidden staging file used while mkvmerge writes output.
func TempPath(output string) string {
	return filepath.Join(filepath.Dir(output), ".mkvslim-"+filepath.Base(output)+".tmp")
}

// Run executes cmd and blocks until mkvmerge exits. There is no timeout.
func (r *Runner) Run(ctx context.Context, cmd Command) error {
	if r == nil {
		return errors.New("mkvmerge runner not initialized")
	}
	if strings.TrimSpace(cmd.Output) == "" {
		return apperr.Validation("merge", "command has no output path")
	}

	tmpPath := TempPath(cmd.Output)
	staged := cmd.WithOutput(tmpPath)
	logger := r.logger.With(logging.String(logging.FieldFile, cmd.Source))
	logger.Debug("executing mkvmerge",
		logging.String("output", cmd.Output),
		logging.String("command", staged.String()),
	)

	// A started merge always runs to completion.
	output, err := r.run(context.WithoutCancel(ctx), r.binary, staged.Args...)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Code == exitWarnings {
			logging.WarnWithContext(logger, "mkvmerge completed with warnings", "mkvmerge_warnings",
				logging.String("output_tail", tail(exitErr.Output, 400)),
				logging.String(logging.FieldImpact, "output was written; review the warnings"),
			)
		} else {
			_ = os.Remove(tmpPath)
			marker := apperr.ErrMergeExecution
			if binaryMissing(err) {
				marker = apperr.ErrDependency
			}
			return apperr.Wrap(marker, "merge", "run mkvmerge", describeFailure(err, output), err)
		}
	}

	if _, err := os.Stat(tmpPath); err != nil {
		return apperr.Wrap(apperr.ErrMergeExecution, "merge", "verify output", "mkvmerge did not produce an output file", err)
	}
	if err := os.Rename(tmpPath, cmd.Output); err != nil {
		_ = os.Remove(tmpPath)
		return apperr.Wrap(apperr.ErrMergeExecution, "merge", "finalize output", "could not move merged file into place", err)
	}
	return nil
}

func describeFailure(err error, output string) string {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return ClassifyFailure(exitErr.Code, exitErr.Output)
	}
	if binaryMissing(err) {
		return "mkvmerge executable not found"
	}
	if strings.TrimSpace(output) != "" {
		return ClassifyFailure(-1, output)
	}
	return "mkvmerge could not be started"
}

func binaryMissing(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

// ClassifyFailure turns mkvmerge output into an actionable message.
func ClassifyFailure(exitCode int, output string) string {
	lower := strings.ToLower(output)
	switch {
	case strings.Contains(lower, "no space left"):
		return "not enough disk space in the target directory"
	case strings.Contains(lower, "permission denied"):
		return "permission denied writing the output or reading the input"
	case strings.Contains(lower, "no such file"), strings.Contains(lower, "does not exist"), strings.Contains(lower, "could not be opened"):
		return "input file not found or unreadable"
	default:
		return fmt.Sprintf("mkvmerge exited with code %d", exitCode)
	}
}

func tail(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return "..." + s[len(s)-limit:]
}

// defaultCommandRunner runs mkvmerge and returns its combined output.
func defaultCommandRunner(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(output), &ExitError{Code: exitErr.ExitCode(), Output: string(output)}
		}
		return string(output), err
	}
	return string(output), nil
}
