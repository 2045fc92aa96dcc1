package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrDependency     = errors.New("missing dependency")
	ErrMergeExecution = errors.New("merge failed")
	ErrTransfer       = errors.New("transfer failed")
	ErrConfiguration  = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker so callers can classify it with errors.Is. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Validation is shorthand for Wrap(ErrValidation, ...) without a cause.
func Validation(stage, message string) error {
	return Wrap(ErrValidation, stage, "", message, nil)
}

// IsFatalForRun reports whether err should stop a whole run rather than a single file.
func IsFatalForRun(err error) bool {
	return errors.Is(err, ErrDependency) || errors.Is(err, ErrConfiguration)
}

// Suggestion returns a short remediation hint for common failures, or "".
func Suggestion(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case errors.Is(err, ErrDependency) && strings.Contains(msg, "mkvmerge"):
		return "install MKVToolNix and make sure mkvmerge is on PATH"
	case strings.Contains(msg, "ermission denied"):
		return "check file ownership or run with appropriate permissions"
	case strings.Contains(msg, "o space left"):
		return "free up disk space or choose a different target directory"
	case strings.Contains(msg, "not found"), strings.Contains(msg, "no such file"), strings.Contains(msg, "does not exist"):
		return "check that the path is correct and the file exists"
	case strings.Contains(msg, "ffprobe"):
		return "install ffmpeg to get detailed stream information"
	case strings.Contains(msg, "nested"), strings.Contains(msg, "same directory"):
		return "choose source and target directories that do not contain each other"
	default:
		return ""
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failed"
	}
	return strings.Join(parts, ": ")
}
