package transfer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"

	"mkvslim/internal/apperr"
	"mkvslim/internal/fileutil"
	"mkvslim/internal/logging"
)

// Transferer places unchanged files at their destination.
type Transferer struct {
	logger *slog.Logger

	rename func(oldpath, newpath string) error
	link   func(oldname, newname string) error
	remove func(name string) error
	copy   func(src, dst string) (int64, error)
}

// New constructs a Transferer backed by the real filesystem.
func New(logger *slog.Logger) *Transferer {
	return &Transferer{
		logger: logging.NewComponentLogger(logger, "transfer"),
		rename: os.Rename,
		link:   os.Link,
		remove: os.Remove,
		copy:   fileutil.CopyFile,
	}
}

// ResolveMode parses a hint and warns when it is not recognized.
func (t *Transferer) ResolveMode(raw string) Mode {
	mode, ok := ParseMode(raw)
	if !ok {
		logging.WarnWithContext(t.logger, "unrecognized transfer mode; using hard link with copy fallback", "transfer_mode_unrecognized",
			logging.String("transfer_mode", raw),
			logging.String(logging.FieldImpact, "file is hard linked or copied"),
			logging.String(logging.FieldErrorHint, "use Move, Copy, HardLink or HardLinkOrCopy"),
		)
	}
	return mode
}

// Transfer moves, copies or links src to dst according to mode.
func (t *Transferer) Transfer(src, dst string, mode Mode) (Outcome, error) {
	logger := t.logger.With(logging.String(logging.FieldFile, src), logging.String("destination", dst))

	var (
		outcome Outcome
		err     error
	)
	switch mode {
	case Move:
		outcome, err = t.move(src, dst, logger)
	case Copy:
		outcome, err = t.copyOnly(src, dst)
	case HardLink:
		outcome, err = t.hardLink(src, dst)
	default:
		outcome, err = t.hardLink(src, dst)
		if err != nil {
			logger.Debug("hard link failed; copying instead", logging.Error(err))
			outcome, err = t.copyOnly(src, dst)
		}
	}
	if err != nil {
		return Outcome{}, err
	}

	logger.Info("file transferred",
		logging.String("mode", mode.String()),
		logging.String("strategy", string(outcome.Strategy)),
		logging.Int64("bytes", outcome.Bytes),
	)
	return outcome, nil
}

func (t *Transferer) move(src, dst string, logger *slog.Logger) (Outcome, error) {
	err := t.rename(src, dst)
	if err == nil {
		return Outcome{Strategy: StrategyRename, Bytes: fileutil.FileSize(dst)}, nil
	}
	if !errors.Is(err, unix.EXDEV) {
		return Outcome{}, apperr.Wrap(apperr.ErrTransfer, "transfer", "rename", "move failed", err)
	}

	logger.Debug("rename crosses filesystems; copying then deleting source")
	written, err := t.copy(src, dst)
	if err != nil {
		return Outcome{}, apperr.Wrap(apperr.ErrTransfer, "transfer", "copy", "cross-device move failed while copying", err)
	}
	if err := t.remove(src); err != nil {
		// Leave exactly one copy behind: the untouched source.
		if rmErr := t.remove(dst); rmErr != nil {
			return Outcome{}, apperr.Wrap(apperr.ErrTransfer, "transfer", "delete source",
				fmt.Sprintf("copied to %s but could not delete the source or roll back the copy", dst), errors.Join(err, rmErr))
		}
		return Outcome{}, apperr.Wrap(apperr.ErrTransfer, "transfer", "delete source",
			"copied but could not delete the source; copy was rolled back", err)
	}
	return Outcome{Strategy: StrategyCopyDelete, Bytes: written}, nil
}

func (t *Transferer) copyOnly(src, dst string) (Outcome, error) {
	written, err := t.copy(src, dst)
	if err != nil {
		return Outcome{}, apperr.Wrap(apperr.ErrTransfer, "transfer", "copy", "copy failed", err)
	}
	return Outcome{Strategy: StrategyCopy, Bytes: written}, nil
}

func (t *Transferer) hardLink(src, dst string) (Outcome, error) {
	if err := t.link(src, dst); err != nil {
		return Outcome{}, apperr.Wrap(apperr.ErrTransfer, "transfer", "hard link", "hard link failed", err)
	}
	return Outcome{Strategy: StrategyHardLink, Bytes: fileutil.FileSize(dst)}, nil
}
