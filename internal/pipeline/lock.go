package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"mkvslim/internal/apperr"
	"mkvslim/internal/scan"
)

// LockPath returns the lock file guarding writes into target.
func LockPath(target string) (string, error) {
	canonical, err := scan.Canonical(target)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(canonical))
	return filepath.Join(os.TempDir(), "mkvslim-"+hex.EncodeToString(sum[:8])+".lock"), nil
}

// AcquireTargetLock takes an exclusive, non-blocking lock on target so two
// runs cannot write the same tree. The returned func releases it.
func AcquireTargetLock(target string) (func(), error) {
	path, err := LockPath(target)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrValidation, "lock", "resolve target", target, err)
	}
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrValidation, "lock", "acquire", path, err)
	}
	if !locked {
		return nil, apperr.Validation("lock", fmt.Sprintf("another mkvslim run is writing to %s", target))
	}
	return func() { _ = lock.Unlock() }, nil
}
