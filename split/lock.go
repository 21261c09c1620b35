package split

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created in the output directory while a split copies
// files into it. The leading dot keeps it out of every walk.
const LockFileName = ".dirsplit.lock"

// outputLock serializes splits that share an output directory, across
// goroutines and processes.
type outputLock struct {
	flock *flock.Flock
	path  string
}

// acquireLock takes the lock for dir without blocking.
func acquireLock(dir string) (*outputLock, error) {
	path := filepath.Join(dir, LockFileName)
	fl := flock.New(path)
	acquired, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to try lock on %s: %w", path, err)
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s", ErrSplitInProgress, path)
	}
	return &outputLock{flock: fl, path: path}, nil
}

// release removes the lock file and unlocks it. A lock file that is
// already gone is not an error.
func (l *outputLock) release() error {
	var errs []error
	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		errs = append(errs, fmt.Errorf("failed to remove lock file %s: %w", l.path, err))
	}
	if err := l.flock.Unlock(); err != nil {
		errs = append(errs, fmt.Errorf("failed to release lock on %s: %w", l.path, err))
	}
	return errors.Join(errs...)
}
