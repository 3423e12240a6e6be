package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning reports that another shelve invocation holds the lock
// for the same source directory.
var ErrAlreadyRunning = errors.New("another run is already organizing this directory")

// Lock guards a source directory against concurrent runs. Two processes
// racing the same tree would fight over conflict suffixes and duplicate
// detection, so each run takes an advisory file lock keyed by source path.
type Lock struct {
	flock *flock.Flock
}

// PathFor derives the lock file location for a source directory. Lock files
// live in lockDir, named by a digest of the source path so distinct sources
// never contend.
func PathFor(lockDir, sourceDir string) string {
	digest := sha256.Sum256([]byte(filepath.Clean(sourceDir)))
	name := fmt.Sprintf("run-%s.lock", hex.EncodeToString(digest[:8]))
	return filepath.Join(lockDir, name)
}

// Acquire takes the lock without blocking. It fails with ErrAlreadyRunning
// when the lock is held elsewhere.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock file: %s)", ErrAlreadyRunning, path)
	}
	return &Lock{flock: fl}, nil
}

// Release drops the lock. Safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	return l.flock.Unlock()
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	if l == nil || l.flock == nil {
		return ""
	}
	return l.flock.Path()
}
