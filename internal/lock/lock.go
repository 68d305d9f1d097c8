// Package lock provides the cross-process advisory lock that guards
// every mutating repository operation. Each CLI invocation is a fresh
// process, so an in-process mutex cannot serialize two terminals or an
// editor trigger racing a manual command.
package lock

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pders01/gitcontext/internal/gcerrors"
)

// errWouldBlock is returned by the platform lock when another process
// holds the lock.
var errWouldBlock = errors.New("lock held elsewhere")

const retryInterval = 50 * time.Millisecond

// Locker serializes mutating access to one repository.
type Locker interface {
	// Acquire takes the lock, waiting at most timeout. It fails with
	// gcerrors.ErrRepositoryLocked when the wait expires.
	Acquire(timeout time.Duration) error
	// Release gives the lock back. Safe to call when not held.
	Release() error
}

// FileLock is a Locker backed by an advisory flock on a lock file.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a lock on the given file path. The file is
// created on first acquisition and never removed.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path}
}

func (l *FileLock) Acquire(timeout time.Duration) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file %s: %w: %w", l.path, gcerrors.ErrIOFailure, err)
	}

	deadline := time.Now().Add(timeout)
	for {
		err := tryLock(f)
		if err == nil {
			l.file = f
			return nil
		}
		if !errors.Is(err, errWouldBlock) {
			f.Close()
			return fmt.Errorf("lock %s: %w: %w", l.path, gcerrors.ErrIOFailure, err)
		}
		if time.Now().After(deadline) {
			f.Close()
			return fmt.Errorf("lock %s: %w", l.path, gcerrors.ErrRepositoryLocked)
		}
		time.Sleep(retryInterval)
	}
}

func (l *FileLock) Release() error {
	if l.file == nil {
		return nil
	}
	err := unlock(l.file)
	closeErr := l.file.Close()
	l.file = nil
	if err != nil {
		return fmt.Errorf("unlock %s: %w: %w", l.path, gcerrors.ErrIOFailure, err)
	}
	if closeErr != nil {
		return fmt.Errorf("close lock file %s: %w: %w", l.path, gcerrors.ErrIOFailure, closeErr)
	}
	return nil
}

// Noop is a Locker that never blocks. Used by tests and by read paths.
type Noop struct{}

func (Noop) Acquire(time.Duration) error { return nil }

func (Noop) Release() error { return nil }
