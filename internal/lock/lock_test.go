//go:build unix

package lock

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/pders01/gitcontext/internal/gcerrors"
)

func TestFileLockAcquireRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repo.lock")
	l := NewFileLock(path)

	if err := l.Acquire(time.Second); err != nil {
		t.Fatalf("failed to acquire lock: %v", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("failed to release lock: %v", err)
	}

	// Releasing again is harmless.
	if err := l.Release(); err != nil {
		t.Errorf("second release failed: %v", err)
	}
}

func TestFileLockContention(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repo.lock")

	holder := NewFileLock(path)
	if err := holder.Acquire(time.Second); err != nil {
		t.Fatalf("failed to acquire lock: %v", err)
	}
	defer holder.Release()

	// A second handle on the same file cannot get the flock.
	waiter := NewFileLock(path)
	err := waiter.Acquire(100 * time.Millisecond)
	if !errors.Is(err, gcerrors.ErrRepositoryLocked) {
		t.Fatalf("expected ErrRepositoryLocked, got %v", err)
	}

	if err := holder.Release(); err != nil {
		t.Fatalf("failed to release lock: %v", err)
	}
	if err := waiter.Acquire(time.Second); err != nil {
		t.Fatalf("failed to acquire after release: %v", err)
	}
	waiter.Release()
}

func TestNoop(t *testing.T) {
	var l Locker = Noop{}
	if err := l.Acquire(0); err != nil {
		t.Errorf("noop acquire failed: %v", err)
	}
	if err := l.Release(); err != nil {
		t.Errorf("noop release failed: %v", err)
	}
}
