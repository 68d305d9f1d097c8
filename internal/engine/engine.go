// Package engine implements the context version-control operations:
// branch management, staging, commits, merges and read-only reporting.
//
// The engine holds no state between operations. Every call reloads the
// index from the store, so durability comes entirely from what is on
// disk. Mutating operations run under the repository lock; reads do
// not, and tolerate a concurrently updating repository.
package engine

import (
	"fmt"
	"time"

	"github.com/pders01/gitcontext/internal/gcerrors"
	"github.com/pders01/gitcontext/internal/lock"
	"github.com/pders01/gitcontext/internal/store"
	"github.com/pders01/gitcontext/internal/summarize"
)

// DefaultLockTimeout bounds how long a mutating operation waits for
// the repository lock before failing with RepositoryLocked.
const DefaultLockTimeout = 5 * time.Second

// SnapshotProvider supplies the filesSnapshot recorded on a commit.
// The engine accepts an already-built mapping; it never walks the
// working tree itself.
type SnapshotProvider interface {
	Snapshot() (map[string]string, error)
}

// Engine wires the store, lock and collaborators together.
type Engine struct {
	store       *store.Store
	locker      lock.Locker
	summarizer  summarize.Summarizer
	snapshots   SnapshotProvider
	lockTimeout time.Duration
	now         func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLocker replaces the default file lock. Tests pass lock.Noop.
func WithLocker(l lock.Locker) Option {
	return func(e *Engine) { e.locker = l }
}

// WithSummarizer sets the squash-merge summarizer. When absent, squash
// merges use the deterministic degraded summary.
func WithSummarizer(s summarize.Summarizer) Option {
	return func(e *Engine) { e.summarizer = s }
}

// WithSnapshotProvider sets the files-snapshot source for commits.
func WithSnapshotProvider(p SnapshotProvider) Option {
	return func(e *Engine) { e.snapshots = p }
}

// WithLockTimeout bounds the wait for the repository lock.
func WithLockTimeout(d time.Duration) Option {
	return func(e *Engine) { e.lockTimeout = d }
}

// New creates an engine over a store.
func New(st *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:       st,
		locker:      lock.NewFileLock(st.LockPath()),
		lockTimeout: DefaultLockTimeout,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// withLock runs fn under the repository lock. The lock file lives
// inside .gitcontext, so a missing repository is reported before any
// acquisition is attempted.
func (e *Engine) withLock(fn func() error) error {
	if !e.store.Exists() {
		return fmt.Errorf("repository at %s: %w", e.store.ContextPath(), gcerrors.ErrNotInitialized)
	}
	if err := e.locker.Acquire(e.lockTimeout); err != nil {
		return err
	}
	defer e.locker.Release()
	return fn()
}

// Init creates the repository layout and an empty main branch.
func (e *Engine) Init() error {
	if err := e.store.EnsureContextDir(); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	return e.withLock(func() error {
		return e.store.Initialize(e.now())
	})
}
