package testutil

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/pders01/gitcontext/internal/engine"
	"github.com/pders01/gitcontext/internal/lock"
	"github.com/pders01/gitcontext/internal/models"
	"github.com/pders01/gitcontext/internal/store"
)

// TempRepo is an initialized context repository on an in-memory
// filesystem, for tests.
type TempRepo struct {
	T      *testing.T
	Fs     afero.Fs
	Store  *store.Store
	Engine *engine.Engine
}

// NewTempRepo creates and initializes a repository at /repo on a
// MemMapFs. The engine uses a no-op lock; cross-process locking is
// covered by the lock package's own tests.
func NewTempRepo(t *testing.T, opts ...engine.Option) *TempRepo {
	t.Helper()

	fs := afero.NewMemMapFs()
	st := store.NewWithFs(fs, "/repo")
	opts = append([]engine.Option{engine.WithLocker(lock.Noop{})}, opts...)
	eng := engine.New(st, opts...)

	if err := eng.Init(); err != nil {
		t.Fatalf("failed to initialize repository: %v", err)
	}

	return &TempRepo{T: t, Fs: fs, Store: st, Engine: eng}
}

// Stage records one OTA log and fails the test on error.
func (r *TempRepo) Stage(thought, action, result string) models.OtaLog {
	r.T.Helper()
	log, err := r.Engine.StageLog(thought, action, result, nil)
	if err != nil {
		r.T.Fatalf("failed to stage log: %v", err)
	}
	return log
}

// Commit creates a commit with optional decisions and fails the test
// on error.
func (r *TempRepo) Commit(message string, decisions ...string) *models.Commit {
	r.T.Helper()
	commit, err := r.Engine.Commit(message, decisions, nil)
	if err != nil {
		r.T.Fatalf("failed to commit: %v", err)
	}
	return commit
}

// CreateBranch creates a branch and fails the test on error.
func (r *TempRepo) CreateBranch(name, from string) {
	r.T.Helper()
	if err := r.Engine.CreateBranch(name, from); err != nil {
		r.T.Fatalf("failed to create branch %s: %v", name, err)
	}
}

// Switch switches branches and fails the test on error.
func (r *TempRepo) Switch(name string) {
	r.T.Helper()
	if err := r.Engine.SwitchBranch(name); err != nil {
		r.T.Fatalf("failed to switch to branch %s: %v", name, err)
	}
}

// ReadIndexBytes returns the raw index.yaml contents.
func (r *TempRepo) ReadIndexBytes() []byte {
	r.T.Helper()
	data, err := afero.ReadFile(r.Fs, "/repo/.gitcontext/index.yaml")
	if err != nil {
		r.T.Fatalf("failed to read index: %v", err)
	}
	return data
}
