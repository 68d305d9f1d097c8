// Package store owns the on-disk repository layout under .gitcontext/
// and the atomicity of every mutation to it.
//
// Layout:
//
//	.gitcontext/index.yaml
//	.gitcontext/temp/ota_<id>.json                          staged logs
//	.gitcontext/contexts/main/history/commit_<id>/commit.json
//	.gitcontext/contexts/main/ota-logs/<id>.json
//	.gitcontext/contexts/branches/<name>/history/commit_<id>/commit.json
//	.gitcontext/contexts/branches/<name>/ota-logs/<id>.json
//	.gitcontext/archive/<name>/...
//
// The index and every commit are written temp-then-rename so a process
// kill mid-write leaves the previous file intact, never a torn one.
package store

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/pders01/gitcontext/internal/gcerrors"
	"github.com/pders01/gitcontext/internal/models"
)

// ContextDir is the repository marker directory.
const ContextDir = ".gitcontext"

// Store performs all filesystem access for one repository.
type Store struct {
	fs   afero.Fs
	root string
}

// New opens a store rooted at the given repository path on the real
// filesystem.
func New(root string) *Store {
	return NewWithFs(afero.NewOsFs(), root)
}

// NewWithFs opens a store over an arbitrary filesystem. Tests use this
// with a memory-backed or fault-injecting Fs.
func NewWithFs(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: root}
}

// ContextPath returns the absolute path of the .gitcontext directory.
func (s *Store) ContextPath() string {
	return filepath.Join(s.root, ContextDir)
}

// LockPath returns the path of the advisory lock file.
func (s *Store) LockPath() string {
	return filepath.Join(s.ContextPath(), "repo.lock")
}

func (s *Store) indexPath() string {
	return filepath.Join(s.ContextPath(), "index.yaml")
}

func (s *Store) tempDir() string {
	return filepath.Join(s.ContextPath(), "temp")
}

func (s *Store) archiveDir() string {
	return filepath.Join(s.ContextPath(), "archive")
}

// branchDir returns the context directory for a branch. Main has its own
// location; every other branch lives under contexts/branches.
func (s *Store) branchDir(branch string) string {
	if branch == models.MainBranch {
		return filepath.Join(s.ContextPath(), "contexts", "main")
	}
	return filepath.Join(s.ContextPath(), "contexts", "branches", branch)
}

func (s *Store) commitPath(branch, id string) string {
	return filepath.Join(s.branchDir(branch), "history", "commit_"+id, "commit.json")
}

func (s *Store) otaLogPath(branch, id string) string {
	return filepath.Join(s.branchDir(branch), "ota-logs", id+".json")
}

// Exists reports whether the repository marker directory is present.
func (s *Store) Exists() bool {
	ok, err := afero.DirExists(s.fs, s.ContextPath())
	return err == nil && ok
}

// EnsureContextDir creates the bare marker directory so the lock file
// can be opened before initialization proper runs.
func (s *Store) EnsureContextDir() error {
	if err := s.fs.MkdirAll(s.ContextPath(), 0o755); err != nil {
		return fmt.Errorf("create %s: %w: %w", s.ContextPath(), gcerrors.ErrIOFailure, err)
	}
	return nil
}

// Initialize creates the repository layout, an empty main branch and
// the initial index. A repository that already has an index fails with
// AlreadyInitialized; a marker directory without one (crashed init) is
// re-initialized.
func (s *Store) Initialize(now time.Time) error {
	if ok, err := afero.Exists(s.fs, s.indexPath()); err == nil && ok {
		return fmt.Errorf("initialize %s: %w", s.ContextPath(), gcerrors.ErrAlreadyInitialized)
	}

	dirs := []string{
		s.tempDir(),
		s.archiveDir(),
		filepath.Join(s.branchDir(models.MainBranch), "history"),
		filepath.Join(s.branchDir(models.MainBranch), "ota-logs"),
		filepath.Join(s.ContextPath(), "contexts", "branches"),
	}
	for _, dir := range dirs {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("initialize: create %s: %w: %w", dir, gcerrors.ErrIOFailure, err)
		}
	}

	return s.SaveIndex(models.NewIndex(now))
}

// EnsureBranchDirs creates the history and ota-logs directories for a
// branch. Idempotent.
func (s *Store) EnsureBranchDirs(branch string) error {
	for _, dir := range []string{
		filepath.Join(s.branchDir(branch), "history"),
		filepath.Join(s.branchDir(branch), "ota-logs"),
	} {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create branch dir %s: %w: %w", dir, gcerrors.ErrIOFailure, err)
		}
	}
	return nil
}

// RemoveBranchDir deletes a branch's context directory. Only used after
// the branch has been archived.
func (s *Store) RemoveBranchDir(branch string) error {
	if err := s.fs.RemoveAll(s.branchDir(branch)); err != nil {
		return fmt.Errorf("remove branch dir %s: %w: %w", s.branchDir(branch), gcerrors.ErrIOFailure, err)
	}
	return nil
}

// writeFileAtomic writes data next to path and renames it into place.
func (s *Store) writeFileAtomic(path string, data []byte) error {
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w: %w", filepath.Dir(path), gcerrors.ErrIOFailure, err)
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w: %w", tmp, gcerrors.ErrIOFailure, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w: %w", tmp, gcerrors.ErrIOFailure, err)
	}
	return nil
}
