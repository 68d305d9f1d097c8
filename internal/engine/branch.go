package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pders01/gitcontext/internal/gcerrors"
	"github.com/pders01/gitcontext/internal/models"
	"github.com/pders01/gitcontext/internal/store"
)

// validateBranchName rejects names that would escape or collide in the
// on-disk layout, where the branch name is a single path element.
func validateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("branch name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid branch name %q", name)
	}
	return nil
}

// CreateBranch forks a new branch off fromBranch (the current branch
// when empty). The new branch starts with no commits of its own;
// lineage is recorded via the parent field, not by copying history.
func (e *Engine) CreateBranch(name, fromBranch string) error {
	if err := validateBranchName(name); err != nil {
		return err
	}
	return e.withLock(func() error {
		idx, err := e.store.LoadIndex()
		if err != nil {
			return err
		}
		if idx.Branch(name) != nil {
			return fmt.Errorf("create branch %q: %w", name, gcerrors.ErrBranchExists)
		}
		if fromBranch == "" {
			fromBranch = idx.CurrentBranch
		}
		if idx.Branch(fromBranch) == nil {
			return fmt.Errorf("create branch %q from %q: %w", name, fromBranch, gcerrors.ErrBranchNotFound)
		}

		now := e.now()
		idx.Branches[name] = &models.BranchRecord{
			Created:      now,
			LastModified: now,
			Parent:       fromBranch,
		}
		if err := e.store.EnsureBranchDirs(name); err != nil {
			return err
		}
		return e.store.SaveIndex(idx)
	})
}

// SwitchBranch updates the current-branch pointer. It refuses to
// switch while staged logs exist so staged work is never silently
// orphaned onto another branch.
func (e *Engine) SwitchBranch(name string) error {
	return e.withLock(func() error {
		idx, err := e.store.LoadIndex()
		if err != nil {
			return err
		}
		if idx.Branch(name) == nil {
			return fmt.Errorf("switch to %q: %w", name, gcerrors.ErrBranchNotFound)
		}
		staged, err := e.store.ListStagedLogs()
		if err != nil {
			return err
		}
		if len(staged) > 0 {
			return fmt.Errorf("switch to %q with %d staged logs: %w", name, len(staged), gcerrors.ErrUncommittedChanges)
		}

		idx.CurrentBranch = name
		return e.store.SaveIndex(idx)
	})
}

// DeleteBranch archives a branch's history and removes it from the
// index. The current branch cannot be deleted.
func (e *Engine) DeleteBranch(name string) error {
	return e.withLock(func() error {
		idx, err := e.store.LoadIndex()
		if err != nil {
			return err
		}
		branch := idx.Branch(name)
		if branch == nil {
			return fmt.Errorf("delete branch %q: %w", name, gcerrors.ErrBranchNotFound)
		}
		if name == idx.CurrentBranch {
			return fmt.Errorf("delete branch %q: %w", name, gcerrors.ErrCannotDeleteCurrent)
		}

		now := e.now()
		archivePath, err := e.store.ArchiveBranch(name, now)
		if err != nil {
			return err
		}
		manifest := store.ArchiveManifest{
			Branch:     name,
			ArchivedAt: now,
			Parent:     branch.Parent,
			Commits:    branch.Commits,
		}
		if err := e.store.WriteArchiveManifest(archivePath, manifest); err != nil {
			return err
		}

		delete(idx.Branches, name)
		return e.store.SaveIndex(idx)
	})
}

// ListBranches returns all branch names, sorted, with the current one.
func (e *Engine) ListBranches() ([]string, string, error) {
	idx, err := e.store.LoadIndex()
	if err != nil {
		return nil, "", err
	}
	names := make([]string, 0, len(idx.Branches))
	for name := range idx.Branches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, idx.CurrentBranch, nil
}
