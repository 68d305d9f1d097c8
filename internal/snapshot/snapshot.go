// Package snapshot builds the files snapshot recorded on each commit:
// a mapping from tracked path to a short content digest.
package snapshot

import (
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const digestLen = 16

// GitTree snapshots the tracked files of the git repository that
// encloses the context store, using the HEAD tree's blob hashes. No
// snapshot is produced when the directory is not a git repository or
// has no commits yet; context versioning works without one.
type GitTree struct {
	path string
}

// NewGitTree creates a provider rooted at the given directory.
func NewGitTree(path string) *GitTree {
	return &GitTree{path: path}
}

// Snapshot returns path -> digest for every file in the HEAD tree.
func (g *GitTree) Snapshot() (map[string]string, error) {
	repo, err := git.PlainOpenWithOptions(g.path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, nil
		}
		return nil, fmt.Errorf("open git repository at %s: %w", g.path, err)
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("load HEAD commit %s: %w", head.Hash(), err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("load HEAD tree: %w", err)
	}

	files := make(map[string]string)
	err = tree.Files().ForEach(func(f *object.File) error {
		files[f.Name] = f.Hash.String()[:digestLen]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk HEAD tree: %w", err)
	}
	return files, nil
}

// Fixed is a provider that returns an already-built mapping. Callers
// that compute snapshots themselves (editor integrations, tests) pass
// one of these.
type Fixed map[string]string

func (f Fixed) Snapshot() (map[string]string, error) { return f, nil }
