package models

import (
	"fmt"
	"time"
)

// MainBranch is the branch created by initialization. It always exists.
const MainBranch = "main"

// BranchRecord is the per-branch entry in the index.
type BranchRecord struct {
	Created       time.Time         `yaml:"created"`
	LastModified  time.Time         `yaml:"last_modified"`
	CurrentCommit string            `yaml:"current_commit,omitempty"`
	Commits       []string          `yaml:"commits"`
	Parent        string            `yaml:"parent,omitempty"`
	MergeBases    map[string]string `yaml:"merge_bases,omitempty"`
	Metadata      Metadata          `yaml:"metadata,omitempty"`
}

// Index is the singleton repository record: which branch is current and
// the state of every branch. It is reloaded from disk on every engine
// invocation; nothing in the engine caches it across operations.
type Index struct {
	Version       string                   `yaml:"version"`
	Created       time.Time                `yaml:"created"`
	CurrentBranch string                   `yaml:"current_branch"`
	Branches      map[string]*BranchRecord `yaml:"branches"`
}

// NewIndex returns an index containing only an empty main branch.
func NewIndex(now time.Time) *Index {
	return &Index{
		Version:       "1.0",
		Created:       now,
		CurrentBranch: MainBranch,
		Branches: map[string]*BranchRecord{
			MainBranch: {
				Created:      now,
				LastModified: now,
			},
		},
	}
}

// Validate checks the structural invariants the engine relies on. A
// repository whose index fails validation is refused for writing until
// it round-trips cleanly again.
func (idx *Index) Validate() error {
	if len(idx.Branches) == 0 {
		return fmt.Errorf("no branches")
	}
	if _, ok := idx.Branches[idx.CurrentBranch]; !ok {
		return fmt.Errorf("current branch %q is not in the branch map", idx.CurrentBranch)
	}
	for name, branch := range idx.Branches {
		if branch == nil {
			return fmt.Errorf("branch %q has no record", name)
		}
		if len(branch.Commits) == 0 {
			if branch.CurrentCommit != "" {
				return fmt.Errorf("branch %q has a current commit but no commits", name)
			}
			continue
		}
		if branch.CurrentCommit != branch.Commits[len(branch.Commits)-1] {
			return fmt.Errorf("branch %q current commit %q is not its last commit", name, branch.CurrentCommit)
		}
	}
	return nil
}

// Branch returns the record for name, or nil if absent.
func (idx *Index) Branch(name string) *BranchRecord {
	return idx.Branches[name]
}

// AppendCommit records a new commit id as the branch tip.
func (b *BranchRecord) AppendCommit(id string, now time.Time) {
	b.Commits = append(b.Commits, id)
	b.CurrentCommit = id
	b.LastModified = now
}

// MergeBase returns the last commit id of source merged into this
// branch, or "" when source has never been merged.
func (b *BranchRecord) MergeBase(source string) string {
	return b.MergeBases[source]
}

// SetMergeBase records the last merged commit id for source.
func (b *BranchRecord) SetMergeBase(source, commitID string) {
	if b.MergeBases == nil {
		b.MergeBases = make(map[string]string)
	}
	b.MergeBases[source] = commitID
}
