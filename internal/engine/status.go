package engine

import (
	"fmt"
	"sort"

	"github.com/pders01/gitcontext/internal/gcerrors"
	"github.com/pders01/gitcontext/internal/models"
)

// Status is the read-only view of the repository's current state.
type Status struct {
	CurrentBranch  string
	Commits        int
	LatestCommitID string
	LatestMessage  string
	StagedLogs     int
	Branches       []string
}

// Status reports the current branch, its commit count, the latest
// commit and whether staged logs exist. It takes no lock and mutates
// nothing; the index is re-read fresh.
func (e *Engine) Status() (*Status, error) {
	idx, err := e.store.LoadIndex()
	if err != nil {
		return nil, err
	}
	branch := idx.Branch(idx.CurrentBranch)

	status := &Status{
		CurrentBranch: idx.CurrentBranch,
		Commits:       len(branch.Commits),
	}
	for name := range idx.Branches {
		status.Branches = append(status.Branches, name)
	}
	sort.Strings(status.Branches)

	if branch.CurrentCommit != "" {
		latest, err := e.store.ReadCommit(idx.CurrentBranch, branch.CurrentCommit)
		if err != nil {
			return nil, err
		}
		status.LatestCommitID = latest.ID
		status.LatestMessage = latest.Message
	}

	staged, err := e.store.ListStagedLogs()
	if err != nil {
		return nil, err
	}
	status.StagedLogs = len(staged)
	return status, nil
}

// Log returns a branch's commits newest-first, at most limit entries.
// Branch defaults to the current branch.
func (e *Engine) Log(branch string, limit int) ([]*models.Commit, error) {
	idx, err := e.store.LoadIndex()
	if err != nil {
		return nil, err
	}
	if branch == "" {
		branch = idx.CurrentBranch
	}
	record := idx.Branch(branch)
	if record == nil {
		return nil, fmt.Errorf("log %q: %w", branch, gcerrors.ErrBranchNotFound)
	}

	ids := record.Commits
	if limit > 0 && len(ids) > limit {
		ids = ids[len(ids)-limit:]
	}
	commits, err := e.store.ReadCommits(branch, ids)
	if err != nil {
		return nil, err
	}

	// Newest first.
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
	return commits, nil
}
