package engine

import (
	"fmt"

	"github.com/pders01/gitcontext/internal/gcerrors"
	"github.com/pders01/gitcontext/internal/models"
)

// Commit captures the staged logs, the supplied decisions and rejected
// alternatives, and a files snapshot into a new commit on the current
// branch.
//
// The staging area is cleared only after both the commit file and the
// index are persisted: a failed commit leaves the staged logs in place
// so the caller can simply retry. If clearing itself fails, the commit
// stands and is returned alongside the error; re-running commit at that
// point would attach the same logs to a second commit, so callers must
// discard the stale staging area instead of retrying.
func (e *Engine) Commit(message string, decisions []string, alternatives []models.Alternative) (*models.Commit, error) {
	var commit *models.Commit
	var clearErr error
	err := e.withLock(func() error {
		idx, err := e.store.LoadIndex()
		if err != nil {
			return err
		}
		branch := idx.Branch(idx.CurrentBranch)

		staged, err := e.store.ListStagedLogs()
		if err != nil {
			return err
		}
		if len(staged) == 0 && len(decisions) == 0 && len(alternatives) == 0 {
			return fmt.Errorf("commit on %q: %w", idx.CurrentBranch, gcerrors.ErrNothingToCommit)
		}

		var files map[string]string
		if e.snapshots != nil {
			files, err = e.snapshots.Snapshot()
			if err != nil {
				return fmt.Errorf("commit on %q: snapshot: %w", idx.CurrentBranch, err)
			}
		}

		now := e.now()
		commit = &models.Commit{
			ID:            models.CommitID(branch.CurrentCommit, message, now, staged),
			Message:       message,
			Timestamp:     now,
			Parent:        branch.CurrentCommit,
			Decisions:     decisions,
			Alternatives:  alternatives,
			OtaLogs:       staged,
			FilesSnapshot: files,
		}

		if err := e.store.WriteCommit(idx, idx.CurrentBranch, commit); err != nil {
			return err
		}
		branch.AppendCommit(commit.ID, now)
		if err := e.store.SaveIndex(idx); err != nil {
			return err
		}
		clearErr = e.store.ClearStagedLogs()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if clearErr != nil {
		return commit, fmt.Errorf("commit %s persisted but staging not cleared, discard the staged logs before committing again: %w", commit.ID, clearErr)
	}
	return commit, nil
}
