package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/pders01/gitcontext/internal/gcerrors"
	"github.com/pders01/gitcontext/internal/models"
)

// CommitExists reports whether a commit id is present on any branch
// listed in the index. Ids must be unique repository-wide because
// merges reference commits across branches.
func (s *Store) CommitExists(idx *models.Index, id string) bool {
	for branch := range idx.Branches {
		if ok, err := afero.Exists(s.fs, s.commitPath(branch, id)); err == nil && ok {
			return true
		}
	}
	return false
}

// WriteCommit persists a commit atomically and mirrors its OTA logs
// into the branch's ota-logs directory for browsing.
func (s *Store) WriteCommit(idx *models.Index, branch string, commit *models.Commit) error {
	if s.CommitExists(idx, commit.ID) {
		return fmt.Errorf("write commit %s: %w", commit.ID, gcerrors.ErrDuplicateCommit)
	}

	data, err := json.MarshalIndent(commit, "", "  ")
	if err != nil {
		return fmt.Errorf("encode commit %s: %w: %w", commit.ID, gcerrors.ErrIOFailure, err)
	}
	if err := s.writeFileAtomic(s.commitPath(branch, commit.ID), data); err != nil {
		return err
	}

	for _, log := range commit.OtaLogs {
		encoded, err := json.MarshalIndent(log, "", "  ")
		if err != nil {
			return fmt.Errorf("encode ota log %s: %w: %w", log.ID, gcerrors.ErrIOFailure, err)
		}
		if err := s.writeFileAtomic(s.otaLogPath(branch, log.ID), encoded); err != nil {
			return err
		}
	}
	return nil
}

// WriteCommitSummary places a readable markdown summary of a squash
// merge next to the synthetic commit's commit.json.
func (s *Store) WriteCommitSummary(branch, id string, result *models.SquashResult) error {
	path := filepath.Join(filepath.Dir(s.commitPath(branch, id)), "summary.md")
	return s.writeFileAtomic(path, []byte(result.ToMarkdown()))
}

// ReadCommit loads one commit from a branch's history.
func (s *Store) ReadCommit(branch, id string) (*models.Commit, error) {
	path := s.commitPath(branch, id)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("read commit %s: %w: file missing", path, gcerrors.ErrIOFailure)
		}
		return nil, fmt.Errorf("read commit %s: %w: %w", path, gcerrors.ErrIOFailure, err)
	}
	var commit models.Commit
	if err := json.Unmarshal(data, &commit); err != nil {
		return nil, fmt.Errorf("parse commit %s: %w: %w", path, gcerrors.ErrIOFailure, err)
	}
	return &commit, nil
}

// ReadCommits loads the listed commits from a branch in order.
func (s *Store) ReadCommits(branch string, ids []string) ([]*models.Commit, error) {
	commits := make([]*models.Commit, 0, len(ids))
	for _, id := range ids {
		commit, err := s.ReadCommit(branch, id)
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)
	}
	return commits, nil
}
