package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/pders01/gitcontext/internal/gcerrors"
	"github.com/pders01/gitcontext/internal/models"
)

const stagedPrefix = "ota_"

func (s *Store) stagedLogPath(id string) string {
	return filepath.Join(s.tempDir(), stagedPrefix+id+".json")
}

// AppendStagedLog writes one log entry to the staging area.
func (s *Store) AppendStagedLog(log models.OtaLog) error {
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("encode staged log %s: %w: %w", log.ID, gcerrors.ErrIOFailure, err)
	}
	return s.writeFileAtomic(s.stagedLogPath(log.ID), data)
}

// ListStagedLogs returns the staged logs ordered by timestamp (id as
// tie-break, so equal timestamps still list deterministically).
func (s *Store) ListStagedLogs() ([]models.OtaLog, error) {
	entries, err := afero.ReadDir(s.fs, s.tempDir())
	if err != nil {
		return nil, fmt.Errorf("list staged logs %s: %w: %w", s.tempDir(), gcerrors.ErrIOFailure, err)
	}

	var logs []models.OtaLog
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, stagedPrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := afero.ReadFile(s.fs, filepath.Join(s.tempDir(), name))
		if err != nil {
			return nil, fmt.Errorf("read staged log %s: %w: %w", name, gcerrors.ErrIOFailure, err)
		}
		var log models.OtaLog
		if err := json.Unmarshal(data, &log); err != nil {
			return nil, fmt.Errorf("parse staged log %s: %w: %w", name, gcerrors.ErrIOFailure, err)
		}
		logs = append(logs, log)
	}

	sort.Slice(logs, func(i, j int) bool {
		if logs[i].Timestamp.Equal(logs[j].Timestamp) {
			return logs[i].ID < logs[j].ID
		}
		return logs[i].Timestamp.Before(logs[j].Timestamp)
	})
	return logs, nil
}

// ClearStagedLogs removes every staged entry. Called only after the
// commit that consumed them has been fully persisted.
func (s *Store) ClearStagedLogs() error {
	entries, err := afero.ReadDir(s.fs, s.tempDir())
	if err != nil {
		return fmt.Errorf("clear staged logs %s: %w: %w", s.tempDir(), gcerrors.ErrIOFailure, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, stagedPrefix) {
			continue
		}
		if err := s.fs.Remove(filepath.Join(s.tempDir(), name)); err != nil {
			return fmt.Errorf("remove staged log %s: %w: %w", name, gcerrors.ErrIOFailure, err)
		}
	}
	return nil
}
