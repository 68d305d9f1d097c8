package engine

import (
	"github.com/pders01/gitcontext/internal/models"
)

// StageLog records one OTA entry in the staging area. The entry stays
// there until the next commit captures it or DiscardStaged drops it.
func (e *Engine) StageLog(thought, action, result string, filesAffected []string) (models.OtaLog, error) {
	log := models.NewOtaLog(thought, action, result, filesAffected)
	err := e.withLock(func() error {
		// Verify the repository exists before touching the staging area.
		if _, err := e.store.LoadIndex(); err != nil {
			return err
		}
		return e.store.AppendStagedLog(log)
	})
	if err != nil {
		return models.OtaLog{}, err
	}
	return log, nil
}

// StagedLogs lists the staging area without touching it.
func (e *Engine) StagedLogs() ([]models.OtaLog, error) {
	if _, err := e.store.LoadIndex(); err != nil {
		return nil, err
	}
	return e.store.ListStagedLogs()
}

// DiscardStaged drops all staged logs and reports how many were
// removed.
func (e *Engine) DiscardStaged() (int, error) {
	var dropped int
	err := e.withLock(func() error {
		if _, err := e.store.LoadIndex(); err != nil {
			return err
		}
		staged, err := e.store.ListStagedLogs()
		if err != nil {
			return err
		}
		dropped = len(staged)
		return e.store.ClearStagedLogs()
	})
	if err != nil {
		return 0, err
	}
	return dropped, nil
}
