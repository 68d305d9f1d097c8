package models

import (
	"time"

	"github.com/google/uuid"
)

// OtaLog is one recorded unit of thought, action taken, and observed
// result, optionally tagged with the files it touched. Logs live in the
// staging area until a commit captures them; once attached to a commit
// they are never modified.
type OtaLog struct {
	ID            string    `json:"id"`
	Thought       string    `json:"thought"`
	Action        string    `json:"action"`
	Result        string    `json:"result"`
	Timestamp     time.Time `json:"timestamp"`
	FilesAffected []string  `json:"filesAffected,omitempty"`
}

// NewOtaLog creates a log entry with a fresh short id and the current time.
func NewOtaLog(thought, action, result string, filesAffected []string) OtaLog {
	return OtaLog{
		ID:            uuid.NewString()[:8],
		Thought:       thought,
		Action:        action,
		Result:        result,
		Timestamp:     time.Now().UTC(),
		FilesAffected: filesAffected,
	}
}
