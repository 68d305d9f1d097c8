package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Alternative records an approach that was considered and rejected.
type Alternative struct {
	What        string `json:"what"`
	WhyRejected string `json:"whyRejected"`
}

// Commit is one entry in a branch's context history. Commits are
// immutable once written to disk.
type Commit struct {
	ID            string            `json:"id"`
	Message       string            `json:"message"`
	Timestamp     time.Time         `json:"timestamp"`
	Parent        string            `json:"parent,omitempty"`
	Decisions     []string          `json:"decisions"`
	Alternatives  []Alternative     `json:"alternatives"`
	OtaLogs       []OtaLog          `json:"otaLogs"`
	FilesSnapshot map[string]string `json:"filesSnapshot,omitempty"`
	Metadata      Metadata          `json:"metadata,omitempty"`
}

// CommitID derives a commit id from the commit's content: parent id,
// message, timestamp and the staged logs it captures. Identical inputs
// always produce the same id, so ids are reproducible in tests and
// never silently collide across branches.
func CommitID(parent, message string, timestamp time.Time, logs []OtaLog) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00", parent, message, timestamp.UTC().Format(time.RFC3339Nano))
	if encoded, err := json.Marshal(logs); err == nil {
		h.Write(encoded)
	}
	return hex.EncodeToString(h.Sum(nil))[:12]
}
