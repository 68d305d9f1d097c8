package models

import (
	"testing"
	"time"
)

func TestCommitIDDeterministic(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	logs := []OtaLog{{ID: "l1", Thought: "t", Action: "a", Result: "r", Timestamp: ts}}

	first := CommitID("parent1", "add cache", ts, logs)
	second := CommitID("parent1", "add cache", ts, logs)
	if first != second {
		t.Errorf("identical inputs produced different ids: %s vs %s", first, second)
	}
	if len(first) != 12 {
		t.Errorf("expected a 12-character id, got %q", first)
	}
}

func TestCommitIDVariesWithInputs(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	base := CommitID("parent1", "add cache", ts, nil)

	tests := []struct {
		name string
		id   string
	}{
		{"different parent", CommitID("parent2", "add cache", ts, nil)},
		{"different message", CommitID("parent1", "drop cache", ts, nil)},
		{"different timestamp", CommitID("parent1", "add cache", ts.Add(time.Second), nil)},
		{"different logs", CommitID("parent1", "add cache", ts, []OtaLog{{ID: "x"}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.id == base {
				t.Errorf("expected a different id than %s", base)
			}
		})
	}
}

func TestIndexValidate(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		mutate  func(*Index)
		wantErr bool
	}{
		{
			name:    "fresh index",
			mutate:  func(*Index) {},
			wantErr: false,
		},
		{
			name: "current branch missing",
			mutate: func(idx *Index) {
				idx.CurrentBranch = "ghost"
			},
			wantErr: true,
		},
		{
			name: "no branches",
			mutate: func(idx *Index) {
				idx.Branches = map[string]*BranchRecord{}
			},
			wantErr: true,
		},
		{
			name: "tip matches last commit",
			mutate: func(idx *Index) {
				idx.Branches[MainBranch].Commits = []string{"a", "b"}
				idx.Branches[MainBranch].CurrentCommit = "b"
			},
			wantErr: false,
		},
		{
			name: "tip is stale",
			mutate: func(idx *Index) {
				idx.Branches[MainBranch].Commits = []string{"a", "b"}
				idx.Branches[MainBranch].CurrentCommit = "a"
			},
			wantErr: true,
		},
		{
			name: "tip without commits",
			mutate: func(idx *Index) {
				idx.Branches[MainBranch].CurrentCommit = "a"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := NewIndex(now)
			tt.mutate(idx)
			err := idx.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation to fail")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected valid index, got %v", err)
			}
		})
	}
}
