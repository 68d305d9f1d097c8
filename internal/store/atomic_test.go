package store

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
)

// renameCrashFs drops every Rename, simulating a process killed between
// writing the temp file and renaming it into place.
type renameCrashFs struct {
	afero.Fs
	crashed bool
}

func (f *renameCrashFs) Rename(oldname, newname string) error {
	f.crashed = true
	return errors.New("process killed")
}

func TestSaveIndexCrashBetweenWriteAndRename(t *testing.T) {
	mem := afero.NewMemMapFs()
	s := NewWithFs(mem, "/repo")
	if err := s.Initialize(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	before, err := afero.ReadFile(mem, s.indexPath())
	if err != nil {
		t.Fatalf("failed to read index: %v", err)
	}

	idx, err := s.LoadIndex()
	if err != nil {
		t.Fatalf("failed to load index: %v", err)
	}
	idx.CurrentBranch = "main" // unchanged content, fresh save attempt

	crash := &renameCrashFs{Fs: mem}
	crashed := NewWithFs(crash, "/repo")
	if err := crashed.SaveIndex(idx); err == nil {
		t.Fatal("expected save to fail when rename is interrupted")
	}
	if !crash.crashed {
		t.Fatal("rename was never attempted")
	}

	// The old index must still be fully readable.
	after, err := afero.ReadFile(mem, s.indexPath())
	if err != nil {
		t.Fatalf("index unreadable after crash: %v", err)
	}
	if string(before) != string(after) {
		t.Error("index content changed despite interrupted save")
	}
	if _, err := s.LoadIndex(); err != nil {
		t.Errorf("index no longer loads after crash: %v", err)
	}
}
