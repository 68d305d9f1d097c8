package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pders01/gitcontext/internal/gcerrors"
)

// useTempRepo points the commands at a fresh initialized repository.
func useTempRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	oldRepo := repoPath
	repoPath = dir
	t.Cleanup(func() { repoPath = oldRepo })

	if err := runInit(nil, nil); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	return dir
}

func stageOne(t *testing.T, thought, action, result string) {
	t.Helper()

	otaThought = thought
	otaAction = action
	otaResult = result
	otaFiles = nil

	if err := runOtaAdd(nil, nil); err != nil {
		t.Fatalf("ota add command failed: %v", err)
	}
}

func commitOne(t *testing.T, message string, decisions ...string) {
	t.Helper()

	commitDecisions = decisions
	commitAlternatives = nil

	if err := runCommit(nil, []string{message}); err != nil {
		t.Fatalf("commit command failed: %v", err)
	}
}

func TestInitCommand(t *testing.T) {
	dir := useTempRepo(t)

	if _, err := os.Stat(filepath.Join(dir, ".gitcontext", "index.yaml")); err != nil {
		t.Errorf("index not created: %v", err)
	}

	// A second init is refused.
	err := runInit(nil, nil)
	if !errors.Is(err, gcerrors.ErrAlreadyInitialized) {
		t.Errorf("expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestOtaCommands(t *testing.T) {
	useTempRepo(t)

	stageOne(t, "need a cache", "added one", "tests pass")
	stageOne(t, "cache too big", "added eviction", "bounded now")

	if err := runOtaList(nil, nil); err != nil {
		t.Fatalf("ota list command failed: %v", err)
	}
	if err := runOtaDiscard(nil, nil); err != nil {
		t.Fatalf("ota discard command failed: %v", err)
	}
}

func TestCommitCommand(t *testing.T) {
	dir := useTempRepo(t)

	stageOne(t, "t", "a", "r")
	commitDecisions = []string{"use an LRU cache"}
	commitAlternatives = []string{"unbounded map::grows forever"}
	if err := runCommit(nil, []string{"add cache"}); err != nil {
		t.Fatalf("commit command failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, ".gitcontext", "contexts", "main", "history"))
	if err != nil {
		t.Fatalf("failed to read history: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 commit directory, got %d", len(entries))
	}
}

func TestCommitCommandBadAlternative(t *testing.T) {
	useTempRepo(t)

	stageOne(t, "t", "a", "r")
	commitDecisions = nil
	commitAlternatives = []string{"missing separator"}
	if err := runCommit(nil, []string{"broken"}); err == nil {
		t.Error("expected malformed alternative to be rejected")
	}
}

func TestBranchCommands(t *testing.T) {
	useTempRepo(t)

	branchFrom = ""
	branchDelete = false
	if err := runBranch(nil, []string{"feature"}); err != nil {
		t.Fatalf("branch command failed: %v", err)
	}
	if err := runBranch(nil, nil); err != nil {
		t.Fatalf("branch list failed: %v", err)
	}

	// Delete without a name is an error.
	branchDelete = true
	if err := runBranch(nil, nil); err == nil {
		t.Error("expected --delete without a name to fail")
	}
	if err := runBranch(nil, []string{"feature"}); err != nil {
		t.Fatalf("branch delete failed: %v", err)
	}
	branchDelete = false
}

func TestCheckoutCommand(t *testing.T) {
	useTempRepo(t)

	branchFrom = ""
	branchDelete = false
	if err := runBranch(nil, []string{"feature"}); err != nil {
		t.Fatalf("branch command failed: %v", err)
	}

	if err := runCheckout(nil, []string{"feature"}); err != nil {
		t.Fatalf("checkout command failed: %v", err)
	}
	err := runCheckout(nil, []string{"ghost"})
	if !errors.Is(err, gcerrors.ErrBranchNotFound) {
		t.Errorf("expected ErrBranchNotFound, got %v", err)
	}
}

func TestMergeCommand(t *testing.T) {
	dir := useTempRepo(t)

	branchFrom = ""
	branchDelete = false
	if err := runBranch(nil, []string{"feature"}); err != nil {
		t.Fatalf("branch command failed: %v", err)
	}
	if err := runCheckout(nil, []string{"feature"}); err != nil {
		t.Fatalf("checkout command failed: %v", err)
	}
	stageOne(t, "t", "a", "r")
	commitOne(t, "on feature", "a decision")
	if err := runCheckout(nil, []string{"main"}); err != nil {
		t.Fatalf("checkout command failed: %v", err)
	}

	mergeNoSquash = false
	mergeInto = ""
	if err := runMerge(nil, []string{"feature"}); err != nil {
		t.Fatalf("merge command failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, ".gitcontext", "contexts", "main", "history"))
	if err != nil {
		t.Fatalf("failed to read history: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 squash commit on main, got %d", len(entries))
	}

	// Repeating the merge is a reported no-op, not an error.
	if err := runMerge(nil, []string{"feature"}); err != nil {
		t.Errorf("repeat merge failed: %v", err)
	}
}

func TestLogAndStatusCommands(t *testing.T) {
	useTempRepo(t)

	stageOne(t, "t", "a", "r")
	commitOne(t, "first")

	logBranch = ""
	logLimit = 10
	logJSON, logToon = false, false
	statusJSON, statusToon = false, false
	if err := runLog(nil, nil); err != nil {
		t.Fatalf("log command failed: %v", err)
	}
	if err := runStatus(nil, nil); err != nil {
		t.Fatalf("status command failed: %v", err)
	}

	logBranch = "ghost"
	err := runLog(nil, nil)
	if !errors.Is(err, gcerrors.ErrBranchNotFound) {
		t.Errorf("expected ErrBranchNotFound, got %v", err)
	}
	logBranch = ""
}

func TestMachineReadableOutput(t *testing.T) {
	useTempRepo(t)

	stageOne(t, "t", "a", "r")
	commitOne(t, "first")

	logBranch = ""
	logLimit = 10
	for _, toon := range []bool{false, true} {
		statusJSON, statusToon = !toon, toon
		if err := runStatus(nil, nil); err != nil {
			t.Fatalf("status (toon=%v) failed: %v", toon, err)
		}
		logJSON, logToon = !toon, toon
		if err := runLog(nil, nil); err != nil {
			t.Fatalf("log (toon=%v) failed: %v", toon, err)
		}
		branchFrom, branchDelete = "", false
		branchJSON, branchToon = !toon, toon
		if err := runBranch(nil, nil); err != nil {
			t.Fatalf("branch list (toon=%v) failed: %v", toon, err)
		}
	}
	statusJSON, statusToon = false, false
	logJSON, logToon = false, false
	branchJSON, branchToon = false, false
}

func TestCommandsOutsideRepository(t *testing.T) {
	dir := t.TempDir()
	oldRepo := repoPath
	repoPath = dir
	t.Cleanup(func() { repoPath = oldRepo })

	if err := runStatus(nil, nil); !errors.Is(err, gcerrors.ErrNotInitialized) {
		t.Errorf("status: expected ErrNotInitialized, got %v", err)
	}
	otaThought, otaAction, otaResult, otaFiles = "t", "a", "r", nil
	if err := runOtaAdd(nil, nil); !errors.Is(err, gcerrors.ErrNotInitialized) {
		t.Errorf("ota add: expected ErrNotInitialized, got %v", err)
	}
}
