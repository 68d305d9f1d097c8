// Package gcerrors defines the stable error kinds exposed by the engine.
//
// Every engine operation fails with one of these kinds so that callers
// (CLI, editor integrations) can branch on errors.Is without parsing
// messages. Call sites wrap kinds with fmt.Errorf("...: %w", kind) to
// attach the operation and path.
package gcerrors

import "errors"

var (
	ErrAlreadyInitialized  = errors.New("repository already initialized")
	ErrNotInitialized      = errors.New("repository not initialized")
	ErrBranchExists        = errors.New("branch already exists")
	ErrBranchNotFound      = errors.New("branch not found")
	ErrCannotDeleteCurrent = errors.New("cannot delete current branch")
	ErrSelfMerge           = errors.New("cannot merge a branch into itself")
	ErrUncommittedChanges  = errors.New("staged logs would be orphaned")
	ErrNothingToCommit     = errors.New("nothing to commit")
	ErrDuplicateCommit     = errors.New("commit id already exists")
	ErrRepositoryLocked    = errors.New("repository is locked by another process")
	ErrCorruptIndex        = errors.New("index failed validation")
	ErrIOFailure           = errors.New("storage failure")
)
