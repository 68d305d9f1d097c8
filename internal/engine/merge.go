package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/pders01/gitcontext/internal/gcerrors"
	"github.com/pders01/gitcontext/internal/models"
	"github.com/pders01/gitcontext/internal/summarize"
)

// MergeResult reports what a merge did.
type MergeResult struct {
	// Merged is false when the source had no commits the target has
	// not already merged. Nothing was written in that case.
	Merged bool
	Source string
	Target string
	// NewCommits are the ids appended to the target, in order. One
	// synthetic id for a squash, one per replayed commit otherwise.
	NewCommits []string
	// Squash carries the summary for squash merges, nil otherwise.
	Squash *models.SquashResult
}

// Merge folds the source branch's unmerged commits into the target
// branch (the current branch when target is empty). With squash, the
// commits collapse into one synthesized summary commit; without, each
// commit is replayed onto the target individually.
//
// A per-target merge base makes repeated merges incremental: only
// commits after the last merged source commit are considered, and a
// repeat merge with no new source commits is a no-op, not an error.
// The source branch is left intact either way.
func (e *Engine) Merge(source, target string, squash bool) (*MergeResult, error) {
	var result *MergeResult
	err := e.withLock(func() error {
		idx, err := e.store.LoadIndex()
		if err != nil {
			return err
		}
		if target == "" {
			target = idx.CurrentBranch
		}
		srcBranch := idx.Branch(source)
		if srcBranch == nil {
			return fmt.Errorf("merge source %q: %w", source, gcerrors.ErrBranchNotFound)
		}
		tgtBranch := idx.Branch(target)
		if tgtBranch == nil {
			return fmt.Errorf("merge target %q: %w", target, gcerrors.ErrBranchNotFound)
		}
		if source == target {
			return fmt.Errorf("merge %q into itself: %w", source, gcerrors.ErrSelfMerge)
		}

		newIDs := unmergedCommits(srcBranch.Commits, tgtBranch.MergeBase(source))
		if len(newIDs) == 0 {
			result = &MergeResult{Merged: false, Source: source, Target: target}
			return nil
		}
		commits, err := e.store.ReadCommits(source, newIDs)
		if err != nil {
			return err
		}

		now := e.now()
		if squash {
			result, err = e.squashMerge(idx, source, target, commits, now)
		} else {
			result, err = e.replayMerge(idx, source, target, commits, now)
		}
		if err != nil {
			return err
		}

		tgtBranch.SetMergeBase(source, newIDs[len(newIDs)-1])
		tgtBranch.LastModified = now
		return e.store.SaveIndex(idx)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// replayMerge re-homes each source commit onto the target tip with a
// fresh id, preserving message, timestamp, decisions, alternatives and
// OTA logs verbatim, in original order. Replay ids derive from the
// merge time, not the original timestamp, so a replay onto an identical
// parent chain cannot reproduce the source id. There is no conflict
// concept: commits carry structured context, not file diffs.
func (e *Engine) replayMerge(idx *models.Index, source, target string, commits []*models.Commit, now time.Time) (*MergeResult, error) {
	tgtBranch := idx.Branch(target)
	newIDs := make([]string, 0, len(commits))

	for _, src := range commits {
		replayed := &models.Commit{
			ID:            models.CommitID(tgtBranch.CurrentCommit, src.Message, now, src.OtaLogs),
			Message:       src.Message,
			Timestamp:     src.Timestamp,
			Parent:        tgtBranch.CurrentCommit,
			Decisions:     src.Decisions,
			Alternatives:  src.Alternatives,
			OtaLogs:       src.OtaLogs,
			FilesSnapshot: src.FilesSnapshot,
			Metadata:      src.Metadata,
		}
		if err := e.store.WriteCommit(idx, target, replayed); err != nil {
			return nil, err
		}
		tgtBranch.AppendCommit(replayed.ID, now)
		newIDs = append(newIDs, replayed.ID)
	}

	return &MergeResult{
		Merged:     true,
		Source:     source,
		Target:     target,
		NewCommits: newIDs,
	}, nil
}

// squashMerge aggregates the source commits into one SquashResult and
// writes it as a single synthetic commit on the target.
func (e *Engine) squashMerge(idx *models.Index, source, target string, commits []*models.Commit, now time.Time) (*MergeResult, error) {
	decisions := dedupeDecisions(commits)
	alternatives := dedupeAlternatives(commits)

	var logs []models.OtaLog
	for _, c := range commits {
		logs = append(logs, c.OtaLogs...)
	}

	summary, degraded := e.summarizeOrDegrade(decisions, alternatives, logs, commits)

	result := &models.SquashResult{
		Decisions:            decisions,
		RejectedAlternatives: alternatives,
		KeyInsights:          summary.KeyInsights,
		ArchitectureSummary:  summary.ArchitectureSummary,
		OtaCount:             len(logs),
		OriginalCommits:      len(commits),
		BranchName:           source,
		MergedAt:             now,
		Degraded:             degraded,
	}

	tgtBranch := idx.Branch(target)
	message := fmt.Sprintf("Squash merge: %s", source)
	commit := &models.Commit{
		ID:           models.CommitID(tgtBranch.CurrentCommit, message, now, logs),
		Message:      message,
		Timestamp:    now,
		Parent:       tgtBranch.CurrentCommit,
		Decisions:    result.Decisions,
		Alternatives: result.RejectedAlternatives,
		OtaLogs:      logs,
		Metadata:     squashMetadata(result),
	}

	if err := e.store.WriteCommit(idx, target, commit); err != nil {
		return nil, err
	}
	if err := e.store.WriteCommitSummary(target, commit.ID, result); err != nil {
		return nil, err
	}
	tgtBranch.AppendCommit(commit.ID, now)

	return &MergeResult{
		Merged:     true,
		Source:     source,
		Target:     target,
		NewCommits: []string{commit.ID},
		Squash:     result,
	}, nil
}

// summarizeOrDegrade asks the configured summarizer for insights and
// falls back to a deterministic summary when it is absent or fails.
func (e *Engine) summarizeOrDegrade(decisions []string, alternatives []models.Alternative, logs []models.OtaLog, commits []*models.Commit) (summarize.Summary, bool) {
	if e.summarizer != nil {
		summary, err := e.summarizer.Summarize(decisions, alternatives, logs)
		if err == nil {
			return summary, false
		}
	}

	messages := make([]string, len(commits))
	for i, c := range commits {
		messages[i] = c.Message
	}
	return summarize.Summary{ArchitectureSummary: strings.Join(messages, "; ")}, true
}

// unmergedCommits returns the commit ids after the merge base. An
// unknown base replays the full history; bases are recorded from the
// source's own append-only list, so that only happens on first merge.
func unmergedCommits(commits []string, base string) []string {
	if base == "" {
		return commits
	}
	for i, id := range commits {
		if id == base {
			return commits[i+1:]
		}
	}
	return commits
}

// dedupeDecisions unions decisions across commits, keeping first-seen
// order and exact-string identity.
func dedupeDecisions(commits []*models.Commit) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range commits {
		for _, d := range c.Decisions {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}

// dedupeAlternatives unions rejected alternatives keyed by what was
// rejected, keeping the first recorded reason.
func dedupeAlternatives(commits []*models.Commit) []models.Alternative {
	seen := make(map[string]struct{})
	var out []models.Alternative
	for _, c := range commits {
		for _, alt := range c.Alternatives {
			if _, ok := seen[alt.What]; ok {
				continue
			}
			seen[alt.What] = struct{}{}
			out = append(out, alt)
		}
	}
	return out
}

// squashMetadata records the merge provenance on the synthetic commit.
func squashMetadata(result *models.SquashResult) models.Metadata {
	insights := make([]models.Value, len(result.KeyInsights))
	for i, s := range result.KeyInsights {
		insights[i] = models.String(s)
	}
	return models.Metadata{
		"squashedFrom":        models.String(result.BranchName),
		"originalCommits":     models.Number(float64(result.OriginalCommits)),
		"mergedAt":            models.String(result.MergedAt.Format(time.RFC3339)),
		"keyInsights":         models.List(insights...),
		"architectureSummary": models.String(result.ArchitectureSummary),
		"degradedSummary":     models.Bool(result.Degraded),
	}
}
