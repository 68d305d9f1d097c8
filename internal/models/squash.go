package models

import (
	"fmt"
	"strings"
	"time"
)

// SquashResult describes what a squash merge folded into the target
// branch. It is persisted inside the synthetic commit and also returned
// to the caller so a CLI or editor can display the summary.
type SquashResult struct {
	Decisions            []string      `json:"decisions"`
	RejectedAlternatives []Alternative `json:"rejected_alternatives"`
	KeyInsights          []string      `json:"key_insights"`
	ArchitectureSummary  string        `json:"architecture_summary"`
	OtaCount             int           `json:"ota_count"`
	OriginalCommits      int           `json:"original_commits"`
	BranchName           string        `json:"branch_name"`
	MergedAt             time.Time     `json:"merged_at"`

	// Degraded is set when the Summarizer was unavailable or failed
	// and the deterministic fallback summary was used instead.
	Degraded bool `json:"degraded,omitempty"`
}

// ToMarkdown renders the result as a readable archive summary.
func (r *SquashResult) ToMarkdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Squash Merge: %s\n\n", r.BranchName)
	fmt.Fprintf(&b, "Merged: %s\n", r.MergedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Original commits: %d -> summarized\n\n", r.OriginalCommits)

	b.WriteString("## Final Decisions\n")
	for _, d := range r.Decisions {
		fmt.Fprintf(&b, "- %s\n", d)
	}

	b.WriteString("\n## Rejected Alternatives\n")
	for _, alt := range r.RejectedAlternatives {
		fmt.Fprintf(&b, "- **%s**: %s\n", alt.What, alt.WhyRejected)
	}

	b.WriteString("\n## Key Insights\n")
	for _, insight := range r.KeyInsights {
		fmt.Fprintf(&b, "- %s\n", insight)
	}

	b.WriteString("\n## Architecture Summary\n")
	fmt.Fprintf(&b, "%s\n", r.ArchitectureSummary)

	return b.String()
}
