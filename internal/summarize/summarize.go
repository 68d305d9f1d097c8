// Package summarize turns aggregated branch context into key insights
// and an architecture summary during squash merges.
//
// The engine treats the summarizer as an optional collaborator: any
// provider error makes the merge fall back to a deterministic summary
// instead of failing.
package summarize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pders01/gitcontext/internal/models"
)

// Summary is what a squash merge asks a provider for.
type Summary struct {
	KeyInsights         []string `json:"key_insights"`
	ArchitectureSummary string   `json:"architecture_summary"`
}

// Summarizer produces a summary from the decisions, rejected
// alternatives and OTA logs collected across the squashed commits.
type Summarizer interface {
	Summarize(decisions []string, alternatives []models.Alternative, logs []models.OtaLog) (Summary, error)
}

// Static is the deterministic provider. It needs no backend and always
// succeeds, so the engine works with no model reachable at all.
type Static struct{}

func (Static) Summarize(decisions []string, alternatives []models.Alternative, logs []models.OtaLog) (Summary, error) {
	summary := fmt.Sprintf("%d decisions, %d rejected alternatives, %d logs", len(decisions), len(alternatives), len(logs))
	if len(decisions) > 0 {
		summary = strings.Join(decisions, "; ")
	}
	return Summary{ArchitectureSummary: summary}, nil
}

// buildPrompt renders the aggregate context into the instruction both
// model-backed providers send.
func buildPrompt(decisions []string, alternatives []models.Alternative, logs []models.OtaLog) string {
	var b strings.Builder
	b.WriteString("You are analyzing the development history of a branch.\n\n")

	b.WriteString("Decisions made:\n")
	for _, d := range decisions {
		fmt.Fprintf(&b, "- %s\n", d)
	}

	if len(alternatives) > 0 {
		b.WriteString("\nRejected alternatives:\n")
		for _, alt := range alternatives {
			fmt.Fprintf(&b, "- %s (rejected: %s)\n", alt.What, alt.WhyRejected)
		}
	}

	// Cap the log tail so small-context models still fit.
	tail := logs
	if len(tail) > 10 {
		tail = tail[len(tail)-10:]
	}
	if len(tail) > 0 {
		b.WriteString("\nWork log:\n")
		for _, log := range tail {
			fmt.Fprintf(&b, "---\nThought: %s\nAction: %s\nResult: %s\n", log.Thought, log.Action, log.Result)
		}
	}

	b.WriteString("\nCreate a summary with:\n")
	b.WriteString("1. \"key_insights\": list of important learnings (max 3)\n")
	b.WriteString("2. \"architecture_summary\": one sentence summary\n")
	b.WriteString("\nReturn ONLY valid JSON, no other text.\n")
	return b.String()
}

// parseResponse extracts the Summary JSON from a model response,
// tolerating markdown code fences and surrounding prose.
func parseResponse(response string) (Summary, error) {
	text := response
	if idx := strings.Index(text, "```json"); idx >= 0 {
		text = text[idx+len("```json"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
	} else if idx := strings.Index(text, "```"); idx >= 0 {
		text = text[idx+len("```"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
	}
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "{") {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start < 0 || end <= start {
			return Summary{}, fmt.Errorf("no JSON object in response")
		}
		text = text[start : end+1]
	}

	var summary Summary
	if err := json.Unmarshal([]byte(text), &summary); err != nil {
		return Summary{}, fmt.Errorf("parse model response: %w", err)
	}
	return summary, nil
}
