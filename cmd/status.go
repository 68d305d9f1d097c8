package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"
)

var (
	statusJSON bool
	statusToon bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current branch and staging state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output as JSON")
	statusCmd.Flags().BoolVar(&statusToon, "toon", false, "Output in LLM-friendly toon format")
}

type statusView struct {
	CurrentBranch string   `json:"current_branch"`
	Commits       int      `json:"commits"`
	LatestCommit  string   `json:"latest_commit,omitempty"`
	LatestMessage string   `json:"latest_message,omitempty"`
	StagedLogs    int      `json:"staged_logs"`
	Branches      []string `json:"branches"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	status, err := eng.Status()
	if err != nil {
		return err
	}

	if statusJSON || statusToon {
		view := statusView{
			CurrentBranch: status.CurrentBranch,
			Commits:       status.Commits,
			LatestCommit:  status.LatestCommitID,
			LatestMessage: status.LatestMessage,
			StagedLogs:    status.StagedLogs,
			Branches:      status.Branches,
		}
		return printView(view, statusToon)
	}

	fmt.Printf("On branch %s\n", status.CurrentBranch)
	fmt.Printf("Commits: %d\n", status.Commits)
	if status.LatestCommitID != "" {
		fmt.Printf("Latest:  %s %s\n", status.LatestCommitID, status.LatestMessage)
	}
	if status.StagedLogs > 0 {
		fmt.Printf("Staged OTA logs: %d (commit or discard them)\n", status.StagedLogs)
	} else {
		fmt.Println("Staging area clean")
	}
	fmt.Printf("Branches: %s\n", strings.Join(status.Branches, ", "))
	return nil
}

// printView emits a machine-readable rendering of v: toon when asked
// for, indented JSON otherwise.
func printView(v any, toon bool) error {
	if toon {
		output, err := gotoon.Encode(v)
		if err != nil {
			return fmt.Errorf("failed to encode toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
