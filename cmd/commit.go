package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pders01/gitcontext/internal/models"
)

var (
	commitDecisions    []string
	commitAlternatives []string
)

var commitCmd = &cobra.Command{
	Use:   "commit <message>",
	Short: "Commit the staged OTA logs as a new context commit",
	Long: `Create a commit from the staged OTA logs plus any decisions and
rejected alternatives given on the command line.

Alternatives use the form "what::why it was rejected".`,
	Args: cobra.ExactArgs(1),
	RunE: runCommit,
}

func init() {
	rootCmd.AddCommand(commitCmd)

	commitCmd.Flags().StringArrayVarP(&commitDecisions, "decision", "d", nil, "a decision made (repeatable)")
	commitCmd.Flags().StringArrayVarP(&commitAlternatives, "alternative", "a", nil, "rejected alternative as what::why (repeatable)")
}

func runCommit(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	alternatives := make([]models.Alternative, 0, len(commitAlternatives))
	for _, raw := range commitAlternatives {
		what, why, ok := strings.Cut(raw, "::")
		if !ok {
			return fmt.Errorf("invalid alternative %q: expected what::why", raw)
		}
		alternatives = append(alternatives, models.Alternative{What: what, WhyRejected: why})
	}

	commit, err := eng.Commit(args[0], commitDecisions, alternatives)
	if err != nil {
		// The commit may have been persisted even though cleanup failed.
		// Re-running commit would duplicate the staged logs, so report
		// success with a warning instead of inviting a retry.
		if commit == nil {
			return err
		}
		fmt.Printf("✓ Commit %s: %s\n", commit.ID, commit.Message)
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'gitcontext ota discard' before the next commit")
		return nil
	}

	fmt.Printf("✓ Commit %s: %s\n", commit.ID, commit.Message)
	if len(commit.Decisions) > 0 {
		fmt.Printf("  Decisions: %d\n", len(commit.Decisions))
	}
	if len(commit.OtaLogs) > 0 {
		fmt.Printf("  OTA logs:  %d\n", len(commit.OtaLogs))
	}
	return nil
}
