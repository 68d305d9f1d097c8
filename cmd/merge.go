package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	mergeNoSquash bool
	mergeInto     string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <branch>",
	Short: "Merge a branch's context into the current branch",
	Long: `Fold the named branch's unmerged commits into the current branch
(or into --into). By default the commits are squashed into one summary
commit synthesized by the configured summarizer; --no-squash replays
every commit individually instead.

Merging is incremental: a second merge only picks up commits made
since the first. The source branch is left intact.`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().BoolVar(&mergeNoSquash, "no-squash", false, "replay commits instead of squashing")
	mergeCmd.Flags().StringVar(&mergeInto, "into", "", "target branch (default: current branch)")
}

func runMerge(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	result, err := eng.Merge(args[0], mergeInto, !mergeNoSquash)
	if err != nil {
		return err
	}

	if !result.Merged {
		fmt.Printf("Nothing to merge: %s has no new commits for %s\n", result.Source, result.Target)
		return nil
	}

	if result.Squash != nil {
		s := result.Squash
		fmt.Printf("✓ Merged %s → %s (squashed)\n", result.Source, result.Target)
		fmt.Printf("  Decisions:        %d\n", len(s.Decisions))
		fmt.Printf("  Rejected:         %d\n", len(s.RejectedAlternatives))
		fmt.Printf("  Insights:         %d\n", len(s.KeyInsights))
		fmt.Printf("  Original commits: %d → 1\n", s.OriginalCommits)
		if s.Degraded {
			fmt.Println("  (summarizer unavailable, deterministic summary used)")
		}
		return nil
	}

	fmt.Printf("✓ Merged %s → %s (%d commits replayed)\n", result.Source, result.Target, len(result.NewCommits))
	return nil
}
