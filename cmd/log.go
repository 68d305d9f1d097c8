package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	logBranch string
	logLimit  int
	logJSON   bool
	logToon   bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show context commit history, newest first",
	RunE:  runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().StringVarP(&logBranch, "branch", "b", "", "branch to show (default: current branch)")
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 10, "number of commits to show")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "Output as JSON")
	logCmd.Flags().BoolVar(&logToon, "toon", false, "Output in LLM-friendly toon format")
}

func runLog(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	commits, err := eng.Log(logBranch, logLimit)
	if err != nil {
		return err
	}
	if logJSON || logToon {
		return printView(commits, logToon)
	}
	if len(commits) == 0 {
		fmt.Println("No commits yet")
		return nil
	}

	for _, commit := range commits {
		fmt.Printf("commit %s\n", commit.ID)
		fmt.Printf("Date:   %s\n", commit.Timestamp.Format("2006-01-02 15:04:05"))
		fmt.Printf("\n    %s\n\n", commit.Message)
		for _, d := range commit.Decisions {
			fmt.Printf("    • %s\n", d)
		}
		if len(commit.OtaLogs) > 0 {
			fmt.Printf("    (%d OTA logs)\n", len(commit.OtaLogs))
		}
		fmt.Println()
	}
	return nil
}
