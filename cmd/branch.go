package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	branchFrom   string
	branchDelete bool
	branchJSON   bool
	branchToon   bool
)

var branchCmd = &cobra.Command{
	Use:   "branch [name]",
	Short: "List, create or delete context branches",
	Long: `Without arguments, list all branches and mark the current one.
With a name, create a new branch forked from the current branch (or
from --from). With --delete, archive the named branch and remove it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBranch,
}

func init() {
	rootCmd.AddCommand(branchCmd)

	branchCmd.Flags().StringVar(&branchFrom, "from", "", "parent branch (default: current branch)")
	branchCmd.Flags().BoolVarP(&branchDelete, "delete", "d", false, "archive and delete the named branch")
	branchCmd.Flags().BoolVar(&branchJSON, "json", false, "Output the branch list as JSON")
	branchCmd.Flags().BoolVar(&branchToon, "toon", false, "Output the branch list in LLM-friendly toon format")
}

type branchListView struct {
	Current  string   `json:"current"`
	Branches []string `json:"branches"`
}

func runBranch(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		if branchDelete {
			return fmt.Errorf("--delete requires a branch name")
		}
		names, current, err := eng.ListBranches()
		if err != nil {
			return err
		}
		if branchJSON || branchToon {
			return printView(branchListView{Current: current, Branches: names}, branchToon)
		}
		for _, name := range names {
			marker := "  "
			if name == current {
				marker = "* "
			}
			fmt.Println(marker + name)
		}
		return nil
	}

	name := args[0]
	if branchDelete {
		if err := eng.DeleteBranch(name); err != nil {
			return err
		}
		fmt.Printf("✓ Deleted branch %s (history archived)\n", name)
		return nil
	}

	if err := eng.CreateBranch(name, branchFrom); err != nil {
		return err
	}
	from := branchFrom
	if from == "" {
		from = "current branch"
	}
	fmt.Printf("✓ Created branch %s (from %s)\n", name, from)
	return nil
}
