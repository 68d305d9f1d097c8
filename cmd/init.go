package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize context tracking in the current repository",
	Long: `Create the .gitcontext directory with an empty main branch.

Run this once per repository before staging OTA logs or committing
context.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	if err := eng.Init(); err != nil {
		return err
	}

	fmt.Println("✓ Initialized context repository in .gitcontext/")
	fmt.Println("  You can now use: gitcontext ota add / gitcontext commit")
	return nil
}
