package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <branch>",
	Short: "Switch to a different context branch",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckout,
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
}

func runCheckout(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	if err := eng.SwitchBranch(args[0]); err != nil {
		return err
	}
	fmt.Printf("✓ Switched to branch %s\n", args[0])
	return nil
}
