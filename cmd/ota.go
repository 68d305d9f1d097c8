package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	otaThought string
	otaAction  string
	otaResult  string
	otaFiles   []string
)

var otaCmd = &cobra.Command{
	Use:   "ota",
	Short: "Work with staged OTA (thought/action/result) logs",
}

var otaAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Stage one OTA log entry",
	Long: `Record one unit of thought, action and result in the staging area.
Staged entries are captured by the next commit.`,
	RunE: runOtaAdd,
}

var otaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List staged OTA log entries",
	RunE:  runOtaList,
}

var otaDiscardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Drop all staged OTA log entries",
	RunE:  runOtaDiscard,
}

func init() {
	rootCmd.AddCommand(otaCmd)
	otaCmd.AddCommand(otaAddCmd, otaListCmd, otaDiscardCmd)

	otaAddCmd.Flags().StringVarP(&otaThought, "thought", "t", "", "what was being considered")
	otaAddCmd.Flags().StringVarP(&otaAction, "action", "a", "", "what was done")
	otaAddCmd.Flags().StringVarP(&otaResult, "result", "", "", "what happened")
	otaAddCmd.Flags().StringSliceVarP(&otaFiles, "files", "f", nil, "affected file paths")
	otaAddCmd.MarkFlagRequired("thought")
	otaAddCmd.MarkFlagRequired("action")
	otaAddCmd.MarkFlagRequired("result")
}

func runOtaAdd(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	log, err := eng.StageLog(otaThought, otaAction, otaResult, otaFiles)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Staged OTA log %s\n", log.ID)
	return nil
}

func runOtaList(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	logs, err := eng.StagedLogs()
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Println("No staged OTA logs")
		return nil
	}
	for _, log := range logs {
		fmt.Printf("%s  %s\n", log.ID, log.Timestamp.Format("2006-01-02 15:04:05"))
		fmt.Printf("  thought: %s\n", log.Thought)
		fmt.Printf("  action:  %s\n", log.Action)
		fmt.Printf("  result:  %s\n", log.Result)
	}
	return nil
}

func runOtaDiscard(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	dropped, err := eng.DiscardStaged()
	if err != nil {
		return err
	}
	fmt.Printf("✓ Discarded %d staged log(s)\n", dropped)
	return nil
}
