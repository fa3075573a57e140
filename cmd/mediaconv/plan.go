package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan <file>",
	Short: "Print the ffmpeg command for a conversion without running it",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

func init() {
	addParamFlags(planCmd)
	planCmd.Flags().Bool("json", false, "output the invocation as JSON")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	s, err := newSession(nil, false)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.planner.SelectTarget(args[0]); err != nil {
		return err
	}
	if err := applyParamFlags(cmd, s.planner); err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("to")
	inv, err := s.planner.BuildInvocation(args[0], format)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Executable string   `json:"executable"`
			Args       []string `json:"args"`
			Output     string   `json:"output"`
		}{inv.Executable, inv.Args, inv.Output})
	}

	fmt.Println(inv)
	return nil
}
