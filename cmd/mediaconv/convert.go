// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mediaconv/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert one media file with an output-format preset",
	Long: `Convert runs ffmpeg on a single media file, writing the output next to it
with the extension replaced by the target format. An existing output file
is overwritten. Interrupting mediaconv kills the running conversion.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	addParamFlags(convertCmd)

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	s, err := newSession(nil, true)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.checkTool(); err != nil {
		return err
	}
	if err := s.planner.SelectTarget(args[0]); err != nil {
		return err
	}
	if err := applyParamFlags(cmd, s.planner); err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("to")
	attempt, err := s.planner.StartConversion(format)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "running: %s\n", attempt.Invocation)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	status, err := attempt.Wait(ctx)
	if ctx.Err() != nil {
		if kerr := s.planner.KillActiveProcess(); kerr != nil {
			return kerr
		}
		status, err = attempt.Wait(context.Background())
	}

	switch status {
	case types.StatusSucceeded:
		return nil
	case types.StatusKilled:
		return fmt.Errorf("conversion of %s killed", args[0])
	default:
		return fmt.Errorf("conversion of %s failed: %w", args[0], err)
	}
}
