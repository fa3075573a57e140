// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mediaconv/internal/history"
	"github.com/pdiddy/mediaconv/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past conversions",
	Long: `History lists finished conversions recorded in the history database,
newest first. Filter by input file or outcome; output a table, JSON, or YAML.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries")
	historyCmd.Flags().String("input", "", "only conversions of this input path")
	historyCmd.Flags().String("status", "", "filter by outcome: succeeded, failed, killed")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")
	historyCmd.Flags().Bool("yaml", false, "output entries as YAML")
	historyCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	input, _ := cmd.Flags().GetString("input")
	status, _ := cmd.Flags().GetString("status")
	q := history.Query{Input: input, Status: types.AttemptStatus(status), Limit: limit}

	if status != "" && !q.Status.Terminal() {
		return fmt.Errorf("invalid --status %q: use succeeded, failed, or killed", status)
	}

	ctx := context.Background()
	if yamlOutput, _ := cmd.Flags().GetBool("yaml"); yamlOutput {
		return store.ExportYAML(ctx, q, os.Stdout)
	}

	records, err := store.Recent(ctx, q)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No conversions recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-19s  %-9s  %-5s  %-4s  %-10s  %s\n",
		"ID", "Finished", "Status", "Fmt", "Q", "Scale", "Input")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, r := range records {
		fmt.Fprintf(os.Stdout, "%-5d  %-19s  %-9s  %-5s  %-4d  %-10s  %s\n",
			r.ID, r.FinishedAt.Local().Format("2006-01-02 15:04:05"), r.Status, r.Format, r.Quality, r.Scale, r.Input)
	}
	return nil
}
