package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mediaconv/internal/preset"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Show the output-format presets and media extensions",
	Long: `Presets prints each output format with its menu key, description, and
extra ffmpeg arguments. With --export the table is written as a YAML preset
file that can be edited and set as planner.presets_file.`,
	Args: cobra.NoArgs,
	RunE: runPresets,
}

func init() {
	presetsCmd.Flags().Bool("export", false, "write the preset table as YAML")

	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	table, exts, err := loadPresets(cfg)
	if err != nil {
		return err
	}

	export, _ := cmd.Flags().GetBool("export")
	if export {
		data, err := preset.Marshal(table, exts)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	fmt.Fprintf(os.Stdout, "%-3s  %-2s  %-5s  %-16s  %s\n", "Key", "", "Fmt", "Description", "Arguments")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 72))
	for _, p := range table.All() {
		fmt.Fprintf(os.Stdout, "%-3s  %-2s  %-5s  %-16s  %s\n",
			p.MenuKey, p.Glyph, p.Key, p.Description, strings.Join(quoteAll(p.Args), " "))
	}
	fmt.Fprintf(os.Stdout, "\nMedia extensions: %s\n", strings.Join(exts.Sorted(), " "))
	return nil
}

func quoteAll(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if strings.ContainsAny(a, " \t") {
			a = fmt.Sprintf("%q", a)
		}
		out[i] = a
	}
	return out
}
