package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mediaconv/internal/dirlist"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List files in a directory, tagging media files",
	Long: `List prints the regular files of a directory (default: current directory).
Files recognized as media by their extension are tagged "m".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().Bool("media", false, "print only media file paths, one per line")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	_, exts, err := loadPresets(cfg)
	if err != nil {
		return err
	}
	l, err := dirlist.New(dir, exts, nil)
	if err != nil {
		return err
	}

	mediaOnly, _ := cmd.Flags().GetBool("media")
	if mediaOnly {
		for _, p := range l.MediaPaths() {
			fmt.Println(p)
		}
		return nil
	}
	return l.Print(os.Stdout)
}
