// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mediaconv/internal/dirlist"
	"github.com/pdiddy/mediaconv/internal/menu"
	"github.com/pdiddy/mediaconv/internal/planner"
	"github.com/pdiddy/mediaconv/internal/preset"
)

var menuCmd = &cobra.Command{
	Use:   "menu [dir]",
	Short: "Open the interactive conversion menu on a directory",
	Long: `Menu lists a directory and opens an interactive session on one of its
media files (the --file flag, otherwise the first media file). Commands are
read one per line; type ? for help.

The menu refuses to open when the directory holds no media files.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringP("file", "f", "", "file to convert (name in dir or path)")

	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	_, exts, err := loadPresets(cfg)
	if err != nil {
		return err
	}
	listing, err := dirlist.New(dir, exts, os.Stdout)
	if err != nil {
		return err
	}
	if !listing.HasMedia() {
		return fmt.Errorf("no media files in %s", listing.Dir())
	}

	target, err := pickTarget(cmd, listing, exts)
	if err != nil {
		return err
	}

	s, err := newSession(listing, true)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.checkTool(); err != nil {
		return err
	}
	if err := s.planner.SelectTarget(target); err != nil {
		return err
	}
	if err := listing.Print(os.Stdout); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m, err := menu.New(s.planner, os.Stdin, os.Stdout, s.logger)
	if err != nil {
		return err
	}
	if err := m.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	if ctx.Err() != nil {
		stop()
		return killAndWait(s.planner)
	}
	return waitIdle(s.planner)
}

// pickTarget resolves --file, or falls back to the first media file.
func pickTarget(cmd *cobra.Command, l *dirlist.Listing, exts preset.Extensions) (string, error) {
	name, _ := cmd.Flags().GetString("file")
	if name == "" {
		return l.MediaPaths()[0], nil
	}

	path, err := l.Resolve(name)
	if err != nil {
		return "", err
	}
	if !exts.Has(path) {
		return "", fmt.Errorf("%w: %s", planner.ErrUnsupportedFormat, name)
	}
	if err := l.Mark(path); err != nil {
		return "", err
	}
	return path, nil
}

// waitIdle blocks until every started conversion has finished and been
// recorded. An interrupt kills the tracked one.
func waitIdle(p *planner.Planner) error {
	if p.Pending() == 0 {
		return nil
	}
	fmt.Fprintln(os.Stderr, "waiting for running conversions (interrupt to kill)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := p.Wait(ctx)
	stop()
	if err == nil {
		return nil
	}
	return killAndWait(p)
}

// killAndWait kills the tracked conversion and waits for its outcome to be
// recorded. Another interrupt abandons whatever is still running.
func killAndWait(p *planner.Planner) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := p.KillActiveProcess(); err != nil {
		return err
	}
	if err := p.Wait(ctx); err != nil {
		return fmt.Errorf("abandoned %d running conversion(s)", p.Pending())
	}
	return nil
}
