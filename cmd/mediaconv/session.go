// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/mediaconv/internal/history"
	"github.com/pdiddy/mediaconv/internal/logging"
	"github.com/pdiddy/mediaconv/internal/notify"
	"github.com/pdiddy/mediaconv/internal/planner"
	"github.com/pdiddy/mediaconv/internal/preset"
	"github.com/pdiddy/mediaconv/internal/process"
	"github.com/pdiddy/mediaconv/pkg/types"
)

// session wires a planner to its collaborators for one CLI invocation.
type session struct {
	planner *planner.Planner
	runner  *process.Runner
	history *history.Store
	logger  zerolog.Logger
}

// loadPresets returns the configured preset table and extension set.
func loadPresets(c types.Config) (*preset.Table, preset.Extensions, error) {
	if c.Planner.PresetsFile == "" {
		return preset.Default(), preset.DefaultExtensions(), nil
	}
	return preset.LoadFile(c.Planner.PresetsFile)
}

// newSession builds a planner from cfg. listing may be nil.
func newSession(listing planner.Redisplayer, withHistory bool) (*session, error) {
	logger := logging.WithComponent("mediaconv")

	table, exts, err := loadPresets(cfg)
	if err != nil {
		return nil, err
	}

	s := &session{
		runner: process.NewRunner(logger),
		logger: logger,
	}
	s.runner.Stderr = os.Stderr

	if withHistory && cfg.History.Enabled {
		store, err := history.Open(cfg.History.DBPath)
		if err != nil {
			return nil, err
		}
		s.history = store
	}

	p, err := planner.New(planner.Options{
		Binary:         cfg.Tool.Binary,
		Flags:          cfg.Tool.Flags,
		Presets:        table,
		Extensions:     exts,
		DefaultQuality: cfg.Planner.DefaultQuality,
		Spawner:        s.runner,
		Notifier:       notify.NewWriter(os.Stdout, logger),
		Listing:        listing,
		OnFinish:       s.record,
		Logger:         &logger,
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	s.planner = p
	return s, nil
}

func (s *session) record(r types.AttemptRecord) {
	if s.history == nil {
		return
	}
	if _, err := s.history.Record(context.Background(), r); err != nil {
		s.logger.Warn().Err(err).Msg("recording history failed")
	}
}

// checkTool fails early when the conversion tool is not installed.
func (s *session) checkTool() error {
	return s.runner.Available(cfg.Tool.Binary)
}

func (s *session) Close() {
	if s.history != nil {
		s.history.Close()
	}
}

// addParamFlags registers the quality and scale flags shared by plan and convert.
func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("to", "t", "", "output format (preset key, e.g. png)")
	cmd.Flags().IntP("quality", "q", 0, "quality 1-100 (default from config)")
	cmd.Flags().Int("width", 0, "output width; height follows the aspect ratio")
	cmd.Flags().Int("height", 0, "output height; width follows the aspect ratio")
	cmd.MarkFlagsMutuallyExclusive("width", "height")
	_ = cmd.MarkFlagRequired("to")
}

// applyParamFlags copies explicitly set flags onto the planner.
func applyParamFlags(cmd *cobra.Command, p *planner.Planner) error {
	if cmd.Flags().Changed("quality") {
		q, _ := cmd.Flags().GetInt("quality")
		if err := p.SetQuality(q); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("width") {
		w, _ := cmd.Flags().GetInt("width")
		if err := p.SetScaleByWidth(w); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("height") {
		h, _ := cmd.Flags().GetInt("height")
		if err := p.SetScaleByHeight(h); err != nil {
			return err
		}
	}
	return nil
}
