// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

const (
	// DefaultQuality is the quality a fresh planner starts with.
	DefaultQuality = 75
	// MinQuality and MaxQuality bound every quality value.
	MinQuality = 1
	MaxQuality = 100
	// DefaultScaleWidth is the width used by a reset scale descriptor.
	DefaultScaleWidth = 1920
)

// ToolFlags names the command-line flags of the external conversion tool.
// The defaults match ffmpeg.
type ToolFlags struct {
	// Overwrite answers "yes" to overwriting the output file (default "-y").
	Overwrite string `json:"overwrite" yaml:"overwrite" mapstructure:"overwrite"`

	// Input precedes the input path (default "-i").
	Input string `json:"input" yaml:"input" mapstructure:"input"`

	// Quality precedes the numeric quality value (default "-quality").
	Quality string `json:"quality" yaml:"quality" mapstructure:"quality"`

	// Scale precedes the scale value (default "-vf").
	Scale string `json:"scale" yaml:"scale" mapstructure:"scale"`

	// ScaleTemplate formats the scale descriptor into the scale value.
	// It must contain exactly one %s (default "scale=%s").
	ScaleTemplate string `json:"scale_template" yaml:"scale_template" mapstructure:"scale_template"`
}

// DefaultToolFlags returns the ffmpeg flag vocabulary.
func DefaultToolFlags() ToolFlags {
	return ToolFlags{
		Overwrite:     "-y",
		Input:         "-i",
		Quality:       "-quality",
		Scale:         "-vf",
		ScaleTemplate: "scale=%s",
	}
}

// WithDefaults fills empty fields from DefaultToolFlags.
func (f ToolFlags) WithDefaults() ToolFlags {
	d := DefaultToolFlags()
	if f.Overwrite == "" {
		f.Overwrite = d.Overwrite
	}
	if f.Input == "" {
		f.Input = d.Input
	}
	if f.Quality == "" {
		f.Quality = d.Quality
	}
	if f.Scale == "" {
		f.Scale = d.Scale
	}
	if f.ScaleTemplate == "" {
		f.ScaleTemplate = d.ScaleTemplate
	}
	return f
}

// ToolConfig holds settings for the external conversion tool.
type ToolConfig struct {
	// Binary is the executable name or path (default "ffmpeg").
	Binary string `json:"binary" yaml:"binary" mapstructure:"binary"`

	// Flags is the flag vocabulary used when assembling arguments.
	Flags ToolFlags `json:"flags" yaml:"flags" mapstructure:"flags"`
}

// PlannerConfig holds the initial parameter state of a planner.
type PlannerConfig struct {
	// DefaultQuality is the starting quality, within [1,100] (default 75).
	DefaultQuality int `json:"default_quality" yaml:"default_quality" mapstructure:"default_quality"`

	// PresetsFile is an optional YAML file replacing the built-in presets.
	PresetsFile string `json:"presets_file,omitempty" yaml:"presets_file,omitempty" mapstructure:"presets_file"`
}

// HistoryConfig holds settings for the conversion history store.
type HistoryConfig struct {
	// Enabled controls whether finished attempts are recorded.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// DBPath is the SQLite database file.
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`
}

// Config groups every setting mediaconv reads from its config file.
type Config struct {
	Tool     ToolConfig    `json:"tool" yaml:"tool" mapstructure:"tool"`
	Planner  PlannerConfig `json:"planner" yaml:"planner" mapstructure:"planner"`
	History  HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	LogLevel string        `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Tool: ToolConfig{
			Binary: "ffmpeg",
			Flags:  DefaultToolFlags(),
		},
		Planner: PlannerConfig{
			DefaultQuality: DefaultQuality,
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  "mediaconv-history.db",
		},
		LogLevel: "info",
	}
}

// Normalize fills unset fields with defaults and returns the result.
func (c Config) Normalize() Config {
	d := DefaultConfig()
	if c.Tool.Binary == "" {
		c.Tool.Binary = d.Tool.Binary
	}
	c.Tool.Flags = c.Tool.Flags.WithDefaults()
	if c.Planner.DefaultQuality == 0 {
		c.Planner.DefaultQuality = d.Planner.DefaultQuality
	}
	if c.History.DBPath == "" {
		c.History.DBPath = d.History.DBPath
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	return c
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Tool.Binary) == "" {
		return fmt.Errorf("tool.binary must not be empty")
	}
	q := c.Planner.DefaultQuality
	if q < MinQuality || q > MaxQuality {
		return fmt.Errorf("planner.default_quality %d outside [%d,%d]", q, MinQuality, MaxQuality)
	}
	if strings.Count(c.Tool.Flags.ScaleTemplate, "%s") != 1 {
		return fmt.Errorf("tool.flags.scale_template %q must contain exactly one %%s", c.Tool.Flags.ScaleTemplate)
	}
	return nil
}
