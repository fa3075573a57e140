// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mediaconv CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mediaconv/internal/logging"
	"github.com/pdiddy/mediaconv/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg is the configuration loaded before any subcommand runs.
var cfg types.Config

// rootCmd is the base command for the mediaconv CLI.
var rootCmd = &cobra.Command{
	Use:   "mediaconv",
	Short: "Convert media files in a directory with ffmpeg presets",
	Long: `mediaconv lists the media files of a directory and converts them with
ffmpeg. Each output format has a preset of extra ffmpeg arguments; quality
and scale are adjustable per session.

Use "menu" for an interactive session on a directory, "convert" for a
single conversion, and "plan" to print the ffmpeg command without running it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")

		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded

		if err := logging.Init(cfg.LogLevel, verbose); err != nil {
			return err
		}
		if used := viper.ConfigFileUsed(); used != "" {
			log.Debug().Str("file", used).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mediaconv.yaml or ~/.config/mediaconv/mediaconv.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mediaconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mediaconv"))
		}
	}

	setDefaults()

	viper.SetEnvPrefix("MEDIACONV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Reading config file:", err)
		}
	}
}

// setDefaults registers every key so environment variables can override it.
func setDefaults() {
	d := types.DefaultConfig()
	viper.SetDefault("tool.binary", d.Tool.Binary)
	viper.SetDefault("tool.flags.overwrite", d.Tool.Flags.Overwrite)
	viper.SetDefault("tool.flags.input", d.Tool.Flags.Input)
	viper.SetDefault("tool.flags.quality", d.Tool.Flags.Quality)
	viper.SetDefault("tool.flags.scale", d.Tool.Flags.Scale)
	viper.SetDefault("tool.flags.scale_template", d.Tool.Flags.ScaleTemplate)
	viper.SetDefault("planner.default_quality", d.Planner.DefaultQuality)
	viper.SetDefault("planner.presets_file", "")
	viper.SetDefault("history.enabled", d.History.Enabled)
	viper.SetDefault("history.db_path", d.History.DBPath)
	viper.SetDefault("log_level", d.LogLevel)
}

func loadConfig() (types.Config, error) {
	var c types.Config
	if err := viper.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
