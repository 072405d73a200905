// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     cmd
// Description: Root command and shared configuration loading
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/cicero/pkg/core/config"
	"github.com/msto63/cicero/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cicero",
	Short: "Cicero - dictation enhancement for meinDENKWERK",
	Long: `Cicero turns raw speech-to-text output into polished writing.

It classifies the target document type, excises self-corrections,
removes filler words, fixes punctuation and capitalization, formats
per document type and can optionally apply learned corrections and a
cloud rewrite.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/cicero.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration and applies it to the process-wide
// logging defaults
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	level := logging.ParseLevel(cfg.General.LogLevel)
	if verbose {
		level = logging.LevelDebug
	}
	format := logging.FormatText
	if cfg.General.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.Configure(logging.Config{
		Level:  level,
		Format: format,
		Output: os.Stderr,
	})

	return cfg, nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
