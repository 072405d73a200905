// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     config
// Description: TOML configuration loading with defaults and env expansion
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the complete Cicero configuration
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Classifier ClassifierConfig `toml:"classifier"`
	Pipeline   PipelineConfig   `toml:"pipeline"`
	Learning   LearningConfig   `toml:"learning"`
	Cloud      CloudConfig      `toml:"cloud"`
	Server     ServerConfig     `toml:"server"`
	Store      StoreConfig      `toml:"store"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name"`
	DataDir   string `toml:"data_dir"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// ClassifierConfig holds statistical classifier settings
type ClassifierConfig struct {
	ModelPath string `toml:"model_path"`
}

// PipelineConfig holds enhancement pipeline toggles
type PipelineConfig struct {
	RemoveFillers  *bool `toml:"remove_fillers"`
	AutoPunctuate  *bool `toml:"auto_punctuate"`
	AutoCapitalize *bool `toml:"auto_capitalize"`
}

// LearningConfig holds learned-pattern store settings
type LearningConfig struct {
	Enabled             bool    `toml:"enabled"`
	StorePath           string  `toml:"store_path"`
	MinFrequency        int     `toml:"min_frequency"`
	SimilarityThreshold float64 `toml:"similarity_threshold"`
}

// CloudConfig holds cloud rewrite settings
type CloudConfig struct {
	Enabled       bool            `toml:"enabled"`
	Provider      string          `toml:"provider"`
	APIKey        string          `toml:"api_key"`
	Timeout       Duration        `toml:"timeout"`
	EnabledByType map[string]bool `toml:"enabled_by_type"`
	ClaudeBaseURL string          `toml:"claude_base_url"`
	ClaudeModel   string          `toml:"claude_model"`
	OpenAIBaseURL string          `toml:"openai_base_url"`
	OpenAIModel   string          `toml:"openai_model"`
}

// ServerConfig holds REST server settings
type ServerConfig struct {
	Host         string   `toml:"host"`
	Port         int      `toml:"port"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// StoreConfig holds classification log persistence settings
type StoreConfig struct {
	EnablePersistence bool   `toml:"enable_persistence"`
	LogDBPath         string `toml:"log_db_path"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// RemoveFillersEnabled reports the filler-removal toggle (default on)
func (p PipelineConfig) RemoveFillersEnabled() bool {
	return p.RemoveFillers == nil || *p.RemoveFillers
}

// AutoPunctuateEnabled reports the auto-punctuation toggle (default on)
func (p PipelineConfig) AutoPunctuateEnabled() bool {
	return p.AutoPunctuate == nil || *p.AutoPunctuate
}

// AutoCapitalizeEnabled reports the auto-capitalization toggle (default on)
func (p PipelineConfig) AutoCapitalizeEnabled() bool {
	return p.AutoCapitalize == nil || *p.AutoCapitalize
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from CICERO_CONFIG or default locations,
// falling back to pure defaults when no file exists
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("CICERO_CONFIG")
	if path == "" {
		defaultPaths := []string{
			"./configs/cicero.toml",
			"./cicero.toml",
			filepath.Join(os.Getenv("HOME"), ".config/cicero/cicero.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}

	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.Name == "" {
		c.General.Name = "cicero"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	if c.Classifier.ModelPath == "" {
		c.Classifier.ModelPath = filepath.Join(c.General.DataDir, "models", "doctype.yaml")
	}

	if c.Learning.StorePath == "" {
		c.Learning.StorePath = filepath.Join(c.General.DataDir, "patterns.db")
	}
	if c.Learning.MinFrequency == 0 {
		c.Learning.MinFrequency = 3
	}
	if c.Learning.SimilarityThreshold == 0 {
		c.Learning.SimilarityThreshold = 0.85
	}

	if c.Cloud.Provider == "" {
		c.Cloud.Provider = "claude"
	}
	if c.Cloud.Timeout.Duration == 0 {
		c.Cloud.Timeout.Duration = 30 * time.Second
	}
	if c.Cloud.EnabledByType == nil {
		c.Cloud.EnabledByType = map[string]bool{
			"email":    true,
			"message":  true,
			"document": true,
			"social":   true,
		}
	}
	if c.Cloud.ClaudeBaseURL == "" {
		c.Cloud.ClaudeBaseURL = "https://api.anthropic.com/v1"
	}
	if c.Cloud.ClaudeModel == "" {
		c.Cloud.ClaudeModel = "claude-3-5-haiku-20241022"
	}
	if c.Cloud.OpenAIBaseURL == "" {
		c.Cloud.OpenAIBaseURL = "https://api.openai.com/v1"
	}
	if c.Cloud.OpenAIModel == "" {
		c.Cloud.OpenAIModel = "gpt-4o-mini"
	}

	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 9300
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 30 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 120 * time.Second
	}

	if c.Store.LogDBPath == "" {
		c.Store.LogDBPath = filepath.Join(c.General.DataDir, "classifications.db")
	}
}

// expandEnvVars expands ${VAR} references in sensitive fields
func (c *Config) expandEnvVars() {
	c.Cloud.APIKey = os.ExpandEnv(c.Cloud.APIKey)
	if c.Cloud.APIKey == "" {
		// Environment fallbacks mirror the provider CLIs
		switch c.Cloud.Provider {
		case "claude":
			c.Cloud.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "openai":
			c.Cloud.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch strings.ToLower(c.General.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s (want text or json)", c.General.LogFormat)
	}
	if c.Cloud.Enabled {
		switch c.Cloud.Provider {
		case "claude", "openai":
		default:
			return fmt.Errorf("unknown cloud provider: %s", c.Cloud.Provider)
		}
	}
	if c.Learning.SimilarityThreshold < 0 || c.Learning.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be in [0,1], got %f", c.Learning.SimilarityThreshold)
	}
	return nil
}
