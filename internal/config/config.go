// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds settings for the memory server. Environment variables
// use the CONTEXTMEM_ prefix, e.g. CONTEXTMEM_DB_PATH.
type Config struct {
	DBPath        string `envconfig:"DB_PATH" default:""`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	ServerName    string `envconfig:"SERVER_NAME" default:"contextmem"`
	ServerVersion string `envconfig:"SERVER_VERSION" default:"0.1.0"`

	// DefaultFetchLimit caps fetch_memory results when no limit is given.
	DefaultFetchLimit int `envconfig:"DEFAULT_FETCH_LIMIT" default:"20"`

	// PromptMaxMemories bounds the digest used by craft_ai_prompt.
	PromptMaxMemories int `envconfig:"PROMPT_MAX_MEMORIES" default:"10"`
}

// New creates a Config from environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("CONTEXTMEM", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}
	if cfg.DefaultFetchLimit <= 0 {
		return nil, fmt.Errorf("DEFAULT_FETCH_LIMIT must be positive, got %d", cfg.DefaultFetchLimit)
	}
	if cfg.PromptMaxMemories <= 0 {
		return nil, fmt.Errorf("PROMPT_MAX_MEMORIES must be positive, got %d", cfg.PromptMaxMemories)
	}
	return &cfg, nil
}

// DefaultDBPath is the database location used when nothing is configured.
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".contextmem", "memory.db")
}
