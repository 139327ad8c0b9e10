// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

// Package config loads application configuration with a clear precedence:
// environment variables override the optional YAML config file, which
// overrides built-in defaults.
package config

import (
	"fmt"
	"time"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Storage  StorageConfig  `koanf:"storage"`
	Match    MatchConfig    `koanf:"match"`
	Analysis AnalysisConfig `koanf:"analysis"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// StorageConfig selects and configures the item store.
type StorageConfig struct {
	// Backend is "memory" or "badger".
	Backend string `koanf:"backend"`

	// Path is the BadgerDB directory (badger backend only).
	Path string `koanf:"path"`
}

// MatchConfig holds matching engine tunables.
type MatchConfig struct {
	ScoreMinimum  float64 `koanf:"score_minimum"`
	MaxResults    int     `koanf:"max_results"`
	MaxLimit      int     `koanf:"max_limit"`
	ProfileWindow int     `koanf:"profile_window"`
}

// AnalysisConfig holds analysis pipeline settings.
type AnalysisConfig struct {
	Workers     int           `koanf:"workers"`
	QueueBuffer int           `koanf:"queue_buffer"`
	ProviderURL string        `koanf:"provider_url"`
	APIKey      string        `koanf:"api_key"`
	Timeout     time.Duration `koanf:"timeout"`
	RateLimit   float64       `koanf:"rate_limit"`
	RateBurst   int           `koanf:"rate_burst"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with production-ready defaults. These are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8420,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Backend: "badger",
			Path:    "/data/pitchmatch",
		},
		Match: MatchConfig{
			ScoreMinimum:  0.5,
			MaxResults:    10,
			MaxLimit:      50,
			ProfileWindow: 5,
		},
		Analysis: AnalysisConfig{
			Workers:     4,
			QueueBuffer: 256,
			ProviderURL: "http://localhost:9090",
			Timeout:     60 * time.Second,
			RateLimit:   5,
			RateBurst:   10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be in [1, 65535], got %d", c.Server.Port)
	}
	switch c.Storage.Backend {
	case "memory":
	case "badger":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path required for badger backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q (want memory or badger)", c.Storage.Backend)
	}
	if c.Match.ScoreMinimum < -1 || c.Match.ScoreMinimum > 1 {
		return fmt.Errorf("match score minimum must be in [-1, 1], got %f", c.Match.ScoreMinimum)
	}
	if c.Match.MaxResults < 1 {
		return fmt.Errorf("match max results must be at least 1, got %d", c.Match.MaxResults)
	}
	if c.Match.MaxLimit < c.Match.MaxResults {
		return fmt.Errorf("match max limit %d must not be below max results %d", c.Match.MaxLimit, c.Match.MaxResults)
	}
	if c.Match.ProfileWindow < 1 {
		return fmt.Errorf("match profile window must be at least 1, got %d", c.Match.ProfileWindow)
	}
	if c.Analysis.Workers < 1 {
		return fmt.Errorf("analysis workers must be at least 1, got %d", c.Analysis.Workers)
	}
	if c.Analysis.ProviderURL == "" {
		return fmt.Errorf("analysis provider URL must not be empty")
	}
	return nil
}
