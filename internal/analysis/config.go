// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package analysis

import (
	"fmt"
	"time"
)

// Config holds analysis pipeline configuration.
type Config struct {
	// Workers is the number of concurrent analysis workers.
	Workers int

	// Topic is the message topic analysis jobs are published to.
	Topic string

	// QueueBuffer is the in-memory queue capacity. Submissions beyond the
	// buffer block until a worker drains the queue.
	QueueBuffer int

	// Provider configures the upstream analysis service client.
	Provider ProviderConfig
}

// ProviderConfig holds configuration for the HTTP analysis provider.
type ProviderConfig struct {
	// BaseURL is the analysis service base URL, e.g. "http://localhost:9090".
	BaseURL string

	// APIKey is sent as a bearer token when non-empty.
	APIKey string

	// Timeout bounds a single provider request.
	Timeout time.Duration

	// RateLimit is the sustained request rate allowed against the provider,
	// in requests per second.
	RateLimit float64

	// RateBurst is the burst size allowed above the sustained rate.
	RateBurst int
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() Config {
	return Config{
		Workers:     4,
		Topic:       "analysis.jobs",
		QueueBuffer: 256,
		Provider: ProviderConfig{
			Timeout:   60 * time.Second,
			RateLimit: 5,
			RateBurst: 10,
		},
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Topic == "" {
		return fmt.Errorf("topic must not be empty")
	}
	if c.QueueBuffer < 0 {
		return fmt.Errorf("queue buffer must not be negative, got %d", c.QueueBuffer)
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("provider timeout must be positive, got %s", c.Provider.Timeout)
	}
	if c.Provider.RateLimit <= 0 {
		return fmt.Errorf("provider rate limit must be positive, got %f", c.Provider.RateLimit)
	}
	if c.Provider.RateBurst < 1 {
		return fmt.Errorf("provider rate burst must be at least 1, got %d", c.Provider.RateBurst)
	}
	return nil
}
