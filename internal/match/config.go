// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package match

import "fmt"

// Config contains all tunables for the matching engine. Thresholds that
// used to live as ambient constants are injected here so every component
// receives its configuration explicitly.
type Config struct {
	// ScoreMinimum is the default similarity floor for searches.
	// Default: 0.5.
	ScoreMinimum float64 `json:"score_minimum"`

	// MaxResults is the default result limit per operation.
	// Default: 10.
	MaxResults int `json:"max_results"`

	// MaxLimit is the hard cap on caller-supplied limits.
	// Default: 50.
	MaxLimit int `json:"max_limit"`

	// ProfileWindow is how many of the user's most recent analyzed items
	// feed the taste profile. A small window keeps the profile responsive
	// to current interests rather than diluted by history.
	// Default: 5.
	ProfileWindow int `json:"profile_window"`

	// TopThemes is how many preferred themes to derive from the profile
	// window. Default: 3.
	TopThemes int `json:"top_themes"`

	// SimilarityWeight and QualityWeight blend the final recommendation
	// score: final = SimilarityWeight*similarity + QualityWeight*quality.
	// Defaults: 0.7 and 0.3.
	SimilarityWeight float64 `json:"similarity_weight"`
	QualityWeight    float64 `json:"quality_weight"`

	// DefaultQuality substitutes for an absent quality score.
	// Default: 0.5.
	DefaultQuality float64 `json:"default_quality"`

	// ComplementarityThreshold is the collaborator cutoff: candidates at
	// or below it are too different to collaborate. Default: 0.3.
	ComplementarityThreshold float64 `json:"complementarity_threshold"`

	// CommonWeight and UniqueWeight combine the shared-keyword and
	// unique-keyword ratios into the complementarity score. These are
	// empirical constants kept for behavioral parity.
	// Defaults: 0.6 and 0.4.
	CommonWeight float64 `json:"common_weight"`
	UniqueWeight float64 `json:"unique_weight"`

	// CollaboratorPoolSize widens the similarity shortlist so keyword
	// analysis has enough candidates. Default: 20.
	CollaboratorPoolSize int `json:"collaborator_pool_size"`

	// CollaborationBase, ThemeAdjacencyBonus and QualityBonusWeight build
	// the heuristic collaboration score: base, +bonus for adjacent themes,
	// +weight*average quality. Defaults: 0.5, 0.2, 0.3.
	CollaborationBase   float64 `json:"collaboration_base"`
	ThemeAdjacencyBonus float64 `json:"theme_adjacency_bonus"`
	QualityBonusWeight  float64 `json:"quality_bonus_weight"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		ScoreMinimum:             0.5,
		MaxResults:               10,
		MaxLimit:                 50,
		ProfileWindow:            5,
		TopThemes:                3,
		SimilarityWeight:         0.7,
		QualityWeight:            0.3,
		DefaultQuality:           0.5,
		ComplementarityThreshold: 0.3,
		CommonWeight:             0.6,
		UniqueWeight:             0.4,
		CollaboratorPoolSize:     20,
		CollaborationBase:        0.5,
		ThemeAdjacencyBonus:      0.2,
		QualityBonusWeight:       0.3,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.ScoreMinimum < -1 || c.ScoreMinimum > 1 {
		return fmt.Errorf("score_minimum must be in [-1, 1], got %f", c.ScoreMinimum)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be positive, got %d", c.MaxResults)
	}
	if c.MaxLimit < c.MaxResults {
		return fmt.Errorf("max_limit must be >= max_results, got %d < %d", c.MaxLimit, c.MaxResults)
	}
	if c.ProfileWindow < 1 {
		return fmt.Errorf("profile_window must be positive, got %d", c.ProfileWindow)
	}
	if c.TopThemes < 1 {
		return fmt.Errorf("top_themes must be positive, got %d", c.TopThemes)
	}
	if c.SimilarityWeight < 0 || c.QualityWeight < 0 {
		return fmt.Errorf("blend weights must be non-negative, got %f and %f", c.SimilarityWeight, c.QualityWeight)
	}
	if c.DefaultQuality < 0 || c.DefaultQuality > 1 {
		return fmt.Errorf("default_quality must be in [0, 1], got %f", c.DefaultQuality)
	}
	if c.ComplementarityThreshold < 0 || c.ComplementarityThreshold >= 1 {
		return fmt.Errorf("complementarity_threshold must be in [0, 1), got %f", c.ComplementarityThreshold)
	}
	if c.CollaboratorPoolSize < 1 {
		return fmt.Errorf("collaborator_pool_size must be positive, got %d", c.CollaboratorPoolSize)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// All fields are value types
	clone := *c
	return &clone
}
