// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package match

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/pitchmatch/internal/media"
)

// Engine exposes the four matching operations over a DataProvider.
// It is safe for concurrent use: all operations are read-only and hold no
// state between calls.
type Engine struct {
	config   *Config
	provider DataProvider
	logger   zerolog.Logger
}

// NewEngine creates a matching engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, provider DataProvider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("data provider is required")
	}

	return &Engine{
		config:   cfg,
		provider: provider,
		logger:   logger.With().Str("component", "match").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// FindSimilar returns items semantically similar to the reference item.
// The reference must be analyzed (ErrNotAnalyzed otherwise) and is never
// part of the result. By default the reference owner's other items are
// excluded as well; SearchOptions.IncludeOwnItems keeps them.
func (e *Engine) FindSimilar(ctx context.Context, itemID string, opts SearchOptions) ([]SimilarityResult, error) {
	start := time.Now()
	logger := e.operationLogger("find_similar").With().Str("item_id", itemID).Logger()

	ref, err := e.analyzedItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	var pool []media.Item
	if opts.IncludeOwnItems {
		pool, err = e.provider.ListComplete(ctx)
	} else {
		pool, err = e.provider.ListCompleteExcluding(ctx, ref.OwnerID)
	}
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	pool = excludeItem(pool, ref.ID)

	results, err := ScorePool(ref.Embedding, pool, PoolOptions{
		Limit:        e.clampLimit(opts.Limit),
		ScoreMinimum: e.floorOrDefault(opts.ScoreMinimum),
		Theme:        opts.Theme,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("candidates", len(pool)).
		Int("returned", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("similarity search complete")

	return results, nil
}

// analyzedItem fetches an item and enforces the analysis precondition.
func (e *Engine) analyzedItem(ctx context.Context, itemID string) (*media.Item, error) {
	item, err := e.provider.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", itemID, err)
	}
	if !item.Analyzed() {
		return nil, fmt.Errorf("item %s: %w", itemID, ErrNotAnalyzed)
	}
	return item, nil
}

// operationLogger returns a logger tagged with the operation and a fresh
// request ID for tracing.
func (e *Engine) operationLogger(op string) zerolog.Logger {
	return e.logger.With().
		Str("operation", op).
		Str("request_id", uuid.New().String()[:8]).
		Logger()
}

// clampLimit applies the default and hard cap to a caller-supplied limit.
func (e *Engine) clampLimit(limit int) int {
	if limit <= 0 {
		return e.config.MaxResults
	}
	if limit > e.config.MaxLimit {
		return e.config.MaxLimit
	}
	return limit
}

// floorOrDefault substitutes the configured similarity floor for a zero
// value. Zero doubles as "unset", so an explicit zero floor is expressed
// as a negative value; negative floors pass through.
func (e *Engine) floorOrDefault(scoreMinimum float64) float64 {
	if scoreMinimum == 0 {
		return e.config.ScoreMinimum
	}
	return scoreMinimum
}

// qualityOrDefault returns the item's quality score or the configured
// substitute when absent.
func (e *Engine) qualityOrDefault(q *float64) float64 {
	if q == nil {
		return e.config.DefaultQuality
	}
	return *q
}

// excludeItem drops the item with the given ID from the pool.
func excludeItem(pool []media.Item, itemID string) []media.Item {
	filtered := pool[:0:0]
	for i := range pool {
		if pool[i].ID != itemID {
			filtered = append(filtered, pool[i])
		}
	}
	return filtered
}
