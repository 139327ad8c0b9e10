// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package match

import (
	"fmt"
	"sort"

	"github.com/tomtom215/pitchmatch/internal/media"
)

// ScorePool scores a pre-filtered candidate pool against a reference vector
// and returns candidates above the similarity floor, sorted by score
// descending and truncated to the limit.
//
// The pool must contain only analyzed items (the caller selects candidates;
// this function only scores and ranks). A dimension mismatch on any
// candidate fails the whole call: it signals corrupt data, and a partial
// answer would hide it. Ties keep the pool's input order (stable sort):
// input order is the tie-break contract, so deterministic result ordering
// requires a deterministic fetch order.
func ScorePool(reference []float64, pool []media.Item, opts PoolOptions) ([]SimilarityResult, error) {
	if opts.Limit < 1 {
		return nil, fmt.Errorf("limit must be positive, got %d", opts.Limit)
	}
	if opts.ScoreMinimum < -1 || opts.ScoreMinimum > 1 {
		return nil, fmt.Errorf("score minimum must be in [-1, 1], got %f", opts.ScoreMinimum)
	}

	results := make([]SimilarityResult, 0, len(pool))
	for i := range pool {
		candidate := &pool[i]

		if opts.Theme != "" && candidate.Theme != opts.Theme {
			continue
		}

		score, err := CosineSimilarity(reference, candidate.Embedding)
		if err != nil {
			return nil, fmt.Errorf("score candidate %s: %w", candidate.ID, err)
		}
		if score < opts.ScoreMinimum {
			continue
		}

		results = append(results, SimilarityResult{
			ItemID:     candidate.ID,
			OwnerID:    candidate.OwnerID,
			Title:      candidate.Title,
			Theme:      candidate.Theme,
			Keywords:   candidate.Keywords,
			Quality:    candidate.Quality,
			Similarity: score,
			Score:      score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return results, nil
}
