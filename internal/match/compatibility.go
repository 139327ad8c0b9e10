// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package match

import (
	"context"
	"fmt"
)

// Compatibility band thresholds. These are fixed contract values; tests
// depend on the exact boundaries.
const (
	compatibilityVeryHigh = 0.8
	compatibilityHigh     = 0.7
	compatibilityModerate = 0.6
	compatibilityLow      = 0.4
)

// Compatibility compares two projects head to head. Both items must be
// analyzed; the error names the incomplete side.
func (e *Engine) Compatibility(ctx context.Context, itemAID, itemBID string) (*CompatibilityResult, error) {
	logger := e.operationLogger("compatibility").With().
		Str("item_a", itemAID).
		Str("item_b", itemBID).
		Logger()

	itemA, err := e.analyzedItem(ctx, itemAID)
	if err != nil {
		return nil, err
	}
	itemB, err := e.analyzedItem(ctx, itemBID)
	if err != nil {
		return nil, err
	}

	score, err := CosineSimilarity(itemA.Embedding, itemB.Embedding)
	if err != nil {
		return nil, fmt.Errorf("compare %s with %s: %w", itemAID, itemBID, err)
	}

	// Only exact theme equality counts for now; keyword-level domain
	// overlap is a known extension point.
	var sharedDomains []string
	if itemA.Theme == itemB.Theme {
		sharedDomains = append(sharedDomains, fmt.Sprintf("same theme: %s", itemA.Theme))
	}

	level, recommendation := compatibilityVerdict(score)

	logger.Debug().Float64("score", score).Str("level", level).Msg("compatibility computed")

	return &CompatibilityResult{
		ItemA:          itemAID,
		ItemB:          itemBID,
		Score:          score,
		Level:          level,
		Recommendation: recommendation,
		SharedDomains:  sharedDomains,
	}, nil
}

// compatibilityVerdict maps a similarity score onto its band.
func compatibilityVerdict(score float64) (level, recommendation string) {
	switch {
	case score >= compatibilityVeryHigh:
		return "very high", "These projects cover nearly the same ground; a merger or joint pitch is worth discussing."
	case score >= compatibilityHigh:
		return "high", "Strong conceptual overlap; the teams would likely benefit from working together."
	case score >= compatibilityModerate:
		return "moderate", "Some shared concepts; a focused collaboration on the overlap could work."
	case score >= compatibilityLow:
		return "low", "Limited overlap; collaboration would need a deliberate bridge between the topics."
	default:
		return "very low", "The projects address different problems; collaboration is unlikely to pay off."
	}
}
