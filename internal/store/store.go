// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

// Package store persists media items and their analysis results.
//
// Two implementations are provided: Memory for tests and single-process
// development, and Badger for durable embedded storage. Both satisfy
// match.DataProvider, return deterministic orderings (the matching core's
// stable-sort tie-break depends on it), and hand out deep copies so callers
// never share mutable state with the store.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/pitchmatch/internal/match"
	"github.com/tomtom215/pitchmatch/internal/media"
)

// Store is the full storage contract: the read side consumed by the
// matching core plus the mutation paths used by ingestion and the analysis
// worker.
type Store interface {
	match.DataProvider

	// Put inserts or replaces an item.
	Put(ctx context.Context, item *media.Item) error

	// Delete removes an item. Deleting a missing item is not an error.
	Delete(ctx context.Context, id string) error

	// ListByOwner returns all of an owner's items regardless of status,
	// most recent first.
	ListByOwner(ctx context.Context, ownerID string) ([]media.Item, error)

	// TransitionStatus atomically moves an item from one status to another.
	// Returns false (and no error) when the item is not in the expected
	// status. This is the compare-and-set that keeps at most one analysis
	// in flight per item.
	TransitionStatus(ctx context.Context, id string, from, to media.Status) (bool, error)

	// SetAnalysis applies a completed analysis and marks the item complete.
	// This is the single mutation path that establishes the
	// embedding-iff-complete invariant.
	SetAnalysis(ctx context.Context, id string, analysis media.Analysis) error

	// MarkFailed records an analysis failure. Derived fields stay empty.
	MarkFailed(ctx context.Context, id, msg string) error

	// Close releases storage resources.
	Close() error
}

// validateAnalysis rejects pipeline output that would violate the
// embedding-iff-complete invariant.
func validateAnalysis(analysis *media.Analysis) error {
	if len(analysis.Embedding) == 0 {
		return fmt.Errorf("analysis has no embedding")
	}
	if analysis.Quality < 0 || analysis.Quality > 1 {
		return fmt.Errorf("quality %f outside [0, 1]", analysis.Quality)
	}
	return nil
}

// applyAnalysis writes a completed analysis onto an item.
// Keyword terms are normalized (lowercased, trimmed) here, at ingestion,
// so scoring logic never branches on shape.
func applyAnalysis(item *media.Item, analysis *media.Analysis) {
	item.Transcript = analysis.Transcript
	item.Keywords = normalizeKeywords(analysis.Keywords)
	item.Summary = analysis.Summary
	item.Embedding = analysis.Embedding
	quality := analysis.Quality
	item.Quality = &quality
	item.Status = media.StatusComplete
	item.Error = ""
}

func normalizeKeywords(keywords []media.Keyword) []media.Keyword {
	normalized := make([]media.Keyword, 0, len(keywords))
	for _, kw := range keywords {
		term := lowerTrim(kw.Term)
		if term == "" {
			continue
		}
		normalized = append(normalized, media.Keyword{Term: term, Weight: kw.Weight})
	}
	return normalized
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
