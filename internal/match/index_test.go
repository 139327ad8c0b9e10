// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package match

import (
	"errors"
	"testing"

	"github.com/tomtom215/pitchmatch/internal/media"
)

func TestScorePool_RanksByScoreDescending(t *testing.T) {
	ref := []float64{1, 0, 0}
	pool := []media.Item{
		analyzedItem("far", "a", media.ThemeOther, []float64{0.2, 0.9, 0.1}),
		analyzedItem("close", "b", media.ThemeOther, []float64{0.95, 0.05, 0}),
		analyzedItem("mid", "c", media.ThemeOther, []float64{0.7, 0.5, 0.1}),
	}

	results, err := ScorePool(ref, pool, PoolOptions{Limit: 10, ScoreMinimum: -1})
	if err != nil {
		t.Fatalf("ScorePool failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	want := []string{"close", "mid", "far"}
	for i, id := range want {
		if results[i].ItemID != id {
			t.Errorf("Expected results[%d] = %q, got %q", i, id, results[i].ItemID)
		}
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Error("Results not sorted by score descending")
		}
	}
}

func TestScorePool_AppliesFloor(t *testing.T) {
	ref := []float64{1, 0}
	pool := []media.Item{
		analyzedItem("above", "a", media.ThemeOther, []float64{1, 0.1}),
		analyzedItem("below", "b", media.ThemeOther, []float64{0, 1}),
	}

	results, err := ScorePool(ref, pool, PoolOptions{Limit: 10, ScoreMinimum: 0.5})
	if err != nil {
		t.Fatalf("ScorePool failed: %v", err)
	}
	if len(results) != 1 || results[0].ItemID != "above" {
		t.Errorf("Expected only the above-floor item, got %v", results)
	}
}

func TestScorePool_TruncatesToLimit(t *testing.T) {
	ref := []float64{1, 0}
	pool := []media.Item{
		analyzedItem("a", "a", media.ThemeOther, []float64{1, 0}),
		analyzedItem("b", "b", media.ThemeOther, []float64{0.9, 0.1}),
		analyzedItem("c", "c", media.ThemeOther, []float64{0.8, 0.2}),
	}

	results, err := ScorePool(ref, pool, PoolOptions{Limit: 2, ScoreMinimum: -1})
	if err != nil {
		t.Fatalf("ScorePool failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 results after truncation, got %d", len(results))
	}
}

func TestScorePool_ThemeFilter(t *testing.T) {
	ref := []float64{1, 0}
	pool := []media.Item{
		analyzedItem("tech", "a", media.ThemeTechnology, []float64{1, 0}),
		analyzedItem("edu", "b", media.ThemeEducation, []float64{1, 0}),
	}

	results, err := ScorePool(ref, pool, PoolOptions{Limit: 10, ScoreMinimum: -1, Theme: media.ThemeEducation})
	if err != nil {
		t.Fatalf("ScorePool failed: %v", err)
	}
	if len(results) != 1 || results[0].ItemID != "edu" {
		t.Errorf("Expected only education item, got %v", results)
	}
}

func TestScorePool_InvalidOptions(t *testing.T) {
	if _, err := ScorePool([]float64{1}, nil, PoolOptions{Limit: 0}); err == nil {
		t.Error("Expected error for non-positive limit")
	}
	if _, err := ScorePool([]float64{1}, nil, PoolOptions{Limit: 1, ScoreMinimum: 2}); err == nil {
		t.Error("Expected error for floor outside [-1, 1]")
	}
}

func TestScorePool_DimensionMismatchFailsCall(t *testing.T) {
	ref := []float64{1, 0}
	pool := []media.Item{
		analyzedItem("ok", "a", media.ThemeOther, []float64{1, 0}),
		analyzedItem("bad", "b", media.ThemeOther, []float64{1, 0, 0}),
	}

	_, err := ScorePool(ref, pool, PoolOptions{Limit: 10, ScoreMinimum: -1})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Expected ErrDimensionMismatch for corrupt pool, got %v", err)
	}
}

func TestScorePool_StableTieBreak(t *testing.T) {
	ref := []float64{1, 0}
	pool := []media.Item{
		analyzedItem("first", "a", media.ThemeOther, []float64{2, 0}),
		analyzedItem("second", "b", media.ThemeOther, []float64{3, 0}),
	}

	results, err := ScorePool(ref, pool, PoolOptions{Limit: 10, ScoreMinimum: -1})
	if err != nil {
		t.Fatalf("ScorePool failed: %v", err)
	}
	// Both score exactly 1.0; input order decides.
	if results[0].ItemID != "first" || results[1].ItemID != "second" {
		t.Errorf("Expected input order preserved on ties, got %q then %q", results[0].ItemID, results[1].ItemID)
	}
}
