// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package match

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pitchmatch/internal/media"
)

func TestRecommend_EmptyProfile(t *testing.T) {
	provider := &fakeProvider{items: []media.Item{
		analyzedItem("x", "bob", media.ThemeTechnology, []float64{1, 0}),
	}}
	engine := newTestEngine(t, provider)

	recs, err := engine.Recommend(context.Background(), "alice", RecommendOptions{})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs.Items) != 0 {
		t.Errorf("Expected no items for a user without analyzed items, got %d", len(recs.Items))
	}
	if recs.Note == "" {
		t.Error("Expected explanatory note on empty result")
	}
}

func TestRecommend_SingleUserPool(t *testing.T) {
	// The only analyzed item in the store belongs to the requesting user,
	// so the candidate pool is empty after self-exclusion.
	provider := &fakeProvider{items: []media.Item{
		analyzedItem("solo", "alice", media.ThemeTechnology, []float64{1, 0}),
	}}
	engine := newTestEngine(t, provider)

	recs, err := engine.Recommend(context.Background(), "alice", RecommendOptions{})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs.Items) != 0 {
		t.Errorf("Expected no recommendations when only own items exist, got %v", recs.Items)
	}
}

func TestRecommend_ExcludesOwnItems(t *testing.T) {
	provider := &fakeProvider{items: []media.Item{
		analyzedItem("mine1", "alice", media.ThemeTechnology, []float64{1, 0}),
		analyzedItem("mine2", "alice", media.ThemeTechnology, []float64{0.9, 0.1}),
		analyzedItem("theirs", "bob", media.ThemeTechnology, []float64{0.95, 0.05}),
	}}
	engine := newTestEngine(t, provider)

	recs, err := engine.Recommend(context.Background(), "alice", RecommendOptions{})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	for _, r := range recs.Items {
		if r.OwnerID == "alice" {
			t.Errorf("Recommendation %q is owned by the requesting user", r.ItemID)
		}
	}
	if len(recs.Items) != 1 || recs.Items[0].ItemID != "theirs" {
		t.Errorf("Expected exactly the other user's item, got %v", recs.Items)
	}
}

func TestRecommend_BlendsQuality(t *testing.T) {
	q := func(v float64) *float64 { return &v }
	highQuality := analyzedItem("hq", "bob", media.ThemeTechnology, []float64{1, 0})
	highQuality.Quality = q(1.0)
	lowQuality := analyzedItem("lq", "carol", media.ThemeTechnology, []float64{1, 0})
	lowQuality.Quality = q(0.0)

	provider := &fakeProvider{items: []media.Item{
		analyzedItem("mine", "alice", media.ThemeTechnology, []float64{1, 0}),
		lowQuality,
		highQuality,
	}}
	engine := newTestEngine(t, provider)

	recs, err := engine.Recommend(context.Background(), "alice", RecommendOptions{})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs.Items) != 2 {
		t.Fatalf("Expected 2 recommendations, got %d", len(recs.Items))
	}

	// Equal similarity (1.0); the blend 0.7*sim + 0.3*quality decides.
	if recs.Items[0].ItemID != "hq" {
		t.Errorf("Expected high-quality item ranked first, got %q", recs.Items[0].ItemID)
	}
	if !almostEqual(recs.Items[0].Score, 0.7*1.0+0.3*1.0) {
		t.Errorf("Expected blended score 1.0, got %f", recs.Items[0].Score)
	}
	if !almostEqual(recs.Items[1].Score, 0.7*1.0+0.3*0.0) {
		t.Errorf("Expected blended score 0.7, got %f", recs.Items[1].Score)
	}
}

func TestRecommend_DefaultQualitySubstitute(t *testing.T) {
	provider := &fakeProvider{items: []media.Item{
		analyzedItem("mine", "alice", media.ThemeTechnology, []float64{1, 0}),
		analyzedItem("noq", "bob", media.ThemeTechnology, []float64{1, 0}),
	}}
	engine := newTestEngine(t, provider)

	recs, err := engine.Recommend(context.Background(), "alice", RecommendOptions{})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs.Items) != 1 {
		t.Fatalf("Expected 1 recommendation, got %d", len(recs.Items))
	}
	// Absent quality substitutes 0.5 into the blend.
	if !almostEqual(recs.Items[0].Score, 0.7*1.0+0.3*0.5) {
		t.Errorf("Expected score 0.85 with default quality, got %f", recs.Items[0].Score)
	}
}

func TestRecommend_TopThemes(t *testing.T) {
	provider := &fakeProvider{items: []media.Item{
		analyzedItem("t1", "alice", media.ThemeTechnology, []float64{1, 0}),
		analyzedItem("t2", "alice", media.ThemeTechnology, []float64{1, 0}),
		analyzedItem("h1", "alice", media.ThemeHealth, []float64{1, 0}),
		analyzedItem("other", "bob", media.ThemeTechnology, []float64{1, 0}),
	}}
	engine := newTestEngine(t, provider)

	recs, err := engine.Recommend(context.Background(), "alice", RecommendOptions{})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs.TopThemes) == 0 {
		t.Fatal("Expected derived top themes")
	}
	if recs.TopThemes[0] != media.ThemeTechnology {
		t.Errorf("Expected technology as most frequent theme, got %q", recs.TopThemes[0])
	}
}

func TestRecommend_ProfileWindow(t *testing.T) {
	// Seven own items; only the five most recent feed the taste profile.
	cfg := DefaultConfig()
	items := []media.Item{
		// Oldest two point one way.
		analyzedItem("old1", "alice", media.ThemeHealth, []float64{0, 1}),
		analyzedItem("old2", "alice", media.ThemeHealth, []float64{0, 1}),
	}
	for _, id := range []string{"n1", "n2", "n3", "n4", "n5"} {
		items = append(items, analyzedItem(id, "alice", media.ThemeTechnology, []float64{1, 0}))
	}
	items = append(items,
		analyzedItem("aligned", "bob", media.ThemeTechnology, []float64{1, 0}),
		analyzedItem("opposed", "carol", media.ThemeHealth, []float64{0, 1}),
	)
	provider := &fakeProvider{items: items}

	engine, err := NewEngine(cfg, provider, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	recs, err := engine.Recommend(context.Background(), "alice", RecommendOptions{})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	// The profile is built from the five recent tech items only, so the
	// aligned candidate passes the 0.5 floor and the opposed one does not.
	if len(recs.Items) != 1 || recs.Items[0].ItemID != "aligned" {
		t.Errorf("Expected only the aligned candidate, got %v", recs.Items)
	}
}

func TestPreferredThemes_FrequencyOrder(t *testing.T) {
	items := []media.Item{
		{Theme: media.ThemeHealth},
		{Theme: media.ThemeTechnology},
		{Theme: media.ThemeTechnology},
		{Theme: media.ThemeEducation},
	}

	themes := preferredThemes(items, 2)
	if len(themes) != 2 {
		t.Fatalf("Expected 2 themes, got %d", len(themes))
	}
	if themes[0] != media.ThemeTechnology {
		t.Errorf("Expected technology first, got %q", themes[0])
	}
	// Health and education tie at 1; first-seen wins.
	if themes[1] != media.ThemeHealth {
		t.Errorf("Expected health second on first-seen tie-break, got %q", themes[1])
	}
}

func TestRecommendReason_Bands(t *testing.T) {
	top := []media.Theme{media.ThemeTechnology}

	tests := []struct {
		name       string
		similarity float64
		theme      media.Theme
		want       string
	}{
		{"very similar preferred", 0.9, media.ThemeTechnology, "very similar to your recent technology projects"},
		{"very similar", 0.9, media.ThemeHealth, "very similar to your recent projects"},
		{"close preferred", 0.75, media.ThemeTechnology, "explores concepts close to your technology interests"},
		{"close", 0.75, media.ThemeHealth, "explores concepts close to your interests"},
		{"preferred theme only", 0.6, media.ThemeTechnology, "popular in technology, one of your preferred themes"},
		{"fallback", 0.6, media.ThemeHealth, "matches your overall interests"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recommendReason(tt.similarity, tt.theme, top); got != tt.want {
				t.Errorf("recommendReason(%f, %q) = %q, want %q", tt.similarity, tt.theme, got, tt.want)
			}
		})
	}
}
