// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/pitchmatch/internal/media"
)

// fakeProvider serves a fixed item list in insertion order.
type fakeProvider struct {
	items []media.Item
}

func (f *fakeProvider) GetItem(_ context.Context, id string) (*media.Item, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return f.items[i].Clone(), nil
		}
	}
	return nil, ErrItemNotFound
}

func (f *fakeProvider) ListComplete(_ context.Context) ([]media.Item, error) {
	var out []media.Item
	for i := range f.items {
		if f.items[i].Analyzed() {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

func (f *fakeProvider) ListCompleteByOwner(_ context.Context, ownerID string) ([]media.Item, error) {
	// Most recent first, matching the store contract.
	var out []media.Item
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].OwnerID == ownerID && f.items[i].Analyzed() {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

func (f *fakeProvider) ListCompleteExcluding(_ context.Context, ownerID string) ([]media.Item, error) {
	var out []media.Item
	for i := range f.items {
		if f.items[i].OwnerID != ownerID && f.items[i].Analyzed() {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

func analyzedItem(id, owner string, theme media.Theme, embedding []float64) media.Item {
	return media.Item{
		ID:        id,
		OwnerID:   owner,
		Title:     "item " + id,
		Theme:     theme,
		Status:    media.StatusComplete,
		Embedding: embedding,
		CreatedAt: time.Now(),
	}
}

func newTestEngine(t *testing.T, provider DataProvider) *Engine {
	t.Helper()
	engine, err := NewEngine(nil, provider, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return engine
}

func TestNewEngine_NilProvider(t *testing.T) {
	if _, err := NewEngine(nil, nil, zerolog.Nop()); err == nil {
		t.Error("Expected error for nil provider")
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxResults = 0
	if _, err := NewEngine(cfg, &fakeProvider{}, zerolog.Nop()); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestFindSimilar_ExcludesReferenceAndOwner(t *testing.T) {
	provider := &fakeProvider{items: []media.Item{
		analyzedItem("ref", "alice", media.ThemeTechnology, []float64{1, 0, 0}),
		analyzedItem("own", "alice", media.ThemeTechnology, []float64{1, 0, 0}),
		analyzedItem("other", "bob", media.ThemeTechnology, []float64{0.9, 0.1, 0}),
	}}
	engine := newTestEngine(t, provider)

	results, err := engine.FindSimilar(context.Background(), "ref", SearchOptions{})
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].ItemID != "other" {
		t.Errorf("Expected 'other', got %q", results[0].ItemID)
	}
}

func TestFindSimilar_IncludeOwnItems(t *testing.T) {
	provider := &fakeProvider{items: []media.Item{
		analyzedItem("ref", "alice", media.ThemeTechnology, []float64{1, 0, 0}),
		analyzedItem("own", "alice", media.ThemeTechnology, []float64{1, 0, 0}),
		analyzedItem("other", "bob", media.ThemeTechnology, []float64{0.9, 0.1, 0}),
	}}
	engine := newTestEngine(t, provider)

	results, err := engine.FindSimilar(context.Background(), "ref", SearchOptions{IncludeOwnItems: true})
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	// The reference itself is never a result, even with own items included.
	for _, r := range results {
		if r.ItemID == "ref" {
			t.Error("Reference item appeared in its own results")
		}
	}
}

func TestFindSimilar_NotAnalyzed(t *testing.T) {
	pending := media.Item{ID: "p1", OwnerID: "alice", Status: media.StatusPending}
	provider := &fakeProvider{items: []media.Item{pending}}
	engine := newTestEngine(t, provider)

	_, err := engine.FindSimilar(context.Background(), "p1", SearchOptions{})
	if !errors.Is(err, ErrNotAnalyzed) {
		t.Errorf("Expected ErrNotAnalyzed, got %v", err)
	}
}

func TestFindSimilar_NotFound(t *testing.T) {
	engine := newTestEngine(t, &fakeProvider{})

	_, err := engine.FindSimilar(context.Background(), "missing", SearchOptions{})
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound, got %v", err)
	}
}

func TestFindSimilar_ThemeFilter(t *testing.T) {
	provider := &fakeProvider{items: []media.Item{
		analyzedItem("ref", "alice", media.ThemeTechnology, []float64{1, 0, 0}),
		analyzedItem("tech", "bob", media.ThemeTechnology, []float64{0.9, 0.1, 0}),
		analyzedItem("health", "carol", media.ThemeHealth, []float64{0.9, 0.1, 0}),
	}}
	engine := newTestEngine(t, provider)

	results, err := engine.FindSimilar(context.Background(), "ref", SearchOptions{Theme: media.ThemeHealth})
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(results) != 1 || results[0].ItemID != "health" {
		t.Errorf("Expected only the health item, got %v", results)
	}
}

func TestClampLimit(t *testing.T) {
	engine := newTestEngine(t, &fakeProvider{})

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero uses default", 0, 10},
		{"negative uses default", -3, 10},
		{"within range passes through", 25, 25},
		{"above cap clamps", 500, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engine.clampLimit(tt.limit); got != tt.want {
				t.Errorf("clampLimit(%d) = %d, want %d", tt.limit, got, tt.want)
			}
		})
	}
}

func TestFloorOrDefault(t *testing.T) {
	engine := newTestEngine(t, &fakeProvider{})

	if got := engine.floorOrDefault(0); got != 0.5 {
		t.Errorf("Expected default floor 0.5, got %f", got)
	}
	if got := engine.floorOrDefault(0.9); got != 0.9 {
		t.Errorf("Expected explicit floor 0.9, got %f", got)
	}
	if got := engine.floorOrDefault(-1); got != -1 {
		t.Errorf("Expected negative floor passed through, got %f", got)
	}
}

func TestFindSimilar_NegativeFloorKeepsZeroScores(t *testing.T) {
	provider := &fakeProvider{items: []media.Item{
		analyzedItem("ref", "alice", media.ThemeTechnology, []float64{1, 0}),
		analyzedItem("orthogonal", "bob", media.ThemeTechnology, []float64{0, 1}),
	}}
	engine := newTestEngine(t, provider)

	// The default 0.5 floor drops the zero-score candidate.
	results, err := engine.FindSimilar(context.Background(), "ref", SearchOptions{})
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Expected no results under the default floor, got %v", results)
	}

	// A negative floor stands in for an explicit zero and keeps it.
	results, err = engine.FindSimilar(context.Background(), "ref", SearchOptions{ScoreMinimum: -1})
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(results) != 1 || results[0].ItemID != "orthogonal" {
		t.Errorf("Expected the zero-score candidate under a negative floor, got %v", results)
	}
}
