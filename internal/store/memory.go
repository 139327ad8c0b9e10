// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/pitchmatch/internal/match"
	"github.com/tomtom215/pitchmatch/internal/media"
)

// Memory is a mutex-guarded in-memory store. List orderings are
// deterministic: insertion order for pool listings, creation time
// descending for per-owner listings.
type Memory struct {
	mu    sync.RWMutex
	items map[string]*media.Item
	order []string // insertion order of item IDs
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		items: make(map[string]*media.Item),
	}
}

// Put inserts or replaces an item.
func (m *Memory) Put(_ context.Context, item *media.Item) error {
	if item.ID == "" {
		return fmt.Errorf("item has no ID")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	clone := item.Clone()
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	if clone.Status == "" {
		clone.Status = media.StatusPending
	}

	if _, exists := m.items[item.ID]; !exists {
		m.order = append(m.order, item.ID)
	}
	m.items[item.ID] = clone
	return nil
}

// GetItem returns a copy of the item, or match.ErrItemNotFound.
func (m *Memory) GetItem(_ context.Context, id string) (*media.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return nil, match.ErrItemNotFound
	}
	return item.Clone(), nil
}

// Delete removes an item. Missing items are ignored.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return nil
	}
	delete(m.items, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListComplete returns all analyzed items in insertion order.
func (m *Memory) ListComplete(_ context.Context) ([]media.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collect(func(item *media.Item) bool {
		return item.Analyzed()
	}), nil
}

// ListCompleteExcluding returns analyzed items not owned by the given user,
// in insertion order.
func (m *Memory) ListCompleteExcluding(_ context.Context, ownerID string) ([]media.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collect(func(item *media.Item) bool {
		return item.Analyzed() && item.OwnerID != ownerID
	}), nil
}

// ListCompleteByOwner returns the owner's analyzed items, most recent first.
func (m *Memory) ListCompleteByOwner(_ context.Context, ownerID string) ([]media.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := m.collect(func(item *media.Item) bool {
		return item.Analyzed() && item.OwnerID == ownerID
	})
	sortNewestFirst(items)
	return items, nil
}

// ListByOwner returns all of an owner's items, most recent first.
func (m *Memory) ListByOwner(_ context.Context, ownerID string) ([]media.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := m.collect(func(item *media.Item) bool {
		return item.OwnerID == ownerID
	})
	sortNewestFirst(items)
	return items, nil
}

// TransitionStatus performs the status compare-and-set under the store lock.
func (m *Memory) TransitionStatus(_ context.Context, id string, from, to media.Status) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return false, match.ErrItemNotFound
	}
	if item.Status != from {
		return false, nil
	}
	item.Status = to
	item.UpdatedAt = time.Now()
	return true, nil
}

// SetAnalysis applies a completed analysis and marks the item complete.
func (m *Memory) SetAnalysis(_ context.Context, id string, analysis media.Analysis) error {
	if err := validateAnalysis(&analysis); err != nil {
		return fmt.Errorf("invalid analysis for %s: %w", id, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return match.ErrItemNotFound
	}

	applyAnalysis(item, &analysis)
	now := time.Now()
	item.UpdatedAt = now
	item.AnalyzedAt = &now
	return nil
}

// MarkFailed records an analysis failure.
func (m *Memory) MarkFailed(_ context.Context, id, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return match.ErrItemNotFound
	}
	item.Status = media.StatusFailed
	item.Error = msg
	item.UpdatedAt = time.Now()
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error {
	return nil
}

// collect copies matching items in insertion order. Caller must hold mu.
func (m *Memory) collect(keep func(*media.Item) bool) []media.Item {
	items := make([]media.Item, 0, len(m.order))
	for _, id := range m.order {
		item := m.items[id]
		if keep(item) {
			items = append(items, *item.Clone())
		}
	}
	return items
}

// sortNewestFirst orders items by creation time descending; insertion order
// breaks ties.
func sortNewestFirst(items []media.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
