// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/pitchmatch/internal/match"
	"github.com/tomtom215/pitchmatch/internal/media"
)

// Key prefixes for BadgerDB storage.
const (
	itemKeyPrefix    = "item:"
	vectorKeyPrefix  = "vec:"
	createdKeyPrefix = "ct:"
	ownerKeyPrefix   = "own:"
)

// Badger is a BadgerDB-backed store for durable single-node deployments.
// Item metadata is stored as JSON; embeddings are stored separately in
// binary form (see codec.go). Index keys provide the deterministic
// orderings the matching core relies on: a creation-time index for pool
// listings and a per-owner index for recency listings.
type Badger struct {
	db     *badger.DB
	logger zerolog.Logger
}

var _ Store = (*Badger)(nil)

// OpenBadger opens (or creates) a Badger store at the given path.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func OpenBadger(path string, logger zerolog.Logger) (*Badger, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return &Badger{
		db:     db,
		logger: logger.With().Str("component", "store").Logger(),
	}, nil
}

// Close closes the underlying database.
func (b *Badger) Close() error {
	return b.db.Close()
}

// Put inserts or replaces an item.
func (b *Badger) Put(_ context.Context, item *media.Item) error {
	if item.ID == "" {
		return fmt.Errorf("item has no ID")
	}

	now := time.Now()
	clone := item.Clone()
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	if clone.Status == "" {
		clone.Status = media.StatusPending
	}

	return b.db.Update(func(txn *badger.Txn) error {
		// Replacing an item keeps its original index entries valid only if
		// the creation time is unchanged, so drop any stale ones first.
		if existing, err := getMeta(txn, clone.ID); err == nil {
			if err := deleteIndexes(txn, existing); err != nil {
				return err
			}
		} else if !errors.Is(err, match.ErrItemNotFound) {
			return err
		}
		return writeItem(txn, clone)
	})
}

// GetItem returns the item with its embedding attached.
func (b *Badger) GetItem(_ context.Context, id string) (*media.Item, error) {
	var item *media.Item
	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		item, err = getItem(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item and its index entries. Missing items are ignored.
func (b *Badger) Delete(_ context.Context, id string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		item, err := getMeta(txn, id)
		if errors.Is(err, match.ErrItemNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := deleteIndexes(txn, item); err != nil {
			return err
		}
		if err := txn.Delete([]byte(itemKeyPrefix + id)); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		if err := txn.Delete([]byte(vectorKeyPrefix + id)); err != nil {
			return fmt.Errorf("delete vector: %w", err)
		}
		return nil
	})
}

// ListComplete returns all analyzed items in creation order.
func (b *Badger) ListComplete(ctx context.Context) ([]media.Item, error) {
	return b.listIndexed(ctx, createdKeyPrefix, false, func(item *media.Item) bool {
		return item.Analyzed()
	})
}

// ListCompleteExcluding returns analyzed items not owned by the given user,
// in creation order.
func (b *Badger) ListCompleteExcluding(ctx context.Context, ownerID string) ([]media.Item, error) {
	return b.listIndexed(ctx, createdKeyPrefix, false, func(item *media.Item) bool {
		return item.Analyzed() && item.OwnerID != ownerID
	})
}

// ListCompleteByOwner returns the owner's analyzed items, most recent first.
func (b *Badger) ListCompleteByOwner(ctx context.Context, ownerID string) ([]media.Item, error) {
	return b.listIndexed(ctx, ownerKeyPrefix+ownerID+":", true, func(item *media.Item) bool {
		return item.Analyzed()
	})
}

// ListByOwner returns all of an owner's items, most recent first.
func (b *Badger) ListByOwner(ctx context.Context, ownerID string) ([]media.Item, error) {
	return b.listIndexed(ctx, ownerKeyPrefix+ownerID+":", true, func(item *media.Item) bool {
		return true
	})
}

// TransitionStatus performs the status compare-and-set inside a single
// transaction; Badger's conflict detection makes concurrent racers fail
// and return false.
func (b *Badger) TransitionStatus(_ context.Context, id string, from, to media.Status) (bool, error) {
	moved := false
	err := b.db.Update(func(txn *badger.Txn) error {
		item, err := getMeta(txn, id)
		if err != nil {
			return err
		}
		if item.Status != from {
			return nil
		}
		item.Status = to
		item.UpdatedAt = time.Now()
		moved = true
		return putMeta(txn, item)
	})
	if err != nil {
		if errors.Is(err, badger.ErrConflict) {
			return false, nil
		}
		return false, err
	}
	return moved, nil
}

// SetAnalysis applies a completed analysis and marks the item complete.
func (b *Badger) SetAnalysis(_ context.Context, id string, analysis media.Analysis) error {
	if err := validateAnalysis(&analysis); err != nil {
		return fmt.Errorf("invalid analysis for %s: %w", id, err)
	}

	return b.db.Update(func(txn *badger.Txn) error {
		item, err := getMeta(txn, id)
		if err != nil {
			return err
		}

		applyAnalysis(item, &analysis)
		now := time.Now()
		item.UpdatedAt = now
		item.AnalyzedAt = &now

		if err := txn.Set([]byte(vectorKeyPrefix+id), encodeVector(analysis.Embedding)); err != nil {
			return fmt.Errorf("set vector: %w", err)
		}
		return putMeta(txn, item)
	})
}

// MarkFailed records an analysis failure.
func (b *Badger) MarkFailed(_ context.Context, id, msg string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		item, err := getMeta(txn, id)
		if err != nil {
			return err
		}
		item.Status = media.StatusFailed
		item.Error = msg
		item.UpdatedAt = time.Now()
		return putMeta(txn, item)
	})
}

// listIndexed walks an index prefix and loads matching items.
func (b *Badger) listIndexed(_ context.Context, prefix string, reverse bool, keep func(*media.Item) bool) ([]media.Item, error) {
	var items []media.Item

	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.Reverse = reverse
		it := txn.NewIterator(opts)
		defer it.Close()

		seek := []byte(prefix)
		if reverse {
			// In reverse iteration the seek key must sort after every key
			// in the prefix range.
			seek = append(seek, 0xFF)
		}

		for it.Seek(seek); it.ValidForPrefix([]byte(prefix)); it.Next() {
			var id string
			if err := it.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			}); err != nil {
				return err
			}

			item, err := getItem(txn, id)
			if errors.Is(err, match.ErrItemNotFound) {
				// Stale index entry; skip.
				continue
			}
			if err != nil {
				return err
			}
			if keep(item) {
				items = append(items, *item)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []media.Item{}
	}
	return items, nil
}

// getItem loads metadata and embedding for one item.
func getItem(txn *badger.Txn, id string) (*media.Item, error) {
	item, err := getMeta(txn, id)
	if err != nil {
		return nil, err
	}

	entry, err := txn.Get([]byte(vectorKeyPrefix + id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return item, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vector: %w", err)
	}

	err = entry.Value(func(val []byte) error {
		vec, decodeErr := decodeVector(val)
		if decodeErr != nil {
			return decodeErr
		}
		item.Embedding = vec
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode vector for %s: %w", id, err)
	}
	return item, nil
}

// getMeta loads item metadata (no embedding).
func getMeta(txn *badger.Txn, id string) (*media.Item, error) {
	entry, err := txn.Get([]byte(itemKeyPrefix + id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, match.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	var item media.Item
	if err := entry.Value(func(val []byte) error {
		return json.Unmarshal(val, &item)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal item %s: %w", id, err)
	}
	return &item, nil
}

// putMeta stores item metadata, stripping the embedding (it lives under its
// own key in binary form).
func putMeta(txn *badger.Txn, item *media.Item) error {
	meta := *item
	meta.Embedding = nil
	data, err := json.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("marshal item %s: %w", item.ID, err)
	}
	if err := txn.Set([]byte(itemKeyPrefix+item.ID), data); err != nil {
		return fmt.Errorf("set item: %w", err)
	}
	return nil
}

// writeItem stores metadata, embedding and index entries for an item.
func writeItem(txn *badger.Txn, item *media.Item) error {
	if err := putMeta(txn, item); err != nil {
		return err
	}
	if len(item.Embedding) > 0 {
		if err := txn.Set([]byte(vectorKeyPrefix+item.ID), encodeVector(item.Embedding)); err != nil {
			return fmt.Errorf("set vector: %w", err)
		}
	}

	id := []byte(item.ID)
	if err := txn.Set([]byte(createdIndexKey(item)), id); err != nil {
		return fmt.Errorf("set created index: %w", err)
	}
	if err := txn.Set([]byte(ownerIndexKey(item)), id); err != nil {
		return fmt.Errorf("set owner index: %w", err)
	}
	return nil
}

// deleteIndexes removes an item's index entries.
func deleteIndexes(txn *badger.Txn, item *media.Item) error {
	if err := txn.Delete([]byte(createdIndexKey(item))); err != nil {
		return fmt.Errorf("delete created index: %w", err)
	}
	if err := txn.Delete([]byte(ownerIndexKey(item))); err != nil {
		return fmt.Errorf("delete owner index: %w", err)
	}
	return nil
}

// createdIndexKey orders items globally by creation time. Zero-padded
// nanoseconds keep lexicographic order equal to chronological order.
func createdIndexKey(item *media.Item) string {
	return fmt.Sprintf("%s%020d:%s", createdKeyPrefix, item.CreatedAt.UnixNano(), item.ID)
}

// ownerIndexKey orders one owner's items by creation time.
func ownerIndexKey(item *media.Item) string {
	return fmt.Sprintf("%s%s:%020d:%s", ownerKeyPrefix, item.OwnerID, item.CreatedAt.UnixNano(), item.ID)
}
