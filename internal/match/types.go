// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package match

import (
	"context"

	"github.com/tomtom215/pitchmatch/internal/media"
)

// DataProvider is the seam between the matching core and the storage layer.
// Implementations must return only analyzed items from the List* methods
// (status complete, embedding present) in a deterministic order; the
// matching core never fetches data itself.
type DataProvider interface {
	// GetItem returns the item with the given ID, or ErrItemNotFound.
	GetItem(ctx context.Context, id string) (*media.Item, error)

	// ListComplete returns all analyzed items in creation order.
	ListComplete(ctx context.Context) ([]media.Item, error)

	// ListCompleteByOwner returns the owner's analyzed items, most recent
	// first.
	ListCompleteByOwner(ctx context.Context, ownerID string) ([]media.Item, error)

	// ListCompleteExcluding returns all analyzed items NOT owned by the
	// given user, in creation order.
	ListCompleteExcluding(ctx context.Context, ownerID string) ([]media.Item, error)
}

// SimilarityResult is one scored candidate. Results are ephemeral: computed
// on demand, never persisted.
type SimilarityResult struct {
	// ItemID identifies the matched item.
	ItemID string `json:"item_id"`

	// OwnerID identifies the matched item's owner.
	OwnerID string `json:"owner_id"`

	// Title, Theme, Keywords and Quality echo item metadata for display.
	Title    string          `json:"title"`
	Theme    media.Theme     `json:"theme"`
	Keywords []media.Keyword `json:"keywords,omitempty"`
	Quality  *float64        `json:"quality,omitempty"`

	// Similarity is the raw cosine similarity against the reference
	// vector, in [-1, 1].
	Similarity float64 `json:"similarity"`

	// Score is the ranking score. Equal to Similarity for plain searches;
	// recommendations blend in the quality score.
	Score float64 `json:"score"`

	// Reason is a human-readable explanation, set for recommendations.
	Reason string `json:"reason,omitempty"`
}

// PoolOptions controls ScorePool.
type PoolOptions struct {
	// Limit is the maximum number of results. Must be positive.
	Limit int

	// ScoreMinimum is the similarity floor; candidates scoring below it
	// are discarded. Valid range is [-1, 1], though negative floors are
	// meaningless for this domain.
	ScoreMinimum float64

	// Theme restricts results to one theme when non-empty.
	Theme media.Theme
}

// SearchOptions controls Engine.FindSimilar.
type SearchOptions struct {
	// Limit caps the number of results. Zero means the configured default.
	Limit int

	// ScoreMinimum is the similarity floor. Zero means the configured
	// default, so a floor of exactly zero is not representable; pass a
	// negative floor to keep zero-score candidates.
	ScoreMinimum float64

	// Theme restricts results to one theme when non-empty.
	Theme media.Theme

	// IncludeOwnItems keeps the reference owner's other items in the
	// candidate pool. The reference item itself is always excluded.
	IncludeOwnItems bool
}

// RecommendOptions controls Engine.Recommend.
type RecommendOptions struct {
	// Limit caps the number of recommendations. Zero means the configured
	// default.
	Limit int

	// ScoreMinimum is the similarity floor. Zero means the configured
	// default; see SearchOptions.ScoreMinimum.
	ScoreMinimum float64

	// Theme, when set, overrides the user's derived theme preference.
	Theme media.Theme
}

// Recommendations is the result of Engine.Recommend.
type Recommendations struct {
	// Items is the ordered recommendation list. Never contains items owned
	// by the requesting user.
	Items []SimilarityResult `json:"items"`

	// TopThemes are the user's preferred themes derived from their recent
	// analyzed items, most frequent first.
	TopThemes []media.Theme `json:"top_themes,omitempty"`

	// Note explains an empty result ("no analyzed items available").
	Note string `json:"note,omitempty"`
}

// CollaboratorOptions controls Engine.FindCollaborators.
type CollaboratorOptions struct {
	// Limit caps the number of collaborator results. Zero means the
	// configured default.
	Limit int

	// ScoreMinimum is the similarity floor for the candidate shortlist.
	// Zero means the configured default; see SearchOptions.ScoreMinimum.
	ScoreMinimum float64
}

// CollaboratorResult describes a potential collaborator surfaced through
// one of their projects.
type CollaboratorResult struct {
	// OwnerID identifies the potential collaborator.
	OwnerID string `json:"owner_id"`

	// Project is the candidate's project that matched the reference.
	Project SimilarityResult `json:"project"`

	// ComplementarityScore measures partial keyword overlap: enough shared
	// ground to communicate, enough difference to add value.
	ComplementarityScore float64 `json:"complementarity_score"`

	// CollaborationScore is the heuristic bonus layer (theme adjacency and
	// quality), reported separately from complementarity.
	CollaborationScore float64 `json:"collaboration_score"`

	// SharedKeywords are terms both keyword sets contain.
	SharedKeywords []string `json:"shared_keywords"`

	// UniqueKeywordsOffered are terms only the candidate brings.
	UniqueKeywordsOffered []string `json:"unique_keywords_offered"`
}

// CompatibilityResult is the verdict of an explicit two-project comparison.
type CompatibilityResult struct {
	ItemA string `json:"item_a"`
	ItemB string `json:"item_b"`

	// Score is the cosine similarity of the two embeddings.
	Score float64 `json:"score"`

	// Level is the banded verdict: very high, high, moderate, low, very low.
	Level string `json:"level"`

	// Recommendation is a canned sentence for the same band.
	Recommendation string `json:"recommendation"`

	// SharedDomains currently reports exact theme equality only.
	// Keyword-level domain overlap is a known extension point.
	SharedDomains []string `json:"shared_domains"`
}
