// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package match

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/pitchmatch/internal/media"
)

// Recommend generates personalized recommendations for a user.
//
// The taste profile is the centroid of the user's most recent analyzed
// items (the profile window). A user with no analyzed items gets an empty
// result annotated with a note, not an error. The candidate pool is every
// analyzed item NOT owned by the user: recommending a user their own
// content is a correctness bug, not a style choice.
//
// Ranking blends similarity with the item quality score after the pool is
// scored; quality blending is recommendation policy, not part of the
// similarity index.
func (e *Engine) Recommend(ctx context.Context, userID string, opts RecommendOptions) (*Recommendations, error) {
	start := time.Now()
	logger := e.operationLogger("recommend").With().Str("user_id", userID).Logger()

	own, err := e.provider.ListCompleteByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list own items: %w", err)
	}
	if len(own) > e.config.ProfileWindow {
		own = own[:e.config.ProfileWindow]
	}
	if len(own) == 0 {
		logger.Debug().Msg("user has no analyzed items")
		return &Recommendations{
			Items: []SimilarityResult{},
			Note:  "no analyzed items available",
		}, nil
	}

	embeddings := make([][]float64, len(own))
	for i := range own {
		embeddings[i] = own[i].Embedding
	}
	taste, err := Average(embeddings)
	if err != nil {
		return nil, fmt.Errorf("taste profile: %w", err)
	}

	topThemes := preferredThemes(own, e.config.TopThemes)

	pool, err := e.provider.ListCompleteExcluding(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	// Score the whole pool; blending can reorder beyond any truncation
	// point, so truncation happens after the blend.
	poolLimit := len(pool)
	if poolLimit == 0 {
		poolLimit = 1
	}
	scored, err := ScorePool(taste, pool, PoolOptions{
		Limit:        poolLimit,
		ScoreMinimum: e.floorOrDefault(opts.ScoreMinimum),
		Theme:        opts.Theme,
	})
	if err != nil {
		return nil, err
	}

	for i := range scored {
		r := &scored[i]
		quality := e.qualityOrDefault(r.Quality)
		r.Score = e.config.SimilarityWeight*r.Similarity + e.config.QualityWeight*quality
		r.Reason = recommendReason(r.Similarity, r.Theme, topThemes)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	limit := e.clampLimit(opts.Limit)
	if len(scored) > limit {
		scored = scored[:limit]
	}

	logger.Debug().
		Int("profile_items", len(own)).
		Int("candidates", len(pool)).
		Int("returned", len(scored)).
		Dur("elapsed", time.Since(start)).
		Msg("recommendation complete")

	return &Recommendations{
		Items:     scored,
		TopThemes: topThemes,
	}, nil
}

// preferredThemes derives the user's top themes by frequency among the
// profile items. Ties keep first-seen order.
func preferredThemes(items []media.Item, n int) []media.Theme {
	counts := make(map[media.Theme]int)
	order := make([]media.Theme, 0, len(items))

	for i := range items {
		theme := items[i].Theme
		if _, seen := counts[theme]; !seen {
			order = append(order, theme)
		}
		counts[theme]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

// recommendReason explains a recommendation from its similarity band and
// whether it falls in the user's preferred themes.
func recommendReason(similarity float64, theme media.Theme, topThemes []media.Theme) string {
	preferred := false
	for _, t := range topThemes {
		if t == theme {
			preferred = true
			break
		}
	}

	switch {
	case similarity > 0.8 && preferred:
		return fmt.Sprintf("very similar to your recent %s projects", theme)
	case similarity > 0.8:
		return "very similar to your recent projects"
	case similarity > 0.7 && preferred:
		return fmt.Sprintf("explores concepts close to your %s interests", theme)
	case similarity > 0.7:
		return "explores concepts close to your interests"
	case preferred:
		return fmt.Sprintf("popular in %s, one of your preferred themes", theme)
	default:
		return "matches your overall interests"
	}
}
