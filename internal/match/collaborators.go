// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package match

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/pitchmatch/internal/media"
)

// complementaryThemes is a fixed adjacency table of themes whose holders
// tend to benefit from collaborating. Checked in both directions.
var complementaryThemes = map[media.Theme][]media.Theme{
	media.ThemeTechnology:    {media.ThemeEducation, media.ThemeHealth, media.ThemeProfessional},
	media.ThemeEducation:     {media.ThemeTechnology, media.ThemeEntertainment},
	media.ThemeHealth:        {media.ThemeTechnology, media.ThemeLifestyle},
	media.ThemeProfessional:  {media.ThemeTechnology, media.ThemeEntertainment},
	media.ThemeLifestyle:     {media.ThemeHealth, media.ThemeEntertainment},
	media.ThemeEntertainment: {media.ThemeLifestyle, media.ThemeEducation},
}

// FindCollaborators surfaces owners of semantically adjacent projects as
// potential collaborators for the reference item's owner.
//
// A similarity shortlist (widened to the configured pool size, same owner
// excluded) is rescored by keyword complementarity: partial overlap scores
// best, because full overlap adds nothing and no overlap removes the common
// ground needed to collaborate. Candidates at or below the complementarity
// threshold are dropped.
func (e *Engine) FindCollaborators(ctx context.Context, itemID string, opts CollaboratorOptions) ([]CollaboratorResult, error) {
	start := time.Now()
	logger := e.operationLogger("find_collaborators").With().Str("item_id", itemID).Logger()

	ref, err := e.analyzedItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	pool, err := e.provider.ListCompleteExcluding(ctx, ref.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	shortlist, err := ScorePool(ref.Embedding, pool, PoolOptions{
		Limit:        e.config.CollaboratorPoolSize,
		ScoreMinimum: e.floorOrDefault(opts.ScoreMinimum),
	})
	if err != nil {
		return nil, err
	}

	refTerms := keywordTerms(ref.Keywords)

	results := make([]CollaboratorResult, 0, len(shortlist))
	for i := range shortlist {
		candidate := &shortlist[i]

		comp := e.complementarity(refTerms, keywordTerms(candidate.Keywords))
		if comp.score <= e.config.ComplementarityThreshold {
			continue
		}

		results = append(results, CollaboratorResult{
			OwnerID:               candidate.OwnerID,
			Project:               *candidate,
			ComplementarityScore:  comp.score,
			CollaborationScore:    e.collaborationScore(ref, candidate),
			SharedKeywords:        comp.shared,
			UniqueKeywordsOffered: comp.unique,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ComplementarityScore > results[j].ComplementarityScore
	})

	limit := e.clampLimit(opts.Limit)
	if len(results) > limit {
		results = results[:limit]
	}

	logger.Debug().
		Int("shortlist", len(shortlist)).
		Int("returned", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("collaborator search complete")

	return results, nil
}

// complementarityResult carries the score with its keyword evidence.
type complementarityResult struct {
	score  float64
	shared []string
	unique []string
}

// complementarity scores how well candidate keyword set B complements
// reference set A: weighted blend of the shared ratio |A∩B|/max(|A|,|B|)
// and the unique ratio |B\A|/|B|. Empty sets contribute 0, never divide.
func (e *Engine) complementarity(a, b []string) complementarityResult {
	setA := make(map[string]struct{}, len(a))
	for _, term := range a {
		setA[term] = struct{}{}
	}

	shared := make([]string, 0, len(b))
	unique := make([]string, 0, len(b))
	for _, term := range b {
		if _, ok := setA[term]; ok {
			shared = append(shared, term)
		} else {
			unique = append(unique, term)
		}
	}

	var scoreCommon, scoreUnique float64
	if longest := max(len(a), len(b)); longest > 0 {
		scoreCommon = float64(len(shared)) / float64(longest)
	}
	if len(b) > 0 {
		scoreUnique = float64(len(unique)) / float64(len(b))
	}

	return complementarityResult{
		score:  e.config.CommonWeight*scoreCommon + e.config.UniqueWeight*scoreUnique,
		shared: shared,
		unique: unique,
	}
}

// collaborationScore is the heuristic bonus layer: a base score, a bonus
// for complementary themes, and a bonus proportional to the pair's average
// quality.
func (e *Engine) collaborationScore(ref *media.Item, candidate *SimilarityResult) float64 {
	score := e.config.CollaborationBase
	if themesComplementary(ref.Theme, candidate.Theme) {
		score += e.config.ThemeAdjacencyBonus
	}
	avgQuality := (e.qualityOrDefault(ref.Quality) + e.qualityOrDefault(candidate.Quality)) / 2
	score += e.config.QualityBonusWeight * avgQuality
	return score
}

// themesComplementary checks the adjacency table in both directions.
func themesComplementary(a, b media.Theme) bool {
	for _, t := range complementaryThemes[a] {
		if t == b {
			return true
		}
	}
	for _, t := range complementaryThemes[b] {
		if t == a {
			return true
		}
	}
	return false
}

// keywordTerms extracts deduplicated lowercase terms, preserving order.
func keywordTerms(keywords []media.Keyword) []string {
	seen := make(map[string]struct{}, len(keywords))
	terms := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		term := strings.ToLower(strings.TrimSpace(kw.Term))
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return terms
}
