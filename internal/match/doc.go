// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

// Package match implements the project-matching core: cosine-similarity
// search over transcript embeddings and the three algorithms built on it
// (personalized recommendation, collaborator discovery, pairwise
// compatibility scoring).
//
// # Architecture
//
// The package is deliberately storage-agnostic. Scoring and ranking operate
// on candidate pools the caller has already fetched; the DataProvider
// interface is the only seam to the storage layer, which keeps the same
// scoring code serving all consumers and avoids circular imports.
//
//   - ScorePool: pure scoring/ranking of a candidate pool against a
//     reference vector (the similarity index)
//   - Recommender logic: taste-profile centroid over the user's recent
//     items, quality-blended ranking over other users' items
//   - Collaborator logic: keyword complementarity over a similarity
//     shortlist
//   - Compatibility: explicit two-item comparison with banded verdicts
//
// # Determinism
//
// All operations are read-only, deterministic given their inputs, and hold
// no cross-request state; every call recomputes from fresh data. Equal
// scores keep the candidate pool's input order (stable sort), so result
// ordering is as deterministic as the underlying fetch order.
package match
