// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package match

import "errors"

// ErrDimensionMismatch is returned when two vectors of unequal length are
// compared. It is fatal to that single computation and never coerced to a
// zero score.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// ErrEmptyInput is returned when averaging zero vectors.
var ErrEmptyInput = errors.New("empty vector sequence")

// ErrNotAnalyzed is returned when an operation requires an item whose
// analysis is not complete (no embedding). Callers surface this as an
// "analysis not complete" condition, not a crash.
var ErrNotAnalyzed = errors.New("item analysis not complete")

// ErrItemNotFound is returned by data providers when an item does not exist.
var ErrItemNotFound = errors.New("item not found")
