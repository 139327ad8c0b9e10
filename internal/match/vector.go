// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package match

import (
	"fmt"
	"math"
)

// CosineSimilarity returns the normalized dot product of a and b in [-1, 1].
// Vectors are only comparable when dimensions match exactly; a mismatch is
// ErrDimensionMismatch, never a zero score.
//
// When either vector has zero norm the result is exactly 0. This is a
// deliberate policy, not a numerical accident: reproducible behavior for
// degenerate embeddings matters more than signaling the edge case.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Average returns the element-wise mean of a non-empty sequence of
// equal-length vectors. Fails with ErrEmptyInput on an empty sequence and
// ErrDimensionMismatch on ragged input.
func Average(vectors [][]float64) ([]float64, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyInput
	}

	dim := len(vectors[0])
	mean := make([]float64, dim)

	for _, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, dim, len(v))
		}
		for i, x := range v {
			mean[i] += x
		}
	}

	n := float64(len(vectors))
	for i := range mean {
		mean[i] /= n
	}

	return mean, nil
}
