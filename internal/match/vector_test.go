// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package match

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCosineSimilarity_IdenticalVectors(t *testing.T) {
	v := []float64{0.5, 0.3, 0.2, 0.9}

	score, err := CosineSimilarity(v, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(score, 1.0) {
		t.Errorf("Expected similarity 1.0 for identical vectors, got %f", score)
	}
}

func TestCosineSimilarity_Symmetry(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 5, 6}

	ab, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := CosineSimilarity(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(ab, ba) {
		t.Errorf("Expected symmetric similarity, got %f vs %f", ab, ba)
	}
}

func TestCosineSimilarity_OrthogonalVectors(t *testing.T) {
	score, err := CosineSimilarity([]float64{1, 0}, []float64{0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(score, 0) {
		t.Errorf("Expected similarity 0 for orthogonal vectors, got %f", score)
	}
}

func TestCosineSimilarity_OppositeVectors(t *testing.T) {
	score, err := CosineSimilarity([]float64{1, 2}, []float64{-1, -2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(score, -1) {
		t.Errorf("Expected similarity -1 for opposite vectors, got %f", score)
	}
}

func TestCosineSimilarity_ZeroNormVector(t *testing.T) {
	// Zero-norm input yields exactly 0, not NaN and not an error.
	score, err := CosineSimilarity([]float64{0, 0, 0}, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0 {
		t.Errorf("Expected exactly 0 for zero-norm vector, got %f", score)
	}

	score, err = CosineSimilarity([]float64{1, 2, 3}, []float64{0, 0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0 {
		t.Errorf("Expected exactly 0 for zero-norm vector, got %f", score)
	}
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Expected ErrDimensionMismatch, got %v", err)
	}
}

func TestCosineSimilarity_BoundedRange(t *testing.T) {
	cases := [][2][]float64{
		{{0.1, 0.9, 0.4}, {0.8, 0.2, 0.6}},
		{{-1, 1, -1}, {1, -1, 1}},
		{{100, 200}, {0.001, 0.002}},
	}
	for _, c := range cases {
		score, err := CosineSimilarity(c[0], c[1])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if score < -1.0000001 || score > 1.0000001 {
			t.Errorf("Similarity %f outside [-1, 1] for %v vs %v", score, c[0], c[1])
		}
	}
}

func TestAverage_Mean(t *testing.T) {
	mean, err := Average([][]float64{
		{1, 2, 3},
		{3, 4, 5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{2, 3, 4}
	for i := range want {
		if !almostEqual(mean[i], want[i]) {
			t.Errorf("Expected mean[%d] = %f, got %f", i, want[i], mean[i])
		}
	}
}

func TestAverage_SingleVector(t *testing.T) {
	mean, err := Average([][]float64{{0.25, 0.75}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(mean[0], 0.25) || !almostEqual(mean[1], 0.75) {
		t.Errorf("Expected single vector to average to itself, got %v", mean)
	}
}

func TestAverage_EmptyInput(t *testing.T) {
	_, err := Average(nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}

func TestAverage_RaggedInput(t *testing.T) {
	_, err := Average([][]float64{
		{1, 2, 3},
		{1, 2},
	})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Expected ErrDimensionMismatch, got %v", err)
	}
}
