// Pitchmatch - Semantic Project Matching for Video Pitches
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pitchmatch

package store

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Embeddings are persisted as fixed-length binary: a uint32 dimension
// header followed by little-endian float64 values. The dimension is
// recorded once per vector and checked on decode, never re-parsed from
// JSON per comparison.

const vectorHeaderLen = 4

// encodeVector serializes a float64 vector to its binary form.
func encodeVector(v []float64) []byte {
	buf := make([]byte, vectorHeaderLen+8*len(v))
	binary.LittleEndian.PutUint32(buf, uint32(len(v)))
	for i, x := range v {
		binary.LittleEndian.PutUint64(buf[vectorHeaderLen+8*i:], math.Float64bits(x))
	}
	return buf
}

// decodeVector parses the binary form back into a float64 vector.
func decodeVector(buf []byte) ([]float64, error) {
	if len(buf) < vectorHeaderLen {
		return nil, fmt.Errorf("vector record truncated: %d bytes", len(buf))
	}
	dim := int(binary.LittleEndian.Uint32(buf))
	if want := vectorHeaderLen + 8*dim; len(buf) != want {
		return nil, fmt.Errorf("vector record has %d bytes, want %d for dimension %d", len(buf), want, dim)
	}

	v := make([]float64, dim)
	for i := range v {
		v[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[vectorHeaderLen+8*i:]))
	}
	return v, nil
}
