// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package algorithms

import (
	"gonum.org/v1/gonum/floats"

	"github.com/tomtom215/animerec/internal/recommend"
)

// Ensure models implement the engine interfaces.
var (
	_ recommend.Estimator     = (*SVD)(nil)
	_ recommend.ModelInfo     = (*SVD)(nil)
	_ recommend.ContentScorer = (*ContentModel)(nil)
)

// cosineSimilarity computes cosine similarity between two vectors.
// Mismatched lengths and zero vectors score 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

// l2Normalize scales v in place to unit length. Zero vectors are left alone.
func l2Normalize(v []float64) {
	if len(v) == 0 {
		return
	}
	if n := floats.Norm(v, 2); n > 0 {
		floats.Scale(1/n, v)
	}
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
