// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import "math"

// Blend returns w*factor + (1-w)*content. Both inputs must already be on a
// comparable scale; see HybridBlender for the normalizing entry point.
func Blend(factor, content, w float64) (float64, error) {
	if err := validateWeight(w); err != nil {
		return 0, err
	}
	return w*factor + (1-w)*content, nil
}

func validateWeight(w float64) error {
	if math.IsNaN(w) || w < 0 || w > 1 {
		return invalidArgument("blend weight must be in [0, 1], got %v", w)
	}
	return nil
}

// Normalizer rescales a score vector onto [0, 1].
type Normalizer interface {
	Name() string
	Normalize(scores []float64) []float64
}

// MinMax rescales relative to the minimum and maximum of the input.
// When every score is equal the result is 0.5 for all entries.
type MinMax struct{}

// Name implements Normalizer.
func (MinMax) Name() string { return "minmax" }

// Normalize implements Normalizer. The input is not modified.
func (MinMax) Normalize(scores []float64) []float64 {
	out := make([]float64, len(scores))
	if len(scores) == 0 {
		return out
	}

	lo, hi := scores[0], scores[0]
	for _, s := range scores[1:] {
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}

	span := hi - lo
	for i, s := range scores {
		if span == 0 {
			out[i] = 0.5
			continue
		}
		out[i] = (s - lo) / span
	}
	return out
}

// Range rescales from a fixed [Min, Max] scale, clamping outliers.
type Range struct {
	Min float64
	Max float64
}

// Name implements Normalizer.
func (Range) Name() string { return "range" }

// Normalize implements Normalizer. The input is not modified.
func (r Range) Normalize(scores []float64) []float64 {
	out := make([]float64, len(scores))
	span := r.Max - r.Min
	for i, s := range scores {
		if span <= 0 {
			out[i] = 0.5
			continue
		}
		out[i] = math.Min(1, math.Max(0, (s-r.Min)/span))
	}
	return out
}

// HybridBlender normalizes factorization and content scores explicitly
// before blending them.
type HybridBlender struct {
	factor  Normalizer
	content Normalizer
}

// NewHybridBlender creates a blender. Nil normalizers default to MinMax.
func NewHybridBlender(factor, content Normalizer) *HybridBlender {
	if factor == nil {
		factor = MinMax{}
	}
	if content == nil {
		content = MinMax{}
	}
	return &HybridBlender{factor: factor, content: content}
}

// NewHybridBlenderByName resolves a normalization method. "range" maps the
// factor scores from the rating scale and content scores from cosine [-1, 1].
func NewHybridBlenderByName(method string, ratingMin, ratingMax float64) (*HybridBlender, error) {
	switch method {
	case "", "minmax":
		return NewHybridBlender(MinMax{}, MinMax{}), nil
	case "range":
		return NewHybridBlender(Range{Min: ratingMin, Max: ratingMax}, Range{Min: -1, Max: 1}), nil
	default:
		return nil, invalidArgument("unknown normalization %q", method)
	}
}

// Method returns the factor normalizer name.
func (b *HybridBlender) Method() string {
	return b.factor.Name()
}

// BlendScores returns new candidates in the same order as factor, each
// scored w*norm(factor) + (1-w)*norm(content). Items absent from content
// contribute a raw content score of zero.
func (b *HybridBlender) BlendScores(factor []ScoredCandidate, content map[int]float64, w float64) ([]ScoredCandidate, error) {
	if err := validateWeight(w); err != nil {
		return nil, err
	}

	fRaw := make([]float64, len(factor))
	cRaw := make([]float64, len(factor))
	for i, sc := range factor {
		fRaw[i] = sc.Score
		cRaw[i] = content[sc.ItemID]
	}

	fNorm := b.factor.Normalize(fRaw)
	cNorm := b.content.Normalize(cRaw)

	out := make([]ScoredCandidate, len(factor))
	for i, sc := range factor {
		out[i] = ScoredCandidate{
			ItemID: sc.ItemID,
			Score:  w*fNorm[i] + (1-w)*cNorm[i],
		}
	}
	return out, nil
}
