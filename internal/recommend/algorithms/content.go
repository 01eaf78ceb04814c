// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package algorithms

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/tomtom215/animerec/internal/recommend"
)

// ContentModel holds one unit-length content vector per catalog item.
//
// Vectors come from Item.Features when every item carries features of the
// same length. Otherwise they are genre TF-IDF vectors with smoothed IDF:
//
//	idf(g) = ln((1 + N) / (1 + df(g))) + 1
type ContentModel struct {
	vectors    map[int][]float64
	dims       int
	vocabulary []string
}

// NewContentModel builds vectors for items.
//
//nolint:gocritic // rangeValCopy: Item passed by value in range, acceptable for clarity
func NewContentModel(items []recommend.Item) *ContentModel {
	if dims, ok := uniformFeatures(items); ok {
		m := &ContentModel{vectors: make(map[int][]float64, len(items)), dims: dims}
		for _, item := range items {
			v := append([]float64(nil), item.Features...)
			l2Normalize(v)
			m.vectors[item.ID] = v
		}
		return m
	}
	return newGenreModel(items)
}

// BuildContent adapts NewContentModel to recommend.ContentBuilder.
func BuildContent(catalog *recommend.Catalog) (recommend.ContentScorer, error) {
	return NewContentModel(catalog.Items()), nil
}

func uniformFeatures(items []recommend.Item) (int, bool) {
	if len(items) == 0 {
		return 0, false
	}
	dims := len(items[0].Features)
	if dims == 0 {
		return 0, false
	}
	for i := range items {
		if len(items[i].Features) != dims {
			return 0, false
		}
	}
	return dims, true
}

//nolint:gocritic // rangeValCopy: Item passed by value in range, acceptable for clarity
func newGenreModel(items []recommend.Item) *ContentModel {
	df := make(map[string]int)
	terms := make([][]string, len(items))
	for i, item := range items {
		terms[i] = genreTerms(item.Genres)
		for _, g := range terms[i] {
			df[g]++
		}
	}

	vocabulary := make([]string, 0, len(df))
	for g := range df {
		vocabulary = append(vocabulary, g)
	}
	sort.Strings(vocabulary)

	position := make(map[string]int, len(vocabulary))
	idf := make([]float64, len(vocabulary))
	n := float64(len(items))
	for i, g := range vocabulary {
		position[g] = i
		idf[i] = math.Log((1+n)/(1+float64(df[g]))) + 1
	}

	m := &ContentModel{
		vectors:    make(map[int][]float64, len(items)),
		dims:       len(vocabulary),
		vocabulary: vocabulary,
	}
	for i, item := range items {
		v := make([]float64, len(vocabulary))
		for _, g := range terms[i] {
			v[position[g]] = idf[position[g]]
		}
		l2Normalize(v)
		m.vectors[item.ID] = v
	}
	return m
}

// genreTerms lowercases, trims and de-duplicates genre names.
func genreTerms(genres []string) []string {
	seen := make(map[string]struct{}, len(genres))
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		g = strings.ToLower(strings.TrimSpace(g))
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

// Dims returns the vector dimensionality.
func (m *ContentModel) Dims() int { return m.dims }

// Vocabulary returns the genre terms in vector order. Empty for feature-backed models.
func (m *ContentModel) Vocabulary() []string {
	return append([]string(nil), m.vocabulary...)
}

// Similarity returns the cosine similarity of two items, 0 if either is unknown.
func (m *ContentModel) Similarity(a, b int) float64 {
	va, ok := m.vectors[a]
	if !ok {
		return 0
	}
	vb, ok := m.vectors[b]
	if !ok {
		return 0
	}
	return floats.Dot(va, vb)
}

// SimilarTo implements recommend.ContentScorer. An unknown anchor scores
// every candidate 0.
func (m *ContentModel) SimilarTo(anchorID int, candidates []int) map[int]float64 {
	return m.scoreAgainst(m.vectors[anchorID], candidates)
}

// ProfileSimilarity implements recommend.ContentScorer. The profile vector is
// the normalized sum of the profile items' vectors.
func (m *ContentModel) ProfileSimilarity(profile []int, candidates []int) map[int]float64 {
	var centroid []float64
	for _, id := range profile {
		v, ok := m.vectors[id]
		if !ok {
			continue
		}
		if centroid == nil {
			centroid = make([]float64, m.dims)
		}
		floats.Add(centroid, v)
	}
	if centroid != nil {
		l2Normalize(centroid)
	}
	return m.scoreAgainst(centroid, candidates)
}

func (m *ContentModel) scoreAgainst(ref []float64, candidates []int) map[int]float64 {
	out := make(map[int]float64, len(candidates))
	for _, id := range candidates {
		v, ok := m.vectors[id]
		if !ok || ref == nil {
			out[id] = 0
			continue
		}
		out[id] = cosineSimilarity(ref, v)
	}
	return out
}
