// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

// mockPredictor scores from a fixed table and records every call.
type mockPredictor struct {
	scores  map[int]float64
	fail    map[int]error
	def     float64
	calls   atomic.Int64
	mu      sync.Mutex
	queried map[int]int
}

func newMockPredictor(scores map[int]float64) *mockPredictor {
	return &mockPredictor{
		scores:  scores,
		fail:    make(map[int]error),
		queried: make(map[int]int),
	}
}

func (m *mockPredictor) Predict(userID, itemID int) (float64, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.queried[itemID]++
	m.mu.Unlock()

	if err, ok := m.fail[itemID]; ok {
		return 0, err
	}
	if s, ok := m.scores[itemID]; ok {
		return s, nil
	}
	return m.def, nil
}

func (m *mockPredictor) timesQueried(itemID int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queried[itemID]
}

// mockSource is an in-memory DataSource.
type mockSource struct {
	mu           sync.Mutex
	items        []Item
	interactions []Interaction
	catalogErr   error
	loads        int
}

func (m *mockSource) Name() string { return "mock" }

func (m *mockSource) LoadCatalog(ctx context.Context) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.catalogErr != nil {
		return nil, m.catalogErr
	}
	return m.items, nil
}

func (m *mockSource) LoadInteractions(ctx context.Context) ([]Interaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interactions, nil
}

// mockContent returns fixed similarities and records the reference used.
type mockContent struct {
	sims       map[int]float64
	lastAnchor int
	lastProf   []int
}

func (m *mockContent) SimilarTo(anchorID int, candidates []int) map[int]float64 {
	m.lastAnchor = anchorID
	return m.pick(candidates)
}

func (m *mockContent) ProfileSimilarity(profile []int, candidates []int) map[int]float64 {
	m.lastProf = profile
	return m.pick(candidates)
}

func (m *mockContent) pick(candidates []int) map[int]float64 {
	out := make(map[int]float64, len(candidates))
	for _, id := range candidates {
		out[id] = m.sims[id]
	}
	return out
}

var errModelBroken = errors.New("model broken")

func testItems(ids ...int) []Item {
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id, Name: itemName(id)}
	}
	return items
}

func itemName(id int) string {
	names := map[int]string{1: "X", 2: "Y", 3: "Z", 4: "W", 5: "V"}
	if n, ok := names[id]; ok {
		return n
	}
	return "item"
}

func mustCatalog(t *testing.T, items []Item) *Catalog {
	t.Helper()
	c, err := NewCatalog(items)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return c
}

func mustDataset(t *testing.T, items []Item, interactions []Interaction) *Dataset {
	t.Helper()
	ds, err := NewDataset(items, interactions, 1)
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	return ds
}

func floatPtr(f float64) *float64 { return &f }
