// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package algorithms

import (
	"context"
	"math"
	"testing"

	"github.com/tomtom215/animerec/internal/recommend"
	"github.com/tomtom215/animerec/internal/recommend/storage"
)

func testFactorState() *storage.FactorModelState {
	return &storage.FactorModelState{
		GlobalMean:  7,
		UserIndex:   map[int]int{1: 0, 2: 1},
		ItemIndex:   map[int]int{10: 0, 20: 1},
		UserBias:    []float64{0.5, -1},
		ItemBias:    []float64{1, -0.5},
		UserFactors: [][]float64{{1, 0}, {0, 2}},
		ItemFactors: [][]float64{{0.5, 0.5}, {2, 1}},
		RatingMin:   1,
		RatingMax:   10,
	}
}

func TestSVD_Estimate(t *testing.T) {
	t.Parallel()

	m, err := NewSVD("svd", 2, testFactorState())
	if err != nil {
		t.Fatalf("NewSVD() error = %v", err)
	}

	tests := []struct {
		name          string
		user, item    int
		want          float64
		knownUser     bool
		knownItem     bool
		wasImpossible bool
	}{
		// 7 + 0.5 + 1 + (0.5*1 + 0.5*0)
		{"known pair", 1, 10, 9.0, true, true, false},
		// 7 - 1 - 0.5 + (2*0 + 1*2)
		{"known pair with negative biases", 2, 20, 7.5, true, true, false},
		{"unknown user keeps item bias", 99, 10, 8.0, false, true, false},
		{"unknown item keeps user bias", 2, 99, 6.0, true, false, false},
		{"cold start falls back to global mean", 99, 99, 7.0, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := m.Estimate(tt.user, tt.item)
			if err != nil {
				t.Fatalf("Estimate() error = %v", err)
			}
			if math.Abs(p.Estimate-tt.want) > 1e-9 {
				t.Errorf("Estimate = %v, want %v", p.Estimate, tt.want)
			}
			d := p.Details
			if d.KnownUser != tt.knownUser || d.KnownItem != tt.knownItem || d.WasImpossible != tt.wasImpossible {
				t.Errorf("Details = %+v", d)
			}
		})
	}
}

func TestSVD_ClipsToScale(t *testing.T) {
	t.Parallel()

	s := testFactorState()
	s.ItemFactors[0] = []float64{50, 0}
	s.ItemFactors[1] = []float64{-50, -50}
	m, err := NewSVD("svd", 1, s)
	if err != nil {
		t.Fatalf("NewSVD() error = %v", err)
	}

	if p, _ := m.Estimate(1, 10); p.Estimate != 10 {
		t.Errorf("Estimate(high) = %v, want 10", p.Estimate)
	}
	if p, _ := m.Estimate(2, 20); p.Estimate != 1 {
		t.Errorf("Estimate(low) = %v, want 1", p.Estimate)
	}
}

func TestSVD_WithAdapter(t *testing.T) {
	t.Parallel()

	m, err := NewSVD("svd", 4, testFactorState())
	if err != nil {
		t.Fatalf("NewSVD() error = %v", err)
	}
	a := recommend.NewEstimatorAdapter(m)

	got, err := a.Predict(1, 10)
	if err != nil || got != 9 {
		t.Errorf("Predict() = %v, %v, want 9, nil", got, err)
	}
	if a.Name() != "svd" || a.Version() != 4 {
		t.Errorf("Name(), Version() = %q, %d", a.Name(), a.Version())
	}
}

func TestNewSVD_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := NewSVD("svd", 1, nil); err == nil {
		t.Error("NewSVD(nil) error = nil, want error")
	}
	s := testFactorState()
	s.UserBias = nil
	if _, err := NewSVD("svd", 1, s); err == nil {
		t.Error("NewSVD(bad state) error = nil, want error")
	}
}

func TestLoadSVD(t *testing.T) {
	t.Parallel()

	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	ctx := context.Background()
	if err := store.Save(ctx, "svd", 3, testFactorState(), storage.ModelMetadata{}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	m, meta, err := LoadSVD(ctx, store, "svd", 0)
	if err != nil {
		t.Fatalf("LoadSVD() error = %v", err)
	}
	if meta.Version != 3 || m.Version() != 3 || m.Users() != 2 || m.Items() != 2 {
		t.Errorf("LoadSVD() = v%d with %d users, %d items", m.Version(), m.Users(), m.Items())
	}

	if _, _, err := LoadSVD(ctx, store, "missing", 0); err == nil {
		t.Error("LoadSVD(missing) error = nil, want error")
	}
}
