// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import (
	"math"
	"reflect"
	"testing"
)

func TestBlend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		f, c, w float64
		want    float64
		wantErr bool
	}{
		{"pure factor", 0.8, 0.2, 1, 0.8, false},
		{"pure content", 0.8, 0.2, 0, 0.2, false},
		{"mixed", 1, 0, 0.7, 0.7, false},
		{"weight above one", 1, 1, 1.01, 0, true},
		{"negative weight", 1, 1, -0.1, 0, true},
		{"NaN weight", 1, 1, math.NaN(), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Blend(tt.f, tt.c, tt.w)
			if tt.wantErr {
				if !IsInvalidArgument(err) {
					t.Errorf("Blend() error = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Blend() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Blend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMinMax_Normalize(t *testing.T) {
	t.Parallel()

	in := []float64{2, 4, 6}
	got := MinMax{}.Normalize(in)
	if !reflect.DeepEqual(got, []float64{0, 0.5, 1}) {
		t.Errorf("Normalize() = %v, want [0 0.5 1]", got)
	}
	if in[0] != 2 {
		t.Error("Normalize() mutated its input")
	}

	if got := (MinMax{}).Normalize([]float64{3, 3}); !reflect.DeepEqual(got, []float64{0.5, 0.5}) {
		t.Errorf("Normalize(equal) = %v, want [0.5 0.5]", got)
	}
	if got := (MinMax{}).Normalize(nil); len(got) != 0 {
		t.Errorf("Normalize(nil) = %v, want empty", got)
	}
}

func TestRange_Normalize(t *testing.T) {
	t.Parallel()

	got := Range{Min: 1, Max: 10}.Normalize([]float64{1, 5.5, 10, 12, -3})
	want := []float64{0, 0.5, 1, 1, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNewHybridBlenderByName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "minmax", "range"} {
		if _, err := NewHybridBlenderByName(name, 1, 10); err != nil {
			t.Errorf("NewHybridBlenderByName(%q) error = %v", name, err)
		}
	}
	if _, err := NewHybridBlenderByName("zscore", 1, 10); !IsInvalidArgument(err) {
		t.Errorf("NewHybridBlenderByName(zscore) error = %v, want ErrInvalidArgument", err)
	}
}

func TestHybridBlender_BlendScores(t *testing.T) {
	t.Parallel()

	b := NewHybridBlender(nil, nil)
	factor := []ScoredCandidate{{1, 9}, {2, 5}, {3, 1}}
	content := map[int]float64{1: 0, 2: 0.5, 3: 1}

	t.Run("weight one keeps factor ranking", func(t *testing.T) {
		t.Parallel()
		got, err := b.BlendScores(factor, content, 1)
		if err != nil {
			t.Fatalf("BlendScores() error = %v", err)
		}
		want := []ScoredCandidate{{1, 1}, {2, 0.5}, {3, 0}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("BlendScores() = %v, want %v", got, want)
		}
	})

	t.Run("weight zero uses content only", func(t *testing.T) {
		t.Parallel()
		got, err := b.BlendScores(factor, content, 0)
		if err != nil {
			t.Fatalf("BlendScores() error = %v", err)
		}
		want := []ScoredCandidate{{1, 0}, {2, 0.5}, {3, 1}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("BlendScores() = %v, want %v", got, want)
		}
	})

	t.Run("missing content counts as zero", func(t *testing.T) {
		t.Parallel()
		got, err := b.BlendScores([]ScoredCandidate{{1, 2}, {2, 4}}, map[int]float64{2: 1}, 0.5)
		if err != nil {
			t.Fatalf("BlendScores() error = %v", err)
		}
		want := []ScoredCandidate{{1, 0}, {2, 1}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("BlendScores() = %v, want %v", got, want)
		}
	})

	t.Run("invalid weight", func(t *testing.T) {
		t.Parallel()
		if _, err := b.BlendScores(factor, content, 2); !IsInvalidArgument(err) {
			t.Errorf("BlendScores() error = %v, want ErrInvalidArgument", err)
		}
	})

	if factor[0].Score != 9 {
		t.Error("BlendScores() mutated its input")
	}
}
