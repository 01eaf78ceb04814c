// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestBatchScorer_ScoreAll(t *testing.T) {
	t.Parallel()

	t.Run("one call per candidate in order", func(t *testing.T) {
		t.Parallel()
		p := newMockPredictor(map[int]float64{3: 0.1, 1: 0.9, 2: 0.5})
		res, err := NewBatchScorer(p, PolicySkip, 1).ScoreAll(context.Background(), 7, []int{3, 1, 2})
		if err != nil {
			t.Fatalf("ScoreAll() error = %v", err)
		}
		want := []ScoredCandidate{{3, 0.1}, {1, 0.9}, {2, 0.5}}
		if !reflect.DeepEqual(res.Scored, want) {
			t.Errorf("Scored = %v, want %v", res.Scored, want)
		}
		if p.calls.Load() != 3 {
			t.Errorf("Predict called %d times, want 3", p.calls.Load())
		}
	})

	t.Run("empty candidates", func(t *testing.T) {
		t.Parallel()
		res, err := NewBatchScorer(newMockPredictor(nil), PolicyFail, 4).ScoreAll(context.Background(), 1, []int{})
		if err != nil {
			t.Fatalf("ScoreAll() error = %v", err)
		}
		if len(res.Scored) != 0 || res.Failures != 0 {
			t.Errorf("ScoreAll() = %+v, want empty", res)
		}
	})

	t.Run("nil predictor", func(t *testing.T) {
		t.Parallel()
		_, err := NewBatchScorer(nil, PolicySkip, 1).ScoreAll(context.Background(), 1, []int{1})
		if !errors.Is(err, ErrModelNotLoaded) {
			t.Errorf("ScoreAll() error = %v, want ErrModelNotLoaded", err)
		}
	})
}

func TestBatchScorer_FailurePolicy(t *testing.T) {
	t.Parallel()

	newPredictor := func() *mockPredictor {
		p := newMockPredictor(map[int]float64{1: 1, 2: 2, 3: 3, 4: 4, 5: 5})
		p.fail[3] = NewPredictionError(1, 3, errModelBroken)
		return p
	}
	candidates := []int{1, 2, 3, 4, 5}

	t.Run("skip drops the failure and counts it", func(t *testing.T) {
		t.Parallel()
		res, err := NewBatchScorer(newPredictor(), PolicySkip, 1).ScoreAll(context.Background(), 1, candidates)
		if err != nil {
			t.Fatalf("ScoreAll() error = %v", err)
		}
		if len(res.Scored) != 4 {
			t.Errorf("len(Scored) = %d, want 4", len(res.Scored))
		}
		if res.Failures != 1 || !reflect.DeepEqual(res.FailedItems, []int{3}) {
			t.Errorf("Failures, FailedItems = %d, %v, want 1, [3]", res.Failures, res.FailedItems)
		}
		for _, sc := range res.Scored {
			if sc.ItemID == 3 {
				t.Error("failed candidate present in Scored")
			}
		}
	})

	t.Run("fail aborts with the prediction error", func(t *testing.T) {
		t.Parallel()
		_, err := NewBatchScorer(newPredictor(), PolicyFail, 1).ScoreAll(context.Background(), 1, candidates)
		var pe *PredictionError
		if !errors.As(err, &pe) || pe.ItemID != 3 {
			t.Errorf("ScoreAll() error = %v, want PredictionError for item 3", err)
		}
	})

	t.Run("plain errors are wrapped", func(t *testing.T) {
		t.Parallel()
		p := newMockPredictor(nil)
		p.fail[9] = errModelBroken
		_, err := NewBatchScorer(p, PolicyFail, 1).ScoreAll(context.Background(), 1, []int{9})
		if !IsPredictionError(err) || !errors.Is(err, errModelBroken) {
			t.Errorf("ScoreAll() error = %v, want PredictionError wrapping cause", err)
		}
	})
}

func TestBatchScorer_ParallelPreservesOrder(t *testing.T) {
	t.Parallel()

	const n = 2000
	scores := make(map[int]float64, n)
	candidates := make([]int, n)
	for i := 0; i < n; i++ {
		id := n - i
		candidates[i] = id
		scores[id] = float64(id) / 10
	}
	p := newMockPredictor(scores)
	p.fail[1000] = errModelBroken

	res, err := NewBatchScorer(p, PolicySkip, 8).ScoreAll(context.Background(), 1, candidates)
	if err != nil {
		t.Fatalf("ScoreAll() error = %v", err)
	}
	if res.Failures != 1 {
		t.Errorf("Failures = %d, want 1", res.Failures)
	}
	if len(res.Scored) != n-1 {
		t.Fatalf("len(Scored) = %d, want %d", len(res.Scored), n-1)
	}
	for i := 1; i < len(res.Scored); i++ {
		if res.Scored[i].ItemID >= res.Scored[i-1].ItemID {
			t.Fatalf("Scored out of candidate order at %d: %d after %d", i, res.Scored[i].ItemID, res.Scored[i-1].ItemID)
		}
	}
	for _, id := range candidates {
		if got := p.timesQueried(id); got != 1 {
			t.Fatalf("item %d queried %d times, want 1", id, got)
		}
	}
}

func TestBatchScorer_Cancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		candidates := make([]int, 1000)
		for i := range candidates {
			candidates[i] = i + 1
		}
		_, err := NewBatchScorer(newMockPredictor(nil), PolicySkip, workers).ScoreAll(ctx, 1, candidates)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("workers=%d: ScoreAll() error = %v, want context.Canceled", workers, err)
		}
	}
}

func TestBatchScorer_RejectsNonFiniteScores(t *testing.T) {
	t.Parallel()

	p := PredictorFunc(func(_, itemID int) (float64, error) {
		switch itemID {
		case 2:
			return math.NaN(), nil
		case 3:
			return math.Inf(1), nil
		case 4:
			return math.Inf(-1), nil
		}
		return float64(itemID), nil
	})

	res, err := NewBatchScorer(p, PolicySkip, 1).ScoreAll(context.Background(), 1, []int{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("ScoreAll() error = %v", err)
	}
	want := []ScoredCandidate{{1, 1}, {5, 5}}
	if !reflect.DeepEqual(res.Scored, want) {
		t.Errorf("Scored = %v, want %v", res.Scored, want)
	}
	if res.Failures != 3 || !reflect.DeepEqual(res.FailedItems, []int{2, 3, 4}) {
		t.Errorf("Failures = %d, FailedItems = %v, want 3, [2 3 4]", res.Failures, res.FailedItems)
	}

	_, err = NewBatchScorer(p, PolicyFail, 1).ScoreAll(context.Background(), 1, []int{1, 2})
	var pe *PredictionError
	if !errors.As(err, &pe) || pe.ItemID != 2 {
		t.Errorf("ScoreAll() error = %v, want PredictionError for item 2", err)
	}
}
