// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// FailurePolicy controls how the batch scorer treats a failed prediction.
type FailurePolicy int

const (
	// PolicySkip drops the failing candidate and counts the failure.
	PolicySkip FailurePolicy = iota
	// PolicyFail aborts the whole batch on the first failure.
	PolicyFail
)

// String returns the policy name.
func (p FailurePolicy) String() string {
	switch p {
	case PolicySkip:
		return "skip"
	case PolicyFail:
		return "fail"
	default:
		return "unknown"
	}
}

// ParseFailurePolicy converts a policy name.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch s {
	case "", "skip":
		return PolicySkip, nil
	case "fail":
		return PolicyFail, nil
	default:
		return PolicySkip, invalidArgument("unknown failure policy %q", s)
	}
}

// minParallelBatch is the smallest candidate count worth fanning out.
const minParallelBatch = 256

// BatchResult holds the output of a scoring pass.
type BatchResult struct {
	// Scored is in candidate order, failed candidates removed.
	Scored []ScoredCandidate

	// Failures is the number of skipped candidates.
	Failures int

	// FailedItems lists skipped candidate IDs in candidate order.
	FailedItems []int
}

// BatchScorer applies a Predictor to every candidate exactly once.
type BatchScorer struct {
	predictor Predictor
	policy    FailurePolicy
	workers   int
}

// NewBatchScorer creates a scorer. workers <= 1 scores sequentially.
func NewBatchScorer(p Predictor, policy FailurePolicy, workers int) *BatchScorer {
	if workers < 1 {
		workers = 1
	}
	return &BatchScorer{predictor: p, policy: policy, workers: workers}
}

// Policy returns the configured failure policy.
func (s *BatchScorer) Policy() FailurePolicy {
	return s.policy
}

// slot is the per-candidate outcome written by exactly one goroutine.
type slot struct {
	score float64
	err   error
}

// ScoreAll scores candidates for userID. The candidate order is preserved in
// the result. Under PolicyFail the first PredictionError is returned.
func (s *BatchScorer) ScoreAll(ctx context.Context, userID int, candidates []int) (*BatchResult, error) {
	if s.predictor == nil {
		return nil, fmt.Errorf("batch scorer: %w", ErrModelNotLoaded)
	}

	slots := make([]slot, len(candidates))

	var err error
	if s.workers > 1 && len(candidates) >= minParallelBatch {
		err = s.scoreParallel(ctx, userID, candidates, slots)
	} else {
		err = s.scoreSequential(ctx, userID, candidates, slots)
	}
	if err != nil {
		return nil, err
	}

	return s.collect(candidates, slots), nil
}

func (s *BatchScorer) scoreSequential(ctx context.Context, userID int, candidates []int, slots []slot) error {
	for i, itemID := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.scoreOne(userID, itemID, &slots[i]); err != nil {
			return err
		}
	}
	return nil
}

// scoreParallel splits candidates into contiguous chunks, one goroutine per chunk.
func (s *BatchScorer) scoreParallel(ctx context.Context, userID int, candidates []int, slots []slot) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	chunk := (len(candidates) + s.workers - 1) / s.workers
	for start := 0; start < len(candidates); start += chunk {
		end := min(start+chunk, len(candidates))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := s.scoreOne(userID, candidates[i], &slots[i]); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}

// scoreOne records the outcome in out. It returns an error only when the
// failure policy aborts the batch.
func (s *BatchScorer) scoreOne(userID, itemID int, out *slot) error {
	score, err := s.predictor.Predict(userID, itemID)
	if err == nil && (math.IsNaN(score) || math.IsInf(score, 0)) {
		err = fmt.Errorf("non-finite score %v", score)
	}
	if err != nil {
		if !IsPredictionError(err) {
			err = NewPredictionError(userID, itemID, err)
		}
		if s.policy == PolicyFail {
			return err
		}
		out.err = err
		return nil
	}
	out.score = score
	return nil
}

func (s *BatchScorer) collect(candidates []int, slots []slot) *BatchResult {
	res := &BatchResult{Scored: make([]ScoredCandidate, 0, len(candidates))}
	for i, itemID := range candidates {
		if slots[i].err != nil {
			res.Failures++
			res.FailedItems = append(res.FailedItems, itemID)
			continue
		}
		res.Scored = append(res.Scored, ScoredCandidate{ItemID: itemID, Score: slots[i].score})
	}
	return res
}
