// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// ErrModelNotLoaded indicates the predictor has no model behind it.
var ErrModelNotLoaded = errors.New("model not loaded")

// Predictor scores a single (user, item) pair.
// Implementations must be safe for concurrent use and must not mutate shared state.
type Predictor interface {
	Predict(userID, itemID int) (float64, error)
}

// PredictorFunc adapts a plain scoring function to Predictor.
type PredictorFunc func(userID, itemID int) (float64, error)

// Predict calls f(userID, itemID).
func (f PredictorFunc) Predict(userID, itemID int) (float64, error) {
	return f(userID, itemID)
}

// Prediction is the rich result returned by models that report more than a scalar.
type Prediction struct {
	UserID   int               `json:"user_id"`
	ItemID   int               `json:"item_id"`
	Estimate float64           `json:"estimate"`
	Details  PredictionDetails `json:"details"`
}

// PredictionDetails describes how an estimate was produced.
type PredictionDetails struct {
	KnownUser bool `json:"known_user"`
	KnownItem bool `json:"known_item"`

	// WasImpossible is set when the model fell back to its default prediction.
	WasImpossible bool   `json:"was_impossible,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// Estimator is implemented by models returning a Prediction.
type Estimator interface {
	Estimate(userID, itemID int) (Prediction, error)
}

// ModelInfo is optionally implemented by models to describe themselves.
type ModelInfo interface {
	Name() string
	Version() int
}

// EstimatorAdapter exposes an Estimator as a Predictor by unwrapping the estimate.
// Cold-start fallbacks chosen by the model are passed through unchanged.
type EstimatorAdapter struct {
	estimator Estimator
}

// NewEstimatorAdapter wraps est. A nil estimator fails every prediction.
func NewEstimatorAdapter(est Estimator) *EstimatorAdapter {
	return &EstimatorAdapter{estimator: est}
}

// Predict implements Predictor.
func (a *EstimatorAdapter) Predict(userID, itemID int) (float64, error) {
	if a == nil || a.estimator == nil {
		return 0, NewPredictionError(userID, itemID, ErrModelNotLoaded)
	}

	p, err := a.estimator.Estimate(userID, itemID)
	if err != nil {
		return 0, NewPredictionError(userID, itemID, err)
	}

	if math.IsNaN(p.Estimate) || math.IsInf(p.Estimate, 0) {
		return 0, NewPredictionError(userID, itemID, fmt.Errorf("non-finite estimate %v", p.Estimate))
	}

	return p.Estimate, nil
}

// Name reports the wrapped model's name when it provides one.
func (a *EstimatorAdapter) Name() string {
	if info, ok := a.estimator.(ModelInfo); ok {
		return info.Name()
	}
	return "unknown"
}

// Version reports the wrapped model's version when it provides one.
func (a *EstimatorAdapter) Version() int {
	if info, ok := a.estimator.(ModelInfo); ok {
		return info.Version()
	}
	return 0
}

// BreakerSettings configures a BreakerPredictor.
type BreakerSettings struct {
	// Name identifies the breaker in logs and metrics.
	Name string

	// MaxConsecutiveFailures trips the breaker. Default: 20.
	MaxConsecutiveFailures uint32

	// OpenTimeout is how long the breaker stays open before probing. Default: 30s.
	OpenTimeout time.Duration

	// HalfOpenRequests is the number of trial requests allowed while half-open. Default: 5.
	HalfOpenRequests uint32

	// OnStateChange is invoked on every transition.
	OnStateChange func(name string, from, to string)
}

// BreakerPredictor guards a Predictor with a circuit breaker so a failing
// backend is short-circuited instead of being called for every candidate.
// Only infrastructure errors count toward tripping: a PredictionError for one
// (user, item) pair is a property of that pair and never opens the breaker.
// Rejections surface as PredictionError and are handled by the batch policy.
type BreakerPredictor struct {
	next Predictor
	cb   *gobreaker.CircuitBreaker[float64]
}

// NewBreakerPredictor wraps next.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBreakerPredictor(next Predictor, s BreakerSettings, logger zerolog.Logger) *BreakerPredictor {
	if s.Name == "" {
		s.Name = "predictor"
	}
	if s.MaxConsecutiveFailures == 0 {
		s.MaxConsecutiveFailures = 20
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}
	if s.HalfOpenRequests == 0 {
		s.HalfOpenRequests = 5
	}

	log := logger.With().Str("component", "predictor-breaker").Str("breaker", s.Name).Logger()
	threshold := s.MaxConsecutiveFailures
	onChange := s.OnStateChange

	cb := gobreaker.NewCircuitBreaker[float64](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.HalfOpenRequests,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrPrediction)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			if onChange != nil {
				onChange(name, from.String(), to.String())
			}
		},
	})

	return &BreakerPredictor{next: next, cb: cb}
}

// Predict implements Predictor.
func (b *BreakerPredictor) Predict(userID, itemID int) (float64, error) {
	score, err := b.cb.Execute(func() (float64, error) {
		return b.next.Predict(userID, itemID)
	})
	if err == nil {
		return score, nil
	}

	var pe *PredictionError
	if errors.As(err, &pe) {
		return 0, err
	}
	return 0, NewPredictionError(userID, itemID, err)
}

// State returns the breaker state name.
func (b *BreakerPredictor) State() string {
	return b.cb.State().String()
}

// Name forwards to the wrapped predictor when it describes itself.
func (b *BreakerPredictor) Name() string {
	if info, ok := b.next.(ModelInfo); ok {
		return info.Name()
	}
	return "unknown"
}

// Version forwards to the wrapped predictor when it describes itself.
func (b *BreakerPredictor) Version() int {
	if info, ok := b.next.(ModelInfo); ok {
		return info.Version()
	}
	return 0
}
