// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/animerec/internal/config"
	"github.com/tomtom215/animerec/internal/metrics"
	"github.com/tomtom215/animerec/internal/recommend"
	"github.com/tomtom215/animerec/internal/recommend/algorithms"
	"github.com/tomtom215/animerec/internal/recommend/storage"
)

type predictorComponents struct {
	predictor recommend.Predictor
	info      recommend.ModelInfo
}

// initPredictor loads the model artifact and builds the predictor chain:
// SVD estimator, adapter, then the optional circuit breaker.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func initPredictor(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*predictorComponents, error) {
	store, err := storage.NewStore(cfg.Model.Dir)
	if err != nil {
		return nil, fmt.Errorf("open model store: %w", err)
	}

	model, meta, err := algorithms.LoadSVD(ctx, store, cfg.Model.Name, cfg.Model.Version)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("model", meta.Name).
		Int("version", meta.Version).
		Int("users", model.Users()).
		Int("items", model.Items()).
		Float64("global_mean", model.GlobalMean()).
		Msg("Model loaded")

	adapter := recommend.NewEstimatorAdapter(model)
	if !cfg.Breaker.Enabled {
		return &predictorComponents{predictor: adapter, info: adapter}, nil
	}

	settings := cfg.Breaker.Settings(meta.Name)
	settings.OnStateChange = func(name, _, to string) {
		metrics.SetBreakerState(name, to)
	}
	breaker := recommend.NewBreakerPredictor(adapter, settings, logger)
	metrics.SetBreakerState(settings.Name, breaker.State())

	return &predictorComponents{predictor: breaker, info: breaker}, nil
}
