// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DatasetReloader rebuilds the served dataset. *recommend.Reloader satisfies it.
type DatasetReloader interface {
	Reload(ctx context.Context) error
}

// RefreshServiceConfig holds configuration for the refresh service.
type RefreshServiceConfig struct {
	// Interval between reloads. Must be positive.
	Interval time.Duration

	// ReloadTimeout bounds one reload. Default: 2m.
	ReloadTimeout time.Duration

	// LoadOnStart reloads immediately instead of waiting one interval.
	LoadOnStart bool
}

// RefreshService reloads the dataset on a fixed interval. A failed reload
// is logged and retried at the next tick; the previous snapshot stays live.
type RefreshService struct {
	reloader DatasetReloader
	config   RefreshServiceConfig
	logger   zerolog.Logger
}

// NewRefreshService creates a refresh service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefreshService(reloader DatasetReloader, cfg RefreshServiceConfig, logger zerolog.Logger) *RefreshService {
	if cfg.ReloadTimeout <= 0 {
		cfg.ReloadTimeout = 2 * time.Minute
	}
	return &RefreshService{
		reloader: reloader,
		config:   cfg,
		logger:   logger.With().Str("service", "dataset-refresh").Logger(),
	}
}

// Serve implements suture.Service.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Bool("load_on_start", s.config.LoadOnStart).
		Msg("dataset refresh service starting")

	if s.config.LoadOnStart {
		s.reload(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("dataset refresh service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.reload(ctx)
		}
	}
}

func (s *RefreshService) reload(ctx context.Context) {
	rctx, cancel := context.WithTimeout(ctx, s.config.ReloadTimeout)
	defer cancel()

	start := time.Now()
	if err := s.reloader.Reload(rctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn().Err(err).Msg("scheduled dataset reload failed, keeping current snapshot")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("scheduled dataset reload complete")
}

// String implements fmt.Stringer for supervisor logs.
func (s *RefreshService) String() string {
	return "dataset-refresh"
}
