// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package api

import (
	"context"
	"time"

	"github.com/tomtom215/animerec/internal/events"
	"github.com/tomtom215/animerec/internal/recommend"
)

// DatasetReloader rebuilds the served dataset. *recommend.Reloader
// satisfies it.
type DatasetReloader interface {
	Reload(ctx context.Context) error
}

// EventStats reports dataset event consumer counters. *events.Consumer
// satisfies it.
type EventStats interface {
	Stats() events.ConsumerStats
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	// RequestTimeout bounds one recommendation. Default: 10s.
	RequestTimeout time.Duration

	// ReloadTimeout bounds a synchronous reload. Default: 2m.
	ReloadTimeout time.Duration

	// Model describes the loaded predictor for the status endpoint. Optional.
	Model recommend.ModelInfo

	// Version is the build version reported by the status endpoint.
	Version string

	// Events reports the dataset event consumer on the status endpoint.
	// Nil when events are disabled.
	Events EventStats
}

// Handler serves the recommendation endpoints.
type Handler struct {
	engine    *recommend.Engine
	reloader  DatasetReloader
	opts      HandlerOptions
	startTime time.Time
}

// NewHandler creates a Handler. reloader may be nil, in which case the
// reload endpoint answers 501.
func NewHandler(engine *recommend.Engine, reloader DatasetReloader, opts HandlerOptions) *Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.ReloadTimeout <= 0 {
		opts.ReloadTimeout = 2 * time.Minute
	}
	return &Handler{
		engine:    engine,
		reloader:  reloader,
		opts:      opts,
		startTime: time.Now(),
	}
}

func (h *Handler) defaultN() int {
	return h.engine.Config().Limits.DefaultN
}
