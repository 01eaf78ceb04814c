// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/animerec/internal/config"
	"github.com/tomtom215/animerec/internal/events"
)

// initEvents subscribes to dataset-updated events when enabled. The consumer
// is nil when events are disabled; the caller adds it to the messaging layer.
// The returned func closes the subscriber.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func initEvents(cfg *config.Config, reloader events.Reloader, logger zerolog.Logger) (*events.Consumer, func(), error) {
	if !cfg.Events.Enabled {
		logger.Info().Msg("Dataset events disabled (EVENTS_ENABLED=false)")
		return nil, func() {}, nil
	}

	sub, err := events.NewNATSSubscriber(events.DefaultNATSConfig(cfg.Events.URL, cfg.Events.QueueGroup), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create event subscriber: %w", err)
	}

	consumer := events.NewConsumer(sub, cfg.Events.Subject, reloader, logger)
	logger.Info().
		Str("url", cfg.Events.URL).
		Str("subject", cfg.Events.Subject).
		Msg("Dataset event consumer enabled")

	return consumer, func() {
		if err := sub.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing event subscriber")
		}
	}, nil
}
