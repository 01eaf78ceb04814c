// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package logging configures the process-wide zerolog logger.
//
// Components receive a zerolog.Logger by value and derive their own child:
//
//	logger := logging.With().Str("component", "reloader").Logger()
//
// Request-scoped fields travel in the context:
//
//	ctx = logging.ContextWithRequestID(ctx, id)
//	logging.Ctx(ctx).Info().Msg("serving")
//
// Libraries that speak log/slog (sutureslog) are bridged with
// NewSlogHandlerWithLogger.
//
// # Configuration
//
//	logging:
//	  level: info        # trace, debug, info, warn, error
//	  format: json       # json or console
//	  caller: false
package logging
