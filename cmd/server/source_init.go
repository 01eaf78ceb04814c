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
	"github.com/tomtom215/animerec/internal/database"
	"github.com/tomtom215/animerec/internal/recommend"
	"github.com/tomtom215/animerec/internal/redisstore"
)

// DuckDB tables written by cmd/import and read by the duckdb source.
const (
	animeTable  = "anime"
	ratingTable = "rating"
)

// initDataSource opens the configured DataSource. The returned func
// releases it.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func initDataSource(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (recommend.DataSource, func(), error) {
	switch cfg.Data.Source {
	case config.SourceCSV:
		db, err := database.Open(ctx, database.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("open duckdb: %w", err)
		}
		logger.Info().Str("anime_csv", cfg.Data.AnimeCSV).Str("rating_csv", cfg.Data.RatingCSV).Msg("Using CSV data source")
		return database.NewCSVSource(db, cfg.Data.AnimeCSV, cfg.Data.RatingCSV), closer(db.Close, logger), nil

	case config.SourceDuckDB:
		db, err := database.Open(ctx, database.Config{Path: cfg.Data.DuckDBPath, ReadOnly: true})
		if err != nil {
			return nil, nil, fmt.Errorf("open duckdb: %w", err)
		}
		src, err := database.NewTableSource(db, animeTable, ratingTable)
		if err != nil {
			closer(db.Close, logger)()
			return nil, nil, err
		}
		logger.Info().Str("path", cfg.Data.DuckDBPath).Msg("Using DuckDB data source")
		return src, closer(db.Close, logger), nil

	case config.SourceRedis:
		store, err := redisstore.New(ctx, redisstore.Config{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("Using Redis data source")
		return store, closer(store.Close, logger), nil

	default:
		return nil, nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func closer(fn func() error, logger zerolog.Logger) func() {
	return func() {
		if err := fn(); err != nil {
			logger.Error().Err(err).Msg("Error closing data source")
		}
	}
}
