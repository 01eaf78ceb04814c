// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Command import loads anime.csv and rating.csv into the configured
// persistent data source and announces the update to running servers.
//
// The destination follows DATA_SOURCE:
//
//	duckdb  CREATE OR REPLACE the anime and rating tables in DUCKDB_PATH
//	redis   rewrite the catalog and rating hashes under REDIS_KEY_PREFIX
//
// With EVENTS_ENABLED=true a dataset.updated event is published on
// EVENTS_SUBJECT after a successful import; servers subscribed to it reload
// without waiting for their refresh interval.
//
//	DATA_SOURCE=duckdb DUCKDB_PATH=/data/anime.duckdb \
//	ANIME_CSV=anime.csv RATING_CSV=rating.csv ./animerec-import
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/tomtom215/animerec/internal/config"
	"github.com/tomtom215/animerec/internal/database"
	"github.com/tomtom215/animerec/internal/events"
	"github.com/tomtom215/animerec/internal/logging"
	"github.com/tomtom215/animerec/internal/redisstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logger := logging.With().Str("component", "import").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	evt, err := runImport(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Import failed")
	}

	logger.Info().
		Str("destination", evt.Source).
		Int("items", evt.Items).
		Int("interactions", evt.Interactions).
		Msg("Import complete")

	if !cfg.Events.Enabled {
		return
	}
	if err := announce(cfg, evt, logger); err != nil {
		logger.Fatal().Err(err).Msg("Failed to publish dataset event")
	}
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func runImport(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (events.DatasetUpdated, error) {
	evt := events.DatasetUpdated{Source: cfg.Data.Source, Reason: "import"}

	switch cfg.Data.Source {
	case config.SourceDuckDB:
		db, err := database.Open(ctx, database.Config{Path: cfg.Data.DuckDBPath})
		if err != nil {
			return evt, err
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error().Err(err).Msg("Error closing database")
			}
		}()

		stats, err := db.ImportCSV(ctx, cfg.Data.AnimeCSV, cfg.Data.RatingCSV)
		if err != nil {
			return evt, err
		}
		evt.Items, evt.Interactions = int(stats.Items), int(stats.Interactions)
		return evt, nil

	case config.SourceRedis:
		return importRedis(ctx, cfg, evt, logger)

	default:
		return evt, fmt.Errorf("import needs a persistent destination, DATA_SOURCE=%q reads the CSV files directly", cfg.Data.Source)
	}
}

// importRedis parses the CSVs through an in-memory DuckDB and writes the
// result to Redis.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func importRedis(ctx context.Context, cfg *config.Config, evt events.DatasetUpdated, logger zerolog.Logger) (events.DatasetUpdated, error) {
	db, err := database.Open(ctx, database.Config{})
	if err != nil {
		return evt, err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing database")
		}
	}()

	src := database.NewCSVSource(db, cfg.Data.AnimeCSV, cfg.Data.RatingCSV)
	items, err := src.LoadCatalog(ctx)
	if err != nil {
		return evt, err
	}
	interactions, err := src.LoadInteractions(ctx)
	if err != nil {
		return evt, err
	}

	store, err := redisstore.New(ctx, redisstore.Config{
		Addr:      cfg.Redis.Addr,
		Password:  cfg.Redis.Password,
		DB:        cfg.Redis.DB,
		KeyPrefix: cfg.Redis.KeyPrefix,
	}, logger)
	if err != nil {
		return evt, err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing redis")
		}
	}()

	generation, err := store.Replace(ctx, items, interactions)
	if err != nil {
		return evt, err
	}
	logger.Info().Int64("generation", generation).Msg("Redis dataset replaced")

	evt.Items, evt.Interactions = len(items), len(interactions)
	return evt, nil
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func announce(cfg *config.Config, evt events.DatasetUpdated, logger zerolog.Logger) error {
	pub, err := events.NewNATSPublisher(events.DefaultNATSConfig(cfg.Events.URL, cfg.Events.QueueGroup), logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := pub.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing publisher")
		}
	}()

	if err := events.Publish(pub, cfg.Events.Subject, evt); err != nil {
		return err
	}
	logger.Info().Str("subject", cfg.Events.Subject).Msg("Dataset update announced")
	return nil
}
