// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/animerec/docs" // Import swagger docs
	"github.com/tomtom215/animerec/internal/api"
	"github.com/tomtom215/animerec/internal/config"
	"github.com/tomtom215/animerec/internal/logging"
	"github.com/tomtom215/animerec/internal/metrics"
	"github.com/tomtom215/animerec/internal/recommend"
	"github.com/tomtom215/animerec/internal/recommend/algorithms"
	"github.com/tomtom215/animerec/internal/supervisor"
	"github.com/tomtom215/animerec/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

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
	logger := logging.Logger()

	logger.Info().
		Str("version", version).
		Str("source", cfg.Data.Source).
		Str("model", cfg.Model.Name).
		Str("environment", cfg.Server.Environment).
		Msg("Starting animerec")

	if cfg.ShouldWarnAboutCORS() {
		logger.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); set explicit origins in production")
	}
	if cfg.Security.RateLimitDisabled {
		logger.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("animerec stopped with error")
	}
	logger.Info().Msg("animerec stopped")
}

func run(cfg *config.Config) error {
	logger := logging.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pred, err := initPredictor(ctx, cfg, logger)
	if err != nil {
		return err
	}

	source, closeSource, err := initDataSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	handle := recommend.NewDatasetHandle()
	reloader := recommend.NewReloader(source, handle, logger)
	reloader.Content = algorithms.BuildContent
	reloader.OnSwap = metrics.ObserveSwap
	reloader.OnError = metrics.ObserveReloadError

	loadCtx, cancelLoad := context.WithTimeout(ctx, 2*time.Minute)
	if err := reloader.Reload(loadCtx); err != nil {
		logger.Error().Err(err).Msg("Initial dataset load failed; serving will start once a reload succeeds")
	}
	cancelLoad()

	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), handle, pred.predictor, logger)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	engine.SetObserver(metrics.NewObserver())

	consumer, closeEvents, err := initEvents(cfg, reloader, logger)
	if err != nil {
		return err
	}
	defer closeEvents()

	opts := api.HandlerOptions{
		RequestTimeout: cfg.Server.Timeout,
		Model:          pred.info,
		Version:        version,
	}
	if consumer != nil {
		opts.Events = consumer
	}
	handler := api.NewHandler(engine, reloader, opts)
	mw := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(handler, mw).SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	if cfg.Data.RefreshInterval > 0 {
		tree.AddDataService(services.NewRefreshService(reloader, services.RefreshServiceConfig{
			Interval:    cfg.Data.RefreshInterval,
			LoadOnStart: handle.Load() == nil,
		}, logger))
	}

	if consumer != nil {
		tree.AddMessagingService(consumer)
	}

	logger.Info().Str("addr", server.Addr).Msg("HTTP server listening")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logger.Warn().Str("service", svc.Name).Msg("Service did not stop within shutdown timeout")
		}
	}
	return nil
}
