// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/animerec/internal/logging"
)

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateData,
		c.validateModel,
		c.validateRecommend,
		c.validateBreaker,
		c.validateRedis,
		c.validateEvents,
		c.validateSecurity,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console")
	}
	return nil
}

func (c *Config) validateData() error {
	if c.Data.RefreshInterval < 0 {
		return fmt.Errorf("DATA_REFRESH_INTERVAL must not be negative")
	}
	switch c.Data.Source {
	case SourceCSV:
		if c.Data.AnimeCSV == "" || c.Data.RatingCSV == "" {
			return fmt.Errorf("ANIME_CSV and RATING_CSV are required for DATA_SOURCE=csv")
		}
	case SourceDuckDB:
		if c.Data.DuckDBPath == "" {
			return fmt.Errorf("DUCKDB_PATH is required for DATA_SOURCE=duckdb")
		}
	case SourceRedis:
	default:
		return fmt.Errorf("DATA_SOURCE must be one of: csv, duckdb, redis")
	}
	return nil
}

func (c *Config) validateModel() error {
	if c.Model.Dir == "" {
		return errors.New("MODEL_DIR is required")
	}
	if c.Model.Name == "" {
		return errors.New("MODEL_NAME is required")
	}
	if c.Model.Version < 0 {
		return errors.New("MODEL_VERSION must not be negative")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if err := c.Recommend.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.MaxConsecutiveFailures == 0 {
		return errors.New("BREAKER_MAX_FAILURES must be positive")
	}
	if c.Breaker.OpenTimeout <= 0 {
		return errors.New("BREAKER_OPEN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateRedis() error {
	if c.Data.Source != SourceRedis {
		return nil
	}
	if c.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required for DATA_SOURCE=redis")
	}
	if c.Redis.DB < 0 {
		return errors.New("REDIS_DB must not be negative")
	}
	return nil
}

func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	if c.Events.URL == "" || c.Events.Subject == "" {
		return errors.New("NATS_URL and EVENTS_SUBJECT are required when EVENTS_ENABLED=true")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}
