// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package config

import (
	"time"

	"github.com/tomtom215/animerec/internal/recommend"
)

// Data source kinds.
const (
	SourceCSV    = "csv"
	SourceDuckDB = "duckdb"
	SourceRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Data      DataConfig      `koanf:"data"`
	Model     ModelConfig     `koanf:"model"`
	Recommend RecommendConfig `koanf:"recommend"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Redis     RedisConfig     `koanf:"redis"`
	Events    EventsConfig    `koanf:"events"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development or production
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DataConfig selects where the catalog and interactions come from.
type DataConfig struct {
	Source          string        `koanf:"source"`
	AnimeCSV        string        `koanf:"anime_csv"`
	RatingCSV       string        `koanf:"rating_csv"`
	DuckDBPath      string        `koanf:"duckdb_path"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// ModelConfig locates the persisted factorization model.
type ModelConfig struct {
	Dir     string `koanf:"dir"`
	Name    string `koanf:"name"`
	Version int    `koanf:"version"`
}

// RecommendConfig mirrors recommend.Config in a flat, env-friendly shape.
type RecommendConfig struct {
	DefaultN        int           `koanf:"default_n"`
	MaxN            int           `koanf:"max_n"`
	FailurePolicy   string        `koanf:"failure_policy"`
	Workers         int           `koanf:"workers"`
	HybridWeight    float64       `koanf:"hybrid_weight"`
	Normalization   string        `koanf:"normalization"`
	RatingMin       float64       `koanf:"rating_min"`
	RatingMax       float64       `koanf:"rating_max"`
	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
}

// EngineConfig converts to the engine's configuration type.
func (r RecommendConfig) EngineConfig() *recommend.Config {
	return &recommend.Config{
		Limits: recommend.LimitsConfig{
			DefaultN: r.DefaultN,
			MaxN:     r.MaxN,
		},
		Scoring: recommend.ScoringConfig{
			FailurePolicy: r.FailurePolicy,
			Workers:       r.Workers,
		},
		Hybrid: recommend.HybridConfig{
			Weight:        r.HybridWeight,
			Normalization: r.Normalization,
			RatingMin:     r.RatingMin,
			RatingMax:     r.RatingMax,
		},
		Cache: recommend.CacheConfig{
			Enabled:    r.CacheEnabled,
			TTL:        r.CacheTTL,
			MaxEntries: r.CacheMaxEntries,
		},
	}
}

// BreakerConfig configures the circuit breaker around the score predictor.
type BreakerConfig struct {
	Enabled                bool          `koanf:"enabled"`
	MaxConsecutiveFailures uint32        `koanf:"max_consecutive_failures"`
	OpenTimeout            time.Duration `koanf:"open_timeout"`
	HalfOpenRequests       uint32        `koanf:"half_open_requests"`
}

// Settings returns breaker settings for the named predictor.
func (b BreakerConfig) Settings(name string) recommend.BreakerSettings {
	return recommend.BreakerSettings{
		Name:                   name,
		MaxConsecutiveFailures: b.MaxConsecutiveFailures,
		OpenTimeout:            b.OpenTimeout,
		HalfOpenRequests:       b.HalfOpenRequests,
	}
}

// RedisConfig holds the Redis connection used by the redis data source.
type RedisConfig struct {
	Addr      string `koanf:"addr"`
	Password  string `koanf:"password"`
	DB        int    `koanf:"db"`
	KeyPrefix string `koanf:"key_prefix"`
}

// EventsConfig configures the dataset-updated event subscription.
type EventsConfig struct {
	Enabled    bool   `koanf:"enabled"`
	URL        string `koanf:"url"`
	Subject    string `koanf:"subject"`
	QueueGroup string `koanf:"queue_group"`
}

// SecurityConfig holds HTTP edge protections.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ShouldWarnAboutCORS reports a wildcard origin in production.
func (c *Config) ShouldWarnAboutCORS() bool {
	if !c.IsProduction() {
		return false
	}
	for _, o := range c.Security.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}
