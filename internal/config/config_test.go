// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"bad environment", func(c *Config) { c.Server.Environment = "staging" }, "ENVIRONMENT"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"bad source", func(c *Config) { c.Data.Source = "s3" }, "DATA_SOURCE"},
		{"csv without files", func(c *Config) { c.Data.Source = SourceCSV; c.Data.AnimeCSV = "" }, "ANIME_CSV"},
		{"duckdb without path", func(c *Config) { c.Data.Source = SourceDuckDB }, "DUCKDB_PATH"},
		{"redis without files", func(c *Config) { c.Data.Source = SourceRedis; c.Data.AnimeCSV = "" }, ""},
		{"redis without addr", func(c *Config) { c.Data.Source = SourceRedis; c.Redis.Addr = "" }, "REDIS_ADDR"},
		{"negative refresh", func(c *Config) { c.Data.RefreshInterval = -time.Second }, "DATA_REFRESH_INTERVAL"},
		{"no model name", func(c *Config) { c.Model.Name = "" }, "MODEL_NAME"},
		{"negative model version", func(c *Config) { c.Model.Version = -1 }, "MODEL_VERSION"},
		{"weight out of range", func(c *Config) { c.Recommend.HybridWeight = -0.1 }, "recommend"},
		{"bad policy", func(c *Config) { c.Recommend.FailurePolicy = "retry" }, "recommend"},
		{"breaker zero failures", func(c *Config) { c.Breaker.MaxConsecutiveFailures = 0 }, "BREAKER_MAX_FAILURES"},
		{"breaker disabled skips checks", func(c *Config) { c.Breaker.Enabled = false; c.Breaker.OpenTimeout = 0 }, ""},
		{"events without subject", func(c *Config) { c.Events.Enabled = true; c.Events.Subject = "" }, "EVENTS_SUBJECT"},
		{"rate limit too high", func(c *Config) { c.Security.RateLimitReqs = 1_000_000 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit window too short", func(c *Config) { c.Security.RateLimitWindow = time.Millisecond }, "RATE_LIMIT_WINDOW"},
		{"rate limit disabled", func(c *Config) { c.Security.RateLimitDisabled = true; c.Security.RateLimitReqs = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRecommendConfig_EngineConfig(t *testing.T) {
	t.Parallel()

	rc := defaultConfig().Recommend
	rc.Workers = 8
	ec := rc.EngineConfig()

	if ec.Limits.DefaultN != rc.DefaultN || ec.Limits.MaxN != rc.MaxN {
		t.Errorf("limits not copied: %+v", ec.Limits)
	}
	if ec.Scoring.Workers != 8 || ec.Scoring.FailurePolicy != "skip" {
		t.Errorf("scoring not copied: %+v", ec.Scoring)
	}
	if ec.Hybrid.Weight != 0.7 || ec.Hybrid.Normalization != "minmax" {
		t.Errorf("hybrid not copied: %+v", ec.Hybrid)
	}
	if !ec.Cache.Enabled || ec.Cache.TTL != 5*time.Minute {
		t.Errorf("cache not copied: %+v", ec.Cache)
	}
	if err := ec.Validate(); err != nil {
		t.Errorf("default engine config invalid: %v", err)
	}
}

func TestBreakerConfig_Settings(t *testing.T) {
	t.Parallel()

	s := defaultConfig().Breaker.Settings("svd")
	if s.Name != "svd" || s.MaxConsecutiveFailures != 20 || s.HalfOpenRequests != 5 {
		t.Errorf("Settings = %+v", s)
	}
}

func TestShouldWarnAboutCORS(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if cfg.ShouldWarnAboutCORS() {
		t.Error("development should not warn")
	}
	cfg.Server.Environment = "production"
	if !cfg.ShouldWarnAboutCORS() {
		t.Error("production wildcard should warn")
	}
	cfg.Security.CORSOrigins = []string{"https://a.example"}
	if cfg.ShouldWarnAboutCORS() {
		t.Error("explicit origins should not warn")
	}
}
