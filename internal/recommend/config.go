// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits bounds request sizes.
	Limits LimitsConfig `json:"limits"`

	// Scoring controls the batch scorer.
	Scoring ScoringConfig `json:"scoring"`

	// Hybrid controls blending of factor and content scores.
	Hybrid HybridConfig `json:"hybrid"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache"`
}

// LimitsConfig contains request limits.
type LimitsConfig struct {
	// DefaultN is used by callers that accept an omitted N.
	// Default: 10.
	DefaultN int `json:"default_n"`

	// MaxN caps the number of returned recommendations.
	// Default: 100.
	MaxN int `json:"max_n"`
}

// ScoringConfig contains batch scorer parameters.
type ScoringConfig struct {
	// FailurePolicy is "skip" or "fail".
	// Default: skip.
	FailurePolicy string `json:"failure_policy"`

	// Workers is the number of concurrent prediction workers.
	// 1 scores sequentially. Default: 4.
	Workers int `json:"workers"`
}

// HybridConfig contains hybrid blending parameters.
type HybridConfig struct {
	// Weight given to the factorization score, in [0, 1].
	// Default: 0.7.
	Weight float64 `json:"weight"`

	// Normalization is "minmax" or "range".
	// Default: minmax.
	Normalization string `json:"normalization"`

	// RatingMin and RatingMax bound model estimates for "range" normalization.
	RatingMin float64 `json:"rating_min"`
	RatingMax float64 `json:"rating_max"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled controls whether caching is active.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached entries.
	// Default: 10000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultN: 10,
			MaxN:     100,
		},
		Scoring: ScoringConfig{
			FailurePolicy: PolicySkip.String(),
			Workers:       4,
		},
		Hybrid: HybridConfig{
			Weight:        0.7,
			Normalization: "minmax",
			RatingMin:     1,
			RatingMax:     10,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultN < 1 {
		return fmt.Errorf("limits.default_n must be positive, got %d", c.Limits.DefaultN)
	}
	if c.Limits.MaxN < c.Limits.DefaultN {
		return fmt.Errorf("limits.max_n must be >= limits.default_n, got %d < %d", c.Limits.MaxN, c.Limits.DefaultN)
	}

	if _, err := ParseFailurePolicy(c.Scoring.FailurePolicy); err != nil {
		return fmt.Errorf("scoring.failure_policy: %w", err)
	}
	if c.Scoring.Workers < 1 {
		return fmt.Errorf("scoring.workers must be positive, got %d", c.Scoring.Workers)
	}

	if math.IsNaN(c.Hybrid.Weight) || c.Hybrid.Weight < 0 || c.Hybrid.Weight > 1 {
		return fmt.Errorf("hybrid.weight must be in [0, 1], got %f", c.Hybrid.Weight)
	}
	if c.Hybrid.RatingMax <= c.Hybrid.RatingMin {
		return fmt.Errorf("hybrid.rating_max must be > hybrid.rating_min, got %f <= %f", c.Hybrid.RatingMax, c.Hybrid.RatingMin)
	}
	if _, err := NewHybridBlenderByName(c.Hybrid.Normalization, c.Hybrid.RatingMin, c.Hybrid.RatingMax); err != nil {
		return fmt.Errorf("hybrid.normalization: %w", err)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// MarshalJSON renders durations as strings.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	type cacheJSON struct {
		Enabled    bool   `json:"enabled"`
		TTL        string `json:"ttl"`
		MaxEntries int    `json:"max_entries"`
	}
	return json.Marshal(&struct {
		*Alias
		Cache cacheJSON `json:"cache"`
	}{
		Alias: (*Alias)(c),
		Cache: cacheJSON{
			Enabled:    c.Cache.Enabled,
			TTL:        c.Cache.TTL.String(),
			MaxEntries: c.Cache.MaxEntries,
		},
	})
}
