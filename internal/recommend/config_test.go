// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.Limits.DefaultN != 10 {
		t.Errorf("Limits.DefaultN = %d, want 10", cfg.Limits.DefaultN)
	}
	if cfg.Hybrid.Weight != 0.7 {
		t.Errorf("Hybrid.Weight = %v, want 0.7", cfg.Hybrid.Weight)
	}
	if cfg.Scoring.FailurePolicy != "skip" {
		t.Errorf("Scoring.FailurePolicy = %q, want skip", cfg.Scoring.FailurePolicy)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{"valid default config", func(c *Config) {}, false},
		{"zero default n", func(c *Config) { c.Limits.DefaultN = 0 }, true},
		{"max n below default", func(c *Config) { c.Limits.MaxN = 5 }, true},
		{"unknown policy", func(c *Config) { c.Scoring.FailurePolicy = "retry" }, true},
		{"fail policy", func(c *Config) { c.Scoring.FailurePolicy = "fail" }, false},
		{"zero workers", func(c *Config) { c.Scoring.Workers = 0 }, true},
		{"weight above one", func(c *Config) { c.Hybrid.Weight = 1.5 }, true},
		{"NaN weight", func(c *Config) { c.Hybrid.Weight = math.NaN() }, true},
		{"weight zero", func(c *Config) { c.Hybrid.Weight = 0 }, false},
		{"inverted rating scale", func(c *Config) { c.Hybrid.RatingMin = 10; c.Hybrid.RatingMax = 1 }, true},
		{"unknown normalization", func(c *Config) { c.Hybrid.Normalization = "zscore" }, true},
		{"range normalization", func(c *Config) { c.Hybrid.Normalization = "range" }, false},
		{"zero cache ttl", func(c *Config) { c.Cache.TTL = 0 }, true},
		{"zero cache ttl with cache disabled", func(c *Config) { c.Cache.Enabled = false; c.Cache.TTL = 0 }, false},
		{"zero cache entries", func(c *Config) { c.Cache.MaxEntries = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantError && err == nil {
				t.Error("Validate() = nil, want error")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Hybrid.Weight = 0.1
	clone.Cache.TTL = time.Second

	if cfg.Hybrid.Weight != 0.7 || cfg.Cache.TTL != 5*time.Minute {
		t.Error("Clone() shares state with the original")
	}
}

func TestConfig_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"ttl":"5m0s"`) {
		t.Errorf("Marshal() = %s, want human-readable ttl", data)
	}
}
