// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	if !ValidLevel("warn") {
		t.Error("warn should be valid")
	}
	if ValidLevel("loud") {
		t.Error("loud should be invalid")
	}
}

// Init mutates package state; these subtests do not run in parallel.
func TestInit(t *testing.T) {
	defer Init(DefaultConfig())

	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: "info", Format: "json", Timestamp: true, Output: &buf})

		Info().Str("component", "test").Msg("hello")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
		}
		if entry["message"] != "hello" {
			t.Errorf("message = %v, want hello", entry["message"])
		}
		if entry["component"] != "test" {
			t.Errorf("component = %v, want test", entry["component"])
		}
		if _, ok := entry["time"]; !ok {
			t.Error("expected time field")
		}
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: "warn", Format: "json", Output: &buf})

		Info().Msg("dropped")
		Warn().Msg("kept")

		out := buf.String()
		if strings.Contains(out, "dropped") {
			t.Error("info entry should be filtered at warn level")
		}
		if !strings.Contains(out, "kept") {
			t.Error("warn entry missing")
		}
	})

	t.Run("console output", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: "debug", Format: "console", Output: &buf})

		Debug().Msg("pretty")
		if !strings.Contains(buf.String(), "pretty") {
			t.Errorf("console output missing message: %q", buf.String())
		}
		if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
			t.Error("console output should not be JSON")
		}
	})
}

func TestSetLogger(t *testing.T) {
	defer Init(DefaultConfig())

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	child := With().Str("k", "v").Logger()
	child.Info().Msg("child")
	Err(errTest).Msg("failed")

	out := buf.String()
	if !strings.Contains(out, `"k":"v"`) {
		t.Errorf("child field missing: %s", out)
	}
	if !strings.Contains(out, `"error":"boom"`) {
		t.Errorf("error field missing: %s", out)
	}
}

type testError string

func (e testError) Error() string { return string(e) }

const errTest = testError("boom")
