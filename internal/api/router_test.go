// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	_ "github.com/tomtom215/animerec/docs"
	"github.com/tomtom215/animerec/internal/metrics"
)

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("live", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, false, nil)
		rec, body := f.do(t, http.MethodGet, "/api/v1/health/live")
		if rec.Code != http.StatusOK || body.Status != "success" {
			t.Errorf("status = %d, envelope = %q", rec.Code, body.Status)
		}
	})

	t.Run("ready without dataset", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, false, nil)
		rec, _ := f.do(t, http.MethodGet, "/api/v1/health/ready")
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
	})

	t.Run("ready with dataset", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, true, nil)
		rec, _ := f.do(t, http.MethodGet, "/api/v1/health/ready")
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}

func TestRouter_RequestIDHeader(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", http.NoBody)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "req-123" {
		t.Errorf("X-Request-Id = %q, want req-123", got)
	}

	rec, body := f.do(t, http.MethodGet, "/api/v1/health/live")
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected generated request id")
	}
	if body.Metadata.RequestID != rec.Header().Get("X-Request-Id") {
		t.Errorf("metadata request id = %q, header = %q", body.Metadata.RequestID, rec.Header().Get("X-Request-Id"))
	}
}

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true, nil)
	rec, body := f.do(t, http.MethodGet, "/api/v1/nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
	if body.Error == nil || body.Error.Code != "NOT_FOUND" {
		t.Errorf("error = %+v", body.Error)
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true, nil)
	rec, _ := f.do(t, http.MethodGet, "/api/v1/recommendations/status")
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations/user/7", http.NoBody)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	f := newFixture(t, true, nil)
	f.do(t, http.MethodGet, "/api/v1/recommendations/user/7")

	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("expected API request counter in exposition")
	}
}

func TestRouter_SwaggerDoc(t *testing.T) {
	t.Parallel()
	f := newFixture(t, true, nil)

	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, path := range []string{
		"/api/v1/recommendations/user/{userID}",
		"/api/v1/recommendations/similar/{itemID}",
		"/api/v1/health/ready",
	} {
		if !strings.Contains(body, path) {
			t.Errorf("doc.json missing %s", path)
		}
	}

	rec = httptest.NewRecorder()
	f.server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/index.html", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Errorf("index status = %d", rec.Code)
	}
}

func TestPrometheusMetrics_RoutePatternLabel(t *testing.T) {
	f := newFixture(t, true, nil)
	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/recommendations/user/{userID}", "200")
	before := testutil.ToFloat64(counter)

	f.do(t, http.MethodGet, "/api/v1/recommendations/user/7")
	f.do(t, http.MethodGet, "/api/v1/recommendations/user/99")

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("counter delta = %v, want 2", got)
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	mw := NewChiMiddlewareFromSecurity(nil, 2, time.Minute, false)
	handler := mw.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	t.Parallel()

	mw := NewChiMiddlewareFromSecurity(nil, 1, time.Minute, true)
	handler := mw.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()
	if got := sanitizeLogValue("a\nb\x7f"); got != `a\x0ab\x7f` {
		t.Errorf("sanitizeLogValue() = %q", got)
	}
}
