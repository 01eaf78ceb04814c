// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"

	"github.com/tomtom215/animerec/internal/recommend"
)

// getCounterValue extracts the value from a Prometheus counter
func getCounterValue(counter prometheus.Counter) float64 {
	var m io_prometheus_client.Metric
	if err := counter.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

// getGaugeValue extracts the value from a Prometheus gauge
func getGaugeValue(gauge prometheus.Gauge) float64 {
	var m io_prometheus_client.Metric
	if err := gauge.Write(&m); err != nil {
		return 0
	}
	return m.GetGauge().GetValue()
}

func getHistogramCount(obs prometheus.Observer) uint64 {
	h, ok := obs.(prometheus.Histogram)
	if !ok {
		return 0
	}
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		return 0
	}
	return m.GetHistogram().GetSampleCount()
}

func TestObserver_ObserveRequest(t *testing.T) {
	o := NewObserver()

	t.Run("ok request records candidates and failures", func(t *testing.T) {
		reqBefore := getCounterValue(RecommendRequests.WithLabelValues("factorization", recommend.OutcomeOK))
		failBefore := getCounterValue(PredictionFailures.WithLabelValues("factorization"))
		candBefore := getHistogramCount(RecommendCandidates.WithLabelValues("factorization"))

		o.ObserveRequest("factorization", recommend.OutcomeOK, 3*time.Millisecond, 120, 2)

		if got := getCounterValue(RecommendRequests.WithLabelValues("factorization", recommend.OutcomeOK)); got != reqBefore+1 {
			t.Errorf("requests = %v, want %v", got, reqBefore+1)
		}
		if got := getCounterValue(PredictionFailures.WithLabelValues("factorization")); got != failBefore+2 {
			t.Errorf("failures = %v, want %v", got, failBefore+2)
		}
		if got := getHistogramCount(RecommendCandidates.WithLabelValues("factorization")); got != candBefore+1 {
			t.Errorf("candidate observations = %d, want %d", got, candBefore+1)
		}
	})

	t.Run("error outcome skips candidate histogram", func(t *testing.T) {
		candBefore := getHistogramCount(RecommendCandidates.WithLabelValues("hybrid"))

		o.ObserveRequest("hybrid", recommend.OutcomeInvalid, time.Millisecond, 0, 0)

		if got := getHistogramCount(RecommendCandidates.WithLabelValues("hybrid")); got != candBefore {
			t.Errorf("candidate observations changed: %d -> %d", candBefore, got)
		}
		if got := getCounterValue(RecommendRequests.WithLabelValues("hybrid", recommend.OutcomeInvalid)); got < 1 {
			t.Errorf("invalid outcome not counted")
		}
	})
}

func TestObserveSwap(t *testing.T) {
	items := []recommend.Item{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}
	interactions := []recommend.Interaction{
		{UserID: 10, ItemID: 1, Rating: 8},
		{UserID: 10, ItemID: 2, Rating: -1},
		{UserID: 11, ItemID: 3, Rating: 6},
	}
	ds, err := recommend.NewDataset(items, interactions, 7)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}

	before := getCounterValue(DatasetReloads.WithLabelValues("success"))
	ObserveSwap(ds, 250*time.Millisecond)

	if got := getCounterValue(DatasetReloads.WithLabelValues("success")); got != before+1 {
		t.Errorf("success reloads = %v, want %v", got, before+1)
	}
	if got := getGaugeValue(DatasetVersion); got != 7 {
		t.Errorf("version = %v, want 7", got)
	}
	if got := getGaugeValue(DatasetItems); got != 3 {
		t.Errorf("items = %v, want 3", got)
	}
	if got := getGaugeValue(DatasetUsers); got != 2 {
		t.Errorf("users = %v, want 2", got)
	}
	if got := getGaugeValue(DatasetInteractions); got != 3 {
		t.Errorf("interactions = %v, want 3", got)
	}
	if getGaugeValue(DatasetLastReload) == 0 {
		t.Error("last reload timestamp not set")
	}
}

func TestObserveReloadError(t *testing.T) {
	before := getCounterValue(DatasetReloads.WithLabelValues("error"))
	ObserveReloadError(errors.New("source unavailable"))
	if got := getCounterValue(DatasetReloads.WithLabelValues("error")); got != before+1 {
		t.Errorf("error reloads = %v, want %v", got, before+1)
	}
}

func TestSetBreakerState(t *testing.T) {
	tests := []struct {
		state string
		want  float64
	}{
		{"closed", 0},
		{"half-open", 1},
		{"open", 2},
		{"unknown", 0},
	}
	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			SetBreakerState("svd", tt.state)
			if got := getGaugeValue(BreakerState.WithLabelValues("svd")); got != tt.want {
				t.Errorf("state %q = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestRecordDBQuery(t *testing.T) {
	before := getCounterValue(DBQueryErrors.WithLabelValues("SELECT", "anime"))

	RecordDBQuery("SELECT", "anime", 5*time.Millisecond, nil)
	RecordDBQuery("SELECT", "anime", 5*time.Millisecond, errors.New("no such file"))

	if got := getCounterValue(DBQueryErrors.WithLabelValues("SELECT", "anime")); got != before+1 {
		t.Errorf("errors = %v, want %v", got, before+1)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := getCounterValue(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations/user/{userID}", "200"))
	RecordAPIRequest("GET", "/api/v1/recommendations/user/{userID}", "200", 10*time.Millisecond)
	if got := getCounterValue(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations/user/{userID}", "200")); got != before+1 {
		t.Errorf("requests = %v, want %v", got, before+1)
	}

	active := getGaugeValue(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)
	if got := getGaugeValue(APIActiveRequests); got != active+1 {
		t.Errorf("active = %v, want %v", got, active+1)
	}
}

func TestRecordEvent(t *testing.T) {
	before := getCounterValue(EventsReceived.WithLabelValues("malformed"))
	RecordEvent("malformed")
	if got := getCounterValue(EventsReceived.WithLabelValues("malformed")); got != before+1 {
		t.Errorf("events = %v, want %v", got, before+1)
	}
}

func TestMetricGathering(t *testing.T) {
	RecordReload(time.Second, nil)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint: %v", err)
	}
	for _, p := range problems {
		t.Logf("lint: %s: %s", p.Metric, p.Text)
	}
}
