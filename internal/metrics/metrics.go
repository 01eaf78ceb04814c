// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "animerec_recommend_requests_total",
			Help: "Total number of recommendation requests by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "animerec_recommend_duration_seconds",
			Help:    "Recommendation latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"mode"},
	)

	RecommendCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "animerec_recommend_candidates",
			Help:    "Number of candidates scored per request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 9), // 1 .. 65536
		},
		[]string{"mode"},
	)

	PredictionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "animerec_prediction_failures_total",
			Help: "Total number of candidates whose prediction failed",
		},
		[]string{"mode"},
	)

	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "animerec_predictor_breaker_state",
			Help: "Predictor circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"predictor"},
	)

	// Dataset Metrics
	DatasetReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "animerec_dataset_reloads_total",
			Help: "Total number of dataset reload attempts",
		},
		[]string{"status"}, // "success", "error"
	)

	DatasetReloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "animerec_dataset_reload_duration_seconds",
			Help:    "Duration of successful dataset reloads",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	DatasetVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "animerec_dataset_version",
			Help: "Version of the dataset currently served",
		},
	)

	DatasetItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "animerec_dataset_items",
			Help: "Number of catalog items in the served dataset",
		},
	)

	DatasetUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "animerec_dataset_users",
			Help: "Number of users with interactions in the served dataset",
		},
	)

	DatasetInteractions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "animerec_dataset_interactions",
			Help: "Number of interactions in the served dataset",
		},
	)

	DatasetLastReload = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "animerec_dataset_last_reload_timestamp_seconds",
			Help: "Unix timestamp of the last successful dataset reload",
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Event Metrics
	EventsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "animerec_events_received_total",
			Help: "Dataset update events received, by handling result",
		},
		[]string{"result"}, // "reloaded", "failed", "malformed"
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordReload records a dataset reload attempt. Size gauges are only
// updated on success.
func RecordReload(duration time.Duration, err error) {
	if err != nil {
		DatasetReloads.WithLabelValues("error").Inc()
		return
	}
	DatasetReloads.WithLabelValues("success").Inc()
	DatasetReloadDuration.Observe(duration.Seconds())
	DatasetLastReload.Set(float64(time.Now().Unix()))
}

// SetDatasetSize publishes the served dataset's shape.
func SetDatasetSize(version int64, items, users, interactions int) {
	DatasetVersion.Set(float64(version))
	DatasetItems.Set(float64(items))
	DatasetUsers.Set(float64(users))
	DatasetInteractions.Set(float64(interactions))
}

// RecordEvent records the result of handling a dataset update event.
func RecordEvent(result string) {
	EventsReceived.WithLabelValues(result).Inc()
}

// breakerStateValue maps gobreaker state names to gauge values.
func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}

// SetBreakerState publishes a predictor breaker state.
func SetBreakerState(predictor, state string) {
	BreakerState.WithLabelValues(predictor).Set(breakerStateValue(state))
}
