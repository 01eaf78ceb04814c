// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

/*
Package metrics defines the Prometheus collectors exported on /metrics.

Collectors are package-level promauto variables registered with the default
registry. Call sites use the Record* helpers rather than the collectors
directly.

# Recommendation

  - animerec_recommend_requests_total{mode,outcome}
  - animerec_recommend_duration_seconds{mode}
  - animerec_recommend_candidates{mode}
  - animerec_prediction_failures_total{mode}
  - animerec_predictor_breaker_state{predictor} (0 closed, 1 half-open, 2 open)

# Dataset

  - animerec_dataset_reloads_total{status}
  - animerec_dataset_reload_duration_seconds
  - animerec_dataset_version, animerec_dataset_items, animerec_dataset_users,
    animerec_dataset_interactions
  - animerec_dataset_last_reload_timestamp_seconds

# Storage, API and events

  - duckdb_query_duration_seconds{operation,table}, duckdb_query_errors_total
  - api_requests_total{method,endpoint,status_code}, api_request_duration_seconds,
    api_active_requests
  - animerec_events_received_total{result}
*/
package metrics
