// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package main is the entry point for the animerec server.
//
// animerec serves top-N anime recommendations from a pre-trained biased SVD
// model, optionally blended with genre content similarity.
//
// # Startup Order
//
//  1. Configuration (koanf: defaults, config.yaml, environment)
//  2. Logging (zerolog)
//  3. Model artifact (msgpack + gzip, checksum verified)
//  4. Predictor, wrapped in a circuit breaker when enabled
//  5. Data source (csv, duckdb or redis) and the first dataset load
//  6. Engine and HTTP router
//  7. Supervisor tree: HTTP server, periodic refresh, dataset events
//
// The server refuses to start when the model cannot be loaded. A failed
// initial dataset load is logged; the periodic refresh (DATA_REFRESH_INTERVAL),
// a dataset event or POST /api/v1/recommendations/reload retries it, and
// /api/v1/health/ready answers 503 until a snapshot is published.
//
// # Example
//
//	export DATA_SOURCE=csv
//	export ANIME_CSV=/data/anime.csv
//	export RATING_CSV=/data/rating.csv
//	export MODEL_DIR=/data/models
//	./animerec
//
//	curl 'localhost:8080/api/v1/recommendations/user/42?n=5'
//	curl 'localhost:8080/api/v1/recommendations/similar/1535?user=42'
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
// in-flight requests within SHUTDOWN_TIMEOUT.
//
// # API Documentation
//
// The OpenAPI document is served at /swagger/doc.json with a browsable UI at
// /swagger/index.html. Regenerate the docs package after changing handler
// annotations:
//
//	swag init -g cmd/server/doc.go -o docs
//
// @title Animerec API
// @version 1.0
// @description Top-N anime recommendations from a biased SVD model with optional genre similarity blending.
// @description
// @description All responses use the envelope {status, data, metadata, error}.
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
// @BasePath /
package main
