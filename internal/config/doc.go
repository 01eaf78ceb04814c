// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

/*
Package config loads animerec configuration.

Sources are layered with Koanf v2, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file (CONFIG_PATH, ./config.yaml, /etc/animerec/config.yaml)
 3. Environment variables listed in envMappings

Unknown environment variables are ignored.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, SHUTDOWN_TIMEOUT, ENVIRONMENT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Data:
  - DATA_SOURCE: csv, duckdb or redis (default: csv)
  - ANIME_CSV, RATING_CSV: catalog and rating files, read through in-memory DuckDB
  - DUCKDB_PATH: database file holding anime and rating tables (DATA_SOURCE=duckdb)
  - DATA_REFRESH_INTERVAL: periodic reload, 0 disables

Model:
  - MODEL_DIR, MODEL_NAME, MODEL_VERSION (0 loads the latest)

Recommendation:
  - RECOMMEND_DEFAULT_N, RECOMMEND_MAX_N
  - RECOMMEND_FAILURE_POLICY: skip or fail
  - RECOMMEND_WORKERS
  - RECOMMEND_HYBRID_WEIGHT, RECOMMEND_NORMALIZATION
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_TTL, RECOMMEND_CACHE_MAX_ENTRIES

Circuit breaker:
  - BREAKER_ENABLED, BREAKER_MAX_FAILURES, BREAKER_OPEN_TIMEOUT, BREAKER_HALF_OPEN_REQUESTS

Redis:
  - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, REDIS_KEY_PREFIX

Events:
  - EVENTS_ENABLED, NATS_URL, EVENTS_SUBJECT, EVENTS_QUEUE_GROUP

Security:
  - CORS_ORIGINS (comma-separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
*/
package config
