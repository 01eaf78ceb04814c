// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

/*
Package api exposes the recommendation engine over HTTP using the chi router.

# Endpoints

	GET  /api/v1/recommendations/user/{userID}    top-N unseen items for a user
	GET  /api/v1/recommendations/similar/{itemID} hybrid recommendations anchored on an item
	GET  /api/v1/recommendations/status           dataset, model, engine and event counters
	POST /api/v1/recommendations/reload           synchronous dataset reload
	GET  /api/v1/health/live                      liveness check
	GET  /api/v1/health/ready                     readiness check (503 until a dataset is loaded)
	GET  /metrics                                 Prometheus exposition
	GET  /swagger/*                               Swagger UI and /swagger/doc.json

# Response Format

Every JSON response uses the same envelope:

	{
	  "status": "success" | "error",
	  "data": ...,
	  "metadata": {"timestamp": "...", "query_time_ms": 3, "cached": true},
	  "error": {"code": "...", "message": "..."}
	}

# Error Mapping

	ErrInvalidArgument, VALIDATION_ERROR  400
	ErrPrediction                          502
	ErrDataIntegrity                       500
	ErrNoDataset                           503

An empty result and a cold-start user are successful responses; the
engine's message explains them.

# Middleware

Request ID and correlation ID (logging context), RealIP, Recoverer, CORS
(go-chi/cors), per-IP rate limiting (go-chi/httprate) and Prometheus request
metrics labeled by route pattern.
*/
package api
