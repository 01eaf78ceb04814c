// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package api

import (
	"net/http"
	"time"
)

// HealthLive handles liveness checks. It answers 200 while the process runs.
//
// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/v1/health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, Metadata{})
}

// HealthReady handles readiness checks. It answers 503 until the first
// dataset snapshot has been published.
//
// @Summary Readiness check
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /api/v1/health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ds := h.engine.Dataset()
	if ds == nil {
		respondError(w, r, http.StatusServiceUnavailable, &APIError{
			Code:    CodeNotReady,
			Message: "Dataset is not loaded yet",
		}, nil)
		return
	}

	respondSuccess(w, r, map[string]interface{}{
		"ready":           true,
		"dataset_version": ds.Version,
		"items":           ds.Catalog.Len(),
	}, Metadata{})
}
