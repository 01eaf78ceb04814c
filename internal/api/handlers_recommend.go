// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/animerec/internal/events"
	"github.com/tomtom215/animerec/internal/logging"
	"github.com/tomtom215/animerec/internal/recommend"
)

// UserRecommendations handles GET /api/v1/recommendations/user/{userID}.
//
// Query parameters:
//
//	n        number of results (default from config)
//	mode     collaborative | hybrid
//	weight   hybrid factor weight in [0,1]
//	anchor   anchor item for hybrid similarity; implies mode=hybrid
//	exclude  comma-separated item IDs to leave out
//	filter   CEL expression over candidate attributes
//
// @Summary Recommend anime for a user
// @Description Ranks every unseen catalog item for the user and returns the top N
// @Tags Recommendations
// @Produce json
// @Param userID path int true "User ID"
// @Param n query int false "Number of results (1-100)"
// @Param mode query string false "collaborative or hybrid"
// @Param weight query number false "Hybrid factor weight in [0,1]"
// @Param anchor query int false "Anchor item for hybrid similarity"
// @Param exclude query string false "Comma-separated item IDs to leave out"
// @Param filter query string false "CEL filter expression"
// @Success 200 {object} APIResponse{data=recommend.Response}
// @Failure 400 {object} APIResponse
// @Failure 502 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Failure 504 {object} APIResponse
// @Router /api/v1/recommendations/user/{userID} [get]
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parseUserRecommendationRequest(r, h.defaultN())
	if apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	h.recommend(w, r, req.toEngineRequest(logging.RequestIDFromContext(r.Context())))
}

// SimilarItems handles GET /api/v1/recommendations/similar/{itemID}.
// It returns hybrid recommendations anchored on itemID for the user given
// by ?user=, which may be unknown.
//
// @Summary Recommend anime similar to a title
// @Description Hybrid recommendations anchored on an item, excluding the anchor itself
// @Tags Recommendations
// @Produce json
// @Param itemID path int true "Anchor item ID"
// @Param user query int false "User ID"
// @Param n query int false "Number of results (1-100)"
// @Param weight query number false "Hybrid factor weight in [0,1]"
// @Success 200 {object} APIResponse{data=recommend.Response}
// @Failure 400 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /api/v1/recommendations/similar/{itemID} [get]
func (h *Handler) SimilarItems(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parseSimilarRequest(r, h.defaultN())
	if apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	h.recommend(w, r, req.toEngineRequest(logging.RequestIDFromContext(r.Context())))
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (h *Handler) recommend(w http.ResponseWriter, r *http.Request, req recommend.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.opts.RequestTimeout)
	defer cancel()

	resp, err := h.engine.Recommend(ctx, req)
	if err != nil {
		status, apiErr := classifyError(err)
		respondError(w, r, status, apiErr, err)
		return
	}

	respondSuccess(w, r, resp, Metadata{
		QueryTimeMS: resp.Metadata.LatencyMS,
		Cached:      resp.Metadata.CacheHit,
	})
}

// StatusResponse is the body of GET /api/v1/recommendations/status.
type StatusResponse struct {
	Version       string                `json:"version,omitempty"`
	UptimeSeconds float64               `json:"uptime_seconds"`
	Dataset       *DatasetStatus        `json:"dataset"`
	Model         *ModelStatus          `json:"model,omitempty"`
	Engine        recommend.Stats       `json:"engine"`
	Events        *events.ConsumerStats `json:"events,omitempty"`
	Config        *recommend.Config     `json:"config"`
}

// DatasetStatus summarizes the served snapshot.
type DatasetStatus struct {
	Version      int64     `json:"version"`
	Items        int       `json:"items"`
	Users        int       `json:"users"`
	Interactions int       `json:"interactions"`
	LoadedAt     time.Time `json:"loaded_at"`
	Hybrid       bool      `json:"hybrid_available"`
}

// ModelStatus identifies the loaded predictor.
type ModelStatus struct {
	Name    string `json:"name"`
	Version int    `json:"version"`
}

// Status handles GET /api/v1/recommendations/status.
//
// @Summary Engine status
// @Description Dataset snapshot, model, engine counters and event consumer counters
// @Tags Recommendations
// @Produce json
// @Success 200 {object} APIResponse{data=StatusResponse}
// @Router /api/v1/recommendations/status [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	status := StatusResponse{
		Version:       h.opts.Version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Engine:        h.engine.Stats(),
		Config:        h.engine.Config(),
	}

	if ds := h.engine.Dataset(); ds != nil {
		status.Dataset = &DatasetStatus{
			Version:      ds.Version,
			Items:        ds.Catalog.Len(),
			Users:        ds.Index.Users(),
			Interactions: ds.Index.Interactions(),
			LoadedAt:     ds.LoadedAt,
			Hybrid:       ds.Content != nil,
		}
	}
	if h.opts.Model != nil {
		status.Model = &ModelStatus{
			Name:    h.opts.Model.Name(),
			Version: h.opts.Model.Version(),
		}
	}

	if h.opts.Events != nil {
		stats := h.opts.Events.Stats()
		status.Events = &stats
	}

	respondSuccess(w, r, status, Metadata{})
}

// Reload handles POST /api/v1/recommendations/reload. The reload runs
// synchronously; on failure the previous snapshot keeps serving.
//
// @Summary Reload the dataset
// @Description Rebuilds the catalog and interaction index from the data source and swaps it in
// @Tags Recommendations
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Failure 501 {object} APIResponse
// @Router /api/v1/recommendations/reload [post]
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	if h.reloader == nil {
		respondError(w, r, http.StatusNotImplemented, &APIError{
			Code:    CodeReloadFailed,
			Message: "Dataset reload is not configured",
		}, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.ReloadTimeout)
	defer cancel()

	start := time.Now()
	if err := h.reloader.Reload(ctx); err != nil {
		respondError(w, r, http.StatusInternalServerError, &APIError{
			Code:    CodeReloadFailed,
			Message: "Dataset reload failed; previous dataset is still served",
		}, err)
		return
	}
	// Entries for the old version can no longer hit.
	h.engine.ClearCache()

	data := map[string]interface{}{"reloaded": true}
	if ds := h.engine.Dataset(); ds != nil {
		data["dataset_version"] = ds.Version
		data["items"] = ds.Catalog.Len()
	}
	respondSuccess(w, r, data, Metadata{QueryTimeMS: time.Since(start).Milliseconds()})
}
