// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/animerec/internal/recommend"
	"github.com/tomtom215/animerec/internal/validation"
)

// UserRecommendationRequest holds the parsed parameters of
// GET /recommendations/user/{userID}.
type UserRecommendationRequest struct {
	UserID  int      `validate:"gte=0"`
	N       int      `validate:"min=1"`
	Mode    string   `validate:"omitempty,oneof=collaborative hybrid"`
	Weight  *float64 `validate:"omitempty,gte=0,lte=1"`
	Anchor  int      `validate:"gte=0"`
	Exclude []int    `validate:"max=500,dive,gt=0"`
	Filter  string   `validate:"omitempty,max=512,celfilter"`
}

// SimilarRequest holds the parsed parameters of
// GET /recommendations/similar/{itemID}.
type SimilarRequest struct {
	ItemID int      `validate:"gt=0"`
	UserID int      `validate:"gte=0"`
	N      int      `validate:"min=1"`
	Weight *float64 `validate:"omitempty,gte=0,lte=1"`
}

// paramError reports a parameter that could not be parsed at all.
type paramError struct {
	name  string
	value string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.name, e.value)
}

func (e *paramError) apiError() *APIError {
	return &APIError{
		Code:    CodeInvalidParam,
		Message: e.Error(),
		Details: map[string]interface{}{"parameter": e.name},
	}
}

func intPathParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{name: name, value: raw}
	}
	return v, nil
}

func intQueryParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &paramError{name: name, value: raw}
	}
	return v, nil
}

func floatQueryParam(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, &paramError{name: name, value: raw}
	}
	return &v, nil
}

// intListQueryParam parses a comma-separated list, skipping empty elements.
func intListQueryParam(r *http.Request, name string) ([]int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, &paramError{name: name, value: part}
		}
		out = append(out, v)
	}
	return out, nil
}

func parseUserRecommendationRequest(r *http.Request, defaultN int) (*UserRecommendationRequest, *APIError) {
	var req UserRecommendationRequest
	var err error

	if req.UserID, err = intPathParam(r, "userID"); err != nil {
		return nil, asParamError(err)
	}
	if req.N, err = intQueryParam(r, "n", defaultN); err != nil {
		return nil, asParamError(err)
	}
	if req.Weight, err = floatQueryParam(r, "weight"); err != nil {
		return nil, asParamError(err)
	}
	if req.Anchor, err = intQueryParam(r, "anchor", 0); err != nil {
		return nil, asParamError(err)
	}
	if req.Exclude, err = intListQueryParam(r, "exclude"); err != nil {
		return nil, asParamError(err)
	}
	req.Mode = r.URL.Query().Get("mode")
	req.Filter = r.URL.Query().Get("filter")

	if apiErr := validateRequest(&req); apiErr != nil {
		return nil, apiErr
	}
	return &req, nil
}

func parseSimilarRequest(r *http.Request, defaultN int) (*SimilarRequest, *APIError) {
	var req SimilarRequest
	var err error

	if req.ItemID, err = intPathParam(r, "itemID"); err != nil {
		return nil, asParamError(err)
	}
	if req.UserID, err = intQueryParam(r, "user", 0); err != nil {
		return nil, asParamError(err)
	}
	if req.N, err = intQueryParam(r, "n", defaultN); err != nil {
		return nil, asParamError(err)
	}
	if req.Weight, err = floatQueryParam(r, "weight"); err != nil {
		return nil, asParamError(err)
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		return nil, apiErr
	}
	return &req, nil
}

// toEngineRequest converts validated parameters. Mode was checked by the
// validator, so ParseMode cannot fail here.
func (req *UserRecommendationRequest) toEngineRequest(requestID string) recommend.Request {
	mode, _ := recommend.ParseMode(req.Mode) //nolint:errcheck // validated by oneof
	if req.Anchor != 0 {
		mode = recommend.ModeHybrid
	}
	return recommend.Request{
		UserID:       req.UserID,
		N:            req.N,
		Mode:         mode,
		AnchorItemID: req.Anchor,
		Weight:       req.Weight,
		ExcludeIDs:   req.Exclude,
		Filter:       req.Filter,
		RequestID:    requestID,
	}
}

func (req *SimilarRequest) toEngineRequest(requestID string) recommend.Request {
	return recommend.Request{
		UserID:       req.UserID,
		N:            req.N,
		Mode:         recommend.ModeHybrid,
		AnchorItemID: req.ItemID,
		Weight:       req.Weight,
		RequestID:    requestID,
	}
}

func asParamError(err error) *APIError {
	if pe, ok := err.(*paramError); ok { //nolint:errorlint // constructed locally, never wrapped
		return pe.apiError()
	}
	return &APIError{Code: CodeInvalidParam, Message: err.Error()}
}

// validateRequest runs struct validation and converts failures to the API
// error shape.
func validateRequest(v interface{}) *APIError {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return nil
	}
	apiErr := verr.ToAPIError()
	return &APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}
