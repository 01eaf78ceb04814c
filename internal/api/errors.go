// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/animerec/internal/recommend"
)

// Error codes returned in APIError.Code.
const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeInvalidParam    = "INVALID_PARAMETER"
	CodePrediction      = "PREDICTION_ERROR"
	CodeDataIntegrity   = "DATA_INTEGRITY"
	CodeNotReady        = "DATASET_NOT_LOADED"
	CodeReloadFailed    = "RELOAD_FAILED"
	CodeTimeout         = "TIMEOUT"
	CodeInternal        = "INTERNAL_ERROR"
)

// classifyError maps engine errors to an HTTP status and API error. The
// message for server-side failures does not echo internal detail.
func classifyError(err error) (int, *APIError) {
	switch {
	case errors.Is(err, recommend.ErrInvalidArgument):
		return http.StatusBadRequest, &APIError{Code: CodeInvalidArgument, Message: err.Error()}
	case errors.Is(err, recommend.ErrNoDataset):
		return http.StatusServiceUnavailable, &APIError{Code: CodeNotReady, Message: "Dataset is not loaded yet"}
	case errors.Is(err, recommend.ErrPrediction):
		return http.StatusBadGateway, &APIError{Code: CodePrediction, Message: "Score prediction failed"}
	case errors.Is(err, recommend.ErrDataIntegrity):
		return http.StatusInternalServerError, &APIError{Code: CodeDataIntegrity, Message: "Recommendation data is inconsistent"}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, &APIError{Code: CodeTimeout, Message: "Recommendation timed out"}
	default:
		return http.StatusInternalServerError, &APIError{Code: CodeInternal, Message: "Failed to generate recommendations"}
	}
}
