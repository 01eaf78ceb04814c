// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

/*
Package validation validates HTTP request parameters with go-playground/validator v10.

A single validator instance is shared process-wide; it caches struct metadata
and is safe for concurrent use. Failures translate to the API's
VALIDATION_ERROR shape.

	type userRecommendationRequest struct {
	    UserID int      `validate:"gte=0"`
	    N      int      `validate:"min=1,max=100"`
	    Mode   string   `validate:"omitempty,oneof=collaborative hybrid"`
	    Weight *float64 `validate:"omitempty,gte=0,lte=1"`
	    Filter string   `validate:"omitempty,max=512,celfilter"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    // respond 400 with apiErr.Code and apiErr.Message
	}

# Custom Tags

  - celfilter: the string compiles as a candidate filter expression
    (see package recommend/filter)
*/
package validation
