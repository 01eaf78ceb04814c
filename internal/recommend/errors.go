// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import (
	"errors"
	"fmt"
)

// Sentinel errors for the recommendation pipeline.
var (
	// ErrInvalidArgument indicates a caller-correctable input contract violation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPrediction indicates the predictor could not score a (user, item) pair.
	ErrPrediction = errors.New("prediction failed")

	// ErrDataIntegrity indicates inconsistent upstream data, such as a duplicate
	// catalog ID or a scored candidate missing from the catalog.
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrNoDataset indicates no dataset has been loaded yet.
	ErrNoDataset = errors.New("dataset not loaded")
)

// PredictionError describes a failed prediction for a single pair.
type PredictionError struct {
	UserID int
	ItemID int
	Err    error
}

// Error implements the error interface.
func (e *PredictionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("predict user=%d item=%d: %s", e.UserID, e.ItemID, ErrPrediction)
	}
	return fmt.Sprintf("predict user=%d item=%d: %v", e.UserID, e.ItemID, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PredictionError) Unwrap() error {
	return e.Err
}

// Is reports ErrPrediction for every PredictionError.
func (e *PredictionError) Is(target error) bool {
	return target == ErrPrediction
}

// NewPredictionError wraps err as a PredictionError for the given pair.
func NewPredictionError(userID, itemID int, err error) *PredictionError {
	return &PredictionError{UserID: userID, ItemID: itemID, Err: err}
}

func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func dataIntegrity(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrDataIntegrity, fmt.Sprintf(format, args...))
}

// IsInvalidArgument reports whether err is an ErrInvalidArgument.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsPredictionError reports whether err is an ErrPrediction.
func IsPredictionError(err error) bool {
	return errors.Is(err, ErrPrediction)
}

// IsDataIntegrity reports whether err is an ErrDataIntegrity.
func IsDataIntegrity(err error) bool {
	return errors.Is(err, ErrDataIntegrity)
}
