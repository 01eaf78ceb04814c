// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import (
	"time"
)

// UnratedRating marks an interaction where the user watched a title without rating it.
const UnratedRating = -1.0

// Interaction represents a user-item rating event.
type Interaction struct {
	// UserID is the user identifier.
	UserID int `json:"user_id" msgpack:"user_id"`

	// ItemID is the anime identifier.
	ItemID int `json:"item_id" msgpack:"item_id"`

	// Rating is the explicit rating (1-10), or UnratedRating.
	// Ratings do not affect the seen classification.
	Rating float64 `json:"rating" msgpack:"rating"`
}

// Item represents a catalog entry.
type Item struct {
	// ID is the unique anime identifier.
	ID int `json:"id" msgpack:"id"`

	// Name is the display title.
	Name string `json:"name" msgpack:"name"`

	// Genres is a slice of genre names.
	Genres []string `json:"genres,omitempty" msgpack:"genres,omitempty"`

	// Type is the release format (TV, Movie, OVA, ...).
	Type string `json:"type,omitempty" msgpack:"type,omitempty"`

	// Episodes is the episode count, zero when unknown.
	Episodes int `json:"episodes,omitempty" msgpack:"episodes,omitempty"`

	// Rating is the community average rating.
	Rating float64 `json:"rating,omitempty" msgpack:"rating,omitempty"`

	// Members is the community membership count.
	Members int `json:"members,omitempty" msgpack:"members,omitempty"`

	// Features is an optional precomputed content vector.
	Features []float64 `json:"-" msgpack:"features,omitempty"`
}

// ScoredCandidate pairs a candidate item with its predicted score.
type ScoredCandidate struct {
	ItemID int     `json:"item_id"`
	Score  float64 `json:"score"`
}

// Recommendation is a final output row, ready for display.
type Recommendation struct {
	ItemID int     `json:"item_id"`
	Name   string  `json:"name"`
	Score  float64 `json:"predicted_score"`
}

// Mode selects how candidates are scored.
type Mode int

const (
	// ModeCollaborative ranks by the latent-factor prediction alone.
	ModeCollaborative Mode = iota
	// ModeHybrid blends the prediction with content similarity.
	ModeHybrid
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeCollaborative:
		return "collaborative"
	case ModeHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name. The empty string selects ModeCollaborative.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "collaborative":
		return ModeCollaborative, nil
	case "hybrid":
		return ModeHybrid, nil
	default:
		return ModeCollaborative, invalidArgument("unknown mode %q", s)
	}
}

// Request represents a recommendation request.
type Request struct {
	// UserID is the user to recommend for. Unknown users are cold-start, not errors.
	UserID int `json:"user_id"`

	// N is the number of recommendations to return. Must be positive.
	N int `json:"n"`

	// Mode selects collaborative or hybrid scoring.
	Mode Mode `json:"mode"`

	// AnchorItemID is the item hybrid similarity is measured against.
	// Zero means the user's seen items form the content profile.
	AnchorItemID int `json:"anchor_item_id,omitempty"`

	// Weight overrides the configured hybrid weight when non-nil.
	Weight *float64 `json:"weight,omitempty"`

	// ExcludeIDs removes additional items from the candidate set.
	ExcludeIDs []int `json:"exclude_ids,omitempty"`

	// Filter is an optional CEL expression candidates must satisfy.
	Filter string `json:"filter,omitempty"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// Response represents a recommendation response.
type Response struct {
	// Items is the ranked output, at most N rows.
	Items []Recommendation `json:"items"`

	// TotalCandidates is the number of candidates that were scored.
	TotalCandidates int `json:"total_candidates"`

	// Failures is the number of candidates whose prediction failed and were skipped.
	Failures int `json:"failures"`

	// ColdStart is set when the user has no recorded interactions.
	ColdStart bool `json:"cold_start"`

	// Message is a user-facing note for empty or cold-start results.
	Message string `json:"message,omitempty"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID      string    `json:"request_id"`
	UserID         int       `json:"user_id"`
	Mode           string    `json:"mode"`
	Weight         float64   `json:"weight,omitempty"`
	AnchorItemID   int       `json:"anchor_item_id,omitempty"`
	LatencyMS      int64     `json:"latency_ms"`
	CacheHit       bool      `json:"cache_hit"`
	DatasetVersion int64     `json:"dataset_version"`
	Model          string    `json:"model"`
	ModelVersion   int       `json:"model_version"`
	Timestamp      time.Time `json:"timestamp"`
}

// Messages attached to non-error terminal states.
const (
	MessageNoCandidates = "no recommendations available"
	MessageColdStart    = "no interactions recorded for user; using default predictions"
)

// Stats contains engine counters for observability.
type Stats struct {
	RequestCount int64 `json:"request_count"`
	CacheHits    int64 `json:"cache_hits"`
	CacheMisses  int64 `json:"cache_misses"`
	ErrorCount   int64 `json:"error_count"`
	Failures     int64 `json:"prediction_failures"`
}
