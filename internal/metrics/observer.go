// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package metrics

import (
	"time"

	"github.com/tomtom215/animerec/internal/recommend"
)

// Observer feeds engine request outcomes into the recommendation collectors.
type Observer struct{}

// NewObserver returns an Observer.
func NewObserver() *Observer {
	return &Observer{}
}

// ObserveRequest implements recommend.Observer.
func (*Observer) ObserveRequest(mode, outcome string, latency time.Duration, candidates, failures int) {
	RecommendRequests.WithLabelValues(mode, outcome).Inc()
	RecommendDuration.WithLabelValues(mode).Observe(latency.Seconds())
	if outcome == recommend.OutcomeOK || outcome == recommend.OutcomeEmpty {
		RecommendCandidates.WithLabelValues(mode).Observe(float64(candidates))
	}
	if failures > 0 {
		PredictionFailures.WithLabelValues(mode).Add(float64(failures))
	}
}

// ObserveSwap records a successful swap. Matches Reloader.OnSwap.
func ObserveSwap(ds *recommend.Dataset, took time.Duration) {
	RecordReload(took, nil)
	if ds == nil {
		return
	}
	SetDatasetSize(ds.Version, ds.Catalog.Len(), ds.Index.Users(), ds.Index.Interactions())
}

// ObserveReloadError records a failed reload. Matches Reloader.OnError.
func ObserveReloadError(err error) {
	RecordReload(0, err)
}

var _ recommend.Observer = (*Observer)(nil)
