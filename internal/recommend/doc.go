// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package recommend implements the anime recommendation scoring engine.
//
// # Architecture
//
// A recommendation request flows through a fixed pipeline of small,
// independently testable stages:
//
//   - Interaction Index: per-user set of already-seen item IDs
//   - Candidate Generator: catalog minus seen items, in catalog order
//   - Predictor: uniform predict(user, item) over any trained model
//   - Batch Scorer: one prediction per candidate, skip-or-fail policy
//   - Hybrid Blender: optional weighted blend with content similarity
//   - Ranker: score descending, item ID ascending, truncated to N
//
// # Shared State
//
// The catalog and interaction index are bundled into an immutable Dataset.
// Readers obtain the current Dataset through a DatasetHandle, and a reload
// builds a complete replacement before swapping the pointer. No request ever
// observes a partially built index.
//
// The model handle is loaded once and shared read-only by all requests.
//
// # Usage
//
//	handle := recommend.NewDatasetHandle()
//	reloader := recommend.NewReloader(source, handle, logger)
//	if err := reloader.Reload(ctx); err != nil {
//	    return err
//	}
//
//	engine, err := recommend.NewEngine(cfg, handle, predictor, logger)
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    UserID: 7,
//	    N:      10,
//	})
//
// # Errors
//
// ErrInvalidArgument and ErrDataIntegrity are fatal for the request.
// ErrPrediction is absorbed by the batch scorer under PolicySkip and
// surfaces only as a failure count. Cold-start users and empty candidate
// sets are valid outcomes, not errors.
package recommend
