// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package algorithms implements the scoring models behind the engine.
//
// # Models
//
//   - SVD: biased matrix factorization loaded from a stored artifact.
//     Implements recommend.Estimator and recommend.ModelInfo, so it plugs
//     into the engine through recommend.NewEstimatorAdapter.
//   - ContentModel: genre TF-IDF vectors compared by cosine similarity.
//     Implements recommend.ContentScorer for hybrid mode.
//
// Training happens offline. This package only evaluates trained state.
//
// # Usage
//
//	store, _ := storage.NewStore(cfg.Model.Dir)
//	svd, meta, err := algorithms.LoadSVD(ctx, store, "svd", 0)
//	if err != nil {
//	    return err
//	}
//	predictor := recommend.NewEstimatorAdapter(svd)
//
//	reloader.Content = algorithms.BuildContent
//
// # Thread Safety
//
// Both models are immutable after construction and safe for concurrent use.
package algorithms
