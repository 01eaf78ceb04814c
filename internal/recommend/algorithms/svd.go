// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package algorithms

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/tomtom215/animerec/internal/recommend"
	"github.com/tomtom215/animerec/internal/recommend/storage"
)

// SVD evaluates a biased matrix factorization:
//
//	r(u, i) = mu + b_u + b_i + q_i . p_u
//
// Terms for an unknown user or item are omitted. When both are unknown the
// estimate is the global mean and the prediction is flagged WasImpossible.
// Estimates are clipped to the rating scale.
type SVD struct {
	name    string
	version int

	mu        float64
	userIndex map[int]int
	itemIndex map[int]int
	bu        []float64
	bi        []float64
	pu        [][]float64
	qi        [][]float64
	lo, hi    float64
}

// NewSVD builds a model from stored state. The state is validated and must
// not be modified afterwards.
func NewSVD(name string, version int, state *storage.FactorModelState) (*SVD, error) {
	if state == nil {
		return nil, fmt.Errorf("svd %s: nil state", name)
	}
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("svd %s v%d: %w", name, version, err)
	}

	return &SVD{
		name:      name,
		version:   version,
		mu:        state.GlobalMean,
		userIndex: state.UserIndex,
		itemIndex: state.ItemIndex,
		bu:        state.UserBias,
		bi:        state.ItemBias,
		pu:        state.UserFactors,
		qi:        state.ItemFactors,
		lo:        state.RatingMin,
		hi:        state.RatingMax,
	}, nil
}

// LoadSVD loads a stored model. Version 0 loads the latest.
func LoadSVD(ctx context.Context, store *storage.Store, name string, version int) (*SVD, *storage.ModelMetadata, error) {
	var state storage.FactorModelState
	meta, err := store.Load(ctx, name, version, &state)
	if err != nil {
		return nil, nil, fmt.Errorf("load model %s: %w", name, err)
	}

	model, err := NewSVD(meta.Name, meta.Version, &state)
	if err != nil {
		return nil, nil, err
	}
	return model, meta, nil
}

// Name implements recommend.ModelInfo.
func (m *SVD) Name() string { return m.name }

// Version implements recommend.ModelInfo.
func (m *SVD) Version() int { return m.version }

// Users returns the number of users known to the model.
func (m *SVD) Users() int { return len(m.userIndex) }

// Items returns the number of items known to the model.
func (m *SVD) Items() int { return len(m.itemIndex) }

// GlobalMean returns the mean rating of the training set.
func (m *SVD) GlobalMean() float64 { return m.mu }

// Estimate implements recommend.Estimator.
func (m *SVD) Estimate(userID, itemID int) (recommend.Prediction, error) {
	u, knownUser := m.userIndex[userID]
	i, knownItem := m.itemIndex[itemID]

	est := m.mu
	if knownUser {
		est += m.bu[u]
	}
	if knownItem {
		est += m.bi[i]
	}
	if knownUser && knownItem {
		est += floats.Dot(m.qi[i], m.pu[u])
	}

	p := recommend.Prediction{
		UserID:   userID,
		ItemID:   itemID,
		Estimate: clip(est, m.lo, m.hi),
		Details: recommend.PredictionDetails{
			KnownUser: knownUser,
			KnownItem: knownItem,
		},
	}
	if !knownUser && !knownItem {
		p.Details.WasImpossible = true
		p.Details.Reason = "user and item are unknown"
	}
	return p, nil
}
