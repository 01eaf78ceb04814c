// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Dataset is an immutable snapshot of the catalog and its interaction index.
type Dataset struct {
	Catalog  *Catalog
	Index    *InteractionIndex
	Version  int64
	LoadedAt time.Time

	// Content scores item similarity for hybrid mode. Nil disables hybrid.
	Content ContentScorer
}

// ContentScorer measures content similarity between catalog items.
// Implementations are built per Dataset and are read-only afterwards.
type ContentScorer interface {
	// SimilarTo scores each candidate against a single anchor item.
	SimilarTo(anchorID int, candidates []int) map[int]float64

	// ProfileSimilarity scores each candidate against the centroid of profile.
	ProfileSimilarity(profile []int, candidates []int) map[int]float64
}

// ContentBuilder builds a ContentScorer for a freshly loaded catalog.
type ContentBuilder func(catalog *Catalog) (ContentScorer, error)

// NewDataset validates items and indexes interactions.
func NewDataset(items []Item, interactions []Interaction, version int64) (*Dataset, error) {
	catalog, err := NewCatalog(items)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		Catalog:  catalog,
		Index:    BuildIndex(interactions),
		Version:  version,
		LoadedAt: time.Now(),
	}, nil
}

// DatasetHandle publishes the current Dataset to concurrent readers.
// Readers never block and never see a partially built snapshot.
type DatasetHandle struct {
	current atomic.Pointer[Dataset]
}

// NewDatasetHandle returns an empty handle.
func NewDatasetHandle() *DatasetHandle {
	return &DatasetHandle{}
}

// Load returns the current snapshot, or nil before the first Swap.
func (h *DatasetHandle) Load() *Dataset {
	return h.current.Load()
}

// Swap publishes ds and returns the previous snapshot.
func (h *DatasetHandle) Swap(ds *Dataset) *Dataset {
	return h.current.Swap(ds)
}

// DataSource supplies the raw catalog and interaction log.
type DataSource interface {
	// Name identifies the source in logs.
	Name() string

	// LoadCatalog returns items in catalog order.
	LoadCatalog(ctx context.Context) ([]Item, error)

	// LoadInteractions returns the full interaction log.
	LoadInteractions(ctx context.Context) ([]Interaction, error)
}

// SnapshotSource is implemented by sources that can return the catalog and
// interaction log from one consistent version. The Reloader prefers it over
// separate LoadCatalog and LoadInteractions calls.
type SnapshotSource interface {
	DataSource
	LoadSnapshot(ctx context.Context) ([]Item, []Interaction, error)
}

// Reloader rebuilds the dataset from a DataSource and swaps it in.
type Reloader struct {
	source DataSource
	handle *DatasetHandle
	logger zerolog.Logger

	mu      sync.Mutex
	version atomic.Int64

	// OnSwap is called after a successful swap. Optional.
	OnSwap func(ds *Dataset, elapsed time.Duration)

	// OnError is called after a failed reload. Optional.
	OnError func(err error)

	// Content builds the hybrid content model for each snapshot. Optional.
	Content ContentBuilder
}

// NewReloader creates a reloader publishing into handle.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReloader(source DataSource, handle *DatasetHandle, logger zerolog.Logger) *Reloader {
	return &Reloader{
		source: source,
		handle: handle,
		logger: logger.With().Str("component", "dataset-reloader").Str("source", source.Name()).Logger(),
	}
}

// Reload loads, validates and publishes a new snapshot. Concurrent calls are
// serialized. On failure the previous snapshot stays in place.
func (r *Reloader) Reload(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	ds, err := r.build(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("dataset reload failed")
		if r.OnError != nil {
			r.OnError(err)
		}
		return err
	}

	r.handle.Swap(ds)
	elapsed := time.Since(start)

	r.logger.Info().
		Int64("version", ds.Version).
		Int("items", ds.Catalog.Len()).
		Int("users", ds.Index.Users()).
		Int("interactions", ds.Index.Interactions()).
		Dur("elapsed", elapsed).
		Msg("dataset swapped")

	if r.OnSwap != nil {
		r.OnSwap(ds, elapsed)
	}
	return nil
}

func (r *Reloader) load(ctx context.Context) ([]Item, []Interaction, error) {
	if snap, ok := r.source.(SnapshotSource); ok {
		items, interactions, err := snap.LoadSnapshot(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("load snapshot: %w", err)
		}
		return items, interactions, nil
	}

	items, err := r.source.LoadCatalog(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	interactions, err := r.source.LoadInteractions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load interactions: %w", err)
	}
	return items, interactions, nil
}

func (r *Reloader) build(ctx context.Context) (*Dataset, error) {
	items, interactions, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ds, err := NewDataset(items, interactions, r.version.Load()+1)
	if err != nil {
		return nil, fmt.Errorf("build dataset: %w", err)
	}

	if r.Content != nil {
		content, err := r.Content(ds.Catalog)
		if err != nil {
			return nil, fmt.Errorf("build content model: %w", err)
		}
		ds.Content = content
	}
	r.version.Store(ds.Version)
	return ds, nil
}
