// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/animerec/internal/cache"
	"github.com/tomtom215/animerec/internal/recommend/filter"
)

// Observer receives per-request outcomes. The metrics package provides the
// production implementation.
type Observer interface {
	ObserveRequest(mode, outcome string, latency time.Duration, candidates, failures int)
}

// Request outcomes reported to the Observer.
const (
	OutcomeOK        = "ok"
	OutcomeEmpty     = "empty"
	OutcomeCacheHit  = "cache_hit"
	OutcomeInvalid   = "invalid_argument"
	OutcomePredict   = "prediction_error"
	OutcomeIntegrity = "data_integrity"
	OutcomeError     = "error"
)

// Engine runs the recommendation pipeline against the current dataset
// snapshot. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	handle    *DatasetHandle
	predictor Predictor
	scorer    *BatchScorer
	blender   *HybridBlender
	filters   *filter.Cache
	observer  Observer

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64
	failures     atomic.Int64

	// nil when response caching is disabled
	responses *cache.LRU[*Response]
}

// NewEngine creates a recommendation engine reading snapshots from handle
// and scoring with predictor.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, handle *DatasetHandle, predictor Predictor, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if handle == nil {
		return nil, errors.New("dataset handle is required")
	}

	policy, err := ParseFailurePolicy(cfg.Scoring.FailurePolicy)
	if err != nil {
		return nil, err
	}
	blender, err := NewHybridBlenderByName(cfg.Hybrid.Normalization, cfg.Hybrid.RatingMin, cfg.Hybrid.RatingMax)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		config:    cfg,
		logger:    logger.With().Str("component", "recommend").Logger(),
		handle:    handle,
		predictor: predictor,
		scorer:    NewBatchScorer(predictor, policy, cfg.Scoring.Workers),
		blender:   blender,
		filters:   filter.NewCache(256),
	}
	if cfg.Cache.Enabled {
		e.responses = cache.NewLRU[*Response](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// SetObserver installs a request observer. Call before serving traffic.
func (e *Engine) SetObserver(o Observer) {
	e.observer = o
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Dataset returns the snapshot currently served, or nil.
func (e *Engine) Dataset() *Dataset {
	return e.handle.Load()
}

// Recommend returns the top N unseen items for a user.
//
// Errors wrap ErrInvalidArgument, ErrPrediction (fail policy only),
// ErrDataIntegrity or ErrNoDataset. An empty candidate set and an unknown
// user are not errors; see Response.Message and Response.ColdStart.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req, err := e.prepareRequest(req)
	if err != nil {
		return nil, e.fail(req, start, err)
	}
	logger := e.createRequestLogger(req)

	ds := e.handle.Load()
	if ds == nil {
		return nil, e.fail(req, start, ErrNoDataset)
	}

	weight, err := e.resolveWeight(req)
	if err != nil {
		return nil, e.fail(req, start, err)
	}

	key := e.cacheKey(req, weight, ds.Version)
	if resp := e.tryGetCachedResponse(key, start); resp != nil {
		logger.Debug().Msg("cache hit")
		e.observe(req, OutcomeCacheHit, start, resp.TotalCandidates, resp.Failures)
		return resp, nil
	}

	seen := ds.Index.SeenItems(req.UserID)
	coldStart := seen.Len() == 0

	candidates, err := e.buildCandidates(ds, seen, req)
	if err != nil {
		return nil, e.fail(req, start, err)
	}

	if len(candidates) == 0 {
		logger.Debug().Msg("no candidates available")
		resp := e.emptyResponse(req, ds, weight, coldStart, start)
		e.cacheResponse(key, resp)
		e.observe(req, OutcomeEmpty, start, 0, 0)
		return resp, nil
	}

	result, err := e.scorer.ScoreAll(ctx, req.UserID, candidates)
	if err != nil {
		return nil, e.fail(req, start, err)
	}
	if result.Failures > 0 {
		e.failures.Add(int64(result.Failures))
		logger.Warn().
			Int("failures", result.Failures).
			Ints("failed_items", truncateIDs(result.FailedItems, 20)).
			Msg("skipped candidates with failed predictions")
	}

	scored := result.Scored
	if req.Mode == ModeHybrid {
		scored, err = e.blend(ds, seen, req, scored, weight)
		if err != nil {
			return nil, e.fail(req, start, err)
		}
	}

	top, err := TopN(scored, req.N)
	if err != nil {
		return nil, e.fail(req, start, err)
	}
	items, err := JoinCatalog(top, ds.Catalog)
	if err != nil {
		return nil, e.fail(req, start, err)
	}

	resp := &Response{
		Items:           items,
		TotalCandidates: len(candidates),
		Failures:        result.Failures,
		ColdStart:       coldStart,
		Metadata:        e.buildResponseMetadata(req, ds, weight, start),
	}
	switch {
	case len(items) == 0:
		resp.Message = MessageNoCandidates
	case coldStart:
		resp.Message = MessageColdStart
	}
	// Degraded results are not cached so a recovered predictor is used on the next request.
	if result.Failures == 0 {
		e.cacheResponse(key, resp)
	}

	logger.Debug().
		Int("candidates", len(candidates)).
		Int("returned", len(items)).
		Bool("cold_start", coldStart).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	e.observe(req, OutcomeOK, start, len(candidates), result.Failures)
	return e.copyResponse(resp), nil
}

// prepareRequest validates N and fills in the request ID.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.N <= 0 {
		return req, invalidArgument("n must be positive, got %d", req.N)
	}
	if req.N > e.config.Limits.MaxN {
		req.N = e.config.Limits.MaxN
	}
	if req.Mode != ModeCollaborative && req.Mode != ModeHybrid {
		return req, invalidArgument("unknown mode %d", int(req.Mode))
	}
	if req.Mode == ModeCollaborative && req.AnchorItemID != 0 {
		return req, invalidArgument("anchor item requires hybrid mode")
	}
	return req, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Int("user_id", req.UserID).
		Str("mode", req.Mode.String()).
		Logger()
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) resolveWeight(req Request) (float64, error) {
	if req.Mode != ModeHybrid {
		return 0, nil
	}
	w := e.config.Hybrid.Weight
	if req.Weight != nil {
		w = *req.Weight
	}
	if err := validateWeight(w); err != nil {
		return 0, err
	}
	return w, nil
}

// buildCandidates derives the unseen set, then applies request exclusions
// and the optional filter expression. Catalog order is preserved.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildCandidates(ds *Dataset, seen ItemSet, req Request) ([]int, error) {
	if req.Mode == ModeHybrid && req.AnchorItemID != 0 && !ds.Catalog.Contains(req.AnchorItemID) {
		return nil, invalidArgument("anchor item %d not in catalog", req.AnchorItemID)
	}

	candidates := Candidates(ds.Catalog, seen)

	exclude := req.ExcludeIDs
	if req.AnchorItemID != 0 {
		exclude = append(append([]int(nil), exclude...), req.AnchorItemID)
	}
	if len(exclude) > 0 {
		candidates = excludeIDs(candidates, exclude)
	}

	if req.Filter == "" {
		return candidates, nil
	}
	prg, err := e.filters.Compile(req.Filter)
	if err != nil {
		return nil, invalidArgument("filter: %v", err)
	}

	kept := make([]int, 0, len(candidates))
	for _, id := range candidates {
		item, ok := ds.Catalog.Lookup(id)
		if !ok {
			return nil, dataIntegrity("candidate %d missing from catalog", id)
		}
		matched, err := prg.Match(&filter.Attributes{
			ID:       item.ID,
			Name:     item.Name,
			Genres:   item.Genres,
			Type:     item.Type,
			Episodes: item.Episodes,
			Rating:   item.Rating,
			Members:  item.Members,
		})
		if err != nil {
			return nil, invalidArgument("filter: %v", err)
		}
		if matched {
			kept = append(kept, id)
		}
	}
	return kept, nil
}

// blend mixes factor scores with content similarity. The anchor item is the
// reference when set; otherwise the user's seen items form the profile.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) blend(ds *Dataset, seen ItemSet, req Request, scored []ScoredCandidate, w float64) ([]ScoredCandidate, error) {
	if ds.Content == nil {
		return nil, invalidArgument("hybrid mode unavailable: dataset has no content model")
	}

	ids := make([]int, len(scored))
	for i, sc := range scored {
		ids[i] = sc.ItemID
	}

	var content map[int]float64
	if req.AnchorItemID != 0 {
		content = ds.Content.SimilarTo(req.AnchorItemID, ids)
	} else {
		content = ds.Content.ProfileSimilarity(seen.IDs(), ids)
	}
	return e.blender.BlendScores(scored, content, w)
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponseMetadata(req Request, ds *Dataset, weight float64, start time.Time) ResponseMetadata {
	md := ResponseMetadata{
		RequestID:      req.RequestID,
		UserID:         req.UserID,
		Mode:           req.Mode.String(),
		Weight:         weight,
		AnchorItemID:   req.AnchorItemID,
		LatencyMS:      time.Since(start).Milliseconds(),
		DatasetVersion: ds.Version,
		Timestamp:      time.Now(),
	}
	if info, ok := e.predictor.(ModelInfo); ok {
		md.Model = info.Name()
		md.ModelVersion = info.Version()
	}
	return md
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) emptyResponse(req Request, ds *Dataset, weight float64, coldStart bool, start time.Time) *Response {
	return &Response{
		Items:     []Recommendation{},
		ColdStart: coldStart,
		Message:   MessageNoCandidates,
		Metadata:  e.buildResponseMetadata(req, ds, weight, start),
	}
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) fail(req Request, start time.Time, err error) error {
	e.errorCount.Add(1)

	outcome := OutcomeError
	switch {
	case errors.Is(err, ErrInvalidArgument):
		outcome = OutcomeInvalid
	case errors.Is(err, ErrPrediction):
		outcome = OutcomePredict
	case errors.Is(err, ErrDataIntegrity):
		outcome = OutcomeIntegrity
	}
	e.observe(req, outcome, start, 0, 0)

	e.logger.Debug().
		Err(err).
		Str("request_id", req.RequestID).
		Int("user_id", req.UserID).
		Str("outcome", outcome).
		Msg("recommendation failed")
	return err
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) observe(req Request, outcome string, start time.Time, candidates, failures int) {
	if e.observer != nil {
		e.observer.ObserveRequest(req.Mode.String(), outcome, time.Since(start), candidates, failures)
	}
}

// Stats returns a snapshot of engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		RequestCount: e.requestCount.Load(),
		CacheHits:    e.cacheHits.Load(),
		CacheMisses:  e.cacheMisses.Load(),
		ErrorCount:   e.errorCount.Load(),
		Failures:     e.failures.Load(),
	}
}

// cacheKey covers every input that changes the result. The dataset version
// is part of the key, so a swap invalidates earlier entries.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) cacheKey(req Request, weight float64, version int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "rec:%d:%d:%d:%s:%d:%s", version, req.UserID, req.N, req.Mode.String(),
		req.AnchorItemID, strconv.FormatFloat(weight, 'g', -1, 64))

	if len(req.ExcludeIDs) > 0 {
		ids := append([]int(nil), req.ExcludeIDs...)
		sort.Ints(ids)
		b.WriteString(":x")
		for _, id := range ids {
			b.WriteByte(',')
			b.WriteString(strconv.Itoa(id))
		}
	}
	if req.Filter != "" {
		b.WriteString(":f:")
		b.WriteString(req.Filter)
	}
	return b.String()
}

func (e *Engine) tryGetCachedResponse(key string, start time.Time) *Response {
	if e.responses == nil {
		return nil
	}

	cached, ok := e.responses.Get(key)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}

	e.cacheHits.Add(1)
	resp := e.copyResponse(cached)
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	return resp
}

func (e *Engine) cacheResponse(key string, resp *Response) {
	if e.responses == nil {
		return
	}
	e.responses.Add(key, e.copyResponse(resp))
}

// ClearCache drops all cached responses.
func (e *Engine) ClearCache() {
	if e.responses != nil {
		e.responses.Clear()
	}
}

func (e *Engine) copyResponse(resp *Response) *Response {
	out := *resp
	out.Items = make([]Recommendation, len(resp.Items))
	copy(out.Items, resp.Items)
	return &out
}

func truncateIDs(ids []int, max int) []int {
	if len(ids) > max {
		return ids[:max]
	}
	return ids
}
