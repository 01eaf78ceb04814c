// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/animerec/internal/recommend"
)

var errModelDown = errors.New("model unavailable")

// tablePredictor scores from a fixed table; unknown items score def.
type tablePredictor struct {
	scores map[int]float64
	fail   map[int]bool
	def    float64
}

func (p *tablePredictor) Predict(userID, itemID int) (float64, error) {
	if p.fail[itemID] {
		return 0, errModelDown
	}
	if s, ok := p.scores[itemID]; ok {
		return s, nil
	}
	return p.def, nil
}

func (p *tablePredictor) Name() string { return "svd" }
func (p *tablePredictor) Version() int { return 3 }

// genreContent scores 1 for items sharing the anchor's first genre.
type genreContent struct {
	catalog *recommend.Catalog
}

func (c genreContent) SimilarTo(anchorID int, candidates []int) map[int]float64 {
	anchor, _ := c.catalog.Lookup(anchorID)
	out := make(map[int]float64, len(candidates))
	for _, id := range candidates {
		item, _ := c.catalog.Lookup(id)
		if len(anchor.Genres) > 0 && len(item.Genres) > 0 && anchor.Genres[0] == item.Genres[0] {
			out[id] = 1
		} else {
			out[id] = 0
		}
	}
	return out
}

func (c genreContent) ProfileSimilarity(profile, candidates []int) map[int]float64 {
	if len(profile) == 0 {
		return map[int]float64{}
	}
	return c.SimilarTo(profile[0], candidates)
}

// fakeReloader counts calls and optionally fails.
type fakeReloader struct {
	calls atomic.Int32
	err   error
	onOK  func()
}

func (f *fakeReloader) Reload(ctx context.Context) error {
	f.calls.Add(1)
	if f.err != nil {
		return f.err
	}
	if f.onOK != nil {
		f.onOK()
	}
	return nil
}

func testCatalog() []recommend.Item {
	return []recommend.Item{
		{ID: 1, Name: "Cowboy Bebop", Genres: []string{"Action", "Sci-Fi"}, Type: "TV", Episodes: 26},
		{ID: 2, Name: "Trigun", Genres: []string{"Action", "Comedy"}, Type: "TV", Episodes: 26},
		{ID: 3, Name: "Clannad", Genres: []string{"Drama"}, Type: "TV", Episodes: 23},
		{ID: 4, Name: "Akira", Genres: []string{"Action"}, Type: "Movie", Episodes: 1},
		{ID: 5, Name: "Toradora", Genres: []string{"Romance"}, Type: "TV", Episodes: 25},
	}
}

type fixture struct {
	handle    *recommend.DatasetHandle
	engine    *recommend.Engine
	predictor *tablePredictor
	reloader  *fakeReloader
	server    http.Handler
}

func newFixture(t *testing.T, loaded bool, modify func(*recommend.Config)) *fixture {
	t.Helper()

	handle := recommend.NewDatasetHandle()
	if loaded {
		ds, err := recommend.NewDataset(testCatalog(), []recommend.Interaction{
			{UserID: 7, ItemID: 1, Rating: 9},
			{UserID: 7, ItemID: 3, Rating: recommend.UnratedRating},
		}, 1)
		if err != nil {
			t.Fatalf("NewDataset() error = %v", err)
		}
		ds.Content = genreContent{catalog: ds.Catalog}
		handle.Swap(ds)
	}

	cfg := recommend.DefaultConfig()
	cfg.Cache.Enabled = false
	if modify != nil {
		modify(cfg)
	}

	predictor := &tablePredictor{
		scores: map[int]float64{1: 9.5, 2: 8.0, 3: 7.0, 4: 8.0, 5: 6.0},
		fail:   map[int]bool{},
		def:    5,
	}
	engine, err := recommend.NewEngine(cfg, handle, predictor, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	reloader := &fakeReloader{}
	handler := NewHandler(engine, reloader, HandlerOptions{Model: predictor, Version: "test"})
	mw := NewChiMiddlewareFromSecurity([]string{"https://example.com"}, 1000, time.Minute, false)

	return &fixture{
		handle:    handle,
		engine:    engine,
		predictor: predictor,
		reloader:  reloader,
		server:    NewRouter(handler, mw).SetupChi(),
	}
}

func (f *fixture) do(t *testing.T, method, target string) (*httptest.ResponseRecorder, *APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, target, http.NoBody)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	var body APIResponse
	if rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, &body
}

// decodeData re-decodes the envelope's data field into v.
func decodeData(t *testing.T, body *APIResponse, v interface{}) {
	t.Helper()
	raw, err := json.Marshal(body.Data)
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
}
