// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package redisstore

import (
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomtom215/animerec/internal/recommend"
)

func TestKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix string
		want   string
	}{
		{"", "animerec:current"},
		{"anime", "anime:current"},
		{"anime:", "anime:current"},
	}
	for _, tt := range tests {
		if got := newKeys(tt.prefix).current(); got != tt.want {
			t.Errorf("newKeys(%q).current() = %q, want %q", tt.prefix, got, tt.want)
		}
	}

	k := newKeys("rec")
	if got := k.counter(); got != "rec:generation" {
		t.Errorf("counter() = %q", got)
	}

	g := k.generation(7)
	checks := map[string]string{
		"items":         g.items(),
		"order":         g.order(),
		"ratings":       g.ratings(42),
		"ratingPattern": g.ratingPattern(),
		"pattern":       g.pattern(),
	}
	want := map[string]string{
		"items":         "rec:g7:items",
		"order":         "rec:g7:items:order",
		"ratings":       "rec:g7:ratings:42",
		"ratingPattern": "rec:g7:ratings:*",
		"pattern":       "rec:g7:*",
	}
	if !reflect.DeepEqual(checks, want) {
		t.Errorf("generation keys = %v, want %v", checks, want)
	}
}

func TestUserFromRatingKey(t *testing.T) {
	t.Parallel()

	g := newKeys("rec").generation(3)
	id, err := g.userFromRatingKey("rec:g3:ratings:1234")
	if err != nil || id != 1234 {
		t.Errorf("userFromRatingKey() = %d, %v; want 1234", id, err)
	}
	if _, err := g.userFromRatingKey("rec:g3:ratings:abc"); err == nil {
		t.Error("expected error for non-numeric user")
	}
}

// Items are stored as msgpack; Features must survive even though they are
// hidden from JSON.
func TestItemEncoding(t *testing.T) {
	t.Parallel()

	item := recommend.Item{
		ID:       20,
		Name:     "Naruto",
		Genres:   []string{"Action", "Shounen"},
		Type:     "TV",
		Episodes: 220,
		Rating:   7.81,
		Members:  683297,
		Features: []float64{0.1, 0.9},
	}
	raw, err := msgpack.Marshal(item)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got recommend.Item
	if err := msgpack.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, item) {
		t.Errorf("decoded %+v, want %+v", got, item)
	}
}
