// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package cache provides a thread-safe LRU cache with per-entry TTL.
//
// The engine keeps recent recommendation responses here. Keys embed the
// dataset version, so entries for a replaced snapshot are never hit again
// and age out through LRU eviction or TTL.
//
//	c := cache.NewLRU[*Response](10000, 5*time.Minute)
//	c.Add(key, resp)
//	if resp, ok := c.Get(key); ok { ... }
package cache
