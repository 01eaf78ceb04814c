// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package redisstore keeps the anime catalog and rating log in Redis.
//
// Every import writes a new generation, then flips a pointer key. Key
// layout, under a configurable prefix:
//
//	{prefix}:generation                counter   last allocated generation
//	{prefix}:current                   string    live generation number
//	{prefix}:g{n}:items                hash      item ID -> msgpack-encoded recommend.Item
//	{prefix}:g{n}:items:order          zset      item ID scored by catalog position
//	{prefix}:g{n}:ratings:{uid}        hash      item ID -> rating
//
// Store implements recommend.SnapshotSource, so a reload reads the catalog
// and ratings of one generation. Replace is used by the import tool and
// tests; the replaced generation expires after a grace period so loads that
// already resolved it can finish.
package redisstore
