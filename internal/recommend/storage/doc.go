// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

// Package storage persists trained model artifacts.
//
// Models are produced by an offline trainer and loaded once at startup. The
// store only reads and writes artifacts; it never trains anything.
//
// # Storage Format
//
//	filename: {model_name}_v{version}.msgpack.gz
//
//	structure (msgpack):
//	  - Metadata (ModelMetadata)
//	  - CompressedData (gzip-compressed msgpack-encoded model state)
//
// Metadata.Checksum is the SHA-256 of the uncompressed model state and is
// verified on every Load.
//
// # Usage
//
//	store, err := storage.NewStore("/data/models")
//	if err != nil {
//	    return err
//	}
//
//	var state storage.FactorModelState
//	meta, err := store.Load(ctx, "svd", 0, &state) // 0 loads the latest version
//
// # Thread Safety
//
// Store methods are safe for concurrent use within a process.
package storage
