// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

/*
Package database reads the anime catalog and rating log through DuckDB.

Two layouts are supported:

  - CSV files (anime.csv, rating.csv) scanned with read_csv on an in-memory
    database. Nothing is persisted.
  - Tables named anime and rating inside a DuckDB file, typically produced
    once with ImportCSV.

Both layouts share the column names of the public anime dataset:

	anime:  anime_id, name, genre, type, episodes, rating, members
	rating: user_id, anime_id, rating

Columns are cast with TRY_CAST so that values such as "Unknown" episodes
become zero instead of failing the load. Rows without a usable ID are
dropped. A rating of -1 marks a title watched but unrated and is kept.

Source implements recommend.DataSource and is what the Reloader calls.
*/
package database
