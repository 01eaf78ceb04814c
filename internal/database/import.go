// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/animerec/internal/logging"
)

// ImportStats reports the result of ImportCSV.
type ImportStats struct {
	Items        int64
	Interactions int64
	Duration     time.Duration
}

// ImportCSV replaces the anime and rating tables with the contents of the
// given CSV files. Column types are inferred by DuckDB.
func (db *DB) ImportCSV(ctx context.Context, animeCSV, ratingCSV string) (ImportStats, error) {
	start := time.Now()
	var stats ImportStats

	statements := []struct{ table, query string }{
		{"anime", fmt.Sprintf("CREATE OR REPLACE TABLE anime AS SELECT * FROM read_csv_auto(%s, header = true)", quoteLiteral(animeCSV))},
		{"rating", fmt.Sprintf("CREATE OR REPLACE TABLE rating AS SELECT * FROM read_csv_auto(%s, header = true)", quoteLiteral(ratingCSV))},
	}
	for _, st := range statements {
		if err := db.exec(ctx, "CREATE", st.table, st.query); err != nil {
			return stats, fmt.Errorf("failed to import %s: %w", st.table, err)
		}
	}

	for table, dst := range map[string]*int64{"anime": &stats.Items, "rating": &stats.Interactions} {
		if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(dst); err != nil {
			return stats, fmt.Errorf("failed to count %s: %w", table, err)
		}
	}

	stats.Duration = time.Since(start)
	logging.Info().
		Str("path", db.Path()).
		Int64("items", stats.Items).
		Int64("interactions", stats.Interactions).
		Dur("duration", stats.Duration).
		Msg("CSV import completed")
	return stats, nil
}
