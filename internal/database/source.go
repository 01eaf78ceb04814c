// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package database

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tomtom215/animerec/internal/recommend"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Source loads the catalog and interactions from DuckDB. It implements
// recommend.DataSource.
type Source struct {
	db         *DB
	name       string
	animeFrom  string
	ratingFrom string
}

// NewCSVSource reads anime.csv and rating.csv through read_csv.
func NewCSVSource(db *DB, animeCSV, ratingCSV string) *Source {
	return &Source{
		db:         db,
		name:       "csv",
		animeFrom:  csvRelation(animeCSV),
		ratingFrom: csvRelation(ratingCSV),
	}
}

// NewTableSource reads from tables in the database. Table names must be
// plain identifiers.
func NewTableSource(db *DB, animeTable, ratingTable string) (*Source, error) {
	for _, t := range []string{animeTable, ratingTable} {
		if !identifierPattern.MatchString(t) {
			return nil, fmt.Errorf("invalid table name %q", t)
		}
	}
	return &Source{
		db:         db,
		name:       "duckdb",
		animeFrom:  animeTable,
		ratingFrom: ratingTable,
	}, nil
}

// csvRelation renders a read_csv call. All columns are read as text and cast
// in the select list.
func csvRelation(path string) string {
	return fmt.Sprintf("read_csv(%s, header = true, all_varchar = true)", quoteLiteral(path))
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Name implements recommend.DataSource.
func (s *Source) Name() string {
	return s.name
}

const catalogColumns = `
	TRY_CAST("anime_id" AS BIGINT),
	COALESCE(CAST("name" AS VARCHAR), ''),
	COALESCE(CAST("genre" AS VARCHAR), ''),
	COALESCE(CAST("type" AS VARCHAR), ''),
	COALESCE(TRY_CAST("episodes" AS BIGINT), 0),
	COALESCE(TRY_CAST("rating" AS DOUBLE), 0),
	COALESCE(TRY_CAST("members" AS BIGINT), 0)`

// LoadCatalog implements recommend.DataSource. Rows keep their stored order.
func (s *Source) LoadCatalog(ctx context.Context) ([]recommend.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE TRY_CAST("anime_id" AS BIGINT) IS NOT NULL`,
		catalogColumns, s.animeFrom)

	start := time.Now()
	rows, err := s.db.conn.QueryContext(ctx, query)
	if err != nil {
		recordQuery("SELECT", "anime", start, err)
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var items []recommend.Item
	for rows.Next() {
		var (
			id, episodes, members int64
			name, genre, kind     string
			rating                float64
		)
		if err := rows.Scan(&id, &name, &genre, &kind, &episodes, &rating, &members); err != nil {
			recordQuery("SELECT", "anime", start, err)
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		items = append(items, recommend.Item{
			ID:       int(id),
			Name:     name,
			Genres:   ParseGenres(genre),
			Type:     kind,
			Episodes: int(episodes),
			Rating:   rating,
			Members:  int(members),
		})
	}
	err = rows.Err()
	recordQuery("SELECT", "anime", start, err)
	if err != nil {
		return nil, fmt.Errorf("catalog rows: %w", err)
	}
	return items, nil
}

// LoadInteractions implements recommend.DataSource.
func (s *Source) LoadInteractions(ctx context.Context) ([]recommend.Interaction, error) {
	query := fmt.Sprintf(`SELECT u, a, COALESCE(r, %v) FROM (
	SELECT TRY_CAST("user_id" AS BIGINT) AS u, TRY_CAST("anime_id" AS BIGINT) AS a, TRY_CAST("rating" AS DOUBLE) AS r
	FROM %s
) WHERE u IS NOT NULL AND a IS NOT NULL`, recommend.UnratedRating, s.ratingFrom)

	start := time.Now()
	rows, err := s.db.conn.QueryContext(ctx, query)
	if err != nil {
		recordQuery("SELECT", "rating", start, err)
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var out []recommend.Interaction
	for rows.Next() {
		var userID, itemID int64
		var rating float64
		if err := rows.Scan(&userID, &itemID, &rating); err != nil {
			recordQuery("SELECT", "rating", start, err)
			return nil, fmt.Errorf("failed to scan interaction row: %w", err)
		}
		out = append(out, recommend.Interaction{UserID: int(userID), ItemID: int(itemID), Rating: rating})
	}
	err = rows.Err()
	recordQuery("SELECT", "rating", start, err)
	if err != nil {
		return nil, fmt.Errorf("interaction rows: %w", err)
	}
	return out, nil
}

// ParseGenres splits the dataset's comma-separated genre field.
func ParseGenres(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	parts := strings.Split(field, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var _ recommend.DataSource = (*Source)(nil)
