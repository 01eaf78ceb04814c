// Animerec - Anime Recommendation Scoring Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver

	"github.com/tomtom215/animerec/internal/logging"
)

// Config holds DuckDB connection settings.
type Config struct {
	// Path is the database file. Empty opens an in-memory database.
	Path string

	// Threads limits DuckDB worker threads. 0 keeps the DuckDB default.
	Threads int

	// MaxMemory is a DuckDB memory limit such as "1GB". Empty keeps the default.
	MaxMemory string

	// ReadOnly opens the file in read-only mode. Ignored for in-memory databases.
	ReadOnly bool
}

// DB wraps a DuckDB connection pool.
type DB struct {
	conn *sql.DB
	cfg  Config
}

// Open connects to DuckDB and verifies the connection.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	conn, err := sql.Open("duckdb", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	conn.SetMaxIdleConns(2)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	logging.Debug().Str("path", displayPath(cfg.Path)).Bool("read_only", cfg.ReadOnly).Msg("DuckDB opened")
	return &DB{conn: conn, cfg: cfg}, nil
}

// dsn builds the DuckDB connection string. Extension autoloading is
// disabled: read_csv is part of the core and nothing else is needed.
func dsn(cfg Config) string {
	params := url.Values{}
	params.Set("autoinstall_known_extensions", "false")
	params.Set("autoload_known_extensions", "false")
	if cfg.Threads > 0 {
		params.Set("threads", strconv.Itoa(cfg.Threads))
	}
	if cfg.MaxMemory != "" {
		params.Set("max_memory", cfg.MaxMemory)
	}
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	} else if cfg.ReadOnly {
		params.Set("access_mode", "read_only")
	}
	return path + "?" + params.Encode()
}

func displayPath(p string) string {
	if p == "" {
		return ":memory:"
	}
	return p
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Path returns the configured database path, or ":memory:".
func (db *DB) Path() string {
	return displayPath(db.cfg.Path)
}

// exec runs a statement and records its duration.
func (db *DB) exec(ctx context.Context, operation, table, query string) error {
	start := time.Now()
	_, err := db.conn.ExecContext(ctx, query)
	recordQuery(operation, table, start, err)
	return err
}
