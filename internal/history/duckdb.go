// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package history

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver
)

var duckDBSchema = []string{
	`CREATE SEQUENCE IF NOT EXISTS recommendation_history_seq`,
	`CREATE TABLE IF NOT EXISTS recommendation_history (
		id          VARCHAR PRIMARY KEY,
		user_id     VARCHAR NOT NULL,
		title       VARCHAR NOT NULL,
		similarity  DOUBLE NOT NULL,
		recorded_at TIMESTAMP NOT NULL,
		seq         BIGINT NOT NULL DEFAULT nextval('recommendation_history_seq')
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recommendation_history_user
		ON recommendation_history (user_id, recorded_at)`,
}

// DuckDBStore persists history in the recommendation_history table.
type DuckDBStore struct {
	db    *sql.DB
	owned bool
}

// NewDuckDBStore creates the schema on db if needed. The caller keeps
// ownership of db.
func NewDuckDBStore(ctx context.Context, db *sql.DB) (*DuckDBStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database required")
	}
	for _, stmt := range duckDBSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("create history schema: %w", err)
		}
	}
	return &DuckDBStore{db: db}, nil
}

// OpenDuckDBStore opens the database file at path (":memory:" or "" for an
// in-memory database) and owns it.
func OpenDuckDBStore(ctx context.Context, path string) (*DuckDBStore, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	// Writes are serialized; one connection also keeps :memory: databases
	// from splitting across connections.
	db.SetMaxOpenConns(1)

	s, err := NewDuckDBStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// Save inserts e.
func (s *DuckDBStore) Save(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO recommendation_history (id, user_id, title, similarity, recorded_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Title, e.Similarity, e.RecordedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// ListByUser queries the user's newest entries.
func (s *DuckDBStore) ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, similarity, recorded_at
		 FROM recommendation_history
		 WHERE user_id = ?
		 ORDER BY recorded_at DESC, seq DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Similarity, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.RecordedAt = e.RecordedAt.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return entries, nil
}

// Close closes the database when the store opened it.
func (s *DuckDBStore) Close() error {
	if s.owned {
		return s.db.Close()
	}
	return nil
}
