// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver
)

// selectColumns projects the required columns in RawRow order. The
// embedding is cast to text so list-typed parquet columns and quoted CSV
// strings reach the cleaner in the same shape.
const selectColumns = `SELECT title, genres, popularity, vote_average, runtime, "cluster",
	CAST(text_embedding AS VARCHAR) AS text_embedding`

// DuckDBSource reads rows through a DuckDB query. The query must return the
// seven RequiredColumns in order.
type DuckDBSource struct {
	db    *sql.DB
	query string
	args  []any
	name  string
	owned bool
}

// NewDuckDBSource runs query against an existing connection. The caller
// keeps ownership of db.
func NewDuckDBSource(db *sql.DB, query string, args ...any) *DuckDBSource {
	return &DuckDBSource{db: db, query: query, args: args, name: "duckdb:query"}
}

// NewDuckDBTableSource reads the required columns from a table or view.
func NewDuckDBTableSource(db *sql.DB, table string) *DuckDBSource {
	q := fmt.Sprintf("%s FROM %s", selectColumns, quoteIdent(table))
	return &DuckDBSource{db: db, query: q, name: "duckdb:" + table}
}

// OpenDuckDBFileSource opens an in-memory DuckDB and scans a CSV or parquet
// file with read_csv_auto / read_parquet. Close releases the connection.
func OpenDuckDBFileSource(path string) (*DuckDBSource, error) {
	db, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	reader := fmt.Sprintf("read_csv_auto(%s, header = true)", quoteLiteral(path))
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		reader = fmt.Sprintf("read_parquet(%s)", quoteLiteral(path))
	}
	return &DuckDBSource{
		db:    db,
		query: fmt.Sprintf("%s FROM %s", selectColumns, reader),
		name:  "duckdb:" + path,
		owned: true,
	}, nil
}

func (s *DuckDBSource) String() string { return s.name }

// Close closes the connection if the source opened it.
func (s *DuckDBSource) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

// Rows implements Source.
func (s *DuckDBSource) Rows(ctx context.Context) ([]RawRow, error) {
	rows, err := s.db.QueryContext(ctx, s.query, s.args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []RawRow
	for rows.Next() {
		var r RawRow
		if err := rows.Scan(&r.Title, &r.Genres, &r.Popularity, &r.VoteAverage, &r.Runtime, &r.Cluster, &r.Embedding); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return out, nil
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
