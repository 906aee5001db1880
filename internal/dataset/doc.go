// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

/*
Package dataset loads the movie table and serves it read-only to the
recommender and the analytics views.

# Sources

A Source yields raw rows. Two implementations exist:

  - CSVSource reads a header-led CSV export with encoding/csv.
  - DuckDBSource runs a query through DuckDB, which covers CSV via
    read_csv_auto, parquet via read_parquet, and tables in an attached
    database.

Every source must provide the columns in RequiredColumns.

# Loading

Load cleans each embedding cell with the embedding package and drops, without
error, rows whose embedding is missing or unparseable, rows whose embedding
length differs from the first kept row, and rows without an integral cluster
ID. Surviving rows keep their relative order. A source failure returns a
*DataSourceError and never a partial Dataset.

# Handle

Handle holds the active Dataset behind an atomic pointer:

	h := dataset.NewHandle(dataset.NewCSVSource("data/movie_data.csv"), logger)
	if _, err := h.Reload(ctx); err != nil {
		return err
	}
	ds := h.Current()

Reload builds a new Dataset off to the side and swaps it in only on success,
so in-flight requests keep the snapshot they started with. Listeners added
with OnReload run after each swap; the recommendation cache and title index
use this to invalidate. Watcher triggers Reload when the file changes.
*/
package dataset
