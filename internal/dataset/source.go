// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package dataset

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/cinecluster/internal/embedding"
)

// Column names expected in every tabular source.
const (
	ColTitle       = "title"
	ColGenres      = "genres"
	ColPopularity  = "popularity"
	ColVoteAverage = "vote_average"
	ColRuntime     = "runtime"
	ColCluster     = "cluster"
	ColEmbedding   = "text_embedding"
)

// RequiredColumns lists the columns a source must provide.
var RequiredColumns = []string{
	ColTitle, ColGenres, ColPopularity, ColVoteAverage, ColRuntime, ColCluster, ColEmbedding,
}

// RawRow is one unparsed source row. Cell values are whatever the source
// produced: strings for CSV, driver types for DuckDB, nil for NULL.
type RawRow struct {
	Title       any
	Genres      any
	Popularity  any
	VoteAverage any
	Runtime     any
	Cluster     any
	Embedding   any
}

// Source yields raw movie rows.
type Source interface {
	Rows(ctx context.Context) ([]RawRow, error)
	String() string
}

// Load reads every row from src and builds a Dataset. Rows whose embedding
// does not parse, whose embedding dimension disagrees with the first kept
// row, or whose cluster ID is missing are dropped silently and counted in
// Dataset.Stats. A source failure is returned as *DataSourceError.
func Load(ctx context.Context, src Source) (*Dataset, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		return nil, &DataSourceError{Source: src.String(), Err: err}
	}

	stats := LoadStats{RawRows: len(rows)}
	records := make([]MovieRecord, 0, len(rows))
	for _, row := range rows {
		rec, ok := convertRow(row, &stats)
		if ok {
			records = append(records, rec)
		}
	}
	return build(records, stats), nil
}

func convertRow(row RawRow, stats *LoadStats) (MovieRecord, bool) {
	emb := embedding.Clean(row.Embedding)
	if emb == nil {
		stats.DroppedEmbedding++
		return MovieRecord{}, false
	}
	cluster, ok := toFloat(row.Cluster)
	if !ok || cluster != math.Trunc(cluster) {
		stats.DroppedCluster++
		return MovieRecord{}, false
	}

	rec := MovieRecord{
		Title:     toString(row.Title),
		Genres:    toString(row.Genres),
		ClusterID: int(cluster),
		Embedding: emb,
	}
	rec.Popularity, _ = toFloat(row.Popularity)
	rec.VoteAverage, _ = toFloat(row.VoteAverage)
	rec.Runtime, rec.HasRuntime = toFloat(row.Runtime)
	return rec, true
}

// toFloat converts a cell to float64. ok is false for NULL, blanks, NaN and
// anything that does not parse; the returned value is then 0.
func toFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case []byte:
		return toFloat(string(x))
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case interface{ Float64() float64 }: // duckdb.Decimal
		f = x.Float64()
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
