// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// CSVSource reads a header-led CSV export. Column order does not matter;
// extra columns are ignored.
type CSVSource struct {
	Path string
}

// NewCSVSource returns a source for the CSV file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) String() string { return "csv:" + s.Path }

// Rows implements Source.
func (s *CSVSource) Rows(ctx context.Context) ([]RawRow, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	return readCSV(ctx, f)
}

func readCSV(ctx context.Context, r io.Reader) ([]RawRow, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file: missing header")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []RawRow
	for line := 2; ; line++ {
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		cell := func(name string) any {
			i := cols[name]
			if i >= len(rec) {
				return nil
			}
			return rec[i]
		}
		rows = append(rows, RawRow{
			Title:       cell(ColTitle),
			Genres:      cell(ColGenres),
			Popularity:  cell(ColPopularity),
			VoteAverage: cell(ColVoteAverage),
			Runtime:     cell(ColRuntime),
			Cluster:     cell(ColCluster),
			Embedding:   cell(ColEmbedding),
		})
	}
	return rows, nil
}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	var missingCols []string
	for _, c := range RequiredColumns {
		if _, ok := cols[c]; !ok {
			missingCols = append(missingCols, c)
		}
	}
	if len(missingCols) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missingCols, ", "))
	}
	return cols, nil
}
