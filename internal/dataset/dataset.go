// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package dataset

import (
	"sort"
	"strings"

	"github.com/tomtom215/cinecluster/internal/embedding"
)

// GenreSeparator splits the raw genre string into labels.
const GenreSeparator = ", "

// MovieRecord is one row of the active dataset. Records are never mutated
// once a Dataset has been built.
type MovieRecord struct {
	Title       string
	Genres      string
	Popularity  float64
	VoteAverage float64
	Runtime     float64
	HasRuntime  bool
	ClusterID   int
	Embedding   embedding.Vector
}

// GenreLabels splits the genre string on GenreSeparator, skipping blanks.
func (r MovieRecord) GenreLabels() []string {
	if r.Genres == "" {
		return nil
	}
	parts := strings.Split(r.Genres, GenreSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadStats counts what happened to the raw rows while building a Dataset.
type LoadStats struct {
	RawRows          int
	DroppedEmbedding int
	DroppedDimension int
	DroppedCluster   int
}

// Dropped is the total number of excluded rows.
func (s LoadStats) Dropped() int {
	return s.DroppedEmbedding + s.DroppedDimension + s.DroppedCluster
}

// Dataset is an ordered, read-only collection of MovieRecords with lookup
// indexes. Every record carries an embedding of the same dimension.
type Dataset struct {
	records   []MovieRecord
	byTitle   map[string]int
	byCluster map[int][]int
	clusters  []int
	genres    []string
	dim       int
	stats     LoadStats
}

// New builds a Dataset from prepared records. Records without an embedding
// are dropped, as are records whose embedding length differs from the first
// kept record. Order is preserved.
func New(records []MovieRecord) *Dataset {
	return build(records, LoadStats{RawRows: len(records)})
}

func build(records []MovieRecord, stats LoadStats) *Dataset {
	ds := &Dataset{
		records:   make([]MovieRecord, 0, len(records)),
		byTitle:   make(map[string]int, len(records)),
		byCluster: make(map[int][]int),
		stats:     stats,
	}

	genreSet := make(map[string]struct{})
	for _, r := range records {
		if len(r.Embedding) == 0 {
			ds.stats.DroppedEmbedding++
			continue
		}
		if ds.dim == 0 {
			ds.dim = len(r.Embedding)
		} else if len(r.Embedding) != ds.dim {
			ds.stats.DroppedDimension++
			continue
		}

		idx := len(ds.records)
		ds.records = append(ds.records, r)
		if _, seen := ds.byTitle[r.Title]; !seen {
			ds.byTitle[r.Title] = idx
		}
		if _, seen := ds.byCluster[r.ClusterID]; !seen {
			ds.clusters = append(ds.clusters, r.ClusterID)
		}
		ds.byCluster[r.ClusterID] = append(ds.byCluster[r.ClusterID], idx)
		for _, g := range r.GenreLabels() {
			genreSet[g] = struct{}{}
		}
	}

	sort.Ints(ds.clusters)
	ds.genres = make([]string, 0, len(genreSet))
	for g := range genreSet {
		ds.genres = append(ds.genres, g)
	}
	sort.Strings(ds.genres)
	return ds
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Dim returns the shared embedding dimension, or 0 for an empty dataset.
func (d *Dataset) Dim() int { return d.dim }

// Stats reports how many raw rows were excluded and why.
func (d *Dataset) Stats() LoadStats { return d.stats }

// At returns the record at index i.
func (d *Dataset) At(i int) MovieRecord { return d.records[i] }

// Records returns a copy of all records in load order.
func (d *Dataset) Records() []MovieRecord {
	return append([]MovieRecord(nil), d.records...)
}

// Lookup returns the first record with exactly this title.
func (d *Dataset) Lookup(title string) (MovieRecord, bool) {
	i, ok := d.byTitle[title]
	if !ok {
		return MovieRecord{}, false
	}
	return d.records[i], true
}

// Index returns the position of the first record with this title, or -1.
func (d *Dataset) Index(title string) int {
	if i, ok := d.byTitle[title]; ok {
		return i
	}
	return -1
}

// ClusterIndices returns the positions of every record in the cluster, in
// load order. The returned slice must not be modified.
func (d *Dataset) ClusterIndices(clusterID int) []int {
	return d.byCluster[clusterID]
}

// ByCluster returns the records assigned to clusterID in load order.
func (d *Dataset) ByCluster(clusterID int) []MovieRecord {
	idx := d.byCluster[clusterID]
	out := make([]MovieRecord, len(idx))
	for i, j := range idx {
		out[i] = d.records[j]
	}
	return out
}

// ByGenre returns records whose genre string contains substr. The match is a
// case-sensitive substring test on the raw string, so "Action" also matches
// "Live Action".
func (d *Dataset) ByGenre(substr string) []MovieRecord {
	var out []MovieRecord
	for _, r := range d.records {
		if strings.Contains(r.Genres, substr) {
			out = append(out, r)
		}
	}
	return out
}

// HasCluster reports whether any record is assigned to clusterID.
func (d *Dataset) HasCluster(clusterID int) bool {
	_, ok := d.byCluster[clusterID]
	return ok
}

// Clusters returns the distinct cluster IDs in ascending order.
func (d *Dataset) Clusters() []int {
	return append([]int(nil), d.clusters...)
}

// Genres returns the distinct genre labels in ascending order.
func (d *Dataset) Genres() []string {
	return append([]string(nil), d.genres...)
}

// Titles returns every title in load order, duplicates included.
func (d *Dataset) Titles() []string {
	out := make([]string, len(d.records))
	for i, r := range d.records {
		out[i] = r.Title
	}
	return out
}
