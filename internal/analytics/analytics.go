// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package analytics

import (
	"errors"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/cinecluster/internal/dataset"
	"github.com/tomtom215/cinecluster/internal/vector"
)

const (
	// DefaultSimilarClusters is the neighbour count used when n <= 0.
	DefaultSimilarClusters = 3

	// DefaultTopMovies is the movie count used when n <= 0.
	DefaultTopMovies = 10
)

// ErrUnknownCluster is returned for cluster ids absent from the dataset.
var ErrUnknownCluster = errors.New("unknown cluster")

// ClusterSize is the number of records assigned to a cluster.
type ClusterSize struct {
	ClusterID int `json:"cluster_id"`
	Count     int `json:"count"`
}

// ClusterStat holds per-cluster means. Records without a runtime do not
// contribute to MeanRuntime; HasRuntime is false when no record had one.
type ClusterStat struct {
	ClusterID       int     `json:"cluster_id"`
	Count           int     `json:"count"`
	MeanPopularity  float64 `json:"mean_popularity"`
	MeanVoteAverage float64 `json:"mean_vote_average"`
	MeanRuntime     float64 `json:"mean_runtime"`
	RuntimeSamples  int     `json:"runtime_samples"`
	HasRuntime      bool    `json:"has_runtime"`
}

// GenreDistribution is a cluster x genre count table. Counts[i][j] is the
// number of records in Clusters[i] whose genre string contains Genres[j].
type GenreDistribution struct {
	Clusters []int    `json:"clusters"`
	Genres   []string `json:"genres"`
	Counts   [][]int  `json:"counts"`
}

// Centroid is the element-wise mean embedding of a cluster.
type Centroid struct {
	ClusterID int       `json:"cluster_id"`
	Size      int       `json:"size"`
	Vector    []float32 `json:"vector"`
}

// Matrix is a square cosine similarity matrix over cluster centroids.
// Values[i][j] compares Clusters[i] with Clusters[j].
type Matrix struct {
	Clusters []int       `json:"clusters"`
	Values   [][]float64 `json:"values"`
}

// SimilarCluster is one neighbour returned by TopSimilarClusters.
type SimilarCluster struct {
	ClusterID  int     `json:"cluster_id"`
	Similarity float64 `json:"similarity"`
}

// ClusterSizes counts records per cluster, ordered by cluster id.
func ClusterSizes(ds *dataset.Dataset) []ClusterSize {
	clusters := ds.Clusters()
	out := make([]ClusterSize, len(clusters))
	for i, id := range clusters {
		out[i] = ClusterSize{ClusterID: id, Count: len(ds.ClusterIndices(id))}
	}
	return out
}

// ClusterStats computes mean popularity, vote average and runtime per
// cluster, ordered by cluster id.
func ClusterStats(ds *dataset.Dataset) []ClusterStat {
	clusters := ds.Clusters()
	out := make([]ClusterStat, len(clusters))
	for i, id := range clusters {
		idx := ds.ClusterIndices(id)
		st := ClusterStat{ClusterID: id, Count: len(idx)}
		pop := make([]float64, 0, len(idx))
		vote := make([]float64, 0, len(idx))
		var runtime []float64
		for _, j := range idx {
			rec := ds.At(j)
			pop = append(pop, rec.Popularity)
			vote = append(vote, rec.VoteAverage)
			if rec.HasRuntime {
				runtime = append(runtime, rec.Runtime)
			}
		}
		if st.Count > 0 {
			st.MeanPopularity = stat.Mean(pop, nil)
			st.MeanVoteAverage = stat.Mean(vote, nil)
		}
		if st.RuntimeSamples = len(runtime); st.RuntimeSamples > 0 {
			st.MeanRuntime = stat.Mean(runtime, nil)
			st.HasRuntime = true
		}
		out[i] = st
	}
	return out
}

// ComputeGenreDistribution counts genre label occurrences per cluster using
// substring containment, the same rule as the recommendation genre filter.
func ComputeGenreDistribution(ds *dataset.Dataset) GenreDistribution {
	gd := GenreDistribution{
		Clusters: ds.Clusters(),
		Genres:   ds.Genres(),
	}
	gd.Counts = make([][]int, len(gd.Clusters))
	for i, id := range gd.Clusters {
		row := make([]int, len(gd.Genres))
		for _, j := range ds.ClusterIndices(id) {
			genres := ds.At(j).Genres
			for g, label := range gd.Genres {
				if strings.Contains(genres, label) {
					row[g]++
				}
			}
		}
		gd.Counts[i] = row
	}
	return gd
}

// Centroids returns the mean embedding of every cluster, ordered by cluster
// id. They are derived from ds on every call.
func Centroids(ds *dataset.Dataset) []Centroid {
	clusters := ds.Clusters()
	out := make([]Centroid, len(clusters))
	for i, id := range clusters {
		idx := ds.ClusterIndices(id)
		vs := make([][]float32, len(idx))
		for k, j := range idx {
			vs[k] = ds.At(j).Embedding
		}
		out[i] = Centroid{ClusterID: id, Size: len(idx), Vector: vector.Mean(vs)}
	}
	return out
}

// SimilarityMatrix computes the cosine similarity between every pair of
// centroids, diagonal included. A zero-norm centroid scores 0 everywhere.
func SimilarityMatrix(centroids []Centroid) Matrix {
	m := Matrix{
		Clusters: make([]int, len(centroids)),
		Values:   make([][]float64, len(centroids)),
	}
	for i, c := range centroids {
		m.Clusters[i] = c.ClusterID
		m.Values[i] = make([]float64, len(centroids))
	}
	for i := range centroids {
		for j := i; j < len(centroids); j++ {
			sim := vector.Cosine(centroids[i].Vector, centroids[j].Vector)
			m.Values[i][j] = sim
			m.Values[j][i] = sim
		}
	}
	return m
}

// Index returns the row of clusterID, or -1.
func (m Matrix) Index(clusterID int) int {
	for i, id := range m.Clusters {
		if id == clusterID {
			return i
		}
	}
	return -1
}

// TopSimilarClusters returns the n clusters most similar to clusterID,
// excluding itself, by descending similarity with ties broken by ascending
// cluster id.
func TopSimilarClusters(m Matrix, clusterID, n int) ([]SimilarCluster, error) {
	row := m.Index(clusterID)
	if row < 0 {
		return nil, ErrUnknownCluster
	}
	if n <= 0 {
		n = DefaultSimilarClusters
	}

	out := make([]SimilarCluster, 0, len(m.Clusters))
	for j, id := range m.Clusters {
		if j == row {
			continue
		}
		out = append(out, SimilarCluster{ClusterID: id, Similarity: m.Values[row][j]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		return out[i].ClusterID < out[j].ClusterID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// TopMovies returns the n most popular records of a cluster, higher vote
// average first among equal popularity, dataset order after that.
func TopMovies(ds *dataset.Dataset, clusterID, n int) ([]dataset.MovieRecord, error) {
	if !ds.HasCluster(clusterID) {
		return nil, ErrUnknownCluster
	}
	if n <= 0 {
		n = DefaultTopMovies
	}
	recs := ds.ByCluster(clusterID)
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Popularity != recs[j].Popularity {
			return recs[i].Popularity > recs[j].Popularity
		}
		return recs[i].VoteAverage > recs[j].VoteAverage
	})
	if len(recs) > n {
		recs = recs[:n]
	}
	return recs, nil
}
