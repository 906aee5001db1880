// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package analytics

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinecluster/internal/dataset"
	"github.com/tomtom215/cinecluster/internal/metrics"
)

// ClusterNeighbours lists the closest clusters to ClusterID.
type ClusterNeighbours struct {
	ClusterID int              `json:"cluster_id"`
	Similar   []SimilarCluster `json:"similar"`
}

// Report is the full analytical view of one dataset snapshot.
type Report struct {
	DatasetVersion    uint64              `json:"dataset_version"`
	GeneratedAt       time.Time           `json:"generated_at"`
	Sizes             []ClusterSize       `json:"sizes"`
	Stats             []ClusterStat       `json:"stats"`
	GenreDistribution GenreDistribution   `json:"genre_distribution"`
	Similarity        Matrix              `json:"similarity"`
	Neighbours        []ClusterNeighbours `json:"neighbours"`
}

// Service computes analytics over the active snapshot of a dataset handle.
// Nothing is cached: every call reflects the snapshot current at call time.
type Service struct {
	data   *dataset.Handle
	logger zerolog.Logger
}

// NewService creates an analytics service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewService(data *dataset.Handle, logger zerolog.Logger) *Service {
	return &Service{
		data:   data,
		logger: logger.With().Str("component", "analytics").Logger(),
	}
}

func (s *Service) snapshot(ctx context.Context) (dataset.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return dataset.Snapshot{}, err
	}
	snap, ok := s.data.Snapshot()
	if !ok {
		return dataset.Snapshot{}, dataset.ErrNotLoaded
	}
	return snap, nil
}

// Report computes every view for the current snapshot.
func (s *Service) Report(ctx context.Context) (*Report, error) {
	start := time.Now()
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	ds := snap.Dataset

	matrix := SimilarityMatrix(Centroids(ds))
	neighbours := make([]ClusterNeighbours, len(matrix.Clusters))
	for i, id := range matrix.Clusters {
		similar, _ := TopSimilarClusters(matrix, id, DefaultSimilarClusters)
		neighbours[i] = ClusterNeighbours{ClusterID: id, Similar: similar}
	}

	r := &Report{
		DatasetVersion:    snap.Version,
		GeneratedAt:       time.Now().UTC(),
		Sizes:             ClusterSizes(ds),
		Stats:             ClusterStats(ds),
		GenreDistribution: ComputeGenreDistribution(ds),
		Similarity:        matrix,
		Neighbours:        neighbours,
	}
	metrics.RecordAnalytics("report", time.Since(start))
	s.logger.Debug().
		Uint64("version", snap.Version).
		Int("clusters", len(r.Sizes)).
		Dur("duration", time.Since(start)).
		Msg("analytics report computed")
	return r, nil
}

// Sizes returns ClusterSizes for the current snapshot.
func (s *Service) Sizes(ctx context.Context) ([]ClusterSize, error) {
	start := time.Now()
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := ClusterSizes(snap.Dataset)
	metrics.RecordAnalytics("sizes", time.Since(start))
	return out, nil
}

// GenreDistribution returns the genre table for the current snapshot.
func (s *Service) GenreDistribution(ctx context.Context) (GenreDistribution, error) {
	start := time.Now()
	snap, err := s.snapshot(ctx)
	if err != nil {
		return GenreDistribution{}, err
	}
	out := ComputeGenreDistribution(snap.Dataset)
	metrics.RecordAnalytics("genre_distribution", time.Since(start))
	return out, nil
}

// SimilarityMatrix recomputes centroids and their similarity matrix.
func (s *Service) SimilarityMatrix(ctx context.Context) (Matrix, error) {
	start := time.Now()
	snap, err := s.snapshot(ctx)
	if err != nil {
		return Matrix{}, err
	}
	out := SimilarityMatrix(Centroids(snap.Dataset))
	metrics.RecordAnalytics("similarity_matrix", time.Since(start))
	return out, nil
}

// SimilarClusters returns the n clusters closest to clusterID.
func (s *Service) SimilarClusters(ctx context.Context, clusterID, n int) ([]SimilarCluster, error) {
	start := time.Now()
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !snap.Dataset.HasCluster(clusterID) {
		return nil, ErrUnknownCluster
	}
	out, err := TopSimilarClusters(SimilarityMatrix(Centroids(snap.Dataset)), clusterID, n)
	if err != nil {
		return nil, err
	}
	metrics.RecordAnalytics("similar_clusters", time.Since(start))
	return out, nil
}

// TopMovies returns the n most popular movies of clusterID.
func (s *Service) TopMovies(ctx context.Context, clusterID, n int) ([]dataset.MovieRecord, error) {
	start := time.Now()
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out, err := TopMovies(snap.Dataset, clusterID, n)
	if err != nil {
		return nil, err
	}
	metrics.RecordAnalytics("top_movies", time.Since(start))
	return out, nil
}
