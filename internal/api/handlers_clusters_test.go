// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package api

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/tomtom215/cinecluster/internal/analytics"
	"github.com/tomtom215/cinecluster/internal/models"
)

func TestListClusters(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, serverOptions{})

	_, env := ts.get(t, "/api/v1/clusters")
	var sizes []analytics.ClusterSize
	decodeData(t, env, &sizes)
	want := []analytics.ClusterSize{{ClusterID: 0, Count: 3}, {ClusterID: 1, Count: 2}}
	if !reflect.DeepEqual(sizes, want) {
		t.Errorf("sizes = %+v, want %+v", sizes, want)
	}
}

func TestClusterTopMovies(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, serverOptions{})

	rec, env := ts.get(t, "/api/v1/clusters/0/top-movies?n=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var movies []models.Movie
	decodeData(t, env, &movies)
	if len(movies) != 2 || movies[0].Title != "Aliens" || movies[1].Title != "Alien" {
		t.Errorf("top movies = %+v", movies)
	}

	tests := []struct {
		target string
		status int
		code   string
	}{
		{"/api/v1/clusters/9/top-movies", http.StatusNotFound, models.ErrCodeNotFound},
		{"/api/v1/clusters/x/top-movies", http.StatusBadRequest, models.ErrCodeValidation},
		{"/api/v1/clusters/-1/top-movies", http.StatusNotFound, models.ErrCodeNotFound},
		{"/api/v1/clusters/0/top-movies?n=0", http.StatusBadRequest, models.ErrCodeValidation},
	}
	for _, tt := range tests {
		rec, env := ts.get(t, tt.target)
		expectError(t, rec, env, tt.status, tt.code)
	}
}

func TestNegativeClusterID(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, serverOptions{csvContent: testMoviesCSV +
		"Noise,Drama,90,6,100,-1,\"[0.7, 0.7]\"\n"})

	rec, env := ts.get(t, "/api/v1/clusters/-1/top-movies")
	if rec.Code != http.StatusOK {
		t.Fatalf("top-movies status = %d, want 200", rec.Code)
	}
	var movies []models.Movie
	decodeData(t, env, &movies)
	if len(movies) != 1 || movies[0].Title != "Noise" {
		t.Errorf("top movies = %+v, want [Noise]", movies)
	}

	rec, env = ts.get(t, "/api/v1/clusters/-1/similar?n=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("similar status = %d, want 200", rec.Code)
	}
	var nb analytics.ClusterNeighbours
	decodeData(t, env, &nb)
	if nb.ClusterID != -1 || len(nb.Similar) != 2 {
		t.Errorf("neighbours = %+v, want 2 for cluster -1", nb)
	}
}

func TestClusterSimilar(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, serverOptions{})

	rec, env := ts.get(t, "/api/v1/clusters/0/similar")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out analytics.ClusterNeighbours
	decodeData(t, env, &out)
	if out.ClusterID != 0 || len(out.Similar) != 1 || out.Similar[0].ClusterID != 1 {
		t.Errorf("neighbours = %+v", out)
	}

	rec, env = ts.get(t, "/api/v1/clusters/7/similar")
	expectError(t, rec, env, http.StatusNotFound, models.ErrCodeNotFound)
}

func TestAnalyticsRoutes(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, serverOptions{})

	_, env := ts.get(t, "/api/v1/analytics/clusters")
	var report analytics.Report
	decodeData(t, env, &report)
	if report.DatasetVersion != 1 || len(report.Sizes) != 2 || len(report.Neighbours) != 2 {
		t.Errorf("unexpected report %+v", report)
	}

	_, env = ts.get(t, "/api/v1/analytics/similarity-matrix")
	var m analytics.Matrix
	decodeData(t, env, &m)
	if !reflect.DeepEqual(m.Clusters, []int{0, 1}) || len(m.Values) != 2 || m.Values[0][1] != m.Values[1][0] {
		t.Errorf("unexpected matrix %+v", m)
	}

	_, env = ts.get(t, "/api/v1/analytics/genre-distribution")
	var dist analytics.GenreDistribution
	decodeData(t, env, &dist)
	if len(dist.Clusters) != 2 || len(dist.Genres) == 0 || len(dist.Counts) != 2 {
		t.Errorf("unexpected distribution %+v", dist)
	}
}

func TestAnalyticsNotLoaded(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, serverOptions{noLoad: true})

	for _, target := range []string{
		"/api/v1/clusters",
		"/api/v1/genres",
		"/api/v1/analytics/clusters",
		"/api/v1/movies/Alien",
		"/api/v1/titles/suggest?q=Alien",
	} {
		rec, env := ts.get(t, target)
		expectError(t, rec, env, http.StatusServiceUnavailable, models.ErrCodeDataSource)
	}
}
