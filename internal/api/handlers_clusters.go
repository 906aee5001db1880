// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package api

import (
	"net/http"
	"strconv"

	"github.com/tomtom215/cinecluster/internal/analytics"
	"github.com/tomtom215/cinecluster/internal/models"
	"github.com/tomtom215/cinecluster/internal/validation"
)

// ListClusters handles GET /api/v1/clusters.
func (h *Handler) ListClusters(w http.ResponseWriter, r *http.Request) {
	sizes, err := h.analytics.Sizes(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, sizes)
}

// ClusterTopMovies handles GET /api/v1/clusters/{id}/top-movies?n=.
func (h *Handler) ClusterTopMovies(w http.ResponseWriter, r *http.Request) {
	req, ok := h.bindClusterRequest(w, r, analytics.DefaultTopMovies)
	if !ok {
		return
	}
	recs, err := h.analytics.TopMovies(r.Context(), req.ClusterID, req.N)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	out := make([]models.Movie, len(recs))
	for i, rec := range recs {
		out[i] = movieView(rec)
	}
	respondData(w, r, http.StatusOK, out)
}

// ClusterSimilar handles GET /api/v1/clusters/{id}/similar?n=.
func (h *Handler) ClusterSimilar(w http.ResponseWriter, r *http.Request) {
	req, ok := h.bindClusterRequest(w, r, analytics.DefaultSimilarClusters)
	if !ok {
		return
	}
	similar, err := h.analytics.SimilarClusters(r.Context(), req.ClusterID, req.N)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, analytics.ClusterNeighbours{ClusterID: req.ClusterID, Similar: similar})
}

func (h *Handler) bindClusterRequest(w http.ResponseWriter, r *http.Request, defaultN int) (validation.ClusterRequest, bool) {
	raw := pathParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, "id must be an integer",
			map[string]interface{}{"field": "id", "value": raw}, nil)
		return validation.ClusterRequest{}, false
	}
	n, apiErr := getIntParam(r, "n", defaultN)
	if apiErr != nil {
		respondValidation(w, r, apiErr)
		return validation.ClusterRequest{}, false
	}
	req := validation.ClusterRequest{ClusterID: id, N: n}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return validation.ClusterRequest{}, false
	}
	return req, true
}

// AnalyticsClusters handles GET /api/v1/analytics/clusters.
func (h *Handler) AnalyticsClusters(w http.ResponseWriter, r *http.Request) {
	report, err := h.analytics.Report(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, report)
}

// AnalyticsSimilarityMatrix handles GET /api/v1/analytics/similarity-matrix.
func (h *Handler) AnalyticsSimilarityMatrix(w http.ResponseWriter, r *http.Request) {
	m, err := h.analytics.SimilarityMatrix(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, m)
}

// AnalyticsGenreDistribution handles GET /api/v1/analytics/genre-distribution.
func (h *Handler) AnalyticsGenreDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := h.analytics.GenreDistribution(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, dist)
}
