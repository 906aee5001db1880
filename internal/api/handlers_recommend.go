// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/cinecluster/internal/history"
	"github.com/tomtom215/cinecluster/internal/logging"
	"github.com/tomtom215/cinecluster/internal/middleware"
	"github.com/tomtom215/cinecluster/internal/models"
	"github.com/tomtom215/cinecluster/internal/recommend"
	"github.com/tomtom215/cinecluster/internal/validation"
)

// Recommendations handles GET /api/v1/recommendations.
//
// Query: title (required), k (0 = default), genre (substring filter),
// user_id (records every returned pair to history).
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	k, apiErr := getIntParam(r, "k", 0)
	if apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}
	q := r.URL.Query()
	req := validation.RecommendationsRequest{
		Title:  q.Get("title"),
		K:      k,
		Genre:  q.Get("genre"),
		UserID: q.Get("user_id"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}
	if maxK := h.engine.Config().Limits.MaxK; req.K > maxK {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation,
			fmt.Sprintf("k must be at most %d", maxK),
			map[string]interface{}{"field": "k", "tag": "max", "value": req.K}, nil)
		return
	}

	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		Title:     req.Title,
		K:         req.K,
		Genre:     req.Genre,
		RequestID: middleware.GetRequestID(r.Context()),
	})
	if err != nil {
		var nf *recommend.TitleNotFoundError
		if errors.As(err, &nf) {
			respondError(w, r, http.StatusNotFound, models.ErrCodeTitleNotFound,
				fmt.Sprintf("Title not found: %s", nf.Title),
				map[string]interface{}{
					"title":       nf.Title,
					"suggestions": h.engine.Suggest(nf.Title, 0),
				}, nil)
			return
		}
		respondServiceError(w, r, err)
		return
	}

	out := models.RecommendationsResponse{
		Seed:           resp.Seed,
		ClusterID:      resp.ClusterID,
		Genre:          resp.Genre,
		K:              resp.Metadata.K,
		Items:          make([]models.RecommendationItem, len(resp.Items)),
		PoolSize:       resp.PoolSize,
		EmptyReason:    string(resp.EmptyReason),
		DatasetVersion: resp.Metadata.DatasetVersion,
	}
	for i, it := range resp.Items {
		out.Items[i] = models.RecommendationItem{Title: it.Title, Similarity: it.Similarity}
	}
	if req.UserID != "" {
		out.HistoryQueued = h.recordHistory(r, req.UserID, resp.Items)
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Success: true,
		Data:    out,
		Meta:    cachedMeta(r, resp.Metadata.CacheHit),
	})
}

func cachedMeta(r *http.Request, cached bool) models.Metadata {
	meta := buildMeta(r)
	meta.Cached = cached
	return meta
}

// recordHistory queues one entry per recommendation. History failures are
// logged and never fail the request.
func (h *Handler) recordHistory(r *http.Request, userID string, items []recommend.Recommendation) int {
	if h.history == nil {
		logging.Ctx(r.Context()).Debug().Msg("user_id given but history is disabled")
		return 0
	}
	queued := 0
	for _, it := range items {
		if _, err := h.history.Record(r.Context(), history.NewEntry(userID, it.Title, it.Similarity)); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).
				Str("user_id", sanitizeLogValue(userID)).
				Msg("Failed to record recommendation history")
			continue
		}
		queued++
	}
	return queued
}
