// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinecluster/internal/history"
	"github.com/tomtom215/cinecluster/internal/models"
	"github.com/tomtom215/cinecluster/internal/validation"
)

// maxHistoryBodyBytes bounds POST /users/{userID}/history bodies.
const maxHistoryBodyBytes = 64 << 10

// ListHistory handles GET /api/v1/users/{userID}/history?limit=.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeHistoryUnavailable, "History is disabled", nil, nil)
		return
	}
	limit, apiErr := getIntParam(r, "limit", h.config.HistoryDefaultLimit)
	if apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}
	req := validation.HistoryListRequest{UserID: pathParam(r, "userID"), Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}
	if req.Limit > h.config.HistoryMaxLimit {
		req.Limit = h.config.HistoryMaxLimit
	}

	entries, err := h.history.List(r.Context(), req.UserID, req.Limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	out := models.HistoryResponse{UserID: req.UserID, Entries: make([]models.HistoryEntry, len(entries))}
	for i, e := range entries {
		out.Entries[i] = historyView(e)
	}
	respondData(w, r, http.StatusOK, out)
}

// RecordHistory handles POST /api/v1/users/{userID}/history with a JSON
// body {"title": "...", "similarity": 0.93}. The entry is written before
// the response is sent.
func (h *Handler) RecordHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeHistoryUnavailable, "History is disabled", nil, nil)
		return
	}

	var req validation.HistoryRecordRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxHistoryBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		msg := "Request body must be a JSON object with title and similarity"
		if errors.Is(err, io.EOF) {
			msg = "Request body is required"
		}
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, msg, nil, nil)
		return
	}
	req.UserID = pathParam(r, "userID")
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	entry, err := h.history.RecordSync(r.Context(), history.NewEntry(req.UserID, req.Title, req.Similarity))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, historyView(entry))
}

func historyView(e history.Entry) models.HistoryEntry {
	return models.HistoryEntry{
		ID:         e.ID,
		UserID:     e.UserID,
		Title:      e.Title,
		Similarity: e.Similarity,
		RecordedAt: e.RecordedAt,
	}
}
