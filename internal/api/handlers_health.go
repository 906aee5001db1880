// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinecluster/internal/models"
)

// HealthLive handles liveness probes. It returns 200 while the process is
// up, regardless of the dataset.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, http.StatusOK, models.HealthStatus{
		Status:        "alive",
		DatasetLoaded: h.data.Ready(),
		Uptime:        time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probes. It returns 503 until the first
// dataset load succeeds. A failing history store does not make the service
// unready; recommendations are still served.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatus{
		Status: "not_ready",
		Uptime: time.Since(h.startTime).Seconds(),
	}
	if h.history != nil {
		status.HistoryBreaker = h.history.BreakerState()
	}

	snap, ok := h.data.Snapshot()
	if !ok {
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Success: false,
			Data:    status,
			Error: &models.APIError{
				Code:    models.ErrCodeDataSource,
				Message: "Dataset is not loaded yet",
			},
			Meta: buildMeta(r),
		})
		return
	}

	status.Status = "ready"
	status.DatasetLoaded = true
	status.DatasetVersion = snap.Version
	status.Records = snap.Dataset.Len()
	respondData(w, r, http.StatusOK, status)
}
