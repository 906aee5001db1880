// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/cinecluster/internal/models"
)

// ReloadDataset handles POST /api/v1/admin/dataset/reload. On failure the
// previous dataset keeps serving and 500 DATA_SOURCE_ERROR is returned.
func (h *Handler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	// Detach from the request deadline; a reload may outlast the API timeout.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.config.ReloadTimeout)
	defer cancel()

	snap, err := h.data.Reload(ctx)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeDataSource,
			"Dataset reload failed; the previous dataset is still active", nil, err)
		return
	}

	stats := snap.Dataset.Stats()
	h.logger.Info().Uint64("version", snap.Version).Int("records", snap.Dataset.Len()).Msg("Dataset reloaded via API")
	respondData(w, r, http.StatusOK, models.ReloadResponse{
		Version:  snap.Version,
		Records:  snap.Dataset.Len(),
		Clusters: len(snap.Dataset.Clusters()),
		Dropped:  stats.Dropped(),
		LoadedAt: snap.LoadedAt,
	})
}
