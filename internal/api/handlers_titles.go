// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package api

import (
	"net/http"

	"github.com/tomtom215/cinecluster/internal/dataset"
	"github.com/tomtom215/cinecluster/internal/models"
	"github.com/tomtom215/cinecluster/internal/validation"
)

// SuggestTitles handles GET /api/v1/titles/suggest?q=&n=.
func (h *Handler) SuggestTitles(w http.ResponseWriter, r *http.Request) {
	n, apiErr := getIntParam(r, "n", h.engine.Config().Suggest.DefaultN)
	if apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}
	req := validation.SuggestRequest{Query: r.URL.Query().Get("q"), N: n}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}
	if !h.data.Ready() {
		respondServiceError(w, r, dataset.ErrNotLoaded)
		return
	}
	respondData(w, r, http.StatusOK, models.TitlesResponse{
		Query:  req.Query,
		Titles: h.engine.Suggest(req.Query, req.N),
	})
}

// AutocompleteTitles handles GET /api/v1/titles/autocomplete?prefix=&n=.
func (h *Handler) AutocompleteTitles(w http.ResponseWriter, r *http.Request) {
	n, apiErr := getIntParam(r, "n", h.engine.Config().Suggest.DefaultN)
	if apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}
	req := validation.AutocompleteRequest{Prefix: r.URL.Query().Get("prefix"), N: n}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}
	if !h.data.Ready() {
		respondServiceError(w, r, dataset.ErrNotLoaded)
		return
	}
	respondData(w, r, http.StatusOK, models.TitlesResponse{
		Query:  req.Prefix,
		Titles: h.engine.Autocomplete(req.Prefix, req.N),
	})
}

// GetMovie handles GET /api/v1/movies/{title}.
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	ds := h.data.Current()
	if ds == nil {
		respondServiceError(w, r, dataset.ErrNotLoaded)
		return
	}
	title := pathParam(r, "title")
	rec, ok := ds.Lookup(title)
	if !ok {
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, "Movie not found",
			map[string]interface{}{"title": title, "suggestions": h.engine.Suggest(title, 0)}, nil)
		return
	}
	respondData(w, r, http.StatusOK, movieView(rec))
}

// ListGenres handles GET /api/v1/genres.
func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	ds := h.data.Current()
	if ds == nil {
		respondServiceError(w, r, dataset.ErrNotLoaded)
		return
	}
	respondData(w, r, http.StatusOK, ds.Genres())
}

func movieView(rec dataset.MovieRecord) models.Movie {
	m := models.Movie{
		Title:       rec.Title,
		Genres:      rec.GenreLabels(),
		ClusterID:   rec.ClusterID,
		Popularity:  rec.Popularity,
		VoteAverage: rec.VoteAverage,
	}
	if m.Genres == nil {
		m.Genres = []string{}
	}
	if rec.HasRuntime {
		runtime := rec.Runtime
		m.Runtime = &runtime
	}
	return m
}
