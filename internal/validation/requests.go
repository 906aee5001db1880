// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package validation

// Request bounds shared by the API handlers.
const (
	MaxTitleLength  = 512
	MaxGenreLength  = 128
	MaxUserIDLength = 128
	MaxResults      = 100
	MaxHistoryLimit = 500
)

// RecommendationsRequest is bound from GET /recommendations. K of zero
// selects the engine default; the upper bound is checked against the
// engine's MaxK by the handler.
type RecommendationsRequest struct {
	Title  string `query:"title" validate:"required,max=512"`
	K      int    `query:"k" validate:"min=0"`
	Genre  string `query:"genre" validate:"max=128"`
	UserID string `query:"user_id" validate:"omitempty,max=128"`
}

// SuggestRequest is bound from GET /titles/suggest.
type SuggestRequest struct {
	Query string `query:"q" validate:"required,max=512"`
	N     int    `query:"n" validate:"min=1,max=100"`
}

// AutocompleteRequest is bound from GET /titles/autocomplete.
type AutocompleteRequest struct {
	Prefix string `query:"prefix" validate:"required,max=512"`
	N      int    `query:"n" validate:"min=1,max=100"`
}

// ClusterRequest is bound from the /clusters/{id}/... routes. Any integer is
// a valid cluster id; noise labels such as -1 are ordinary clusters here.
type ClusterRequest struct {
	ClusterID int `query:"id"`
	N         int `query:"n" validate:"min=1,max=100"`
}

// HistoryListRequest is bound from GET /users/{userID}/history.
type HistoryListRequest struct {
	UserID string `query:"user_id" validate:"required,max=128"`
	Limit  int    `query:"limit" validate:"min=1,max=500"`
}

// HistoryRecordRequest is the JSON body of POST /users/{userID}/history.
type HistoryRecordRequest struct {
	UserID     string  `json:"-" query:"user_id" validate:"required,max=128"`
	Title      string  `json:"title" query:"title" validate:"required,max=512"`
	Similarity float64 `json:"similarity" query:"similarity" validate:"finite"`
}
