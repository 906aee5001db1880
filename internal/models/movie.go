// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package models

import "time"

// Movie is the public view of a dataset record. The embedding is omitted.
type Movie struct {
	Title       string   `json:"title"`
	Genres      []string `json:"genres"`
	ClusterID   int      `json:"cluster_id"`
	Popularity  float64  `json:"popularity"`
	VoteAverage float64  `json:"vote_average"`
	Runtime     *float64 `json:"runtime"` // null when missing
}

// RecommendationItem is one (title, similarity) pair. Similarity is the raw
// cosine between embeddings, not the blended ranking score.
type RecommendationItem struct {
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
}

// RecommendationsResponse is the data payload of GET /recommendations.
type RecommendationsResponse struct {
	Seed           string               `json:"seed"`
	ClusterID      int                  `json:"cluster_id"`
	Genre          string               `json:"genre,omitempty"`
	K              int                  `json:"k"`
	Items          []RecommendationItem `json:"items"`
	PoolSize       int                  `json:"pool_size"`
	EmptyReason    string               `json:"empty_reason,omitempty"`
	DatasetVersion uint64               `json:"dataset_version"`
	HistoryQueued  int                  `json:"history_queued,omitempty"`
}

// TitlesResponse is the data payload of the suggest and autocomplete routes.
type TitlesResponse struct {
	Query  string   `json:"query"`
	Titles []string `json:"titles"`
}

// HistoryEntry is the public view of a recorded recommendation.
type HistoryEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Similarity float64   `json:"similarity"`
	RecordedAt time.Time `json:"recorded_at"`
}

// HistoryResponse is the data payload of GET /users/{userID}/history.
type HistoryResponse struct {
	UserID  string         `json:"user_id"`
	Entries []HistoryEntry `json:"entries"`
}

// ReloadResponse is the data payload of POST /admin/dataset/reload.
type ReloadResponse struct {
	Version  uint64    `json:"version"`
	Records  int       `json:"records"`
	Clusters int       `json:"clusters"`
	Dropped  int       `json:"dropped"`
	LoadedAt time.Time `json:"loaded_at"`
}

// HealthStatus is the data payload of the health routes.
type HealthStatus struct {
	Status         string  `json:"status"`
	DatasetLoaded  bool    `json:"dataset_loaded"`
	DatasetVersion uint64  `json:"dataset_version,omitempty"`
	Records        int     `json:"records,omitempty"`
	HistoryBreaker string  `json:"history_breaker,omitempty"`
	Uptime         float64 `json:"uptime_seconds"`
}
