// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package recommend

import (
	"fmt"
	"time"
)

// Request asks for movies similar to a seed title.
type Request struct {
	// Title is the seed, matched exactly.
	Title string `json:"title"`

	// K is the number of results. Zero means Config.Limits.DefaultK;
	// negative yields an empty result.
	K int `json:"k,omitempty"`

	// Genre, when set, keeps only candidates whose genre string contains
	// it (case-sensitive substring).
	Genre string `json:"genre,omitempty"`

	// RequestID is used for tracing; generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Recommendation is one result. Similarity is the raw cosine similarity to
// the seed; the blended ranking score is internal.
type Recommendation struct {
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
}

// EmptyReason explains an empty result.
type EmptyReason string

const (
	// EmptyNoCandidates: the cluster and genre filter left nothing to rank.
	EmptyNoCandidates EmptyReason = "no_candidates"

	// EmptyOnlySeed: the only candidates shared the seed title.
	EmptyOnlySeed EmptyReason = "only_seed"

	// EmptyZeroK: the caller asked for no results.
	EmptyZeroK EmptyReason = "zero_k"
)

// Response is the engine output for one Request.
type Response struct {
	Seed      string           `json:"seed"`
	ClusterID int              `json:"cluster_id"`
	Genre     string           `json:"genre,omitempty"`
	Items     []Recommendation `json:"items"`

	// PoolSize counts candidates after cluster and genre filtering, seed
	// included.
	PoolSize int `json:"pool_size"`

	EmptyReason EmptyReason      `json:"empty_reason,omitempty"`
	Metadata    ResponseMetadata `json:"metadata"`
}

// ResponseMetadata carries timing and diagnostic information.
type ResponseMetadata struct {
	RequestID      string    `json:"request_id"`
	DatasetVersion uint64    `json:"dataset_version"`
	K              int       `json:"k"`
	LatencyMS      int64     `json:"latency_ms"`
	CacheHit       bool      `json:"cache_hit"`
	Timestamp      time.Time `json:"timestamp"`
}

// TitleNotFoundError reports a seed title absent from the dataset.
type TitleNotFoundError struct {
	Title string
}

func (e *TitleNotFoundError) Error() string {
	return fmt.Sprintf("title not found: %q", e.Title)
}

// Stats holds engine counters.
type Stats struct {
	Requests    int64   `json:"requests"`
	CacheHits   int64   `json:"cache_hits"`
	CacheMisses int64   `json:"cache_misses"`
	NotFound    int64   `json:"not_found"`
	Errors      int64   `json:"errors"`
	CacheSize   int     `json:"cache_size"`
	HitRate     float64 `json:"hit_rate"`
}
