// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

// Package metrics exposes the Prometheus instruments for Cinecluster.
//
// All collectors register with the default registry through promauto, so
// the /metrics handler picks them up without extra wiring. Callers use the
// Record* helpers rather than touching the vectors directly.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels shared by the recommend and history collectors.
const (
	OutcomeOK          = "ok"
	OutcomeEmpty       = "empty"
	OutcomeNotFound    = "not_found"
	OutcomeError       = "error"
	OutcomeUnavailable = "unavailable"
)

var (
	// Dataset

	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_records",
			Help: "Number of movie records in the active dataset",
		},
	)

	DatasetClusters = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_clusters",
			Help: "Number of distinct clusters in the active dataset",
		},
	)

	DatasetVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_version",
			Help: "Monotonic version of the active dataset snapshot",
		},
	)

	DatasetRowsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_rows_dropped_total",
			Help: "Rows excluded while loading the dataset",
		},
		[]string{"reason"}, // "embedding", "dimension", "cluster"
	)

	DatasetReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_reloads_total",
			Help: "Dataset load attempts by result",
		},
		[]string{"result"}, // "success", "failure"
	)

	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Time to read and parse the dataset source",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// Recommendations

	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Recommendation requests by outcome",
		},
		[]string{"outcome", "genre_filtered"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time spent ranking a candidate pool",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RecommendPoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_pool_size",
			Help:    "Candidate pool size after cluster and genre filtering",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Recommendation responses served from cache",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Recommendation requests that had to be ranked",
		},
	)

	// Analytics

	AnalyticsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_duration_seconds",
			Help:    "Time to compute a cluster analytics view",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"view"},
	)

	// History

	HistoryEntries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_entries_recorded_total",
			Help: "Recommendation history writes by outcome",
		},
		[]string{"store", "outcome"},
	)

	HistoryEventsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "history_events_published_total",
			Help: "History events published on the in-process bus",
		},
	)

	// Circuit breaker

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// API

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)
)

// DatasetSnapshot summarizes a freshly installed dataset.
type DatasetSnapshot struct {
	Records          int
	Clusters         int
	Version          uint64
	DroppedEmbedding int
	DroppedDimension int
	DroppedCluster   int
}

// RecordDatasetLoad records the result of one load attempt.
func RecordDatasetLoad(duration time.Duration, err error) {
	DatasetLoadDuration.Observe(duration.Seconds())
	if err != nil {
		DatasetReloads.WithLabelValues("failure").Inc()
		return
	}
	DatasetReloads.WithLabelValues("success").Inc()
}

// RecordDatasetSnapshot updates the gauges for a newly active dataset.
func RecordDatasetSnapshot(s DatasetSnapshot) {
	DatasetRecords.Set(float64(s.Records))
	DatasetClusters.Set(float64(s.Clusters))
	DatasetVersion.Set(float64(s.Version))
	DatasetRowsDropped.WithLabelValues("embedding").Add(float64(s.DroppedEmbedding))
	DatasetRowsDropped.WithLabelValues("dimension").Add(float64(s.DroppedDimension))
	DatasetRowsDropped.WithLabelValues("cluster").Add(float64(s.DroppedCluster))
}

// RecordRecommendation records one ranked (uncached) recommendation.
func RecordRecommendation(outcome string, genreFiltered bool, poolSize int, duration time.Duration) {
	RecommendRequests.WithLabelValues(outcome, strconv.FormatBool(genreFiltered)).Inc()
	if outcome == OutcomeOK || outcome == OutcomeEmpty {
		RecommendDuration.Observe(duration.Seconds())
		RecommendPoolSize.Observe(float64(poolSize))
	}
}

// RecordRecommendCache counts a cache lookup.
func RecordRecommendCache(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
		return
	}
	RecommendCacheMisses.Inc()
}

// RecordAnalytics records the time to compute an analytics view.
func RecordAnalytics(view string, duration time.Duration) {
	AnalyticsDuration.WithLabelValues(view).Observe(duration.Seconds())
}

// RecordHistoryWrite counts a history write attempt.
func RecordHistoryWrite(store, outcome string) {
	HistoryEntries.WithLabelValues(store, outcome).Inc()
}

// RecordHistoryPublish counts one event placed on the history bus.
func RecordHistoryPublish() {
	HistoryEventsPublished.Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
