// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramCount extracts the observation count from a histogram.
func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordDatasetLoad(t *testing.T) {
	success := testutil.ToFloat64(DatasetReloads.WithLabelValues("success"))
	failure := testutil.ToFloat64(DatasetReloads.WithLabelValues("failure"))

	RecordDatasetLoad(10*time.Millisecond, nil)
	RecordDatasetLoad(5*time.Millisecond, errors.New("missing file"))

	if got := testutil.ToFloat64(DatasetReloads.WithLabelValues("success")); got != success+1 {
		t.Errorf("success count = %v, want %v", got, success+1)
	}
	if got := testutil.ToFloat64(DatasetReloads.WithLabelValues("failure")); got != failure+1 {
		t.Errorf("failure count = %v, want %v", got, failure+1)
	}
}

func TestRecordDatasetSnapshot(t *testing.T) {
	before := testutil.ToFloat64(DatasetRowsDropped.WithLabelValues("embedding"))

	RecordDatasetSnapshot(DatasetSnapshot{Records: 42, Clusters: 3, Version: 7, DroppedEmbedding: 2})

	if got := testutil.ToFloat64(DatasetRecords); got != 42 {
		t.Errorf("dataset_records = %v, want 42", got)
	}
	if got := testutil.ToFloat64(DatasetClusters); got != 3 {
		t.Errorf("dataset_clusters = %v, want 3", got)
	}
	if got := testutil.ToFloat64(DatasetRowsDropped.WithLabelValues("embedding")); got != before+2 {
		t.Errorf("dropped embedding = %v, want %v", got, before+2)
	}
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		outcome  string
		filtered bool
	}{
		{OutcomeOK, false},
		{OutcomeEmpty, true},
		{OutcomeNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.outcome, func(t *testing.T) {
			label := "false"
			if tt.filtered {
				label = "true"
			}
			before := testutil.ToFloat64(RecommendRequests.WithLabelValues(tt.outcome, label))
			RecordRecommendation(tt.outcome, tt.filtered, 12, time.Millisecond)
			if got := testutil.ToFloat64(RecommendRequests.WithLabelValues(tt.outcome, label)); got != before+1 {
				t.Errorf("count = %v, want %v", got, before+1)
			}
		})
	}
}

func TestRecordRecommendCache(t *testing.T) {
	hits := testutil.ToFloat64(RecommendCacheHits)
	misses := testutil.ToFloat64(RecommendCacheMisses)

	RecordRecommendCache(true)
	RecordRecommendCache(false)
	RecordRecommendCache(false)

	if got := testutil.ToFloat64(RecommendCacheHits); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(RecommendCacheMisses); got != misses+2 {
		t.Errorf("misses = %v, want %v", got, misses+2)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordHistoryWrite(t *testing.T) {
	before := testutil.ToFloat64(HistoryEntries.WithLabelValues("memory", OutcomeOK))
	RecordHistoryWrite("memory", OutcomeOK)
	if got := testutil.ToFloat64(HistoryEntries.WithLabelValues("memory", OutcomeOK)); got != before+1 {
		t.Errorf("history entries = %v, want %v", got, before+1)
	}
}

func TestRecordRecommendationObservesOnlyRankedRequests(t *testing.T) {
	durations := histogramCount(t, RecommendDuration)
	pools := histogramCount(t, RecommendPoolSize)

	RecordRecommendation(OutcomeOK, false, 8, 2*time.Millisecond)
	RecordRecommendation(OutcomeNotFound, false, 0, time.Millisecond)

	if got := histogramCount(t, RecommendDuration); got != durations+1 {
		t.Errorf("recommend_duration_seconds count = %d, want %d", got, durations+1)
	}
	if got := histogramCount(t, RecommendPoolSize); got != pools+1 {
		t.Errorf("recommend_pool_size count = %d, want %d", got, pools+1)
	}
}
