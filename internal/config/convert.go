// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/tomtom215/cinecluster/internal/dataset"
	"github.com/tomtom215/cinecluster/internal/history"
	"github.com/tomtom215/cinecluster/internal/logging"
	"github.com/tomtom215/cinecluster/internal/recommend"
	"github.com/tomtom215/cinecluster/internal/supervisor"
)

// NewSource builds the dataset source. Close it if it implements io.Closer.
func (d DataConfig) NewSource() (dataset.Source, error) {
	switch d.Source {
	case "csv":
		return dataset.NewCSVSource(d.Path), nil
	case "duckdb":
		src, err := dataset.OpenDuckDBFileSource(d.Path)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown data source %q", d.Source)
	}
}

// EngineConfig converts to the recommendation engine configuration.
func (r RecommendConfig) EngineConfig() *recommend.Config {
	return &recommend.Config{
		Weights: recommend.Weights{
			Similarity: r.WeightSimilarity,
			Popularity: r.WeightPopularity,
			Vote:       r.WeightVote,
			Runtime:    r.WeightRuntime,
		},
		Limits: recommend.LimitsConfig{
			DefaultK: r.DefaultK,
			MaxK:     r.MaxK,
		},
		Cache: recommend.CacheConfig{
			Enabled:    r.CacheEnabled,
			TTL:        r.CacheTTL,
			MaxEntries: r.CacheMaxEntries,
		},
		Suggest: recommend.SuggestConfig{
			Cutoff:   r.SuggestCutoff,
			DefaultN: r.SuggestDefaultN,
		},
	}
}

// StoreConfig converts to the history store configuration.
func (h HistoryConfig) StoreConfig() history.StoreConfig {
	return history.StoreConfig{
		Backend:    h.Store,
		Path:       h.Path,
		SyncWrites: h.SyncWrites,
	}
}

// RecorderConfig converts to the history recorder configuration.
func (h HistoryConfig) RecorderConfig() history.RecorderConfig {
	cfg := history.DefaultRecorderConfig()
	cfg.BufferSize = h.BufferSize
	cfg.CloseTimeout = h.CloseTimeout
	cfg.RetryMaxRetries = h.RetryMaxRetries
	cfg.RetryInitialInterval = h.RetryInitialInterval
	cfg.RetryMaxInterval = h.RetryMaxInterval
	cfg.Breaker.Timeout = h.BreakerTimeout
	cfg.Breaker.MinRequests = h.BreakerMinRequests
	cfg.Breaker.FailureRatio = h.BreakerFailureRatio
	return cfg
}

// LoggerConfig converts to the logging package configuration.
func (l LoggingConfig) LoggerConfig() logging.Config {
	return logging.Config{
		Level:     l.Level,
		Format:    l.Format,
		Caller:    l.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	}
}

// TreeConfig converts to the supervisor tree configuration.
func (s SupervisorConfig) TreeConfig() supervisor.TreeConfig {
	return supervisor.TreeConfig{
		FailureThreshold: s.FailureThreshold,
		FailureDecay:     s.FailureDecay,
		FailureBackoff:   s.FailureBackoff,
		ShutdownTimeout:  s.ShutdownTimeout,
	}
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RequestTimeout returns the per-request timeout, defaulting to 30s.
func (s ServerConfig) RequestTimeout() time.Duration {
	if s.Timeout <= 0 {
		return 30 * time.Second
	}
	return s.Timeout
}
