// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package config

import (
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting via environment variables
//
// Example:
//
//	cfg, err := config.LoadWithKoanf()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//	src, err := cfg.Data.NewSource()
type Config struct {
	Data       DataConfig       `koanf:"data"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	History    HistoryConfig    `koanf:"history"`
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// DataConfig describes where the movie table comes from.
type DataConfig struct {
	// Source is the loader: "csv" reads the file with encoding/csv,
	// "duckdb" scans CSV or Parquet through an in-memory DuckDB.
	Source string `koanf:"source"`

	// Path to the CSV or Parquet file.
	Path string `koanf:"path"`

	// Watch reloads the dataset when the file changes.
	Watch bool `koanf:"watch"`

	// WatchDebounce coalesces bursts of file events.
	WatchDebounce time.Duration `koanf:"watch_debounce"`

	// ReloadInterval reloads periodically; 0 disables.
	ReloadInterval time.Duration `koanf:"reload_interval"`

	// LoadTimeout bounds a single load.
	LoadTimeout time.Duration `koanf:"load_timeout"`
}

// RecommendConfig holds ranking weights, limits, cache and suggestion
// settings.
type RecommendConfig struct {
	WeightSimilarity float64 `koanf:"weight_similarity"`
	WeightPopularity float64 `koanf:"weight_popularity"`
	WeightVote       float64 `koanf:"weight_vote"`
	WeightRuntime    float64 `koanf:"weight_runtime"`

	DefaultK int `koanf:"default_k"`
	MaxK     int `koanf:"max_k"`

	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`

	SuggestCutoff   float64 `koanf:"suggest_cutoff"`
	SuggestDefaultN int     `koanf:"suggest_default_n"`
}

// HistoryConfig configures recommendation history persistence.
type HistoryConfig struct {
	Enabled bool `koanf:"enabled"`

	// Store is memory, badger or duckdb.
	Store string `koanf:"store"`

	// Path is the Badger directory or DuckDB file.
	Path       string `koanf:"path"`
	SyncWrites bool   `koanf:"sync_writes"`

	BufferSize           int64         `koanf:"buffer_size"`
	CloseTimeout         time.Duration `koanf:"close_timeout"`
	RetryMaxRetries      int           `koanf:"retry_max_retries"`
	RetryInitialInterval time.Duration `koanf:"retry_initial_interval"`
	RetryMaxInterval     time.Duration `koanf:"retry_max_interval"`

	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`

	DefaultLimit int `koanf:"default_limit"`
	MaxLimit     int `koanf:"max_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"` // per-request handler timeout
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller adds file:line to each entry.
	Caller bool `koanf:"caller"`
}

// SupervisorConfig holds suture tree settings.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}
