// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package recommend

import (
	"fmt"
	"math"
	"time"
)

// Weights blends the four ranking signals into one score. The weights are
// used as given and are not renormalized.
type Weights struct {
	// Similarity multiplies the cosine similarity to the seed.
	Similarity float64 `json:"similarity"`

	// Popularity multiplies popularity / max popularity in the pool.
	Popularity float64 `json:"popularity"`

	// Vote multiplies vote_average / max vote_average in the pool.
	Vote float64 `json:"vote"`

	// Runtime multiplies runtime / max runtime in the pool.
	Runtime float64 `json:"runtime"`
}

// DefaultWeights is the reference blend: 0.50 similarity, 0.20 popularity,
// 0.20 vote average, 0.10 runtime.
var DefaultWeights = Weights{
	Similarity: 0.50,
	Popularity: 0.20,
	Vote:       0.20,
	Runtime:    0.10,
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Similarity + w.Popularity + w.Vote + w.Runtime
}

// ToMap returns the weights keyed by signal name.
func (w Weights) ToMap() map[string]float64 {
	return map[string]float64{
		"similarity": w.Similarity,
		"popularity": w.Popularity,
		"vote":       w.Vote,
		"runtime":    w.Runtime,
	}
}

// Validate rejects negative, non-finite or all-zero weights.
func (w Weights) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"similarity", w.Similarity},
		{"popularity", w.Popularity},
		{"vote", w.Vote},
		{"runtime", w.Runtime},
	}
	for _, f := range fields {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("weights.%s must be a non-negative number, got %v", f.name, f.v)
		}
	}
	if w.Sum() == 0 {
		return fmt.Errorf("weights must not all be zero")
	}
	return nil
}

// LimitsConfig bounds request sizes.
type LimitsConfig struct {
	// DefaultK is used when a request leaves K at zero.
	DefaultK int `json:"default_k"`

	// MaxK caps K.
	MaxK int `json:"max_k"`
}

// CacheConfig controls the response cache. The cache is cleared whenever
// the dataset is swapped.
type CacheConfig struct {
	Enabled    bool          `json:"enabled"`
	TTL        time.Duration `json:"ttl"`
	MaxEntries int           `json:"max_entries"`
}

// SuggestConfig controls close-match title suggestions.
type SuggestConfig struct {
	// Cutoff is the minimum similarity ratio in [0, 1].
	Cutoff float64 `json:"cutoff"`

	// DefaultN is used when a caller asks for zero suggestions.
	DefaultN int `json:"default_n"`
}

// Config contains all configuration for the recommendation engine.
type Config struct {
	Weights Weights       `json:"weights"`
	Limits  LimitsConfig  `json:"limits"`
	Cache   CacheConfig   `json:"cache"`
	Suggest SuggestConfig `json:"suggest"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: DefaultWeights,
		Limits: LimitsConfig{
			DefaultK: 5,
			MaxK:     50,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 10000,
		},
		Suggest: SuggestConfig{
			Cutoff:   0.3,
			DefaultN: 5,
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k (%d) must be >= limits.default_k (%d)", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when the cache is enabled, got %v", c.Cache.TTL)
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries must be non-negative, got %d", c.Cache.MaxEntries)
	}
	if c.Suggest.Cutoff < 0 || c.Suggest.Cutoff > 1 {
		return fmt.Errorf("suggest.cutoff must be in [0, 1], got %v", c.Suggest.Cutoff)
	}
	if c.Suggest.DefaultN < 1 {
		return fmt.Errorf("suggest.default_n must be positive, got %d", c.Suggest.DefaultN)
	}
	return nil
}
