// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinecluster/internal/cache"
	"github.com/tomtom215/cinecluster/internal/dataset"
	"github.com/tomtom215/cinecluster/internal/metrics"
)

// Engine serves recommendations from the active dataset snapshot. It is safe
// for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
	data   *dataset.Handle

	cache     *cache.Cache[*Response]
	suggester *Suggester

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	notFound     atomic.Int64
	errorCount   atomic.Int64
}

// NewEngine creates an engine bound to data. The response cache and the
// title index are refreshed on every dataset swap.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, data *dataset.Handle, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if data == nil {
		return nil, errors.New("dataset handle is required")
	}

	e := &Engine{
		config:    cfg,
		logger:    logger.With().Str("component", "recommend").Logger(),
		data:      data,
		suggester: NewSuggester(cfg.Suggest),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.New[*Response](cfg.Cache.TTL, cfg.Cache.MaxEntries)
	}

	data.OnReload(e.onDatasetSwap)
	if ds := data.Current(); ds != nil {
		e.suggester.Rebuild(ds)
	}
	return e, nil
}

func (e *Engine) onDatasetSwap(snap dataset.Snapshot) {
	if e.cache != nil {
		e.cache.Clear()
	}
	e.suggester.Rebuild(snap.Dataset)
	e.logger.Debug().Uint64("version", snap.Version).Msg("recommendation cache and title index refreshed")
}

// Recommend ranks the seed's cluster neighbours. It returns a
// *TitleNotFoundError for unknown titles and dataset.ErrNotLoaded before
// the first load.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	snap, ok := e.data.Snapshot()
	if !ok {
		e.errorCount.Add(1)
		return nil, dataset.ErrNotLoaded
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req = e.prepareRequest(req)
	logger := e.createRequestLogger(req)

	key := e.cacheKey(req, snap.Version)
	if resp := e.tryGetCachedResponse(key, start); resp != nil {
		logger.Debug().Msg("cache hit")
		return resp, nil
	}

	ranking, err := Rank(snap.Dataset, req.Title, req.K, req.Genre, e.config.Weights)
	if err != nil {
		var nf *TitleNotFoundError
		if errors.As(err, &nf) {
			e.notFound.Add(1)
			metrics.RecordRecommendation(metrics.OutcomeNotFound, req.Genre != "", 0, time.Since(start))
			logger.Debug().Msg("seed title not found")
			return nil, err
		}
		e.errorCount.Add(1)
		metrics.RecordRecommendation(metrics.OutcomeError, req.Genre != "", 0, time.Since(start))
		return nil, fmt.Errorf("rank: %w", err)
	}

	resp := e.buildResponse(req, ranking, snap.Version, start)
	e.cacheResponse(key, resp)

	outcome := metrics.OutcomeOK
	if len(resp.Items) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.RecordRecommendation(outcome, req.Genre != "", ranking.PoolSize, time.Since(start))

	logger.Debug().
		Int("cluster", ranking.Seed.ClusterID).
		Int("pool", ranking.PoolSize).
		Int("returned", len(resp.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")
	return resp, nil
}

// prepareRequest applies K defaults and limits and assigns a request ID.
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	if req.K == 0 {
		req.K = e.config.Limits.DefaultK
	}
	if req.K > e.config.Limits.MaxK {
		req.K = e.config.Limits.MaxK
	}
	return req
}

func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("title", req.Title).
		Str("genre", req.Genre).
		Int("k", req.K).
		Logger()
}

func (e *Engine) cacheKey(req Request, version uint64) string {
	return cache.GenerateKey("recommend", struct {
		V     uint64 `json:"v"`
		Title string `json:"t"`
		K     int    `json:"k"`
		Genre string `json:"g"`
	}{version, req.Title, req.K, req.Genre})
}

// tryGetCachedResponse returns a copy of a cached response marked as a hit.
func (e *Engine) tryGetCachedResponse(key string, start time.Time) *Response {
	if e.cache == nil {
		return nil
	}
	cached, ok := e.cache.Get(key)
	metrics.RecordRecommendCache(ok)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}
	e.cacheHits.Add(1)

	resp := *cached
	resp.Items = append([]Recommendation(nil), cached.Items...)
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	resp.Metadata.Timestamp = time.Now()
	return &resp
}

func (e *Engine) cacheResponse(key string, resp *Response) {
	if e.cache == nil {
		return
	}
	stored := *resp
	stored.Items = append([]Recommendation(nil), resp.Items...)
	e.cache.Set(key, &stored)
}

func (e *Engine) buildResponse(req Request, r Ranking, version uint64, start time.Time) *Response {
	return &Response{
		Seed:        r.Seed.Title,
		ClusterID:   r.Seed.ClusterID,
		Genre:       req.Genre,
		Items:       r.Items,
		PoolSize:    r.PoolSize,
		EmptyReason: r.EmptyReason,
		Metadata: ResponseMetadata{
			RequestID:      req.RequestID,
			DatasetVersion: version,
			K:              req.K,
			LatencyMS:      time.Since(start).Milliseconds(),
			Timestamp:      time.Now(),
		},
	}
}

// Suggest proposes close-match titles for input.
func (e *Engine) Suggest(input string, n int) []string {
	return e.suggester.Suggest(input, n)
}

// Autocomplete returns titles starting with prefix.
func (e *Engine) Autocomplete(prefix string, n int) []string {
	return e.suggester.Autocomplete(prefix, n)
}

// Config returns the active configuration. Do not modify it.
func (e *Engine) Config() *Config {
	return e.config
}

// Stats returns engine counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		Requests:    e.requestCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
		NotFound:    e.notFound.Load(),
		Errors:      e.errorCount.Load(),
	}
	if e.cache != nil {
		s.CacheSize = e.cache.Len()
		s.HitRate = e.cache.HitRate()
	}
	return s
}

// Close stops the cache sweeper.
func (e *Engine) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
}
