// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package api

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinecluster/internal/analytics"
	"github.com/tomtom215/cinecluster/internal/dataset"
	"github.com/tomtom215/cinecluster/internal/history"
	"github.com/tomtom215/cinecluster/internal/recommend"
)

// HistoryRecorder persists and lists recommendation history. It is
// satisfied by *history.Recorder.
type HistoryRecorder interface {
	Record(ctx context.Context, e history.Entry) (history.Entry, error)
	RecordSync(ctx context.Context, e history.Entry) (history.Entry, error)
	List(ctx context.Context, userID string, limit int) ([]history.Entry, error)
	BreakerState() string
}

// HandlerConfig holds request defaults for the handlers.
type HandlerConfig struct {
	// HistoryDefaultLimit is used when ?limit is absent.
	HistoryDefaultLimit int

	// HistoryMaxLimit caps ?limit.
	HistoryMaxLimit int

	// ReloadTimeout bounds POST /admin/dataset/reload.
	ReloadTimeout time.Duration
}

// DefaultHandlerConfig returns the defaults used when no config is given.
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		HistoryDefaultLimit: history.DefaultListLimit,
		HistoryMaxLimit:     500,
		ReloadTimeout:       2 * time.Minute,
	}
}

// Handler serves the HTTP API. Every handler reads the dataset snapshot
// that is active when the request starts.
type Handler struct {
	data      *dataset.Handle
	engine    *recommend.Engine
	analytics *analytics.Service
	history   HistoryRecorder // nil when history is disabled
	config    HandlerConfig
	logger    zerolog.Logger
	startTime time.Time
}

// NewHandler creates the API handler. history may be nil.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(data *dataset.Handle, engine *recommend.Engine, svc *analytics.Service, hist HistoryRecorder, cfg HandlerConfig, logger zerolog.Logger) (*Handler, error) {
	if data == nil || engine == nil || svc == nil {
		return nil, errors.New("dataset handle, engine and analytics service are required")
	}
	defaults := DefaultHandlerConfig()
	if cfg.HistoryDefaultLimit < 1 {
		cfg.HistoryDefaultLimit = defaults.HistoryDefaultLimit
	}
	if cfg.HistoryMaxLimit < cfg.HistoryDefaultLimit {
		cfg.HistoryMaxLimit = cfg.HistoryDefaultLimit
	}
	if cfg.ReloadTimeout <= 0 {
		cfg.ReloadTimeout = defaults.ReloadTimeout
	}
	return &Handler{
		data:      data,
		engine:    engine,
		analytics: svc,
		history:   hist,
		config:    cfg,
		logger:    logger.With().Str("component", "api").Logger(),
		startTime: time.Now(),
	}, nil
}
