// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinecluster/internal/dataset"
)

// DatasetReloader is satisfied by *dataset.Handle.
type DatasetReloader interface {
	Reload(ctx context.Context) (dataset.Snapshot, error)
}

// FileWatcher is satisfied by *dataset.Watcher.
type FileWatcher interface {
	Run(ctx context.Context) error
}

// DatasetWatchConfig controls how the dataset is refreshed.
type DatasetWatchConfig struct {
	// ReloadInterval triggers a reload on a fixed schedule; 0 disables.
	ReloadInterval time.Duration

	// ReloadTimeout bounds each scheduled reload. Default: 2m
	ReloadTimeout time.Duration
}

// DatasetWatchService keeps the served dataset fresh. It runs the optional file
// watcher and the optional reload ticker; a failed scheduled reload keeps
// the previous snapshot and is retried on the next tick.
type DatasetWatchService struct {
	reloader DatasetReloader
	watcher  FileWatcher
	config   DatasetWatchConfig
	logger   zerolog.Logger
	name     string
}

// NewDatasetWatchService creates the service. watcher may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewDatasetWatchService(reloader DatasetReloader, watcher FileWatcher, cfg DatasetWatchConfig, logger zerolog.Logger) *DatasetWatchService {
	if cfg.ReloadTimeout <= 0 {
		cfg.ReloadTimeout = 2 * time.Minute
	}
	return &DatasetWatchService{
		reloader: reloader,
		watcher:  watcher,
		config:   cfg,
		logger:   logger.With().Str("service", "dataset").Logger(),
		name:     "dataset-watch",
	}
}

// Serve implements suture.Service. A watcher failure is returned so the
// supervisor restarts the service.
func (s *DatasetWatchService) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watchErr := make(chan error, 1)
	if s.watcher != nil {
		go func() { watchErr <- s.watcher.Run(ctx) }()
	}

	var tick <-chan time.Time
	if s.config.ReloadInterval > 0 {
		ticker := time.NewTicker(s.config.ReloadInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	s.logger.Info().
		Bool("watch", s.watcher != nil).
		Dur("reload_interval", s.config.ReloadInterval).
		Msg("dataset service running")

	for {
		select {
		case <-ctx.Done():
			if s.watcher != nil {
				<-watchErr
			}
			return ctx.Err()

		case err := <-watchErr:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("dataset watcher stopped: %w", err)

		case <-tick:
			s.reload(ctx)
		}
	}
}

func (s *DatasetWatchService) reload(ctx context.Context) {
	reloadCtx, cancel := context.WithTimeout(ctx, s.config.ReloadTimeout)
	defer cancel()

	snap, err := s.reloader.Reload(reloadCtx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("scheduled dataset reload failed, keeping previous snapshot")
		return
	}
	s.logger.Debug().Uint64("version", snap.Version).Msg("scheduled dataset reload complete")
}

// String returns the service name for logging.
func (s *DatasetWatchService) String() string {
	return s.name
}
