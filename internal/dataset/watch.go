// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/knadh/koanf/providers/file"
	"github.com/rs/zerolog"
)

// DefaultDebounce groups the burst of write events editors and exporters
// emit for a single save.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads a Handle whenever the dataset file changes on disk.
type Watcher struct {
	handle   *Handle
	path     string
	debounce time.Duration
	logger   zerolog.Logger
}

// NewWatcher watches path and reloads h after changes settle for debounce.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewWatcher(h *Handle, path string, debounce time.Duration, logger zerolog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		handle:   h,
		path:     path,
		debounce: debounce,
		logger:   logger.With().Str("component", "dataset_watch").Str("path", path).Logger(),
	}
}

// Run blocks until ctx is canceled. It uses the koanf file provider's
// fsnotify watcher, which also follows symlink swaps used by Kubernetes
// ConfigMaps.
func (w *Watcher) Run(ctx context.Context) error {
	provider := file.Provider(w.path)
	changed := make(chan struct{}, 1)

	err := provider.Watch(func(_ interface{}, err error) {
		if err != nil {
			w.logger.Warn().Err(err).Msg("Dataset file watch error")
			return
		}
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	defer func() {
		if err := provider.Unwatch(); err != nil {
			w.logger.Debug().Err(err).Msg("Unwatch failed")
		}
	}()

	w.logger.Info().Dur("debounce", w.debounce).Msg("Watching dataset file")

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case <-changed:
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.logger.Info().Msg("Dataset file changed, reloading")
			// Failures are logged by Reload; the old snapshot keeps serving.
			_, _ = w.handle.Reload(ctx) //nolint:errcheck // logged in Reload
		}
	}
}
