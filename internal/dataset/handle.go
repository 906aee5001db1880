// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package dataset

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinecluster/internal/metrics"
)

// Snapshot is one installed dataset together with its version.
type Snapshot struct {
	Dataset  *Dataset
	Version  uint64
	LoadedAt time.Time
}

// Handle owns the active dataset. Readers get an immutable snapshot without
// locking; Reload builds a complete replacement and swaps it in only when
// the load succeeded.
type Handle struct {
	source Source
	logger zerolog.Logger

	current atomic.Pointer[Snapshot]

	// loadMu serializes Reload so a slow load never replaces the result of
	// a load that started after it.
	loadMu sync.Mutex

	// swapMu guards listeners and nextVersion.
	swapMu      sync.Mutex
	listeners   []func(Snapshot)
	nextVersion uint64
}

// NewHandle creates an empty handle for src. Call Reload or Swap before
// serving.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandle(src Source, logger zerolog.Logger) *Handle {
	return &Handle{
		source: src,
		logger: logger.With().Str("component", "dataset").Logger(),
	}
}

// Source returns the configured source; may be nil for handles fed by Swap.
func (h *Handle) Source() Source { return h.source }

// Current returns the active dataset, or nil before the first load.
func (h *Handle) Current() *Dataset {
	if s := h.current.Load(); s != nil {
		return s.Dataset
	}
	return nil
}

// Snapshot returns the active snapshot. ok is false before the first load.
func (h *Handle) Snapshot() (Snapshot, bool) {
	s := h.current.Load()
	if s == nil {
		return Snapshot{}, false
	}
	return *s, true
}

// Ready reports whether a dataset is installed.
func (h *Handle) Ready() bool { return h.current.Load() != nil }

// Version returns the active snapshot version, 0 before the first load.
func (h *Handle) Version() uint64 {
	if s := h.current.Load(); s != nil {
		return s.Version
	}
	return 0
}

// LoadedAt returns when the active snapshot was installed.
func (h *Handle) LoadedAt() time.Time {
	if s := h.current.Load(); s != nil {
		return s.LoadedAt
	}
	return time.Time{}
}

// Watch reloads the handle whenever the file at path changes, until ctx is
// cancelled.
func (h *Handle) Watch(ctx context.Context, path string) error {
	return NewWatcher(h, path, DefaultDebounce, h.logger).Run(ctx)
}

// OnReload registers fn to run after every successful swap, in
// registration order. fn must not call Reload or Swap.
func (h *Handle) OnReload(fn func(Snapshot)) {
	h.swapMu.Lock()
	defer h.swapMu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Reload loads a fresh dataset from the source. On failure the previous
// snapshot stays active and the error (a *DataSourceError for source
// problems) is returned. Concurrent calls run one at a time.
func (h *Handle) Reload(ctx context.Context) (Snapshot, error) {
	if h.source == nil {
		return Snapshot{}, &DataSourceError{Source: "none", Err: ErrNotLoaded}
	}

	h.loadMu.Lock()
	defer h.loadMu.Unlock()

	start := time.Now()
	ds, err := Load(ctx, h.source)
	metrics.RecordDatasetLoad(time.Since(start), err)
	if err != nil {
		h.logger.Error().Err(err).Str("source", h.source.String()).Msg("Dataset reload failed, keeping previous snapshot")
		return Snapshot{}, err
	}

	snap := h.Swap(ds)
	stats := ds.Stats()
	h.logger.Info().
		Str("source", h.source.String()).
		Uint64("version", snap.Version).
		Int("records", ds.Len()).
		Int("clusters", len(ds.clusters)).
		Int("dim", ds.Dim()).
		Int("dropped", stats.Dropped()).
		Dur("duration", time.Since(start)).
		Msg("Dataset loaded")
	return snap, nil
}

// Swap installs ds as the active dataset and notifies listeners.
func (h *Handle) Swap(ds *Dataset) Snapshot {
	h.swapMu.Lock()
	defer h.swapMu.Unlock()

	h.nextVersion++
	snap := &Snapshot{Dataset: ds, Version: h.nextVersion, LoadedAt: time.Now()}
	h.current.Store(snap)

	stats := ds.Stats()
	metrics.RecordDatasetSnapshot(metrics.DatasetSnapshot{
		Records:          ds.Len(),
		Clusters:         len(ds.clusters),
		Version:          snap.Version,
		DroppedEmbedding: stats.DroppedEmbedding,
		DroppedDimension: stats.DroppedDimension,
		DroppedCluster:   stats.DroppedCluster,
	})

	for _, fn := range h.listeners {
		fn(*snap)
	}
	return *snap
}
