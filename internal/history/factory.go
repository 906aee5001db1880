// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package history

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreBadger = "badger"
	StoreDuckDB = "duckdb"
)

// StoreConfig selects and configures a Store backend.
type StoreConfig struct {
	// Backend is one of StoreMemory, StoreBadger or StoreDuckDB.
	Backend string

	// Path is the Badger directory or DuckDB file.
	Path string

	// SyncWrites fsyncs Badger writes.
	SyncWrites bool
}

// NewStore opens the configured backend.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewStore(ctx context.Context, cfg StoreConfig, logger zerolog.Logger) (Store, error) {
	switch cfg.Backend {
	case StoreMemory, "":
		return NewMemoryStore(), nil
	case StoreBadger:
		return OpenBadgerStore(BadgerConfig{Path: cfg.Path, SyncWrites: cfg.SyncWrites}, logger)
	case StoreDuckDB:
		return OpenDuckDBStore(ctx, cfg.Path)
	default:
		return nil, fmt.Errorf("unknown history store %q", cfg.Backend)
	}
}
