// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

//go:build integration

package history

import (
	"context"
	"path/filepath"
	"testing"
)

func TestDuckDBStore(t *testing.T) {
	s, err := OpenDuckDBStore(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("OpenDuckDBStore: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestDuckDBStoreSchemaIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.duckdb")
	ctx := context.Background()

	s, err := OpenDuckDBStore(ctx, path)
	if err != nil {
		t.Fatalf("OpenDuckDBStore: %v", err)
	}
	if err := s.Save(ctx, entryAt("dave", "Alien", 0)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = OpenDuckDBStore(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.ListByUser(ctx, "dave", 5)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 entry after reopen, got %d", len(got))
	}
}
