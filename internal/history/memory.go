// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package history

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps history in process memory. Contents are lost on
// restart.
type MemoryStore struct {
	mu     sync.RWMutex
	byUser map[string][]Entry
	closed bool
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byUser: make(map[string][]Entry)}
}

// Save appends e to the user's history.
func (s *MemoryStore) Save(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.byUser[e.UserID] = append(s.byUser[e.UserID], e)
	return nil
}

// ListByUser returns the newest entries for userID.
func (s *MemoryStore) ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, ErrStoreClosed
	}
	src := s.byUser[userID]
	out := make([]Entry, len(src))
	// Reverse insertion order so the stable sort keeps later saves first.
	for i, e := range src {
		out[len(src)-1-i] = e
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.byUser = nil
	return nil
}
