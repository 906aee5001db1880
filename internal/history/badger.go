// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package history

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Key layout:
//
//	hist\x00<user id>\x00<MaxInt64 - unix nanos><^sequence>
//
// Both suffixes are big-endian, so a forward prefix scan yields the newest
// entry first, and among equal timestamps the latest save first.
const (
	keyPrefix   = "hist\x00"
	sequenceKey = "seq:history"
)

// BadgerConfig configures a BadgerStore.
type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps everything in RAM.
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool
}

// BadgerStore persists history in an embedded BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	seq    *badger.Sequence
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// OpenBadgerStore opens (or creates) the database described by cfg.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func OpenBadgerStore(cfg BadgerConfig, logger zerolog.Logger) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, fmt.Errorf("badger path is required")
	}
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}
	seq, err := db.GetSequence([]byte(sequenceKey), 1000)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("acquire sequence: %w", err)
	}

	s := &BadgerStore{
		db:     db,
		seq:    seq,
		logger: logger.With().Str("component", "history").Str("store", StoreBadger).Logger(),
	}
	s.logger.Info().Str("path", cfg.Path).Bool("in_memory", cfg.InMemory).Msg("History store opened")
	return s, nil
}

func userPrefix(userID string) []byte {
	p := make([]byte, 0, len(keyPrefix)+len(userID)+1)
	p = append(p, keyPrefix...)
	p = append(p, userID...)
	return append(p, 0)
}

func entryKey(e Entry, seq uint64) []byte {
	nanos := e.RecordedAt.UnixNano()
	if nanos < 0 {
		nanos = 0
	}
	key := userPrefix(e.UserID)
	key = binary.BigEndian.AppendUint64(key, uint64(math.MaxInt64-nanos))
	return binary.BigEndian.AppendUint64(key, ^seq)
}

// Save writes e.
func (s *BadgerStore) Save(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}

	n, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(entryKey(e, n), data))
	})
	if err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	return nil
}

// ListByUser scans the user's prefix.
func (s *BadgerStore) ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	entries := make([]Entry, 0, min(limit, 64))
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = userPrefix(userID)
		opts.PrefetchSize = min(limit, 100)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid() && len(entries) < limit; it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			var e Entry
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			})
			if err != nil {
				s.logger.Warn().Err(err).Str("key", fmt.Sprintf("%q", item.Key())).Msg("Skipping unreadable history entry")
				continue
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// Close releases the sequence and closes the database.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.seq.Release(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to release history sequence")
	}
	return s.db.Close()
}
