// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

/*
Package history records which titles were recommended to which user.

Each Entry is a (user id, title, similarity) tuple with an ID and a
timestamp. Three Store backends are available:

  - MemoryStore: process memory, for tests and single-instance demos
  - BadgerStore: embedded BadgerDB, keys ordered newest first per user
  - DuckDBStore: the recommendation_history table in a DuckDB file

Recorder sits in front of a Store. Record publishes entries on an
in-process watermill GoChannel (topic "history.recorded") and a watermill
router persists them with retry and panic recovery, so HTTP handlers never
wait on storage. Every store call goes through a sony/gobreaker circuit
breaker; while it is open calls fail fast with ErrUnavailable.
*/
package history
