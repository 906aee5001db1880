// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

// Package analytics provides read-only aggregate views over clusters:
// sizes, per-cluster means, genre distribution, centroid embeddings and
// the inter-centroid cosine similarity matrix.
//
// The package-level functions are pure and operate on a *dataset.Dataset.
// Service binds them to a dataset.Handle so every request sees the snapshot
// active at call time; centroids are never cached across snapshots.
package analytics
