// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

// Package logging provides the process-wide zerolog logger for Cinecluster.
//
// Initialize once from main:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
// Components derive a tagged child logger:
//
//	logger := logging.WithComponent("recommend")
//
// Request-scoped code logs through Ctx so request and correlation IDs set
// by the HTTP middleware end up on every line:
//
//	logging.Ctx(ctx).Warn().Str("title", title).Msg("Title not found")
//
// Libraries that take a *slog.Logger (suture, watermill) get one from
// NewSlogLogger, which forwards to the same zerolog output.
//
// Always terminate event chains with Msg or Send; an unterminated chain is
// never written.
package logging
