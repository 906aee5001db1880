// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package services

import (
	"context"

	"github.com/rs/zerolog"
)

// HistoryConsumer is satisfied by *history.Recorder.
type HistoryConsumer interface {
	Run(ctx context.Context) error
}

// HistoryRouterService supervises the consumer that persists queued history
// entries. While it is down or backing off, Recorder.Record writes
// synchronously, so no entry is lost to a restart.
type HistoryRouterService struct {
	consumer HistoryConsumer
	logger   zerolog.Logger
	name     string
}

// NewHistoryRouterService wraps consumer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHistoryRouterService(consumer HistoryConsumer, logger zerolog.Logger) *HistoryRouterService {
	return &HistoryRouterService{
		consumer: consumer,
		logger:   logger.With().Str("service", "history-consumer").Logger(),
		name:     "history-consumer",
	}
}

// Serve implements suture.Service.
func (s *HistoryRouterService) Serve(ctx context.Context) error {
	err := s.consumer.Run(ctx)
	if ctx.Err() != nil {
		s.logger.Info().Msg("history consumer stopped")
		return ctx.Err()
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("history consumer failed")
	}
	return err
}

// String returns the service name for logging.
func (s *HistoryRouterService) String() string {
	return s.name
}
