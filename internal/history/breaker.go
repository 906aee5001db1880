// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cinecluster/internal/metrics"
)

// BreakerConfig configures the circuit breaker guarding the store.
type BreakerConfig struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32

	// Interval after which closed-state counts reset.
	Interval time.Duration

	// Timeout spent open before probing again.
	Timeout time.Duration

	// MinRequests before the failure ratio is considered.
	MinRequests uint32

	// FailureRatio at or above which the breaker opens.
	FailureRatio float64
}

// DefaultBreakerConfig returns production defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// guardedStore runs store calls through a circuit breaker.
type guardedStore struct {
	store     Store
	storeName string
	cb        *gobreaker.CircuitBreaker[interface{}]
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newGuardedStore(store Store, storeName string, cfg BreakerConfig, logger zerolog.Logger) *guardedStore {
	name := "history-" + storeName
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= cfg.FailureRatio {
				logger.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", ratio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logger.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})
	return &guardedStore{store: store, storeName: storeName, cb: cb}
}

func (g *guardedStore) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := g.cb.Execute(fn)
	name := g.cb.Name()
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(name, "rejected").Inc()
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(name, "failure").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(name, "success").Inc()
	return result, nil
}

func (g *guardedStore) save(ctx context.Context, e Entry) error {
	_, err := g.execute(func() (interface{}, error) {
		return nil, g.store.Save(ctx, e)
	})
	switch {
	case err == nil:
		metrics.RecordHistoryWrite(g.storeName, metrics.OutcomeOK)
	case errors.Is(err, ErrUnavailable):
		metrics.RecordHistoryWrite(g.storeName, metrics.OutcomeUnavailable)
	default:
		metrics.RecordHistoryWrite(g.storeName, metrics.OutcomeError)
	}
	return err
}

func (g *guardedStore) list(ctx context.Context, userID string, limit int) ([]Entry, error) {
	res, err := g.execute(func() (interface{}, error) {
		return g.store.ListByUser(ctx, userID, limit)
	})
	if err != nil {
		return nil, err
	}
	entries, ok := res.([]Entry)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", res)
	}
	return entries, nil
}

func (g *guardedStore) state() string {
	return stateToString(g.cb.State())
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
