// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinecluster/internal/logging"
	"github.com/tomtom215/cinecluster/internal/metrics"
)

// TopicRecorded carries one serialized Entry per message.
const TopicRecorded = "history.recorded"

const handlerName = "history-persist"

// RecorderConfig configures the asynchronous write path.
type RecorderConfig struct {
	// BufferSize is the subscriber output channel buffer.
	BufferSize int64

	// CloseTimeout bounds how long Close waits for in-flight handlers.
	CloseTimeout time.Duration

	// Retry configuration for failed store writes.
	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64

	Breaker BreakerConfig
}

// DefaultRecorderConfig returns production defaults.
func DefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{
		BufferSize:           1024,
		CloseTimeout:         10 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     2 * time.Second,
		RetryMultiplier:      2.0,
		Breaker:              DefaultBreakerConfig(),
	}
}

// Recorder accepts history entries without blocking callers on storage.
// Record publishes to an in-process pub/sub; a router consumes the topic
// and persists entries through a circuit breaker. Run must be active for
// asynchronous delivery; until then Record writes synchronously.
type Recorder struct {
	store  *guardedStore
	config RecorderConfig
	logger zerolog.Logger
	wmLog  watermill.LoggerAdapter
	pubsub *gochannel.GoChannel

	mu      sync.Mutex
	router  *message.Router
	running atomic.Bool
	closed  atomic.Bool
}

// NewRecorder wraps store. storeName labels metrics and the breaker.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRecorder(store Store, storeName string, cfg RecorderConfig, logger zerolog.Logger) (*Recorder, error) {
	if store == nil {
		return nil, errors.New("history store is required")
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultRecorderConfig().BufferSize
	}
	if cfg.CloseTimeout <= 0 {
		cfg.CloseTimeout = DefaultRecorderConfig().CloseTimeout
	}

	log := logger.With().Str("component", "history").Str("store", storeName).Logger()
	wmLog := watermill.NewSlogLogger(slog.New(logging.NewSlogHandler(log)))

	return &Recorder{
		store:  newGuardedStore(store, storeName, cfg.Breaker, log),
		config: cfg,
		logger: log,
		wmLog:  wmLog,
		pubsub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: cfg.BufferSize}, wmLog),
	}, nil
}

// Record validates e and queues it for persistence. The returned entry
// carries the assigned ID and timestamp.
func (r *Recorder) Record(ctx context.Context, e Entry) (Entry, error) {
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	e.fill()

	if !r.running.Load() {
		return e, r.store.save(ctx, e)
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal history entry: %w", err)
	}
	msg := message.NewMessage(e.ID, payload)
	if rid := logging.RequestIDFromContext(ctx); rid != "" {
		msg.Metadata.Set("request_id", rid)
	}
	if err := r.pubsub.Publish(TopicRecorded, msg); err != nil {
		return Entry{}, fmt.Errorf("publish history entry: %w", err)
	}
	metrics.RecordHistoryPublish()
	return e, nil
}

// RecordSync validates e and writes it through the breaker immediately.
func (r *Recorder) RecordSync(ctx context.Context, e Entry) (Entry, error) {
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	e.fill()
	if err := r.store.save(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// List returns the user's newest entries.
func (r *Recorder) List(ctx context.Context, userID string, limit int) ([]Entry, error) {
	entries, err := r.store.list(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// BreakerState reports "closed", "half-open" or "open".
func (r *Recorder) BreakerState() string {
	return r.store.state()
}

// Running reports whether the consumer is active.
func (r *Recorder) Running() bool {
	return r.running.Load()
}

func (r *Recorder) newRouter() (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: r.config.CloseTimeout}, r.wmLog)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	// Outer to inner: drop after retries, recover panics, retry with backoff.
	router.AddMiddleware(r.dropExhausted)
	router.AddMiddleware(middleware.Recoverer)
	retry := middleware.Retry{
		MaxRetries:      r.config.RetryMaxRetries,
		InitialInterval: r.config.RetryInitialInterval,
		MaxInterval:     r.config.RetryMaxInterval,
		Multiplier:      r.config.RetryMultiplier,
		Logger:          r.wmLog,
	}
	router.AddMiddleware(retry.Middleware)

	router.AddConsumerHandler(handlerName, TopicRecorded, r.pubsub, r.handle)
	return router, nil
}

// Run consumes queued entries until ctx is canceled or Close is called.
// It may be called again after it returns.
func (r *Recorder) Run(ctx context.Context) error {
	if r.closed.Load() {
		return errors.New("recorder closed")
	}
	router, err := r.newRouter()
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.router = router
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		select {
		case <-router.Running():
		case <-done:
			return
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		select {
		case <-done:
		default:
			r.running.Store(true)
			r.logger.Info().Str("topic", TopicRecorded).Msg("History consumer running")
		}
	}()

	err = router.Run(ctx)

	r.mu.Lock()
	close(done)
	r.running.Store(false)
	r.mu.Unlock()

	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("history router: %w", err)
	}
	return ctx.Err()
}

// handle persists one message. Malformed payloads are acknowledged and
// dropped.
func (r *Recorder) handle(msg *message.Message) error {
	var e Entry
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		r.logger.Error().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping malformed history message")
		return nil
	}
	return r.store.save(msg.Context(), e)
}

// dropExhausted acknowledges messages whose retries are exhausted so the
// in-process bus does not redeliver them forever.
func (r *Recorder) dropExhausted(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		out, err := h(msg)
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("message_uuid", msg.UUID).
				Str("request_id", msg.Metadata.Get("request_id")).
				Str("breaker", r.store.state()).
				Msg("History entry dropped after retries")
			metrics.RecordHistoryWrite(r.store.storeName, "dropped")
			return nil, nil
		}
		return out, nil
	}
}

// Close stops the consumer and the pub/sub. It does not close the store.
func (r *Recorder) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	r.running.Store(false)

	var errs []error
	r.mu.Lock()
	router := r.router
	r.mu.Unlock()
	if router != nil {
		if err := router.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close router: %w", err))
		}
	}
	if err := r.pubsub.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close pubsub: %w", err))
	}
	return errors.Join(errs...)
}
