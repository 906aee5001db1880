// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/cinecluster/internal/analytics"
	"github.com/tomtom215/cinecluster/internal/api"
	"github.com/tomtom215/cinecluster/internal/config"
	"github.com/tomtom215/cinecluster/internal/dataset"
	"github.com/tomtom215/cinecluster/internal/history"
	"github.com/tomtom215/cinecluster/internal/logging"
	"github.com/tomtom215/cinecluster/internal/recommend"
	"github.com/tomtom215/cinecluster/internal/supervisor"
	"github.com/tomtom215/cinecluster/internal/supervisor/services"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// Config is not available yet; the default logger writes JSON to stderr.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging.LoggerConfig())

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

//nolint:gocyclo // sequential setup steps
func run(cfg *config.Config) error {
	logging.Info().
		Str("data_source", cfg.Data.Source).
		Str("data_path", cfg.Data.Path).
		Bool("history_enabled", cfg.History.Enabled).
		Str("history_store", cfg.History.Store).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Cinecluster with supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === DATASET ===
	src, err := cfg.Data.NewSource()
	if err != nil {
		return fmt.Errorf("create dataset source: %w", err)
	}
	if closer, ok := src.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing dataset source")
			}
		}()
	}

	data := dataset.NewHandle(src, logging.WithComponent("dataset"))
	loadCtx, loadCancel := context.WithTimeout(ctx, cfg.Data.LoadTimeout)
	snap, err := data.Reload(loadCtx)
	loadCancel()
	if err != nil {
		// Not fatal: readiness stays 503 and the watcher or the admin
		// endpoint can load the dataset later.
		logging.Error().Err(err).Msg("Initial dataset load failed; serving 503 until a reload succeeds")
	} else {
		logging.Info().
			Uint64("version", snap.Version).
			Int("records", snap.Dataset.Len()).
			Int("clusters", len(snap.Dataset.Clusters())).
			Msg("Dataset loaded")
	}

	// === RECOMMENDATION + ANALYTICS ===
	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), data, logging.Logger())
	if err != nil {
		return fmt.Errorf("create recommendation engine: %w", err)
	}
	defer engine.Close()

	analyticsSvc := analytics.NewService(data, logging.Logger())

	// === HISTORY ===
	var recorder *history.Recorder
	var hist api.HistoryRecorder
	if cfg.History.Enabled {
		store, err := history.NewStore(ctx, cfg.History.StoreConfig(), logging.WithComponent("history_store"))
		if err != nil {
			return fmt.Errorf("open history store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing history store")
			}
		}()

		recorder, err = history.NewRecorder(store, cfg.History.Store, cfg.History.RecorderConfig(), logging.Logger())
		if err != nil {
			return fmt.Errorf("create history recorder: %w", err)
		}
		defer func() {
			if err := recorder.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing history recorder")
			}
		}()
		hist = recorder
		logging.Info().Str("store", cfg.History.Store).Msg("Recommendation history enabled")
	} else {
		logging.Info().Msg("Recommendation history disabled (HISTORY_ENABLED=false)")
	}

	// === HTTP ===
	handler, err := api.NewHandler(data, engine, analyticsSvc, hist, api.HandlerConfig{
		HistoryDefaultLimit: cfg.History.DefaultLimit,
		HistoryMaxLimit:     cfg.History.MaxLimit,
		ReloadTimeout:       cfg.Data.LoadTimeout,
	}, logging.Logger())
	if err != nil {
		return fmt.Errorf("create API handler: %w", err)
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mw.RateLimitRequests = cfg.Security.RateLimitReqs
	mw.RateLimitWindow = cfg.Security.RateLimitWindow
	mw.RateLimitDisabled = cfg.Security.RateLimitDisabled
	router := api.NewRouter(handler, api.RouterConfig{
		Middleware:     mw,
		RequestTimeout: cfg.Server.RequestTimeout(),
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// === SUPERVISOR TREE ===
	// sutureslog needs a slog.Logger; the adapter forwards to zerolog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), cfg.Supervisor.TreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if cfg.Data.Watch || cfg.Data.ReloadInterval > 0 {
		var watcher services.FileWatcher
		if cfg.Data.Watch {
			watcher = dataset.NewWatcher(data, cfg.Data.Path, cfg.Data.WatchDebounce, logging.Logger())
		}
		tree.AddDataService(services.NewDatasetWatchService(data, watcher, services.DatasetWatchConfig{
			ReloadInterval: cfg.Data.ReloadInterval,
			ReloadTimeout:  cfg.Data.LoadTimeout,
		}, logging.Logger()))
	}
	if recorder != nil {
		tree.AddMessagingService(services.NewHistoryRouterService(recorder, logging.Logger()))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.Logger()))

	if stop := watchLogLevel(); stop != nil {
		defer func() {
			if err := stop(); err != nil {
				logging.Debug().Err(err).Msg("Config watcher stop failed")
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	treeErr := awaitTree(ctx, errCh)
	cancel()

	unstopped, _ := tree.UnstoppedServiceReport() //nolint:errcheck // best-effort diagnostics
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if treeErr != nil {
		return fmt.Errorf("supervisor tree: %w", treeErr)
	}
	return nil
}

// awaitTree blocks until the supervisor tree stops. ServeBackground delivers
// exactly one value and never closes errCh, so it is received once: right
// away when the tree stops by itself, after the tree has drained when ctx is
// cancelled. Cancellation is not an error.
func awaitTree(ctx context.Context, errCh <-chan error) error {
	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		err = <-errCh
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// watchLogLevel re-applies the logging section whenever the config file
// changes. Every other setting takes effect on restart. It returns nil when
// no config file is in use.
func watchLogLevel() func() error {
	path := config.ConfigFilePath()
	if path == "" {
		return nil
	}
	stop, err := config.WatchConfigFile(path, func() {
		cfg, err := config.LoadWithKoanf()
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Ignoring invalid config file change")
			return
		}
		logging.Init(cfg.Logging.LoggerConfig())
		logging.Info().Str("level", cfg.Logging.Level).Msg("Logging configuration reloaded; other settings apply on restart")
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Config file watch unavailable")
		return nil
	}
	return stop
}
