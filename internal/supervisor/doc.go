// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

/*
Package supervisor runs the long-lived parts of the server under a suture v4
supervisor tree.

# Layout

	cinecluster (root)
	├── data-layer       dataset watcher / periodic reload
	├── messaging-layer  history consumer (Watermill router)
	└── api-layer        HTTP server

Each layer restarts its own children with exponential backoff. A service
that keeps failing enters backoff for FailureBackoff once its failure
count passes FailureThreshold; failures decay at FailureDecay per second.

Supervisor events are logged through sutureslog, which writes to the
zerolog-backed slog.Logger from logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), cfg.Supervisor.TreeConfig())
	if err != nil {
		return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

Service wrappers live in the services subpackage.
*/
package supervisor
