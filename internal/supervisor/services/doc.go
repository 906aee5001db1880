// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

/*
Package services adapts server components to suture.Service.

Each wrapper turns a blocking or Run-style lifecycle into
Serve(ctx context.Context) error and implements fmt.Stringer so supervisor
events name the service.

  - HTTPServerService: *http.Server with graceful shutdown (api layer)
  - DatasetWatchService: dataset file watcher plus periodic reload (data layer)
  - HistoryRouterService: the Watermill history consumer (messaging layer)

Returning ctx.Err() on cancellation tells suture the stop was requested;
any other error triggers a restart with backoff.
*/
package services
