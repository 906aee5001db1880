// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

/*
Package middleware provides HTTP middleware shared by the API router.

  - RequestID: accepts or generates X-Request-ID and stores it in the request
    and logging contexts
  - PrometheusMetrics: request count, latency and in-flight gauge labelled by
    chi route pattern

Both are plain http.HandlerFunc wrappers; the api package adapts them to
chi's r.Use.

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
*/
package middleware
