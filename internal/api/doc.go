// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

/*
Package api serves recommendations, title lookups, cluster analytics and
recommendation history over HTTP using the Chi router.

# Routes

	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /api/v1/recommendations?title=&k=&genre=&user_id=
	GET  /api/v1/titles/suggest?q=&n=
	GET  /api/v1/titles/autocomplete?prefix=&n=
	GET  /api/v1/movies/{title}
	GET  /api/v1/genres
	GET  /api/v1/clusters
	GET  /api/v1/clusters/{id}/top-movies?n=
	GET  /api/v1/clusters/{id}/similar?n=
	GET  /api/v1/analytics/clusters
	GET  /api/v1/analytics/similarity-matrix
	GET  /api/v1/analytics/genre-distribution
	GET  /api/v1/users/{userID}/history?limit=
	POST /api/v1/users/{userID}/history
	POST /api/v1/admin/dataset/reload
	GET  /metrics

# Responses

Every JSON response uses models.APIResponse:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 2}}

Errors carry a code (TITLE_NOT_FOUND, NOT_FOUND, VALIDATION_FAILED,
DATA_SOURCE_ERROR, HISTORY_UNAVAILABLE, RATE_LIMIT_EXCEEDED, INTERNAL_ERROR)
and the request ID. An unknown seed title answers 404 with close-match
suggestions in error.details.suggestions.

# Middleware

Global: request timing, X-Request-ID, RealIP, panic recovery, CORS
(go-chi/cors) and Prometheus metrics. Per group: per-IP rate limits
(go-chi/httprate), security headers and, for /api/v1, a request timeout.
*/
package api
