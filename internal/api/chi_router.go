// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinecluster/internal/middleware"
	"github.com/tomtom215/cinecluster/internal/models"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// RouterConfig configures the HTTP router.
type RouterConfig struct {
	Middleware *ChiMiddlewareConfig

	// RequestTimeout bounds every /api/v1 handler except dataset reloads.
	RequestTimeout time.Duration
}

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	config        RouterConfig
}

// NewRouter creates a router for handler.
func NewRouter(handler *Handler, config RouterConfig) *Router {
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 30 * time.Second
	}
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(config.Middleware),
		config:        config,
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	// Global middleware, applied to all routes in order.
	r.Use(requestTiming)
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, models.ErrCodeNotFound, "Route not found", nil, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil, nil)
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitHealth))
		r.Use(APISecurityHeaders())
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitAdmin))
		r.Use(APISecurityHeaders())
		r.Post("/dataset/reload", h.ReloadDataset)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chimiddleware.Timeout(router.config.RequestTimeout))

		r.Get("/recommendations", h.Recommendations)

		r.Get("/titles/suggest", h.SuggestTitles)
		r.Get("/titles/autocomplete", h.AutocompleteTitles)
		r.Get("/movies/{title}", h.GetMovie)
		r.Get("/genres", h.ListGenres)

		r.Get("/clusters", h.ListClusters)
		r.Get("/clusters/{id}/top-movies", h.ClusterTopMovies)
		r.Get("/clusters/{id}/similar", h.ClusterSimilar)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/clusters", h.AnalyticsClusters)
			r.Get("/similarity-matrix", h.AnalyticsSimilarityMatrix)
			r.Get("/genre-distribution", h.AnalyticsGenreDistribution)
		})

		r.Get("/users/{userID}/history", h.ListHistory)
		r.Post("/users/{userID}/history", h.RecordHistory)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
