// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinegraph/internal/middleware"
)

// compressionLevel is the gzip level for JSON responses; matrices compress well.
const compressionLevel = 5

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler *Handler
	guards  *Guards
}

// NewRouter creates a router; nil guards means NewGuards() defaults.
func NewRouter(handler *Handler, guards *Guards) *Router {
	if guards == nil {
		guards = NewGuards()
	}
	return &Router{handler: handler, guards: guards}
}

// adapt lifts http.HandlerFunc middleware to chi's shape.
func adapt(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi registers every route.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	r.Use(requestScope, chimiddleware.RealIP, chimiddleware.Recoverer, router.guards.CORS(), accessLog)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.guards.Limit(HealthLimit), securityHeaders)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.guards.APILimit(), securityHeaders, adapt(middleware.PrometheusMetrics))
		if perfMon := router.handler.PerformanceMonitor(); perfMon != nil {
			r.Use(perfMon.Middleware)
		}
		r.Use(chimiddleware.Compress(compressionLevel, "application/json"))

		r.Route("/graph", func(r chi.Router) {
			r.Get("/status", router.handler.GraphStatus)
			r.Get("/matrix", router.handler.GraphMatrix)
			r.With(router.guards.Limit(RebuildLimit)).Post("/rebuild", router.handler.GraphRebuild)
		})

		r.Route("/movies", func(r chi.Router) {
			// Static routes win over {title}, so a movie titled "search" is reachable
			// only through GET.
			r.Post("/search", router.handler.Search)
			r.Post("/similar", router.handler.SimilarMany)

			r.Get("/{title}", router.handler.Movie)
			r.Get("/{title}/neighbors", router.handler.MovieNeighbors)
			r.Get("/{title}/similar", router.handler.MovieSimilar)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
