// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package api

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinegraph/internal/middleware"
	"github.com/tomtom215/cinegraph/internal/recommend"
)

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response, decoding and error mapping helpers
//   - handlers_health.go: liveness and readiness probes
//   - handlers_graph.go: build status, rebuild and adjacency matrix
//   - handlers_movies.go: per-movie lookups and similarity queries
type Handler struct {
	engine    *recommend.Engine
	perfMon   *middleware.PerformanceMonitor
	logger    zerolog.Logger
	startTime time.Time

	// buildCtx parents background rebuilds so they stop with the server.
	buildCtx context.Context
}

// NewHandler creates a new API handler serving queries from engine.
//
// Example:
//
//	handler := api.NewHandler(ctx, engine, perfMon, logger)
//	router := api.NewRouter(handler, api.GuardsFromConfig(cfg.Security))
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(ctx context.Context, engine *recommend.Engine, perfMon *middleware.PerformanceMonitor, logger zerolog.Logger) *Handler {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Handler{
		engine:    engine,
		perfMon:   perfMon,
		logger:    logger.With().Str("component", "api").Logger(),
		startTime: time.Now(),
		buildCtx:  ctx,
	}
}

// PerformanceMonitor returns the monitor whose middleware feeds the status endpoint.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}
