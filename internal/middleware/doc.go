// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
Package middleware provides HTTP instrumentation for the query API.

Key Components:

  - PrometheusMetrics: request totals, latency histograms and in-flight
    gauge, exported through internal/metrics
  - PerformanceMonitor: a sliding window of recent requests with per-endpoint
    latency percentiles and slow request logging

Both label requests with the chi route pattern rather than the raw path, so
every movie title shares one series per route:

	GET /api/v1/movies/Heat/similar  ->  GET /api/v1/movies/{title}/similar

Requests that matched no route are labelled "unmatched".

Usage Example:

	perfMon := middleware.NewPerformanceMonitor(1000, time.Second, logger)

	r := chi.NewRouter()
	r.Use(perfMon.Middleware)
	r.Use(func(next http.Handler) http.Handler {
	    return middleware.PrometheusMetrics(next.ServeHTTP)
	})

	stats := perfMon.GetStats() // busiest endpoint first

Thread Safety:

PerformanceMonitor is safe for concurrent use. The Prometheus collectors are
safe for concurrent use by construction.
*/
package middleware
