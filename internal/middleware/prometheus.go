// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/cinegraph/internal/metrics"
)

const unmatchedRoute = "unmatched"

// PrometheusMetrics counts requests and observes their latency per chi route
// pattern, so /api/v1/movies/Heat and /api/v1/movies/Ronin share one series.
func PrometheusMetrics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		status, elapsed := serve(next, w, r)
		metrics.RecordAPIRequest(r.Method, RoutePattern(r), strconv.Itoa(status), elapsed)
	}
}

// serve runs next and reports the status it wrote, 200 when it wrote none.
func serve(next http.Handler, w http.ResponseWriter, r *http.Request) (status int, elapsed time.Duration) {
	ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
	start := time.Now()
	next.ServeHTTP(ww, r)
	elapsed = time.Since(start)

	if status = ww.Status(); status == 0 {
		status = http.StatusOK
	}
	return status, elapsed
}

// RoutePattern is the chi pattern that matched r, or "unmatched". Call it
// after the router has served the request.
func RoutePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return unmatchedRoute
}
