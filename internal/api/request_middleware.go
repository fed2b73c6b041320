// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package api

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/middleware"
)

const (
	hstsValue           = "max-age=31536000; includeSubDomains"
	correlationIDHeader = "X-Correlation-ID"
)

// requestScope gives every request an id shared by chi, the response header
// and logging.Ctx, plus a fresh correlation id. An incoming X-Request-Id is kept.
// Both ids are echoed in the response headers so a client can quote them.
func requestScope(next http.Handler) http.Handler {
	inner := chimiddleware.RequestID(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(chimiddleware.RequestIDHeader)
		if id == "" {
			id = logging.GenerateRequestID()
			r.Header.Set(chimiddleware.RequestIDHeader, id)
		}

		ctx := logging.ContextWithNewCorrelationID(logging.ContextWithRequestID(r.Context(), id))
		w.Header().Set(chimiddleware.RequestIDHeader, logging.RequestIDFromContext(ctx))
		w.Header().Set(correlationIDHeader, logging.CorrelationIDFromContext(ctx))
		inner.ServeHTTP(w, r.WithContext(ctx))
	})
}

// securityHeaders sets the browser hardening headers; HSTS only when the
// request reached us, or the proxy in front of us, over TLS.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			h.Set("Strict-Transport-Security", hstsValue)
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one debug line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logging.Ctx(r.Context()).Debug().
			Str("method", r.Method).
			Str("route", middleware.RoutePattern(r)).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}
