// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package api

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/cinegraph/internal/config"
	"github.com/tomtom215/cinegraph/internal/metrics"
	"github.com/tomtom215/cinegraph/internal/middleware"
)

// Limit is a request budget per client key and window.
type Limit struct {
	Requests int
	Window   time.Duration
}

// Route budgets that ignore RATE_LIMIT_REQUESTS.
var (
	// HealthLimit lets monitoring probe often.
	HealthLimit = Limit{Requests: 1000, Window: time.Minute}
	// RebuildLimit is tight because every rebuild rescans the catalog.
	RebuildLimit = Limit{Requests: 5, Window: time.Minute}
)

// DefaultLimit is the budget of /api/v1 when no option overrides it.
var DefaultLimit = Limit{Requests: 100, Window: time.Minute}

const corsMaxAge = 24 * 60 * 60

// Guards hands out the CORS and rate-limit middleware of the router.
// The zero origin list rejects every cross-origin request.
type Guards struct {
	origins   []string
	limit     Limit
	unlimited bool
	clientKey httprate.KeyFunc

	cors func(http.Handler) http.Handler
}

// GuardOption tunes NewGuards.
type GuardOption func(*Guards)

// WithOrigins sets the allowed CORS origins; "*" allows any.
func WithOrigins(origins ...string) GuardOption {
	return func(g *Guards) { g.origins = origins }
}

// WithLimit replaces DefaultLimit.
func WithLimit(l Limit) GuardOption {
	return func(g *Guards) { g.limit = l }
}

// WithoutLimits turns every limiter into a pass-through.
func WithoutLimits() GuardOption {
	return func(g *Guards) { g.unlimited = true }
}

// WithClientKey changes how requests are grouped into budgets. The default
// keys by client IP; GuardsFromConfig switches to keyByIPAndPath when
// RATE_LIMIT_PER_ROUTE is set.
func WithClientKey(fn httprate.KeyFunc) GuardOption {
	return func(g *Guards) { g.clientKey = fn }
}

// NewGuards applies opts over DefaultLimit and an empty origin list.
func NewGuards(opts ...GuardOption) *Guards {
	g := &Guards{limit: DefaultLimit, clientKey: httprate.KeyByIP}
	for _, opt := range opts {
		opt(g)
	}
	g.cors = cors.Handler(corsOptions(g.origins))
	return g
}

// GuardsFromConfig maps the security section of the configuration.
func GuardsFromConfig(sec config.SecurityConfig) *Guards {
	opts := []GuardOption{
		WithOrigins(sec.CORSOrigins...),
		WithLimit(Limit{Requests: sec.RateLimitReqs, Window: sec.RateLimitWindow}),
	}
	if sec.RateLimitDisabled {
		opts = append(opts, WithoutLimits())
	}
	if sec.RateLimitPerRoute {
		opts = append(opts, WithClientKey(keyByIPAndPath))
	}
	return NewGuards(opts...)
}

// keyByIPAndPath gives each client a separate budget per request path.
func keyByIPAndPath(r *http.Request) (string, error) {
	ip, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	path, err := httprate.KeyByEndpoint(r)
	if err != nil {
		return "", err
	}
	return ip + " " + path, nil
}

func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", chimiddleware.RequestIDHeader},
		ExposedHeaders: []string{chimiddleware.RequestIDHeader, correlationIDHeader},
		MaxAge:         corsMaxAge,
	}
	// go-chi/cors treats an empty list as "allow all".
	if len(origins) == 0 {
		opts.AllowOriginFunc = func(*http.Request, string) bool { return false }
	}
	return opts
}

// CORS must run before routing so OPTIONS preflights are answered.
func (g *Guards) CORS() func(http.Handler) http.Handler {
	return g.cors
}

// APILimit enforces the configured budget.
func (g *Guards) APILimit() func(http.Handler) http.Handler {
	return g.Limit(g.limit)
}

// Limit enforces l per client key. Rejections get the JSON error envelope
// and count towards api_rate_limit_hits_total.
func (g *Guards) Limit(l Limit) func(http.Handler) http.Handler {
	if g.unlimited {
		return passThrough
	}
	return httprate.Limit(l.Requests, l.Window,
		httprate.WithKeyFuncs(g.clientKey),
		httprate.WithLimitHandler(tooManyRequests),
	)
}

func passThrough(next http.Handler) http.Handler { return next }

func tooManyRequests(w http.ResponseWriter, r *http.Request) {
	metrics.APIRateLimitHits.WithLabelValues(middleware.RoutePattern(r)).Inc()
	respondError(w, http.StatusTooManyRequests, ErrCodeRateLimited, "Too many requests", nil)
}
