// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultSlowRequestThreshold is the latency above which a request is logged as slow.
const DefaultSlowRequestThreshold = time.Second

// RequestMetrics is a single served request.
type RequestMetrics struct {
	Route      string
	Method     string
	DurationMS int64
	StatusCode int
	Timestamp  time.Time
}

// EndpointStats aggregates the recorded requests of one method and route.
type EndpointStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int64   `json:"request_count"`
	ErrorCount   int64   `json:"error_count"`
	AvgDuration  float64 `json:"avg_duration_ms"`
	P50Duration  int64   `json:"p50_duration_ms"`
	P95Duration  int64   `json:"p95_duration_ms"`
	P99Duration  int64   `json:"p99_duration_ms"`
	MaxDuration  int64   `json:"max_duration_ms"`
}

// PerformanceMonitor keeps a sliding window of recent requests and reports
// per-endpoint latency percentiles over it.
type PerformanceMonitor struct {
	mu        sync.RWMutex
	window    []RequestMetrics
	next      int
	full      bool
	slowAfter time.Duration
	logger    zerolog.Logger
}

// NewPerformanceMonitor creates a monitor that remembers the last windowSize requests.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewPerformanceMonitor(windowSize int, slowAfter time.Duration, logger zerolog.Logger) *PerformanceMonitor {
	if windowSize < 1 {
		windowSize = 1
	}
	if slowAfter <= 0 {
		slowAfter = DefaultSlowRequestThreshold
	}
	return &PerformanceMonitor{
		window:    make([]RequestMetrics, windowSize),
		slowAfter: slowAfter,
		logger:    logger,
	}
}

// RecordRequest adds a request to the window, evicting the oldest when full.
func (pm *PerformanceMonitor) RecordRequest(metric *RequestMetrics) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.window[pm.next] = *metric
	pm.next = (pm.next + 1) % len(pm.window)
	if pm.next == 0 {
		pm.full = true
	}
}

// GetStats returns per-endpoint statistics over the window, busiest endpoint first.
func (pm *PerformanceMonitor) GetStats() []EndpointStats {
	pm.mu.RLock()
	recorded := pm.window[:pm.next]
	if pm.full {
		recorded = pm.window
	}
	durations := make(map[string][]int64)
	errorCounts := make(map[string]int64)
	for i := range recorded {
		m := &recorded[i]
		key := endpointKey(m.Method, m.Route)
		durations[key] = append(durations[key], m.DurationMS)
		if m.StatusCode >= http.StatusInternalServerError {
			errorCounts[key]++
		}
	}
	pm.mu.RUnlock()

	stats := make([]EndpointStats, 0, len(durations))
	for endpoint, ds := range durations {
		sort.Slice(ds, func(i, j int) bool { return ds[i] < ds[j] })

		var sum int64
		for _, d := range ds {
			sum += d
		}

		stats = append(stats, EndpointStats{
			Endpoint:     endpoint,
			RequestCount: int64(len(ds)),
			ErrorCount:   errorCounts[endpoint],
			AvgDuration:  float64(sum) / float64(len(ds)),
			P50Duration:  percentile(ds, 0.50),
			P95Duration:  percentile(ds, 0.95),
			P99Duration:  percentile(ds, 0.99),
			MaxDuration:  ds[len(ds)-1],
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RequestCount != stats[j].RequestCount {
			return stats[i].RequestCount > stats[j].RequestCount
		}
		return stats[i].Endpoint < stats[j].Endpoint
	})
	return stats
}

// Middleware records every request and logs those slower than the threshold.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		status, elapsed := serve(next, w, r)

		route := RoutePattern(r)
		pm.RecordRequest(&RequestMetrics{
			Route:      route,
			Method:     r.Method,
			DurationMS: elapsed.Milliseconds(),
			StatusCode: status,
			Timestamp:  start,
		})

		if elapsed > pm.slowAfter {
			pm.logger.Warn().
				Str("method", r.Method).
				Str("route", route).
				Int("status", status).
				Dur("duration", elapsed).
				Dur("threshold", pm.slowAfter).
				Msg("slow request")
		}
	})
}

func endpointKey(method, route string) string {
	return method + " " + route
}

// percentile returns the nearest-rank value at p from a sorted slice.
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}
