// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Every series is exported as cinegraph_<subsystem>_<name>.
const namespace = "cinegraph"

const (
	subsystemGraph   = "graph"
	subsystemCatalog = "catalog"
	subsystemCache   = "cache"
	subsystemAPI     = "api"
)

var (
	buildBuckets   = []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300}
	queryBuckets   = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}
	requestBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
)

func counterOpts(subsystem, name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: namespace, Subsystem: subsystem, Name: name, Help: help}
}

func gaugeOpts(subsystem, name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: namespace, Subsystem: subsystem, Name: name, Help: help}
}

func histogramOpts(subsystem, name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: namespace, Subsystem: subsystem, Name: name, Help: help, Buckets: buckets}
}

// Graph builds.
var (
	GraphBuildDuration = promauto.NewHistogram(histogramOpts(subsystemGraph, "build_duration_seconds",
		"Wall time of similarity graph builds, failed ones included.", buildBuckets))
	GraphBuildsTotal = promauto.NewCounter(counterOpts(subsystemGraph, "builds_total",
		"Successful graph builds."))
	// stage is load, ingest or build.
	GraphBuildErrors = promauto.NewCounterVec(counterOpts(subsystemGraph, "build_errors_total",
		"Failed graph builds by the stage that failed."), []string{"stage"})
	GraphNodes = promauto.NewGauge(gaugeOpts(subsystemGraph, "nodes",
		"Movies in the serving graph."))
	GraphEdges = promauto.NewGauge(gaugeOpts(subsystemGraph, "edges",
		"Undirected similarity edges in the serving graph."))
	GraphVersion = promauto.NewGauge(gaugeOpts(subsystemGraph, "version",
		"Version of the serving graph; bumps on every successful build."))
	GraphLastBuildSuccess = promauto.NewGauge(gaugeOpts(subsystemGraph, "last_build_success_timestamp_seconds",
		"Unix time of the last successful build."))
)

// Catalog loading, labelled by source (txt or duckdb).
var (
	CatalogRowsLoaded = promauto.NewCounterVec(counterOpts(subsystemCatalog, "rows_loaded_total",
		"Catalog rows turned into movie records."), []string{"source"})
	CatalogRowsSkipped = promauto.NewCounterVec(counterOpts(subsystemCatalog, "rows_skipped_total",
		"Catalog rows rejected while loading."), []string{"source"})
)

// Graph queries and the result cache in front of them.
var (
	QueriesTotal = promauto.NewCounterVec(counterOpts(subsystemGraph, "queries_total",
		"Graph queries by operation and outcome."), []string{"operation", "status"})
	QueryDuration = promauto.NewHistogramVec(histogramOpts(subsystemGraph, "query_duration_seconds",
		"Graph query latency.", queryBuckets), []string{"operation"})

	CacheHits = promauto.NewCounterVec(counterOpts(subsystemCache, "hits_total",
		"Query results served from the cache."), []string{"operation"})
	CacheMisses = promauto.NewCounterVec(counterOpts(subsystemCache, "misses_total",
		"Query results computed because the cache had none."), []string{"operation"})
	CacheSize = promauto.NewGauge(gaugeOpts(subsystemCache, "entries",
		"Query results currently cached."))
)

// HTTP API, labelled by chi route pattern rather than raw path.
var (
	APIRequestsTotal = promauto.NewCounterVec(counterOpts(subsystemAPI, "requests_total",
		"API requests by method, route and status."), []string{"method", "endpoint", "status_code"})
	APIRequestDuration = promauto.NewHistogramVec(histogramOpts(subsystemAPI, "request_duration_seconds",
		"API request latency.", requestBuckets), []string{"method", "endpoint"})
	APIActiveRequests = promauto.NewGauge(gaugeOpts(subsystemAPI, "active_requests",
		"API requests in flight."))
	APIRateLimitHits = promauto.NewCounterVec(counterOpts(subsystemAPI, "rate_limit_hits_total",
		"Requests rejected with 429."), []string{"endpoint"})
)

// AppInfo is always 1; the labels carry the build.
var AppInfo = promauto.NewGaugeVec(gaugeOpts("", "app_info",
	"Build information."), []string{"version", "go_version"})

// RecordGraphBuild records the outcome of a graph build.
// stage names the step that failed and is ignored when err is nil.
func RecordGraphBuild(duration time.Duration, nodes, edges, version int, stage string, err error) {
	GraphBuildDuration.Observe(duration.Seconds())
	if err != nil {
		if stage == "" {
			stage = "build"
		}
		GraphBuildErrors.WithLabelValues(stage).Inc()
		return
	}

	GraphBuildsTotal.Inc()
	GraphNodes.Set(float64(nodes))
	GraphEdges.Set(float64(edges))
	GraphVersion.Set(float64(version))
	GraphLastBuildSuccess.SetToCurrentTime()
}

// RecordCatalogLoad records how many rows a catalog source produced and rejected.
func RecordCatalogLoad(source string, loaded, skipped int) {
	CatalogRowsLoaded.WithLabelValues(source).Add(float64(loaded))
	CatalogRowsSkipped.WithLabelValues(source).Add(float64(skipped))
}

// RecordQuery counts a query and observes its latency.
func RecordQuery(operation string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	QueriesTotal.WithLabelValues(operation, status).Inc()
	QueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCacheLookup counts a cache hit or miss.
func RecordCacheLookup(operation string, hit bool) {
	counter := CacheMisses
	if hit {
		counter = CacheHits
	}
	counter.WithLabelValues(operation).Inc()
}

// RecordAPIRequest counts a finished request and observes its latency.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight gauge; inc is false when a request ends.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}
