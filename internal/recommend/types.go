// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package recommend

import (
	"errors"
	"time"

	"github.com/tomtom215/cinegraph/internal/cache"
)

var (
	// ErrNotBuilt is returned by queries before the first successful build.
	ErrNotBuilt = errors.New("graph not built")

	// ErrBuildInProgress is returned by Build while another build is running.
	ErrBuildInProgress = errors.New("graph build already in progress")

	// ErrNoSource is returned by Build when no catalog source is set.
	ErrNoSource = errors.New("catalog source not set")

	// ErrMovieNotFound is returned when a query names a title that is not in the graph.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrTooManySeeds is returned by SimilarToMany when the seed list exceeds Limits.MaxSeeds.
	ErrTooManySeeds = errors.New("too many seed titles")

	// ErrMatrixTooLarge is returned by AdjacencyMatrix for graphs above Limits.MaxMatrixSize.
	ErrMatrixTooLarge = errors.New("graph too large for adjacency matrix")
)

// Response is the result of a ranked query.
type Response struct {
	// Titles is the ranked list of movie titles.
	Titles []string `json:"titles"`

	// Unknown lists query titles that are not in the graph (SimilarTo, SimilarToMany).
	Unknown []string `json:"unknown,omitempty"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// Operation is the query that produced the response.
	Operation string `json:"operation"`

	// LatencyMS is the query latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// CacheHit indicates whether the result was served from cache.
	CacheHit bool `json:"cache_hit"`

	// GraphVersion is the version of the graph that answered the query.
	GraphVersion int `json:"graph_version"`

	// BuiltAt is when that graph was built.
	BuiltAt time.Time `json:"built_at"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// Matrix is the adjacency matrix of the serving graph.
type Matrix struct {
	// Titles labels row and column i.
	Titles []string `json:"titles"`

	// Weights holds the edge weight between i and j, or 0.
	Weights [][]int `json:"matrix"`

	// GraphVersion is the version of the graph the matrix was taken from.
	GraphVersion int `json:"graph_version"`
}

// BuildStatus represents the current build state.
type BuildStatus struct {
	// IsBuilding indicates whether a build is currently in progress.
	IsBuilding bool `json:"is_building"`

	// Ready indicates whether a graph is being served.
	Ready bool `json:"ready"`

	// Source identifies the catalog the graph was built from.
	Source string `json:"source,omitempty"`

	// GraphVersion is the version of the serving graph.
	GraphVersion int `json:"graph_version"`

	// LastBuiltAt is when the serving graph was built.
	LastBuiltAt time.Time `json:"last_built_at"`

	// LastBuildDurationMS is how long the last build took, successful or not.
	LastBuildDurationMS int64 `json:"last_build_duration_ms"`

	// LastError contains the last build error, if any.
	LastError string `json:"last_error,omitempty"`

	// MovieCount is the number of distinct movies in the serving graph.
	MovieCount int `json:"movie_count"`

	// EdgeCount is the number of undirected edges in the serving graph.
	EdgeCount int `json:"edge_count"`

	// SkippedRows is the number of catalog rows rejected by the last successful build.
	SkippedRows int `json:"skipped_rows"`

	// DuplicateTitles is the number of repeated titles dropped by the last successful build.
	DuplicateTitles int `json:"duplicate_titles"`
}

// Metrics contains engine metrics for observability.
type Metrics struct {
	// RequestCount is the total number of queries.
	RequestCount int64 `json:"request_count"`

	// CacheHits is the number of cache hits.
	CacheHits int64 `json:"cache_hits"`

	// CacheMisses is the number of cache misses.
	CacheMisses int64 `json:"cache_misses"`

	// ErrorCount is the total number of failed queries and builds.
	ErrorCount int64 `json:"error_count"`

	// BuildCount is the number of successful builds.
	BuildCount int64 `json:"build_count"`

	// Cache is a snapshot of the result cache, when enabled.
	Cache *cache.Stats `json:"cache,omitempty"`
}
