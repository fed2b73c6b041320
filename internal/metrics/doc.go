// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
Package metrics holds the Prometheus collectors of the server.

Collectors register with the default registry through promauto and are
served at /metrics. Every name carries the cinegraph_ prefix:

	cinegraph_graph_*    builds, size, version and query latency
	cinegraph_catalog_*  rows loaded and skipped per source
	cinegraph_cache_*    query result cache hits, misses and size
	cinegraph_api_*      requests, latency, in-flight and 429s
	cinegraph_app_info   version and Go runtime

Callers go through the Record helpers rather than the collectors:

	start := time.Now()
	titles := graph.SimilarTo(title, minWeight)
	metrics.RecordQuery("similar_to", time.Since(start), nil)
*/
package metrics
