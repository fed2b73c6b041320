// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
Command server serves movie similarity queries over HTTP.

It loads configuration (Koanf v2: defaults, then config.yaml, then environment),
reads the movie catalog, builds the similarity graph and serves it from the
/api/v1 routes. Prometheus metrics are exposed on /metrics.

# Startup

 1. Configuration and logging
 2. Catalog source and graph engine
 3. Supervisor tree:
    data-layer runs the graph service (first build, scheduled rebuilds, cache cleanup);
    api-layer runs the HTTP server

Queries return 503 until the first build succeeds. A failed rebuild leaves the
previous graph in service.

# Configuration

	CATALOG_PATH=peliculas.txt       # catalog file
	CATALOG_FORMAT=txt               # txt or duckdb
	CATALOG_DELIMITER=;              # field separator
	GRAPH_BUILD_WORKERS=0            # 0 = runtime.NumCPU()
	GRAPH_REBUILD_INTERVAL=0         # 0 = build once at startup
	HTTP_PORT=3858
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the tree. The HTTP server drains in-flight requests for
up to 10s and a running build is abandoned.
*/
package main
