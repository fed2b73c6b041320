// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
Package api provides the HTTP REST API for querying the movie similarity graph.

Key Components:

  - Router: chi route configuration and middleware stack
  - Handler: request handlers backed by a recommend.Engine
  - Response formatting: models.APIResponse envelope with metadata
  - Error handling: engine errors mapped to status codes and error codes

Endpoints:

	GET  /api/v1/health/live               liveness
	GET  /api/v1/health/ready              200 once a graph is served, 503 before
	GET  /api/v1/graph/status              build status, engine counters, endpoint latency
	POST /api/v1/graph/rebuild             reload the catalog and rebuild (?wait=true blocks)
	GET  /api/v1/graph/matrix              adjacency matrix in index order
	GET  /api/v1/movies/{title}            record and index
	GET  /api/v1/movies/{title}/neighbors  adjacency list
	GET  /api/v1/movies/{title}/similar    ranked neighbors (?min_weight=0..11)
	POST /api/v1/movies/similar            merged ranking for {"titles": [...], "min_weight": n}
	POST /api/v1/movies/search             filter search, best rated first
	GET  /metrics                          Prometheus

Middleware Stack:

Global: request id with logging context, real IP, panic recovery, CORS and debug
request logging. API routes add per-IP rate limiting (go-chi/httprate), security
headers, Prometheus instrumentation, the performance monitor and gzip.

Error Codes:

	VALIDATION_ERROR     400  bad parameter or body field
	INVALID_JSON         400  malformed or unknown body fields
	NOT_FOUND            404  unknown movie or route
	BUILD_IN_PROGRESS    409  rebuild requested while building
	MATRIX_TOO_LARGE     422  graph above graph.max_matrix_size
	RATE_LIMIT_EXCEEDED  429  per-IP limit hit
	GRAPH_NOT_READY      503  no graph built yet

Example:

	curl -s localhost:3858/api/v1/movies/Heat/similar?min_weight=4
	{
	  "status": "success",
	  "data": {"titles": ["Collateral", "Thief"], "count": 2},
	  "metadata": {"timestamp": "...", "graph_version": 1}
	}
*/
package api
