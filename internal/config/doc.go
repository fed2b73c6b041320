// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
Package config loads and validates application configuration.

Configuration is layered with Koanf v2: built-in defaults, then an optional YAML file
(CONFIG_PATH, ./config.yaml or /etc/cinegraph/config.yaml), then environment variables.
Later layers override earlier ones. The merged result is validated before use.

# Environment Variables

Catalog:
  - CATALOG_PATH: Catalog file (default: peliculas.txt)
  - CATALOG_FORMAT: txt or duckdb (default: txt)
  - CATALOG_DELIMITER: Field separator (default: ;)

Graph:
  - GRAPH_BUILD_WORKERS, GRAPH_BUILD_TIMEOUT, GRAPH_REBUILD_INTERVAL
  - GRAPH_RESULT_LIMIT, GRAPH_MAX_SEEDS, GRAPH_MAX_MATRIX_SIZE
  - GRAPH_CACHE_ENABLED, GRAPH_CACHE_TTL, GRAPH_CACHE_MAX_ENTRIES

Server:
  - HTTP_PORT (default: 3858), HTTP_HOST (default: 0.0.0.0), HTTP_TIMEOUT (default: 30s)
  - ENVIRONMENT: development, staging or production

Security:
  - RATE_LIMIT_REQUESTS (default: 100), RATE_LIMIT_WINDOW (default: 1m)
  - DISABLE_RATE_LIMIT (default: false)
  - RATE_LIMIT_PER_ROUTE: separate budget per request path (default: false)
  - CORS_ORIGINS: Comma-separated allowed origins

Logging:
  - LOG_LEVEL (default: info), LOG_FORMAT (default: json), LOG_CALLER (default: false)

# Example config.yaml

	catalog:
	  path: /data/peliculas.txt
	  format: txt
	  delimiter: ";"
	graph:
	  rebuild_interval: 1h
	  result_limit: 5
	server:
	  port: 3858
	logging:
	  level: debug
*/
package config
