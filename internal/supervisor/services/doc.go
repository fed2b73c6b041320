// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

// Package services holds the suture.Service implementations of the server:
// GraphService keeps the similarity graph built and the query cache trimmed,
// and HTTPService serves the API until the supervisor stops it.
package services
