// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
Package models defines the data structures shared by the graph, the HTTP API and
the CLI.

  - Movie, Neighbor: catalog records and adjacency list entries
  - SearchRequest, SimilarRequest, SimilarManyRequest: query inputs with
    validator tags, checked by the validation package
  - MovieDetail, NeighborsResponse, TitlesResponse, MatrixResponse: query results
  - APIResponse, APIError, Metadata: the JSON envelope every endpoint returns

Request types use pointers for optional numeric filters so that an explicit zero
can be told apart from an absent field.
*/
package models
