// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

// Package recommend serves movie similarity queries from a graph built out of a catalog.
//
// # Architecture
//
// The Engine owns the serving graph and its lifecycle:
//
//   - Load: a catalog.Source returns validated movie records
//   - Ingest: records are added to a fresh moviegraph.Graph; repeated titles are dropped
//   - Build: every pair is scored and linked in parallel
//   - Swap: the new graph replaces the served one and the graph version is bumped
//
// A failed or canceled build leaves the previous graph in service.
//
// # Caching
//
// Ranked query results (search, similar_to, similar_to_many) are cached in an LRU keyed
// by graph version, operation and parameters. A new graph version never sees results of
// an older one; with Cache.InvalidateOnBuild the cache is also emptied after each build.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	src, err := catalog.NewSource(catalog.Config{Path: "peliculas.txt", Format: catalog.FormatTXT})
//	if err != nil {
//	    return err
//	}
//	engine.SetSource(src)
//
//	if err := engine.Build(ctx); err != nil {
//	    return err
//	}
//
//	resp, err := engine.SimilarTo("Heat", 5)
//
// # Thread Safety
//
// The engine is safe for concurrent use. Builds are exclusive; queries run lock-free
// against an immutable snapshot of the last built graph.
package recommend
