// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
Package moviegraph builds an undirected, weighted similarity graph over a movie catalog
and answers filter and nearest-neighbor queries against it.

A Graph goes through two phases:

 1. Ingest: AddMovie stores records keyed by title and assigns each a dense index in
    insertion order. Duplicate titles are ignored.
 2. Build: Build scores every unordered pair of records exactly once and links the pairs
    whose score is positive. A graph can be built only once; afterwards it is read-only.

# Scoring

Score sums independent all-or-nothing rules:

	shared genre     +2  (case-sensitive set intersection)
	same director    +3  (two unknown directors also match)
	same year        +2
	close year       +1  (within 10 years, not equal)
	close rating     +2  (difference below 0.5)
	close duration   +1  (difference below 10 minutes)
	close votes      +1  (difference below 50)

The maximum is MaxScore (11). Pairs scoring 0 are not linked.

# Queries

	g, err := moviegraph.NewFromMovies(ctx, movies, moviegraph.WithWorkers(4))
	if err != nil {
	    return err
	}

	genre, _ := moviegraph.OneOf(moviegraph.FieldGenres, "Crime", "Thriller")
	top := g.FilterSearch(genre)          // best rated first, at most 5
	similar := g.SimilarTo("Heat", 1)     // heaviest edges first, at most 5
	matrix := g.AdjacencyMatrix()         // n x n, symmetric, zero diagonal

# Thread Safety

Ingest and build take an exclusive lock; queries take a shared lock. Once built, a Graph
can serve concurrent queries.
*/
package moviegraph
