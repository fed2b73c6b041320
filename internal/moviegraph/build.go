// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package moviegraph

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Build scores every unordered pair of movies exactly once and links each pair with a
// positive score by a symmetric edge. It must run after ingest has finished; a second
// call returns ErrGraphBuilt and leaves the existing edges untouched.
//
// Rows are scored in parallel and merged in row order, so the resulting adjacency lists
// do not depend on the worker count. If ctx is canceled before scoring finishes the graph
// stays unbuilt.
func (g *Graph) Build(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.built {
		return ErrGraphBuilt
	}

	rows, err := g.scoreRows(ctx)
	if err != nil {
		return err
	}

	adj := make([][]link, len(g.movies))
	edges := 0
	for i, row := range rows {
		for _, l := range row {
			adj[i] = append(adj[i], l)
			adj[l.to] = append(adj[l.to], link{to: i, weight: l.weight})
			edges++
		}
	}

	g.adj = adj
	g.edges = edges
	g.built = true
	return nil
}

// scoreRows returns, for every row i, the links to rows j > i with a positive score.
// Must be called with g.mu held.
func (g *Graph) scoreRows(ctx context.Context) ([][]link, error) {
	n := len(g.movies)
	rows := make([][]link, n)

	workers := min(g.opts.workers, n)
	if workers < 1 {
		return rows, nil
	}

	// Row i holds n-1-i pairs; dealing rows round-robin keeps workers balanced.
	eg, egCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			for i := w; i < n; i += workers {
				if err := egCtx.Err(); err != nil {
					return err
				}
				rows[i] = g.scoreRow(i)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("score pairs: %w", err)
	}
	return rows, nil
}

// scoreRow scores movie i against every movie after it.
func (g *Graph) scoreRow(i int) []link {
	a := &g.movies[i]
	var row []link
	for j := i + 1; j < len(g.movies); j++ {
		if w := Score(a, &g.movies[j]); w > 0 {
			row = append(row, link{to: j, weight: w})
		}
	}
	return row
}
