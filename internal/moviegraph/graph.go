// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package moviegraph

import (
	"context"
	"fmt"
	"sync"

	"github.com/tomtom215/cinegraph/internal/models"
)

// link is one adjacency entry, addressed by record index.
type link struct {
	to     int
	weight int
}

// Graph holds the movie records and, once built, their similarity edges.
// It is safe for concurrent use.
type Graph struct {
	mu sync.RWMutex

	// movies is indexed by the dense index; index maps title to position.
	movies []models.Movie
	index  map[string]int

	// adj[i] lists the neighbors of movies[i] in discovery order.
	adj   [][]link
	edges int
	built bool

	opts options
}

// New creates an empty graph ready for ingest.
func New(opts ...Option) *Graph {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Graph{
		index: make(map[string]int),
		opts:  o,
	}
}

// NewFromMovies ingests movies in order and builds the graph.
// Duplicate titles keep their first occurrence.
func NewFromMovies(ctx context.Context, movies []models.Movie, opts ...Option) (*Graph, error) {
	g := New(opts...)
	for i := range movies {
		if _, err := g.AddMovie(movies[i]); err != nil {
			return nil, fmt.Errorf("add movie %d: %w", i, err)
		}
	}
	if err := g.Build(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

// AddMovie stores m and assigns it the next index. It reports whether the movie was
// inserted; a title that is already present leaves the stored record untouched.
func (g *Graph) AddMovie(m models.Movie) (bool, error) {
	if m.Title == "" {
		return false, ErrEmptyTitle
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.built {
		return false, ErrGraphBuilt
	}
	if _, exists := g.index[m.Title]; exists {
		return false, nil
	}

	g.index[m.Title] = len(g.movies)
	g.movies = append(g.movies, m.Clone())
	return true, nil
}

// Movie returns a copy of the record stored under title.
func (g *Graph) Movie(title string) (models.Movie, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	i, ok := g.index[title]
	if !ok {
		return models.Movie{}, false
	}
	return g.movies[i].Clone(), true
}

// Index returns the dense index assigned to title.
func (g *Graph) Index(title string) (int, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	i, ok := g.index[title]
	return i, ok
}

// Count returns the number of distinct movies.
func (g *Graph) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.movies)
}

// Titles returns every title in index order.
func (g *Graph) Titles() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	titles := make([]string, len(g.movies))
	for i := range g.movies {
		titles[i] = g.movies[i].Title
	}
	return titles
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges
}

// IsBuilt reports whether Build has completed.
func (g *Graph) IsBuilt() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.built
}
