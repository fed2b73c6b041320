// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package moviegraph

import (
	"sort"

	"github.com/tomtom215/cinegraph/internal/models"
)

// ResultLimit returns how many titles ranked queries return.
func (g *Graph) ResultLimit() int {
	return g.opts.resultLimit
}

// Neighbors returns the adjacency list of title in build order.
// An unknown title, or a graph that has not been built, yields an empty list.
func (g *Graph) Neighbors(title string) []models.Neighbor {
	g.mu.RLock()
	defer g.mu.RUnlock()

	i, ok := g.index[title]
	if !ok || !g.built {
		return []models.Neighbor{}
	}

	out := make([]models.Neighbor, len(g.adj[i]))
	for k, l := range g.adj[i] {
		out[k] = models.Neighbor{Title: g.movies[l.to].Title, Weight: l.weight}
	}
	return out
}

// FilterSearch returns the titles of movies matching every criterion, best rated first.
// Movies with equal ratings keep insertion order. No criteria matches every movie.
func (g *Graph) FilterSearch(criteria ...Criterion) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	matched := make([]int, 0)
	for i := range g.movies {
		if matchesAll(&g.movies[i], criteria) {
			matched = append(matched, i)
		}
	}

	sort.SliceStable(matched, func(a, b int) bool {
		return g.movies[matched[a]].Rating > g.movies[matched[b]].Rating
	})

	return g.titlesOf(matched, g.opts.resultLimit)
}

func matchesAll(m *models.Movie, criteria []Criterion) bool {
	for _, c := range criteria {
		if !c.Match(m) {
			return false
		}
	}
	return true
}

// scored is a candidate in a similarity ranking.
type scored struct {
	index  int
	weight int
}

// SimilarTo returns the neighbors of title whose edge weight is at least minWeight,
// heaviest first. Ties keep build order. A minWeight below 1 is treated as 1 and an
// unknown title yields an empty list.
func (g *Graph) SimilarTo(title string, minWeight int) []string {
	return g.SimilarToMany([]string{title}, minWeight)
}

// SimilarToMany merges the neighbors of every seed title into one ranking, heaviest
// first. A neighbor reached from several seeds appears once, with the largest of its
// weights; ties keep the order in which neighbors were first seen. Unknown seeds are
// skipped. Seed titles are not removed from the result.
func (g *Graph) SimilarToMany(titles []string, minWeight int) []string {
	if minWeight < 1 {
		minWeight = 1
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.built {
		return []string{}
	}

	var candidates []scored
	position := make(map[int]int)

	for _, title := range titles {
		i, ok := g.index[title]
		if !ok {
			continue
		}
		for _, l := range g.adj[i] {
			if l.weight < minWeight {
				continue
			}
			if p, seen := position[l.to]; seen {
				if l.weight > candidates[p].weight {
					candidates[p].weight = l.weight
				}
				continue
			}
			position[l.to] = len(candidates)
			candidates = append(candidates, scored{index: l.to, weight: l.weight})
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].weight > candidates[b].weight
	})

	indices := make([]int, len(candidates))
	for k, c := range candidates {
		indices[k] = c.index
	}
	return g.titlesOf(indices, g.opts.resultLimit)
}

// AdjacencyMatrix returns the n x n weight matrix in index order. Entry [i][j] holds the
// weight of the edge between movies i and j, or 0 when they are not linked.
func (g *Graph) AdjacencyMatrix() [][]int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := len(g.movies)
	cells := make([]int, n*n)
	matrix := make([][]int, n)
	for i := range matrix {
		matrix[i] = cells[i*n : (i+1)*n : (i+1)*n]
	}

	for i, row := range g.adj {
		for _, l := range row {
			matrix[i][l.to] = l.weight
			matrix[l.to][i] = l.weight
		}
	}
	return matrix
}

// titlesOf maps indices to titles, keeping at most limit entries.
// Must be called with g.mu held.
func (g *Graph) titlesOf(indices []int, limit int) []string {
	if len(indices) > limit {
		indices = indices[:limit]
	}
	titles := make([]string, len(indices))
	for k, i := range indices {
		titles[k] = g.movies[i].Title
	}
	return titles
}
