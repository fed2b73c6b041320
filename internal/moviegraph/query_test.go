// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package moviegraph

import (
	"context"
	"reflect"
	"testing"

	"github.com/tomtom215/cinegraph/internal/models"
)

type testEdge struct {
	a, b   string
	weight int
}

// linkedGraph returns a built graph with exactly the given edges, bypassing scoring.
func linkedGraph(t *testing.T, titles []string, edges []testEdge, opts ...Option) *Graph {
	t.Helper()
	g := New(opts...)
	for _, title := range titles {
		if _, err := g.AddMovie(models.Movie{Title: title}); err != nil {
			t.Fatalf("AddMovie(%q) error = %v", title, err)
		}
	}
	g.adj = make([][]link, len(titles))
	for _, e := range edges {
		i, j := g.index[e.a], g.index[e.b]
		g.adj[i] = append(g.adj[i], link{to: j, weight: e.weight})
		g.adj[j] = append(g.adj[j], link{to: i, weight: e.weight})
		g.edges++
	}
	g.built = true
	return g
}

func mustCriterion(t *testing.T) func(Criterion, error) Criterion {
	return func(c Criterion, err error) Criterion {
		t.Helper()
		if err != nil {
			t.Fatalf("criterion error = %v", err)
		}
		return c
	}
}

func filterFixture(t *testing.T) *Graph {
	t.Helper()
	movies := []models.Movie{
		{Title: "A", Genres: []string{"Drama"}, Year: 2000, Rating: 9.0},
		{Title: "B", Genres: []string{"Comedy"}, Year: 2000, Rating: 7.0},
	}
	g, err := NewFromMovies(context.Background(), movies)
	if err != nil {
		t.Fatalf("NewFromMovies() error = %v", err)
	}
	return g
}

func TestFilterSearch(t *testing.T) {
	g := filterFixture(t)

	tests := []struct {
		name     string
		criteria func(t *testing.T) []Criterion
		want     []string
	}{
		{
			name:     "no criteria matches all by rating",
			criteria: func(t *testing.T) []Criterion { return nil },
			want:     []string{"A", "B"},
		},
		{
			name: "genre",
			criteria: func(t *testing.T) []Criterion {
				return []Criterion{mustCriterion(t)(StringEquals(FieldGenres, "Drama"))}
			},
			want: []string{"A"},
		},
		{
			name: "genre is case-insensitive",
			criteria: func(t *testing.T) []Criterion {
				return []Criterion{mustCriterion(t)(StringEquals(FieldGenres, "drama"))}
			},
			want: []string{"A"},
		},
		{
			name: "year",
			criteria: func(t *testing.T) []Criterion {
				return []Criterion{mustCriterion(t)(NumberEquals(FieldYear, 2000))}
			},
			want: []string{"A", "B"},
		},
		{
			name: "criteria are combined",
			criteria: func(t *testing.T) []Criterion {
				return []Criterion{
					mustCriterion(t)(NumberEquals(FieldYear, 2000)),
					mustCriterion(t)(StringEquals(FieldGenres, "Comedy")),
				}
			},
			want: []string{"B"},
		},
		{
			name: "one of genres",
			criteria: func(t *testing.T) []Criterion {
				return []Criterion{mustCriterion(t)(OneOf(FieldGenres, "horror", "COMEDY"))}
			},
			want: []string{"B"},
		},
		{
			name: "exact rating",
			criteria: func(t *testing.T) []Criterion {
				return []Criterion{mustCriterion(t)(NumberEquals(FieldRating, 9))}
			},
			want: []string{"A"},
		},
		{
			name: "title",
			criteria: func(t *testing.T) []Criterion {
				return []Criterion{mustCriterion(t)(StringEquals(FieldTitle, "b"))}
			},
			want: []string{"B"},
		},
		{
			name: "unknown director never matches",
			criteria: func(t *testing.T) []Criterion {
				return []Criterion{mustCriterion(t)(StringEquals(FieldDirector, "Nobody"))}
			},
			want: []string{},
		},
		{
			name: "no match",
			criteria: func(t *testing.T) []Criterion {
				return []Criterion{mustCriterion(t)(NumberEquals(FieldYear, 1999))}
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.FilterSearch(tt.criteria(t)...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterSearch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterSearch_TruncatesAndKeepsTieOrder(t *testing.T) {
	g := New()
	ratings := []float64{6, 8, 8, 5, 9, 8, 7, 8}
	for i, r := range ratings {
		m := models.Movie{Title: string(rune('a' + i)), Rating: r}
		if _, err := g.AddMovie(m); err != nil {
			t.Fatalf("AddMovie() error = %v", err)
		}
	}

	got := g.FilterSearch()
	want := []string{"e", "b", "c", "f", "h"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterSearch() = %v, want %v", got, want)
	}

	wide := New(WithResultLimit(100))
	for i, r := range ratings {
		if _, err := wide.AddMovie(models.Movie{Title: string(rune('a' + i)), Rating: r}); err != nil {
			t.Fatalf("AddMovie() error = %v", err)
		}
	}
	if got := wide.FilterSearch(); len(got) != len(ratings) {
		t.Errorf("FilterSearch() with limit 100 returned %d titles, want %d", len(got), len(ratings))
	}
}

func TestFilterSearch_YearZeroNeverMatches(t *testing.T) {
	g := New()
	if _, err := g.AddMovie(models.Movie{Title: "Undated", Rating: 5}); err != nil {
		t.Fatalf("AddMovie() error = %v", err)
	}

	c := mustCriterion(t)(NumberEquals(FieldYear, 0))
	if got := g.FilterSearch(c); len(got) != 0 {
		t.Errorf("FilterSearch(year == 0) = %v, want empty", got)
	}

	votes := mustCriterion(t)(NumberEquals(FieldVotes, 0))
	if got := g.FilterSearch(votes); !reflect.DeepEqual(got, []string{"Undated"}) {
		t.Errorf("FilterSearch(votes == 0) = %v, want [Undated]", got)
	}
}

func TestSimilarTo_RanksByWeight(t *testing.T) {
	seed := models.Movie{Title: "S", Director: "D", Rating: 5.0, Votes: 0, Duration: 100, Genres: []string{"G0"}, Year: 1900}
	near := models.Movie{Title: "R", Director: "E", Rating: 5.2, Votes: 5000, Duration: 300, Genres: []string{"H"}, Year: 2100}
	movies := []models.Movie{seed, near}
	for k, title := range []string{"X1", "X2", "X3"} {
		movies = append(movies, models.Movie{
			Title:    title,
			Director: "D",
			Rating:   8.0,
			Votes:    1000 * (k + 1),
			Duration: 200 + 20*k,
			Genres:   []string{title},
			Year:     1950 + 20*k,
		})
	}

	g, err := NewFromMovies(context.Background(), movies)
	if err != nil {
		t.Fatalf("NewFromMovies() error = %v", err)
	}

	got := g.SimilarTo("S", 1)
	want := []string{"X1", "X2", "X3", "R"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SimilarTo(S, 1) = %v, want %v", got, want)
	}

	got = g.SimilarTo("S", 3)
	want = []string{"X1", "X2", "X3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SimilarTo(S, 3) = %v, want %v", got, want)
	}
}

func TestSimilarTo(t *testing.T) {
	titles := []string{"seed", "a", "b", "c", "d", "e", "f", "g", "h", "lonely"}
	edges := []testEdge{
		{"seed", "a", 1},
		{"seed", "b", 5},
		{"seed", "c", 3},
		{"seed", "d", 5},
		{"seed", "e", 2},
		{"seed", "f", 4},
		{"seed", "g", 3},
		{"seed", "h", 2},
	}
	g := linkedGraph(t, titles, edges)

	tests := []struct {
		name      string
		title     string
		minWeight int
		want      []string
	}{
		{name: "top five", title: "seed", minWeight: 1, want: []string{"b", "d", "f", "c", "g"}},
		{name: "zero threshold acts as one", title: "seed", minWeight: 0, want: []string{"b", "d", "f", "c", "g"}},
		{name: "negative threshold acts as one", title: "seed", minWeight: -4, want: []string{"b", "d", "f", "c", "g"}},
		{name: "threshold filters", title: "seed", minWeight: 4, want: []string{"b", "d", "f"}},
		{name: "threshold above every edge", title: "seed", minWeight: 6, want: []string{}},
		{name: "unknown title", title: "missing", minWeight: 1, want: []string{}},
		{name: "no neighbors", title: "lonely", minWeight: 1, want: []string{}},
		{name: "neighbor side", title: "b", minWeight: 1, want: []string{"seed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.SimilarTo(tt.title, tt.minWeight)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SimilarTo(%q, %d) = %v, want %v", tt.title, tt.minWeight, got, tt.want)
			}
		})
	}
}

func TestSimilarToMany(t *testing.T) {
	titles := []string{"s1", "s2", "x", "y", "z", "w"}
	edges := []testEdge{
		{"s1", "x", 2},
		{"s1", "y", 4},
		{"s1", "s2", 3},
		{"s2", "x", 6},
		{"s2", "z", 4},
		{"s2", "w", 1},
	}
	g := linkedGraph(t, titles, edges)

	tests := []struct {
		name      string
		seeds     []string
		minWeight int
		want      []string
	}{
		{
			name:      "shared neighbor keeps its best weight",
			seeds:     []string{"s1", "s2"},
			minWeight: 1,
			want:      []string{"x", "y", "z", "s2", "s1"},
		},
		{
			name:      "threshold applies per edge",
			seeds:     []string{"s1", "s2"},
			minWeight: 4,
			want:      []string{"x", "y", "z"},
		},
		{
			name:      "unknown seeds are skipped",
			seeds:     []string{"nope", "s1"},
			minWeight: 1,
			want:      []string{"y", "s2", "x"},
		},
		{
			name:      "only unknown seeds",
			seeds:     []string{"nope"},
			minWeight: 1,
			want:      []string{},
		},
		{
			name:      "no seeds",
			seeds:     nil,
			minWeight: 1,
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.SimilarToMany(tt.seeds, tt.minWeight)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SimilarToMany(%v, %d) = %v, want %v", tt.seeds, tt.minWeight, got, tt.want)
			}
		})
	}
}

func TestSimilarToMany_SingleSeedMatchesSimilarTo(t *testing.T) {
	g := buildFixture(t, 40)
	for _, title := range g.Titles() {
		for _, minWeight := range []int{1, 3, 6} {
			one := g.SimilarTo(title, minWeight)
			many := g.SimilarToMany([]string{title}, minWeight)
			if !reflect.DeepEqual(one, many) {
				t.Fatalf("SimilarTo(%q, %d) = %v, SimilarToMany = %v", title, minWeight, one, many)
			}
		}
	}
}

func TestQueries_BeforeBuild(t *testing.T) {
	g := New()
	if _, err := g.AddMovie(models.Movie{Title: "A", Director: "D"}); err != nil {
		t.Fatalf("AddMovie() error = %v", err)
	}
	if _, err := g.AddMovie(models.Movie{Title: "B", Director: "D"}); err != nil {
		t.Fatalf("AddMovie() error = %v", err)
	}

	if got := g.Neighbors("A"); len(got) != 0 {
		t.Errorf("Neighbors() before build = %v, want empty", got)
	}
	if got := g.SimilarTo("A", 1); len(got) != 0 {
		t.Errorf("SimilarTo() before build = %v, want empty", got)
	}
	matrix := g.AdjacencyMatrix()
	if matrix[0][1] != 0 {
		t.Errorf("AdjacencyMatrix() before build has weight %d", matrix[0][1])
	}
}

func TestNeighbors_Unknown(t *testing.T) {
	g := buildFixture(t, 5)
	got := g.Neighbors("missing")
	if got == nil || len(got) != 0 {
		t.Errorf("Neighbors(missing) = %#v, want empty non-nil slice", got)
	}
}

func TestAdjacencyMatrix(t *testing.T) {
	g := buildFixture(t, 30)
	matrix := g.AdjacencyMatrix()
	titles := g.Titles()

	if len(matrix) != len(titles) {
		t.Fatalf("len(matrix) = %d, want %d", len(matrix), len(titles))
	}

	for i, row := range matrix {
		if len(row) != len(titles) {
			t.Fatalf("len(matrix[%d]) = %d, want %d", i, len(row), len(titles))
		}
		if row[i] != 0 {
			t.Errorf("matrix[%d][%d] = %d, want 0", i, i, row[i])
		}
		for j := range row {
			if matrix[i][j] != matrix[j][i] {
				t.Errorf("matrix[%d][%d] = %d but matrix[%d][%d] = %d", i, j, matrix[i][j], j, i, matrix[j][i])
			}
		}
	}

	for i, title := range titles {
		nonZero := 0
		for _, w := range matrix[i] {
			if w != 0 {
				nonZero++
			}
		}
		neighbors := g.Neighbors(title)
		if nonZero != len(neighbors) {
			t.Errorf("row %q has %d entries, want %d", title, nonZero, len(neighbors))
		}
		for _, n := range neighbors {
			j, _ := g.Index(n.Title)
			if matrix[i][j] != n.Weight {
				t.Errorf("matrix[%d][%d] = %d, want %d", i, j, matrix[i][j], n.Weight)
			}
		}
	}
}

func TestAdjacencyMatrix_RowsAreIndependent(t *testing.T) {
	g := linkedGraph(t, []string{"a", "b", "c"}, []testEdge{{"a", "b", 4}})
	matrix := g.AdjacencyMatrix()

	matrix[0] = append(matrix[0], 99)
	if matrix[1][0] != 4 {
		t.Errorf("appending to row 0 changed row 1: %v", matrix[1])
	}
}

func TestAdjacencyMatrix_Empty(t *testing.T) {
	g := New()
	if got := g.AdjacencyMatrix(); len(got) != 0 {
		t.Errorf("AdjacencyMatrix() = %v, want empty", got)
	}
}
