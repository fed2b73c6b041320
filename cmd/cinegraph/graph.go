// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/cinegraph/internal/catalog"
	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/moviegraph"
	"github.com/tomtom215/cinegraph/internal/recommend"
)

// loadGraph reads the catalog named by the global flags and builds its graph.
// Skipped rows are logged as warnings.
func loadGraph(cmd *cobra.Command) (*moviegraph.Graph, error) {
	path, _ := cmd.Flags().GetString("catalog")
	format, _ := cmd.Flags().GetString("format")
	delimiter, _ := cmd.Flags().GetString("delimiter")
	workers, _ := cmd.Flags().GetInt("workers")

	src, err := catalog.NewSource(catalog.Config{
		Path:      path,
		Format:    format,
		Delimiter: delimiter,
	})
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	result, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	for _, row := range result.Skipped {
		logging.Warn().
			Int("line", row.Line).
			Str("title", row.Title).
			Str("reason", row.Reason).
			Msg("skipped catalog row")
	}

	g, err := moviegraph.NewFromMovies(ctx, result.Movies, moviegraph.WithWorkers(workers))
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	logging.Debug().
		Str("source", src.String()).
		Int("movies", g.Count()).
		Int("edges", g.EdgeCount()).
		Int("skipped", len(result.Skipped)).
		Dur("duration", time.Since(start)).
		Msg("graph built")

	return g, nil
}

// lookup returns the movie titled title, or recommend.ErrMovieNotFound.
func lookup(g *moviegraph.Graph, title string) (models.MovieDetail, error) {
	m, ok := g.Movie(title)
	if !ok {
		return models.MovieDetail{}, fmt.Errorf("%w: %q", recommend.ErrMovieNotFound, title)
	}
	idx, _ := g.Index(title)
	return models.MovieDetail{Movie: m, Index: idx}, nil
}

// printer writes command results as text or JSON.
type printer struct {
	out  io.Writer
	json bool
}

func newPrinter(cmd *cobra.Command) *printer {
	jsonOut, _ := cmd.Flags().GetBool("json")
	return &printer{out: cmd.OutOrStdout(), json: jsonOut}
}

func (p *printer) encode(v interface{}) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// titles prints a ranked result under heading, or empty when there is none.
func (p *printer) titles(heading, empty string, titles, unknown []string) error {
	if p.json {
		return p.encode(models.TitlesResponse{Titles: titles, Count: len(titles), Unknown: unknown})
	}
	if len(titles) == 0 {
		fmt.Fprintln(p.out, empty)
		return nil
	}
	fmt.Fprintln(p.out, heading)
	for _, t := range titles {
		fmt.Fprintf(p.out, "- %s\n", t)
	}
	return nil
}

func (p *printer) neighbors(title string, neighbors []models.Neighbor) error {
	if p.json {
		return p.encode(models.NeighborsResponse{Title: title, Neighbors: neighbors, Count: len(neighbors)})
	}
	if len(neighbors) == 0 {
		fmt.Fprintf(p.out, "%s has no similar movies\n", title)
		return nil
	}
	for _, n := range neighbors {
		fmt.Fprintf(p.out, "%s (weight: %d)\n", n.Title, n.Weight)
	}
	return nil
}

func (p *printer) matrix(titles []string, rows [][]int) error {
	if p.json {
		return p.encode(models.MatrixResponse{Titles: titles, Matrix: rows})
	}
	for _, row := range rows {
		fmt.Fprintln(p.out, row)
	}
	return nil
}

func (p *printer) movie(d models.MovieDetail) error {
	if p.json {
		return p.encode(d)
	}
	fmt.Fprintf(p.out, "Title:    %s\n", d.Title)
	fmt.Fprintf(p.out, "Index:    %d\n", d.Index)
	fmt.Fprintf(p.out, "Rating:   %.1f\n", d.Rating)
	fmt.Fprintf(p.out, "Votes:    %d\n", d.Votes)
	fmt.Fprintf(p.out, "Duration: %d min\n", d.Duration)
	fmt.Fprintf(p.out, "Director: %s\n", d.Director)
	fmt.Fprintf(p.out, "Genres:   %s\n", strings.Join(d.Genres, ", "))
	fmt.Fprintf(p.out, "Year:     %d\n", d.Year)
	return nil
}

// dump prints every adjacency list, one movie per line, in index order.
func (p *printer) dump(g *moviegraph.Graph) error {
	titles := g.Titles()

	if p.json {
		lists := make([]models.NeighborsResponse, 0, len(titles))
		for _, t := range titles {
			n := g.Neighbors(t)
			lists = append(lists, models.NeighborsResponse{Title: t, Neighbors: n, Count: len(n)})
		}
		return p.encode(lists)
	}

	for _, t := range titles {
		neighbors := g.Neighbors(t)
		if len(neighbors) == 0 {
			continue
		}
		links := make([]string, len(neighbors))
		for i, n := range neighbors {
			links[i] = fmt.Sprintf("%s -> %s (weight: %d)", t, n.Title, n.Weight)
		}
		fmt.Fprintln(p.out, strings.Join(links, ", "))
	}
	return nil
}
