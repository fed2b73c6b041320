// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/moviegraph"
	"github.com/tomtom215/cinegraph/internal/recommend"
)

func newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Browse the graph through an interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(cmd)
			if err != nil {
				return err
			}
			m := &menu{
				graph: g,
				in:    bufio.NewScanner(cmd.InOrStdin()),
				out:   cmd.OutOrStdout(),
			}
			return m.run()
		},
	}
}

// menu reads choices line by line until the user quits or input ends.
type menu struct {
	graph *moviegraph.Graph
	in    *bufio.Scanner
	out   io.Writer
}

func (m *menu) run() error {
	for {
		fmt.Fprintln(m.out, "\n===== Movie Search Menu =====")
		fmt.Fprintln(m.out, "1. Search movies by criteria")
		fmt.Fprintln(m.out, "2. Find movies similar to a movie")
		fmt.Fprintln(m.out, "3. Find movies related to several movies")
		fmt.Fprintln(m.out, "4. Show the adjacency matrix")
		fmt.Fprintln(m.out, "5. Quit")

		choice, ok := m.prompt("Choose an option: ")
		if !ok {
			return m.in.Err()
		}

		switch choice {
		case "1":
			m.search()
		case "2":
			m.similar()
		case "3":
			m.similarMany()
		case "4":
			for _, row := range m.graph.AdjacencyMatrix() {
				fmt.Fprintln(m.out, row)
			}
		case "5":
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid option, try again.")
		}
	}
}

// prompt prints label and returns the next trimmed input line.
func (m *menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *menu) search() {
	fmt.Fprintln(m.out, "Leave any answer blank to skip that filter.")
	director, _ := m.prompt("Director: ")
	genres, _ := m.prompt("Genres (up to three, comma separated): ")
	year, _ := m.prompt("Year: ")

	req := &models.SearchRequest{
		Director: director,
		Genres:   recommend.TruncateGenres(strings.Split(genres, ","), 0),
	}
	if len(req.Genres) > moviegraph.MaxGenreOptions {
		fmt.Fprintf(m.out, "More than %d genres given, using the first %d.\n",
			moviegraph.MaxGenreOptions, moviegraph.MaxGenreOptions)
	}
	if year != "" {
		y, err := strconv.Atoi(year)
		if err != nil || y <= 0 {
			fmt.Fprintln(m.out, "Invalid year, ignoring the year filter.")
		} else {
			req.Year = &y
		}
	}

	criteria, err := recommend.CriteriaFromRequest(req, moviegraph.MaxGenreOptions)
	if err != nil {
		fmt.Fprintf(m.out, "Invalid search: %v\n", err)
		return
	}
	m.list("\nTop movies by rating:", "No movies match the given filters.", m.graph.FilterSearch(criteria...))
}

func (m *menu) similar() {
	title, _ := m.prompt("Movie title: ")
	if _, ok := m.graph.Index(title); !ok {
		fmt.Fprintf(m.out, "Movie %q is not in the graph.\n", title)
		return
	}
	m.list("Recommendations:", "No similar movies found.", m.graph.SimilarTo(title, 1))
}

func (m *menu) similarMany() {
	line, _ := m.prompt("Movie titles (comma separated): ")

	var titles []string
	for _, t := range strings.Split(line, ",") {
		if t = strings.TrimSpace(t); t == "" {
			continue
		}
		if _, ok := m.graph.Index(t); !ok {
			fmt.Fprintf(m.out, "Movie %q is not in the graph, skipping.\n", t)
		}
		titles = append(titles, t)
	}
	m.list("Recommendations:", "No recommendations for the given movies.", m.graph.SimilarToMany(titles, 1))
}

func (m *menu) list(heading, empty string, titles []string) {
	if len(titles) == 0 {
		fmt.Fprintln(m.out, empty)
		return
	}
	fmt.Fprintln(m.out, heading)
	for _, t := range titles {
		fmt.Fprintf(m.out, "- %s\n", t)
	}
}
