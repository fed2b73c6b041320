// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/moviegraph"
	"github.com/tomtom215/cinegraph/internal/recommend"
	"github.com/tomtom215/cinegraph/internal/validation"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find the best rated movies matching every given filter",
		Long: `Find the best rated movies matching every given filter.

Text filters ignore case. A movie matches --genre when it has any of the
given genres; at most three genres are used.

Examples:
  cinegraph search --director "Michael Mann"
  cinegraph search --genre Crime --genre Comedy --year 1995`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := searchRequestFromFlags(cmd)
			if err != nil {
				return err
			}
			if len(req.Genres) > moviegraph.MaxGenreOptions {
				fmt.Fprintf(cmd.ErrOrStderr(), "More than %d genres given, using the first %d.\n",
					moviegraph.MaxGenreOptions, moviegraph.MaxGenreOptions)
			}

			criteria, err := recommend.CriteriaFromRequest(req, moviegraph.MaxGenreOptions)
			if err != nil {
				return err
			}

			g, err := loadGraph(cmd)
			if err != nil {
				return err
			}
			return newPrinter(cmd).titles("Top movies by rating:", "No movies match the given filters.",
				g.FilterSearch(criteria...), nil)
		},
	}

	cmd.Flags().String("title", "", "Exact title, ignoring case")
	cmd.Flags().String("director", "", "Director, ignoring case")
	cmd.Flags().StringSlice("genre", nil, "Genre, repeatable or comma separated (max 3)")
	cmd.Flags().Int("year", 0, "Release year")
	cmd.Flags().Float64("rating", 0, "Exact rating")

	return cmd
}

// searchRequestFromFlags builds a validated search request from the flags the user set.
func searchRequestFromFlags(cmd *cobra.Command) (*models.SearchRequest, error) {
	flags := cmd.Flags()
	req := &models.SearchRequest{}

	req.Title, _ = flags.GetString("title")
	req.Director, _ = flags.GetString("director")
	req.Genres, _ = flags.GetStringSlice("genre")
	req.Genres = recommend.TruncateGenres(req.Genres, 0)

	if flags.Changed("year") {
		year, _ := flags.GetInt("year")
		req.Year = &year
	}
	if flags.Changed("rating") {
		rating, _ := flags.GetFloat64("rating")
		req.Rating = &rating
	}

	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr
	}
	return req, nil
}

func newSimilarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar TITLE",
		Short: "Recommend the movies most similar to a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minWeight, _ := cmd.Flags().GetInt("min-weight")
			req := models.SimilarRequest{Title: args[0], MinWeight: minWeight}
			if verr := validation.ValidateStruct(&req); verr != nil {
				return verr
			}

			g, err := loadGraph(cmd)
			if err != nil {
				return err
			}
			if _, err := lookup(g, req.Title); err != nil {
				return err
			}

			return newPrinter(cmd).titles(fmt.Sprintf("Movies similar to %s:", req.Title),
				"No similar movies found.", g.SimilarTo(req.Title, req.MinWeight), nil)
		},
	}

	cmd.Flags().Int("min-weight", 1, "Minimum similarity score (1-11)")
	return cmd
}

func newSimilarManyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar-many TITLE...",
		Short: "Recommend movies similar to any of several movies",
		Long: `Recommend movies similar to any of several movies.

Each candidate is ranked by its strongest link to one of the given movies.
Titles not in the catalog are reported on stderr and skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minWeight, _ := cmd.Flags().GetInt("min-weight")
			req := models.SimilarManyRequest{MinWeight: minWeight}
			for _, a := range args {
				req.Titles = append(req.Titles, strings.TrimSpace(a))
			}
			if verr := validation.ValidateStruct(&req); verr != nil {
				return verr
			}

			g, err := loadGraph(cmd)
			if err != nil {
				return err
			}

			var unknown []string
			for _, t := range req.Titles {
				if _, ok := g.Index(t); !ok {
					unknown = append(unknown, t)
					fmt.Fprintf(cmd.ErrOrStderr(), "Movie %q not found, skipping.\n", t)
				}
			}

			return newPrinter(cmd).titles("Recommendations:", "No recommendations for the given movies.",
				g.SimilarToMany(req.Titles, req.MinWeight), unknown)
		},
	}

	cmd.Flags().Int("min-weight", 1, "Minimum similarity score (1-11)")
	return cmd
}

func newNeighborsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "neighbors TITLE",
		Short: "List every movie linked to a movie, with its score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(cmd)
			if err != nil {
				return err
			}
			if _, err := lookup(g, args[0]); err != nil {
				return err
			}
			return newPrinter(cmd).neighbors(args[0], g.Neighbors(args[0]))
		},
	}
}

func newMatrixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matrix",
		Short: "Print the adjacency matrix, one row per movie in catalog order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(cmd)
			if err != nil {
				return err
			}
			return newPrinter(cmd).matrix(g.Titles(), g.AdjacencyMatrix())
		},
	}
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print every link of the graph as \"A -> B (weight: w)\"",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(cmd)
			if err != nil {
				return err
			}
			return newPrinter(cmd).dump(g)
		},
	}
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info TITLE",
		Short: "Show a movie's record and its index in the graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(cmd)
			if err != nil {
				return err
			}
			detail, err := lookup(g, args[0])
			if err != nil {
				return err
			}
			return newPrinter(cmd).movie(detail)
		},
	}
}
