// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

// Command cinegraph queries a movie similarity graph from the command line.
//
// Every command loads the catalog, builds the graph and answers one query:
//
//	cinegraph --catalog peliculas.txt search --director "Michael Mann" --genre Crime
//	cinegraph similar Heat --min-weight 5
//	cinegraph similar-many Heat Amelie
//	cinegraph menu
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinegraph/internal/catalog"
	"github.com/tomtom215/cinegraph/internal/logging"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cinegraph",
		Short: "Movie similarity graph and recommendation queries",
		Long: `cinegraph loads a movie catalog, links every pair of movies with a
similarity score and answers search and recommendation queries on the graph.

Movies are linked when they share a genre, a director or a release decade, or
have close ratings, durations or vote counts.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			logging.Init(logging.Config{
				Level:  level,
				Format: "console",
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.String("catalog", "peliculas.txt", "Path to the movie catalog")
	pf.String("format", catalog.FormatTXT, "Catalog reader: txt or duckdb")
	pf.String("delimiter", string(catalog.DefaultDelimiter), "Catalog field separator")
	pf.Int("workers", 0, "Goroutines scoring movie pairs (0 = number of CPUs)")
	pf.Bool("json", false, "Output as JSON")
	pf.String("log-level", "warn", "Log level for diagnostics on stderr")

	rootCmd.AddCommand(
		newSearchCmd(),
		newSimilarCmd(),
		newSimilarManyCmd(),
		newNeighborsCmd(),
		newMatrixCmd(),
		newDumpCmd(),
		newInfoCmd(),
		newMenuCmd(),
	)

	return rootCmd
}
