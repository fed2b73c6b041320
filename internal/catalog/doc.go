// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
Package catalog loads movie records from delimited catalog files.

A catalog is a UTF-8 text file with one header line and one movie per row:

	Título;Rating;Votos;Duración;Director;Género;Año
	El Padrino;9.2;1800;175;Francis Ford Coppola;Crime,Drama;1972

Header names are matched case-insensitively with accents folded, and the
English names title, rating, votes, duration, director, genres and year are
accepted as well. The title and rating columns are required.

# Row Conversion

Both readers share the same rules:
  - A row without a title, or whose rating does not parse, is skipped.
  - Votes, duration and year that are empty or not integers become 0.
  - Genres are split on commas and trimmed; empty entries are dropped.
  - The converted record is validated; rows that fail are skipped.

Skipped rows are reported in Result.Skipped with their line number and
reason. Duplicate titles are passed through unchanged.

# Readers

TXTReader streams the file with encoding/csv. DuckDBReader runs DuckDB's
read_csv in an in-memory database, which also reads gzip-compressed files.
NewSource picks one from Config.Format.
*/
package catalog
