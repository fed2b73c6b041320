// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"slices"
	"strings"

	// DuckDB driver - read_csv parses the catalog inside an in-memory database
	_ "github.com/duckdb/duckdb-go/v2"
)

// DuckDBReader reads a delimited catalog through DuckDB's CSV scanner.
// Compressed files (.gz, .zst) are decompressed transparently. Lines the
// scanner rejects are reported as SkippedRow, like TXTReader.
type DuckDBReader struct {
	path  string
	delim rune
}

// NewDuckDBReader creates a reader for the catalog at path.
func NewDuckDBReader(path string, delim rune) *DuckDBReader {
	return &DuckDBReader{path: path, delim: delim}
}

// String implements Source.
func (r *DuckDBReader) String() string {
	return "duckdb:" + r.path
}

// Load implements Source.
func (r *DuckDBReader) Load(ctx context.Context) (*Result, error) {
	// read_csv reports a missing file as a generic IO error
	if _, err := os.Stat(r.path); err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close() //nolint:errcheck // in-memory database

	// reject_errors is a temporary table, visible only on the scanning connection.
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("open duckdb connection: %w", err)
	}
	defer conn.Close() //nolint:errcheck // in-memory database

	header, records, err := r.scan(ctx, conn)
	if err != nil {
		return nil, err
	}
	cols, err := mapHeader(header)
	if err != nil {
		return nil, err
	}
	rejects, err := r.rejects(ctx, conn)
	if err != nil {
		return nil, err
	}

	result := &Result{Skipped: slices.Clone(rejects)}
	// Line 1 holds the header. Rejected lines produce no record.
	line := 1
	next := 0
	for _, record := range records {
		line++
		for next < len(rejects) && rejects[next].Line <= line {
			if rejects[next].Line == line {
				line++
			}
			next++
		}
		if isBlank(record) {
			continue
		}
		cols.collect(result, line, record)
	}

	slices.SortStableFunc(result.Skipped, func(a, b SkippedRow) int { return a.Line - b.Line })
	return result, nil
}

// scan runs read_csv and returns the header and every record as text.
func (r *DuckDBReader) scan(ctx context.Context, conn *sql.Conn) ([]string, [][]string, error) {
	rows, err := conn.QueryContext(ctx, r.query())
	if err != nil {
		return nil, nil, fmt.Errorf("read_csv: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only result set

	header, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("read columns: %w", err)
	}

	values := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range values {
		dest[i] = &values[i]
	}

	var records [][]string
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("scan row %d: %w", len(records)+1, err)
		}
		record := make([]string, len(header))
		for i, v := range values {
			record[i] = v.String
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("read catalog: %w", err)
	}
	return header, records, nil
}

// rejects returns the lines read_csv stored in reject_errors, one entry per
// line, ordered by line.
func (r *DuckDBReader) rejects(ctx context.Context, conn *sql.Conn) ([]SkippedRow, error) {
	rows, err := conn.QueryContext(ctx,
		"SELECT line, min(error_message) FROM reject_errors GROUP BY line ORDER BY line")
	if err != nil {
		return nil, fmt.Errorf("read reject_errors: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only result set

	var skipped []SkippedRow
	for rows.Next() {
		var (
			line   int64
			reason string
		)
		if err := rows.Scan(&line, &reason); err != nil {
			return nil, fmt.Errorf("scan reject: %w", err)
		}
		skipped = append(skipped, SkippedRow{Line: int(line), Reason: reason})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read reject_errors: %w", err)
	}
	return skipped, nil
}

// query builds the read_csv call. Every column is read as text so row conversion
// applies the same rules as TXTReader. store_rejects keeps malformed lines in
// reject_errors instead of dropping them silently.
func (r *DuckDBReader) query() string {
	return fmt.Sprintf(
		"SELECT * FROM read_csv(%s, delim = %s, header = true, all_varchar = true, "+
			"null_padding = true, store_rejects = true, quote = '\"')",
		quoteLiteral(r.path), quoteLiteral(string(r.delim)),
	)
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
