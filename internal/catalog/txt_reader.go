// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// TXTReader reads a delimited catalog file.
type TXTReader struct {
	path  string
	delim rune
}

// NewTXTReader creates a reader for the catalog at path.
func NewTXTReader(path string, delim rune) *TXTReader {
	return &TXTReader{path: path, delim: delim}
}

// String implements Source.
func (r *TXTReader) String() string {
	return "txt:" + r.path
}

// Load implements Source.
func (r *TXTReader) Load(ctx context.Context) (*Result, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	return r.read(ctx, f)
}

func (r *TXTReader) read(ctx context.Context, in io.Reader) (*Result, error) {
	cr := csv.NewReader(in)
	cr.Comma = r.delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read header: catalog is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				result.Skipped = append(result.Skipped, SkippedRow{Line: perr.StartLine, Reason: perr.Err.Error()})
				continue
			}
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		if isBlank(record) {
			continue
		}

		line, _ := cr.FieldPos(0)
		cols.collect(result, line, record)
	}

	return result, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
