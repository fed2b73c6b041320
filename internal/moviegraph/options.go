// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package moviegraph

import "runtime"

// DefaultResultLimit is the number of titles returned by ranked queries.
const DefaultResultLimit = 5

// Option configures a Graph.
type Option func(*options)

type options struct {
	workers     int
	resultLimit int
}

func defaultOptions() options {
	return options{
		workers:     runtime.NumCPU(),
		resultLimit: DefaultResultLimit,
	}
}

// WithWorkers sets how many goroutines score row ranges during Build.
// Values below 1 select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.NumCPU()
		}
		o.workers = n
	}
}

// WithResultLimit sets how many titles FilterSearch, SimilarTo and SimilarToMany return.
// Values below 1 keep DefaultResultLimit.
func WithResultLimit(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.resultLimit = n
		}
	}
}
