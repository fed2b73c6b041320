// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package models

import "slices"

// Movie is a single catalog record. Title is the identity; every other field is an
// attribute used for similarity scoring and filtering.
//
// Zero values carry meaning: Year 0 means the release year is unknown and an empty
// Director means the director is unknown.
type Movie struct {
	Title    string   `json:"title" validate:"required,notblank"`
	Rating   float64  `json:"rating" validate:"gte=0,lte=10"`
	Votes    int      `json:"votes" validate:"gte=0"`
	Duration int      `json:"duration" validate:"gte=0"`
	Director string   `json:"director"`
	Genres   []string `json:"genres"`
	Year     int      `json:"year" validate:"gte=0"`
}

// Clone returns a copy that shares no memory with m.
func (m *Movie) Clone() Movie {
	c := *m
	c.Genres = slices.Clone(m.Genres)
	if c.Genres == nil {
		c.Genres = []string{}
	}
	return c
}

// Neighbor is one entry of a movie's adjacency list.
type Neighbor struct {
	Title  string `json:"title"`
	Weight int    `json:"weight"`
}
