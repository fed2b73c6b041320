// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package models

// SearchRequest is the body of POST /api/v1/movies/search.
// Every populated field becomes one filter criterion; all criteria must match.
// Pointer fields distinguish "not filtered" from a zero value.
//
// Example:
//
//	{
//	  "director": "michael mann",
//	  "genres": ["Crime", "Thriller"],
//	  "year": 1995
//	}
type SearchRequest struct {
	Title    string   `json:"title,omitempty" validate:"omitempty,max=500"`
	Director string   `json:"director,omitempty" validate:"omitempty,max=200"`
	Genres   []string `json:"genres,omitempty" validate:"omitempty,dive,required,max=100"`
	Rating   *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Votes    *int     `json:"votes,omitempty" validate:"omitempty,gte=0"`
	Duration *int     `json:"duration,omitempty" validate:"omitempty,gte=0"`
	Year     *int     `json:"year,omitempty" validate:"omitempty,gt=0"`
}

// SimilarManyRequest is the body of POST /api/v1/movies/similar.
type SimilarManyRequest struct {
	Titles    []string `json:"titles" validate:"required,min=1,dive,required,notblank"`
	MinWeight int      `json:"min_weight" validate:"gte=0,lte=11"`
}

// SimilarRequest holds the parameters of GET /api/v1/movies/{title}/similar.
type SimilarRequest struct {
	Title     string `json:"title" validate:"required,notblank"`
	MinWeight int    `json:"min_weight" validate:"gte=0,lte=11"`
}

// MovieDetail is a catalog record together with its position in the index mapping.
type MovieDetail struct {
	Movie
	Index int `json:"index"`
}

// NeighborsResponse lists a movie's adjacency list in build order.
type NeighborsResponse struct {
	Title     string     `json:"title"`
	Neighbors []Neighbor `json:"neighbors"`
	Count     int        `json:"count"`
}

// TitlesResponse is the result of a ranked query.
// Unknown lists seed titles that are not in the graph.
type TitlesResponse struct {
	Titles  []string `json:"titles"`
	Count   int      `json:"count"`
	Unknown []string `json:"unknown,omitempty"`
}

// MatrixResponse carries the adjacency matrix; Titles[i] labels row and column i.
type MatrixResponse struct {
	Titles []string `json:"titles"`
	Matrix [][]int  `json:"matrix"`
}
