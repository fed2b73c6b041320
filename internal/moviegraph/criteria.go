// Cinegraph - Movie Similarity Graph and Recommendation Queries
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package moviegraph

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/tomtom215/cinegraph/internal/models"
)

// Field names a movie attribute that can be filtered on.
type Field string

// Filterable fields.
const (
	FieldTitle    Field = "title"
	FieldDirector Field = "director"
	FieldGenres   Field = "genres"
	FieldRating   Field = "rating"
	FieldVotes    Field = "votes"
	FieldDuration Field = "duration"
	FieldYear     Field = "year"
)

// MaxGenreOptions is the number of genres a caller may offer in a single one-of filter.
// Graph does not enforce it; the API and CLI truncate longer lists.
const MaxGenreOptions = 3

// fieldAliases maps accepted field names, accent-folded and lower-cased, to fields.
// The Spanish names match the catalog's column headers.
var fieldAliases = map[string]Field{
	"title":    FieldTitle,
	"titulo":   FieldTitle,
	"director": FieldDirector,
	"genres":   FieldGenres,
	"genre":    FieldGenres,
	"genero":   FieldGenres,
	"generos":  FieldGenres,
	"rating":   FieldRating,
	"votes":    FieldVotes,
	"votos":    FieldVotes,
	"duration": FieldDuration,
	"duracion": FieldDuration,
	"year":     FieldYear,
	"ano":      FieldYear,
	"anio":     FieldYear,
}

var accentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ñ", "n",
)

// FoldName lower-cases name and strips Spanish accents.
func FoldName(name string) string {
	return strings.ToLower(accentFolder.Replace(strings.TrimSpace(name)))
}

// ParseField resolves a field name. English names and the catalog's Spanish column
// names are accepted, case- and accent-insensitively.
func ParseField(name string) (Field, error) {
	if f, ok := fieldAliases[FoldName(name)]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func (f Field) valid() bool {
	switch f {
	case FieldTitle, FieldDirector, FieldGenres, FieldRating, FieldVotes, FieldDuration, FieldYear:
		return true
	}
	return false
}

func (f Field) textual() bool {
	return f == FieldTitle || f == FieldDirector || f == FieldGenres
}

// Kind is the matching rule of a Criterion.
type Kind int

// Criterion kinds.
const (
	// KindStringEquals matches a text field case-insensitively. On genres it matches
	// movies that list the genre.
	KindStringEquals Kind = iota + 1

	// KindOneOf matches when a text field equals any of the values, case-insensitively.
	// On genres it matches movies that list at least one of them.
	KindOneOf

	// KindNumberEquals matches a numeric field exactly.
	KindNumberEquals
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindStringEquals:
		return "equals"
	case KindOneOf:
		return "one_of"
	case KindNumberEquals:
		return "number_equals"
	default:
		return "unknown"
	}
}

// Criterion is a single validated filter. Build one with StringEquals, OneOf or
// NumberEquals; the zero value matches nothing.
type Criterion struct {
	kind   Kind
	field  Field
	values []string
	number float64
}

// StringEquals creates a case-insensitive equality criterion on a text field.
func StringEquals(field Field, value string) (Criterion, error) {
	if err := checkField(field, KindStringEquals); err != nil {
		return Criterion{}, err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return Criterion{}, fmt.Errorf("%w: %s", ErrEmptyValue, field)
	}
	return Criterion{kind: KindStringEquals, field: field, values: []string{value}}, nil
}

// OneOf creates a case-insensitive membership criterion on a text field.
// Blank values are dropped; at least one value must remain.
func OneOf(field Field, values ...string) (Criterion, error) {
	if err := checkField(field, KindOneOf); err != nil {
		return Criterion{}, err
	}
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return Criterion{}, fmt.Errorf("%w: %s", ErrEmptyValue, field)
	}
	return Criterion{kind: KindOneOf, field: field, values: kept}, nil
}

// NumberEquals creates an exact equality criterion on a numeric field.
func NumberEquals(field Field, value float64) (Criterion, error) {
	if err := checkField(field, KindNumberEquals); err != nil {
		return Criterion{}, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Criterion{}, fmt.Errorf("%w: %s is not a finite number", ErrEmptyValue, field)
	}
	if value < 0 {
		return Criterion{}, fmt.Errorf("%w: %s", ErrNegativeValue, field)
	}
	return Criterion{kind: KindNumberEquals, field: field, number: value}, nil
}

func checkField(field Field, kind Kind) error {
	if !field.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if field.textual() != (kind != KindNumberEquals) {
		return fmt.Errorf("%w: %s on %s", ErrFieldKind, kind, field)
	}
	return nil
}

// Kind returns the matching rule.
func (c Criterion) Kind() Kind {
	return c.kind
}

// Field returns the filtered field.
func (c Criterion) Field() Field {
	return c.field
}

// Values returns a copy of the text values; nil for KindNumberEquals.
func (c Criterion) Values() []string {
	return slices.Clone(c.values)
}

// Number returns the value of a KindNumberEquals criterion, 0 otherwise.
func (c Criterion) Number() float64 {
	return c.number
}

// String renders the criterion case-folded for logs and CLI output.
func (c Criterion) String() string {
	switch c.kind {
	case KindStringEquals:
		return string(c.field) + "=" + strings.ToLower(c.values[0])
	case KindOneOf:
		return string(c.field) + " in [" + strings.ToLower(strings.Join(c.values, ",")) + "]"
	case KindNumberEquals:
		return string(c.field) + "==" + strconv.FormatFloat(c.number, 'g', -1, 64)
	default:
		return "invalid"
	}
}

// Match reports whether m satisfies the criterion. An unknown director or a year of 0
// counts as a missing attribute and never matches.
func (c Criterion) Match(m *models.Movie) bool {
	switch c.kind {
	case KindStringEquals, KindOneOf:
		if c.field == FieldGenres {
			for _, g := range m.Genres {
				if c.matchText(g) {
					return true
				}
			}
			return false
		}
		s := textValue(m, c.field)
		return s != "" && c.matchText(s)
	case KindNumberEquals:
		v, ok := numericValue(m, c.field)
		return ok && v == c.number
	default:
		return false
	}
}

func (c Criterion) matchText(s string) bool {
	for _, v := range c.values {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func textValue(m *models.Movie, f Field) string {
	switch f {
	case FieldTitle:
		return m.Title
	case FieldDirector:
		return m.Director
	default:
		return ""
	}
}

func numericValue(m *models.Movie, f Field) (float64, bool) {
	switch f {
	case FieldRating:
		return m.Rating, true
	case FieldVotes:
		return float64(m.Votes), true
	case FieldDuration:
		return float64(m.Duration), true
	case FieldYear:
		return float64(m.Year), m.Year != 0
	default:
		return 0, false
	}
}
