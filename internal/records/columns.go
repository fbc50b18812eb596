// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package records owns the loaded record set and the pure operations over it:
// the column table, filtering, the cycling sort controller and selection.
package records

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/citation-view/pkg/types"
)

// ErrUnknownColumn is returned when a column key does not name a column.
var ErrUnknownColumn = errors.New("unknown column")

// Column identifies one of the eight record columns.
type Column int

// Columns in table order.
const (
	ColDOI Column = iota
	ColTitle
	ColJournal
	ColFirstAuthor
	ColYear
	ColSummary
	ColCitations
	ColScore
)

// Descriptor describes how a column reads, compares and prints a record
// field. Filter, sort, rendering and flag parsing iterate the descriptor
// table instead of naming fields one by one.
type Descriptor struct {
	Column Column
	Key    string
	Label  string

	// Numeric columns are right-aligned and compared as integers.
	Numeric bool

	// Text returns the field in the form filters match against (decimal
	// for numbers) and false when the field is absent.
	Text func(types.Record) (string, bool)

	// Compare orders two records by this column. Absent values compare as
	// the type minimum: "" for text, 0 for numbers.
	Compare func(a, b types.Record) int
}

func textColumn(c Column, key, label string, field func(types.Record) *string) Descriptor {
	return Descriptor{
		Column: c,
		Key:    key,
		Label:  label,
		Text: func(r types.Record) (string, bool) {
			v := field(r)
			if v == nil {
				return "", false
			}
			return *v, true
		},
		Compare: func(a, b types.Record) int {
			return strings.Compare(types.StrOr(field(a)), types.StrOr(field(b)))
		},
	}
}

func intColumn(c Column, key, label string, field func(types.Record) *int) Descriptor {
	return Descriptor{
		Column:  c,
		Key:     key,
		Label:   label,
		Numeric: true,
		Text: func(r types.Record) (string, bool) {
			return types.IntText(field(r))
		},
		Compare: func(a, b types.Record) int {
			return cmp.Compare(types.IntOr(field(a)), types.IntOr(field(b)))
		},
	}
}

var columns = []Descriptor{
	textColumn(ColDOI, "doi", "DOI", func(r types.Record) *string { return r.DOI }),
	textColumn(ColTitle, "title", "Title", func(r types.Record) *string { return r.Title }),
	textColumn(ColJournal, "journal", "Journal", func(r types.Record) *string { return r.Journal }),
	textColumn(ColFirstAuthor, "first_author", "First author", func(r types.Record) *string { return r.FirstAuthor }),
	intColumn(ColYear, "year_published", "Year published", func(r types.Record) *int { return r.YearPublished }),
	textColumn(ColSummary, "summary", "Summary", func(r types.Record) *string { return r.Summary }),
	intColumn(ColCitations, "citations", "Citations", func(r types.Record) *int { return r.Citations }),
	intColumn(ColScore, "score", "Score", func(r types.Record) *int { return r.Score }),
}

var aliases = map[string]Column{
	"id":         ColDOI,
	"identifier": ColDOI,
	"author":     ColFirstAuthor,
	"year":       ColYear,
	"abstract":   ColSummary,
}

// Columns returns the descriptor table in table order. The slice is shared;
// callers must not modify it.
func Columns() []Descriptor {
	return columns
}

// Describe returns the descriptor for c. It panics on a value outside the
// column set, which is a programming error.
func (c Column) Describe() Descriptor {
	if !c.Valid() {
		panic(fmt.Sprintf("records: column %d out of range", int(c)))
	}
	return columns[c]
}

// Valid reports whether c is one of the eight columns.
func (c Column) Valid() bool {
	return c >= ColDOI && c <= ColScore
}

// String returns the column key.
func (c Column) String() string {
	if !c.Valid() {
		return fmt.Sprintf("column(%d)", int(c))
	}
	return columns[c].Key
}

// ParseColumn resolves a column key or alias, case-insensitively.
func ParseColumn(key string) (Column, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	k = strings.ReplaceAll(k, "-", "_")
	for _, d := range columns {
		if d.Key == k {
			return d.Column, nil
		}
	}
	if c, ok := aliases[k]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, key)
}
