// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

import (
	"fmt"
	"strings"

	"github.com/pdiddy/citation-view/pkg/types"
)

// Filters holds one free-text filter per column, indexed by Column.
type Filters [ColScore + 1]string

// IsEmpty reports whether no column has filter text.
func (f Filters) IsEmpty() bool {
	for _, v := range f {
		if v != "" {
			return false
		}
	}
	return true
}

// AbsentPolicy decides whether a column test can pass for a record that
// lacks the column's field.
type AbsentPolicy int

const (
	// AbsentMatchesEmpty passes an absent field when the column filter is
	// empty. A non-empty filter on an absent field still fails.
	AbsentMatchesEmpty AbsentPolicy = iota

	// AbsentAlwaysFails fails an absent field whatever the filter text, so
	// incomplete records stay hidden under the default empty filters.
	AbsentAlwaysFails
)

// ParseAbsentPolicy maps the configuration value onto a policy.
func ParseAbsentPolicy(v types.AbsentFields) (AbsentPolicy, error) {
	switch strings.ToLower(string(v)) {
	case "", string(types.AbsentShow):
		return AbsentMatchesEmpty, nil
	case string(types.AbsentHide):
		return AbsentAlwaysFails, nil
	default:
		return 0, fmt.Errorf("absent_fields %q: use %q or %q", v, types.AbsentShow, types.AbsentHide)
	}
}

func (p AbsentPolicy) String() string {
	if p == AbsentAlwaysFails {
		return string(types.AbsentHide)
	}
	return string(types.AbsentShow)
}

// MatchesGlobal reports whether any present field of r contains pattern,
// case-insensitively. Numbers match on their decimal form. An empty pattern
// matches every record.
func MatchesGlobal(r types.Record, pattern string) bool {
	if pattern == "" {
		return true
	}
	needle := strings.ToLower(pattern)
	for _, d := range columns {
		if v, ok := d.Text(r); ok && strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

// MatchesColumns reports whether r passes every column filter. A column
// passes when its field is present and contains the filter text,
// case-insensitively; policy decides the absent-field case.
func MatchesColumns(r types.Record, f Filters, policy AbsentPolicy) bool {
	for _, d := range columns {
		needle := f[d.Column]
		v, ok := d.Text(r)
		if !ok {
			if policy == AbsentMatchesEmpty && needle == "" {
				continue
			}
			return false
		}
		if !strings.Contains(strings.ToLower(v), strings.ToLower(needle)) {
			return false
		}
	}
	return true
}

// Visible returns the records passing both the global pattern and the column
// filters, in their current order. The input is not modified.
func Visible(recs []types.Record, global string, f Filters, policy AbsentPolicy) []types.Record {
	out := make([]types.Record, 0, len(recs))
	for _, r := range recs {
		if MatchesGlobal(r, global) && MatchesColumns(r, f, policy) {
			out = append(out, r)
		}
	}
	return out
}
