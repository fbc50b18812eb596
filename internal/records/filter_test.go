// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-view/pkg/types"
)

func fullRecord() types.Record {
	return sampleRecords()[0]
}

func TestMatchesGlobal(t *testing.T) {
	r := fullRecord()
	tests := []struct {
		name    string
		record  types.Record
		pattern string
		want    bool
	}{
		{"empty pattern matches full record", r, "", true},
		{"empty pattern matches empty record", types.Record{}, "", true},
		{"title substring", r, "immuno", true},
		{"case-insensitive", r, "LANCET", true},
		{"year as decimal", r, "201", true},
		{"citations as decimal", r, "120", true},
		{"score as decimal", r, "9", true},
		{"doi substring", r, "10.1/", true},
		{"no field contains it", r, "quantum", false},
		{"absent fields are skipped", types.Record{Title: types.Str("Only title")}, "only", true},
		{"all fields absent never matches non-empty", types.Record{}, "x", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchesGlobal(tc.record, tc.pattern))
		})
	}
}

func TestMatchesColumnsEmptyFiltersFullRecord(t *testing.T) {
	for _, policy := range []AbsentPolicy{AbsentMatchesEmpty, AbsentAlwaysFails} {
		assert.True(t, MatchesColumns(fullRecord(), Filters{}, policy), "policy %s", policy)
	}
}

func TestMatchesColumns(t *testing.T) {
	r := fullRecord()
	with := func(c Column, v string) Filters {
		var f Filters
		f[c] = v
		return f
	}

	tests := []struct {
		name    string
		filters Filters
		want    bool
	}{
		{"title contains", with(ColTitle, "cancer"), true},
		{"title case-insensitive", with(ColTitle, "CANCER"), true},
		{"author contains", with(ColFirstAuthor, "smi"), true},
		{"year contains", with(ColYear, "19"), true},
		{"citations contains", with(ColCitations, "12"), true},
		{"journal mismatch", with(ColJournal, "nature"), false},
		{"score mismatch", with(ColScore, "5"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchesColumns(r, tc.filters, AbsentMatchesEmpty))
		})
	}
}

func TestMatchesColumnsAND(t *testing.T) {
	r := fullRecord()
	var f Filters
	f[ColTitle] = "cancer"
	f[ColJournal] = "lancet"
	assert.True(t, MatchesColumns(r, f, AbsentMatchesEmpty))

	f[ColYear] = "2021"
	assert.False(t, MatchesColumns(r, f, AbsentMatchesEmpty))
}

func TestMatchesColumnsAbsentFieldPolicy(t *testing.T) {
	noTitle := types.Record{DOI: types.Str("10.1/x"), Score: types.Int(4)}

	var empty Filters
	var cancer Filters
	cancer[ColTitle] = "cancer"

	tests := []struct {
		name    string
		policy  AbsentPolicy
		filters Filters
		want    bool
	}{
		{"show: empty filters pass incomplete record", AbsentMatchesEmpty, empty, true},
		{"show: title filter excludes absent title", AbsentMatchesEmpty, cancer, false},
		{"hide: empty filters hide incomplete record", AbsentAlwaysFails, empty, false},
		{"hide: title filter excludes absent title", AbsentAlwaysFails, cancer, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchesColumns(noTitle, tc.filters, tc.policy))
		})
	}
}

func TestVisible(t *testing.T) {
	recs := sampleRecords()

	var f Filters
	f[ColTitle] = "cancer"
	got := Visible(recs, "", f, AbsentMatchesEmpty)
	assert.Equal(t, []string{"10.1/a", "10.1/c"}, dois(got))

	got = Visible(recs, "nature", Filters{}, AbsentMatchesEmpty)
	assert.Equal(t, []string{"10.1/b"}, dois(got))

	// Record d lacks title, author and more; the reference policy hides it.
	got = Visible(recs, "", Filters{}, AbsentAlwaysFails)
	assert.Equal(t, []string{"10.1/a", "10.1/b", "10.1/c"}, dois(got))

	got = Visible(recs, "", Filters{}, AbsentMatchesEmpty)
	assert.Len(t, got, 4)
}

func TestParseAbsentPolicy(t *testing.T) {
	p, err := ParseAbsentPolicy(types.AbsentShow)
	require.NoError(t, err)
	assert.Equal(t, AbsentMatchesEmpty, p)

	p, err = ParseAbsentPolicy("HIDE")
	require.NoError(t, err)
	assert.Equal(t, AbsentAlwaysFails, p)

	p, err = ParseAbsentPolicy("")
	require.NoError(t, err)
	assert.Equal(t, AbsentMatchesEmpty, p)

	_, err = ParseAbsentPolicy("maybe")
	assert.Error(t, err)
}

func TestParseColumn(t *testing.T) {
	tests := map[string]Column{
		"doi":            ColDOI,
		"identifier":     ColDOI,
		"Title":          ColTitle,
		"first-author":   ColFirstAuthor,
		"author":         ColFirstAuthor,
		"year":           ColYear,
		"year_published": ColYear,
		"abstract":       ColSummary,
		"citations":      ColCitations,
		" score ":        ColScore,
	}
	for key, want := range tests {
		got, err := ParseColumn(key)
		require.NoError(t, err, key)
		assert.Equal(t, want, got, key)
	}

	_, err := ParseColumn("publisher")
	assert.True(t, errors.Is(err, ErrUnknownColumn))
}

func TestColumnTableOrder(t *testing.T) {
	for i, d := range Columns() {
		assert.Equal(t, Column(i), d.Column)
		assert.Equal(t, d.Key, d.Column.String())
	}
	assert.Len(t, Columns(), 8)
}
