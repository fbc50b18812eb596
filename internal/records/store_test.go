// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-view/pkg/types"
)

// --- test helpers ---

func rec(doi string, score int) types.Record {
	return types.Record{DOI: types.Str(doi), Score: types.Int(score)}
}

func dois(recs []types.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = types.StrOr(r.DOI)
	}
	return out
}

func sampleRecords() []types.Record {
	return []types.Record{
		{
			DOI: types.Str("10.1/a"), Title: types.Str("Cancer immunotherapy outcomes"),
			Journal: types.Str("Lancet"), FirstAuthor: types.Str("Smith"),
			YearPublished: types.Int(2019), Summary: types.Str("A cohort study."),
			Citations: types.Int(120), Score: types.Int(9),
		},
		{
			DOI: types.Str("10.1/b"), Title: types.Str("Deep learning for radiology"),
			Journal: types.Str("Nature Medicine"), FirstAuthor: types.Str("Doe"),
			YearPublished: types.Int(2021), Summary: types.Str("Convolutional networks."),
			Citations: types.Int(45), Score: types.Int(7),
		},
		{
			DOI: types.Str("10.1/c"), Title: types.Str("Statins and cancer risk"),
			Journal: types.Str("BMJ"), FirstAuthor: types.Str("Nguyen"),
			YearPublished: types.Int(2015), Summary: types.Str("Meta-analysis."),
			Citations: types.Int(300), Score: types.Int(7),
		},
		{
			DOI: types.Str("10.1/d"), Journal: types.Str("Unknown"),
			YearPublished: types.Int(2020), Score: types.Int(3),
		},
	}
}

// --- Store ---

func TestLoadOrdersByDescendingScore(t *testing.T) {
	s := NewStore()
	s.Load([]types.Record{rec("10.1/a", 5), rec("10.1/b", 9)})

	assert.Equal(t, []string{"10.1/b", "10.1/a"}, dois(s.Records()))
}

func TestLoadKeepsPreRankedInputOrder(t *testing.T) {
	s := NewStore()
	in := []types.Record{rec("x", 9), rec("y", 7), rec("z", 7), rec("w", 1)}
	s.Load(in)

	assert.Equal(t, []string{"x", "y", "z", "w"}, dois(s.Records()))
}

func TestLoadReplacesPreviousRecords(t *testing.T) {
	s := NewStore()
	s.Load([]types.Record{rec("old", 1)})
	s.Load([]types.Record{rec("new1", 2), rec("new2", 1)})

	assert.Equal(t, []string{"new1", "new2"}, dois(s.Records()))
	assert.Equal(t, 2, s.Len())
}

func TestLoadCopiesInput(t *testing.T) {
	s := NewStore()
	in := []types.Record{rec("a", 2), rec("b", 1)}
	s.Load(in)
	in[0] = rec("mutated", 100)

	assert.Equal(t, []string{"a", "b"}, dois(s.Records()))
}

func TestReorderAbsentValuesSortLowest(t *testing.T) {
	s := NewStore()
	s.Load([]types.Record{
		{DOI: types.Str("has-year"), YearPublished: types.Int(1990), Score: types.Int(3)},
		{DOI: types.Str("no-year"), Score: types.Int(2)},
		{DOI: types.Str("zero-year"), YearPublished: types.Int(0), Score: types.Int(1)},
	})

	s.Reorder(ColYear, Ascending)
	// Absent compares as 0 and ties keep the previous order.
	assert.Equal(t, []string{"no-year", "zero-year", "has-year"}, dois(s.Records()))

	s.Reorder(ColYear, Descending)
	assert.Equal(t, []string{"has-year", "no-year", "zero-year"}, dois(s.Records()))
}

func TestReorderTextColumn(t *testing.T) {
	s := NewStore()
	s.Load(sampleRecords())

	s.Reorder(ColTitle, Ascending)
	// 10.1/d has no title and sorts first.
	assert.Equal(t, []string{"10.1/d", "10.1/a", "10.1/b", "10.1/c"}, dois(s.Records()))
}

func TestReorderIsIdempotent(t *testing.T) {
	for _, d := range Columns() {
		for _, dir := range []Direction{Ascending, Descending} {
			s := NewStore()
			s.Load(sampleRecords())

			s.Reorder(d.Column, dir)
			once := dois(s.Records())
			s.Reorder(d.Column, dir)
			assert.Equal(t, once, dois(s.Records()), "column %s %s", d.Key, dir)
		}
	}
}

func TestReorderIsStable(t *testing.T) {
	s := NewStore()
	// Default order by score: a(9) b(7) c(7) d(3). b and c tie on score,
	// so both directions must keep b before c.
	s.Load(sampleRecords())

	s.Reorder(ColScore, Ascending)
	assert.Equal(t, []string{"10.1/d", "10.1/b", "10.1/c", "10.1/a"}, dois(s.Records()))

	s.Reorder(ColScore, Descending)
	assert.Equal(t, []string{"10.1/a", "10.1/b", "10.1/c", "10.1/d"}, dois(s.Records()))
}

func TestRestoreDefault(t *testing.T) {
	s := NewStore()
	s.Load(sampleRecords())
	want := dois(s.Records())

	s.Reorder(ColCitations, Ascending)
	require.NotEqual(t, want, dois(s.Records()))

	s.RestoreDefault()
	assert.Equal(t, want, dois(s.Records()))
}

func TestLookup(t *testing.T) {
	s := NewStore()
	s.Load(sampleRecords())

	r, ok := s.Lookup("10.1/c")
	require.True(t, ok)
	assert.Equal(t, "Statins and cancer risk", types.StrOr(r.Title))

	_, ok = s.Lookup("10.1/zzz")
	assert.False(t, ok)
}

func TestRecordsReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Load(sampleRecords())

	got := s.Records()
	got[0] = rec("mutated", 0)
	assert.Equal(t, "10.1/a", types.StrOr(s.Records()[0].DOI))
}
