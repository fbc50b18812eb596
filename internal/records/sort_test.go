// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortStateCycle(t *testing.T) {
	s := SortNone
	var seen []SortState
	for range 3 {
		s = s.Next()
		seen = append(seen, s)
	}
	assert.Equal(t, []SortState{SortAscending, SortDescending, SortNone}, seen)
}

func TestClickThreeTimesRestoresDefaultOrder(t *testing.T) {
	for _, d := range Columns() {
		store := NewStore()
		store.Load(sampleRecords())
		want := dois(store.Records())
		sc := NewSortController(store)

		sc.Click(d.Column)
		sc.Click(d.Column)
		state := sc.Click(d.Column)

		assert.Equal(t, SortNone, state, d.Key)
		assert.Equal(t, want, dois(store.Records()), d.Key)
	}
}

func TestClickReordersStore(t *testing.T) {
	store := NewStore()
	store.Load(sampleRecords())
	sc := NewSortController(store)

	assert.Equal(t, SortAscending, sc.Click(ColCitations))
	assert.Equal(t, []string{"10.1/d", "10.1/b", "10.1/a", "10.1/c"}, dois(store.Records()))

	assert.Equal(t, SortDescending, sc.Click(ColCitations))
	assert.Equal(t, []string{"10.1/c", "10.1/a", "10.1/b", "10.1/d"}, dois(store.Records()))
}

func TestClickOtherColumnResetsIndicators(t *testing.T) {
	store := NewStore()
	store.Load(sampleRecords())
	sc := NewSortController(store)

	sc.Click(ColYear)
	sc.Click(ColTitle)

	assert.Equal(t, SortNone, sc.State(ColYear))
	assert.Equal(t, SortAscending, sc.State(ColTitle))

	c, s, ok := sc.Active()
	assert.True(t, ok)
	assert.Equal(t, ColTitle, c)
	assert.Equal(t, SortAscending, s)
}

func TestClickNewColumnStartsAtAscending(t *testing.T) {
	store := NewStore()
	store.Load(sampleRecords())
	sc := NewSortController(store)

	sc.Click(ColYear)
	sc.Click(ColYear) // year descending
	assert.Equal(t, SortAscending, sc.Click(ColScore))
	assert.Equal(t, []string{"10.1/d", "10.1/b", "10.1/c", "10.1/a"}, dois(store.Records()))
}

func TestClickInvalidColumnIsIgnored(t *testing.T) {
	store := NewStore()
	store.Load(sampleRecords())
	want := dois(store.Records())
	sc := NewSortController(store)

	assert.Equal(t, SortNone, sc.Click(Column(42)))
	assert.Equal(t, want, dois(store.Records()))
	_, _, ok := sc.Active()
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	store := NewStore()
	store.Load(sampleRecords())
	sc := NewSortController(store)

	sc.Click(ColJournal)
	sc.Reset()
	assert.Equal(t, SortNone, sc.State(ColJournal))
}
