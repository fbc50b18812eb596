// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

// SortState is a column's position in the sort cycle.
type SortState int

const (
	SortNone SortState = iota
	SortAscending
	SortDescending
)

// Next returns the state a click moves to: None, Ascending, Descending, None.
func (s SortState) Next() SortState {
	switch s {
	case SortNone:
		return SortAscending
	case SortAscending:
		return SortDescending
	default:
		return SortNone
	}
}

func (s SortState) String() string {
	switch s {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return "none"
	}
}

// Indicator is a one-rune marker for column headers.
func (s SortState) Indicator() string {
	switch s {
	case SortAscending:
		return "▲"
	case SortDescending:
		return "▼"
	default:
		return ""
	}
}

// SortController applies the cycling sort model to a Store. Only one column
// is in effect at a time: activating a column resets every other indicator,
// and cycling back to None restores the default score order.
type SortController struct {
	store *Store
	state [ColScore + 1]SortState
}

// NewSortController returns a controller reordering store.
func NewSortController(store *Store) *SortController {
	return &SortController{store: store}
}

// Click advances column c one step through the cycle and reorders the store
// accordingly. It returns the column's new state.
func (sc *SortController) Click(c Column) SortState {
	if !c.Valid() {
		return SortNone
	}
	next := sc.state[c].Next()
	sc.state = [ColScore + 1]SortState{}
	sc.state[c] = next

	switch next {
	case SortAscending:
		sc.store.Reorder(c, Ascending)
	case SortDescending:
		sc.store.Reorder(c, Descending)
	default:
		sc.store.RestoreDefault()
	}
	return next
}

// State returns the indicator state of column c.
func (sc *SortController) State(c Column) SortState {
	if !c.Valid() {
		return SortNone
	}
	return sc.state[c]
}

// Active returns the column currently ordering the store, if any.
func (sc *SortController) Active() (Column, SortState, bool) {
	for c, s := range sc.state {
		if s != SortNone {
			return Column(c), s, true
		}
	}
	return 0, SortNone, false
}

// Reset clears every indicator without touching the store order.
func (sc *SortController) Reset() {
	sc.state = [ColScore + 1]SortState{}
}
