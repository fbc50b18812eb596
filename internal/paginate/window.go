// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paginate

import "strconv"

// ItemKind distinguishes page buttons from gap markers.
type ItemKind int

const (
	PageButton ItemKind = iota
	Ellipsis
)

// Item is one element of the pagination bar.
type Item struct {
	Kind ItemKind

	// Index is the zero-based page index of a PageButton.
	Index int

	// Current marks the button for the page being shown.
	Current bool
}

// Label returns the one-based page number, or "…" for a gap.
func (it Item) Label() string {
	if it.Kind == Ellipsis {
		return "…"
	}
	return strconv.Itoa(it.Index + 1)
}

// Span returns the contiguous window [low, high) of page indices around
// current, 2*radius+1 wide whenever total allows. The low bound is clamped
// twice so the window keeps its width next to either end.
func Span(total, current, radius int) (low, high int) {
	width := 2*radius + 1
	low = clamp(current-radius, 0, total)
	high = clamp(low+width, 0, total)
	low = clamp(high-width, 0, total)
	return low, high
}

// Window lays out the pagination bar for total pages (floor count) with
// current selected. The first and last page always get a button; an
// ellipsis marks every gap wider than one page between them and the window.
func Window(total, current, radius int) []Item {
	last := max(1, total) - 1
	low, high := Span(total, current, radius)

	var items []Item
	add := func(idx int) {
		if n := len(items); n > 0 && items[n-1].Kind == PageButton && items[n-1].Index >= idx {
			return
		}
		items = append(items, Item{Kind: PageButton, Index: idx, Current: idx == current})
	}

	add(0)
	if low > 1 {
		items = append(items, Item{Kind: Ellipsis})
	}
	for idx := low; idx < high; idx++ {
		add(idx)
	}
	if total-high > 1 {
		items = append(items, Item{Kind: Ellipsis})
	}
	add(last)
	return items
}
