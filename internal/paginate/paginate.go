// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paginate slices the visible record list into pages and lays out
// the page-button window shown under the table.
//
// The page count is floor(n/size). The last counted page absorbs the
// trailing partial page, so 25 records at 10 per page make two pages of 10
// and 15 records. This departs from the plain slice [i*size, i*size+size):
// with floor paging that slice would leave the remainder on no page at all.
package paginate

import "fmt"

// DefaultRadius is the number of page buttons kept either side of the
// current page.
const DefaultRadius = 2

// TotalPages returns floor(n / size). It is zero while n < size.
func TotalPages(n, size int) int {
	if size <= 0 {
		panic(fmt.Sprintf("paginate: page size %d", size))
	}
	return n / size
}

// LastIndex returns the highest valid page index, max(1, TotalPages) - 1.
func LastIndex(n, size int) int {
	return max(1, TotalPages(n, size)) - 1
}

// Valid reports whether index satisfies 0 <= index < max(1, TotalPages).
func Valid(n, size, index int) bool {
	return index >= 0 && index <= LastIndex(n, size)
}

// Bounds returns the half-open record range [start, end) shown on page
// index. It panics when index is out of range; callers validate page
// selections before they reach here.
func Bounds(n, size, index int) (start, end int) {
	if !Valid(n, size, index) {
		panic(fmt.Sprintf("paginate: page %d out of range [0, %d]", index, LastIndex(n, size)))
	}
	start = clamp(index*size, 0, n)
	end = clamp(index*size+size, 0, n)
	if index == LastIndex(n, size) {
		end = n
	}
	return start, end
}

// Showing formats the footer line, e.g. "Showing 11 to 20 of 25 entries".
func Showing(n, size, index int) string {
	start, end := Bounds(n, size, index)
	first := start + 1
	if start == end {
		first = 0
	}
	return fmt.Sprintf("Showing %d to %d of %d entries", first, end, n)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
