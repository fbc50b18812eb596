// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

import (
	"slices"
	"sync"

	"github.com/pdiddy/citation-view/pkg/types"
)

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Store holds the canonical ordered record sequence. Sort operations mutate
// it in place while presentation reads it, so every access goes through the
// lock.
type Store struct {
	mu       sync.RWMutex
	records  []types.Record
	defaults []types.Record
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Load replaces the whole sequence. Input from the search service is already
// ranked by descending score; the stable sort keeps that order and ranks any
// input that is not. The resulting order is remembered as the default.
func (s *Store) Load(recs []types.Record) {
	loaded := slices.Clone(recs)
	sortStable(loaded, ColScore, Descending)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = loaded
	s.defaults = slices.Clone(loaded)
}

// Reorder stably sorts the sequence by column c. Ties keep their previous
// relative order.
func (s *Store) Reorder(c Column, dir Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sortStable(s.records, c, dir)
}

// RestoreDefault puts the sequence back in the order it had after Load.
func (s *Store) RestoreDefault() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = slices.Clone(s.defaults)
}

// Records returns a copy of the current sequence.
func (s *Store) Records() []types.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Len returns the number of loaded records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Lookup returns the first record whose DOI is id.
func (s *Store) Lookup(id string) (types.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if rid, ok := r.ID(); ok && rid == id {
			return r, true
		}
	}
	return types.Record{}, false
}

func sortStable(recs []types.Record, c Column, dir Direction) {
	compare := c.Describe().Compare
	slices.SortStableFunc(recs, func(a, b types.Record) int {
		if dir == Descending {
			return compare(b, a)
		}
		return compare(a, b)
	})
}
