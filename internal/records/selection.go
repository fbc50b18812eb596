// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

import (
	"slices"
	"sync"

	"github.com/pdiddy/citation-view/pkg/types"
)

// Selection is the set of selected record identifiers. It is independent of
// the visible subset: filtering, sorting or paging never changes it.
type Selection struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Select adds id. Empty identifiers are rejected; it reports whether id is
// selected afterwards.
func (s *Selection) Select(id string) bool {
	if id == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
	return true
}

// Deselect removes id.
func (s *Selection) Deselect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

// Toggle selects or deselects id according to checked and reports whether
// id is selected afterwards.
func (s *Selection) Toggle(id string, checked bool) bool {
	if checked {
		return s.Select(id)
	}
	s.Deselect(id)
	return false
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// Count returns the number of selected identifiers.
func (s *Selection) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// IDs returns the selected identifiers in sorted order.
func (s *Selection) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.ids)
}

// IsSelected reports whether r has an identifier that is selected.
func (s *Selection) IsSelected(r types.Record) bool {
	id, ok := r.ID()
	return ok && s.Contains(id)
}

// Resolve returns the records an export covers. With nothing selected that is
// the whole store, filters ignored. Otherwise it is every store record whose
// identifier is selected, in store order, whether or not it is visible.
func (s *Selection) Resolve(store *Store) []types.Record {
	all := store.Records()
	if s.Count() == 0 {
		return all
	}
	out := make([]types.Record, 0, s.Count())
	for _, r := range all {
		if s.IsSelected(r) {
			out = append(out, r)
		}
	}
	return out
}
