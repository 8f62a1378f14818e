// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/RemoveEdge/Kind plus kind-filtered
//       successor and predecessor lookups.
// Determinism:
//   - Successors() and Predecessors() return IDs sorted by slot.
//   - EachSuccessor()/EachPredecessor() visit in map order; use them only
//     where order does not matter.

package core

import "fmt"

// AddEdge ORs kind into the pair (from, to) and returns the kind before and
// after the call. A pair whose previous kind is zero did not exist.
//
// Errors:
//   - ErrInvalidKind: kind is zero or has bits outside Any.
//   - ErrVertexNotFound: either endpoint is not stored.
//
// Complexity: O(1) amortized.
func (s *Store) AddEdge(from, to string, kind EdgeKind) (EdgeKind, EdgeKind, error) {
	// 1) Validate
	if !kind.Valid() {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidKind, kind)
	}
	if err := s.requireBoth(from, to); err != nil {
		return 0, 0, err
	}

	// 2) Merge bits in both directions
	prev := s.out[from][to]
	now := prev | kind
	if now == prev {
		return prev, now, nil
	}
	if s.out[from] == nil {
		s.out[from] = make(map[string]EdgeKind)
	}
	if s.in[to] == nil {
		s.in[to] = make(map[string]EdgeKind)
	}
	s.out[from][to] = now
	s.in[to][from] = now
	if prev == 0 {
		s.edgeCount++
	}

	return prev, now, nil
}

// RemoveEdge clears kind from the pair (from, to) and returns the kind before
// and after the call. Removing bits that are not set is a no-op.
//
// Errors:
//   - ErrInvalidKind: kind is zero or has bits outside Any.
//   - ErrVertexNotFound: either endpoint is not stored.
//
// Complexity: O(1).
func (s *Store) RemoveEdge(from, to string, kind EdgeKind) (EdgeKind, EdgeKind, error) {
	if !kind.Valid() {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidKind, kind)
	}
	if err := s.requireBoth(from, to); err != nil {
		return 0, 0, err
	}

	prev := s.out[from][to]
	now := prev &^ kind
	if now == prev {
		return prev, now, nil
	}
	if now == 0 {
		// the pair disappears
		delete(s.out[from], to)
		if len(s.out[from]) == 0 {
			delete(s.out, from)
		}
		delete(s.in[to], from)
		if len(s.in[to]) == 0 {
			delete(s.in, to)
		}
		s.edgeCount--

		return prev, now, nil
	}
	s.out[from][to] = now
	s.in[to][from] = now

	return prev, now, nil
}

// Kind returns the kind stored on (from, to); zero when the pair is absent.
func (s *Store) Kind(from, to string) EdgeKind {
	return s.out[from][to]
}

// HasEdge reports whether (from, to) carries any bit of mask.
func (s *Store) HasEdge(from, to string, mask EdgeKind) bool {
	return s.out[from][to].Has(mask)
}

// Successors returns the targets of id's outgoing edges matching mask,
// sorted by slot.
// Complexity: O(d log d).
func (s *Store) Successors(id string, mask EdgeKind) []string {
	return s.filtered(s.out[id], mask)
}

// Predecessors returns the sources of id's incoming edges matching mask,
// sorted by slot.
// Complexity: O(d log d).
func (s *Store) Predecessors(id string, mask EdgeKind) []string {
	return s.filtered(s.in[id], mask)
}

// EachSuccessor calls fn for every outgoing edge of id matching mask.
func (s *Store) EachSuccessor(id string, mask EdgeKind, fn func(to string, kind EdgeKind)) {
	for to, k := range s.out[id] {
		if k.Has(mask) {
			fn(to, k)
		}
	}
}

// EachPredecessor calls fn for every incoming edge of id matching mask.
func (s *Store) EachPredecessor(id string, mask EdgeKind, fn func(from string, kind EdgeKind)) {
	for from, k := range s.in[id] {
		if k.Has(mask) {
			fn(from, k)
		}
	}
}

// filtered collects the keys of adj whose kind matches mask, sorted by slot.
func (s *Store) filtered(adj map[string]EdgeKind, mask EdgeKind) []string {
	ids := make([]string, 0, len(adj))
	for id, k := range adj {
		if k.Has(mask) {
			ids = append(ids, id)
		}
	}
	s.SortByIndex(ids)

	return ids
}

// requireBoth returns ErrVertexNotFound unless both ids are stored.
func (s *Store) requireBoth(from, to string) error {
	if _, ok := s.index[from]; !ok {
		return fmt.Errorf("%w: %q", ErrVertexNotFound, from)
	}
	if _, ok := s.index[to]; !ok {
		return fmt.Errorf("%w: %q", ErrVertexNotFound, to)
	}

	return nil
}
