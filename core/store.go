// SPDX-License-Identifier: MIT
//
// File: store.go
// Role: Store type, constructor, slot queries and counts.
// Determinism:
//   - Holes() returns free slots ascending.
//   - Order() returns IDs in slot order, "" for holes.

package core

import "sort"

// Store is the slot arena backing a dependency graph.
//
// slots[i] is the vertex at topological index i (nil marks a hole).
// index maps a vertex ID back to its slot; free holds the hole indices, ascending.
// out[from][to] and in[to][from] both carry the EdgeKind of the pair.
type Store struct {
	slots []*Vertex
	index map[string]int
	free  []int

	out map[string]map[string]EdgeKind
	in  map[string]map[string]EdgeKind

	edgeCount int
}

// NewStore creates an empty Store.
// Complexity: O(1)
func NewStore() *Store {
	return &Store{
		index: make(map[string]int),
		out:   make(map[string]map[string]EdgeKind),
		in:    make(map[string]map[string]EdgeKind),
	}
}

// Len returns the number of slots, holes included.
func (s *Store) Len() int { return len(s.slots) }

// VertexCount returns the number of stored vertices.
func (s *Store) VertexCount() int { return len(s.index) }

// EdgeCount returns the number of (from, to) pairs with a non-zero kind.
func (s *Store) EdgeCount() int { return s.edgeCount }

// HoleCount returns the number of free slots.
func (s *Store) HoleCount() int { return len(s.free) }

// Has reports whether id occupies a slot.
func (s *Store) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Index returns the slot of id.
func (s *Store) Index(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// MustIndex returns the slot of id, or -1 when absent.
func (s *Store) MustIndex(id string) int {
	if i, ok := s.index[id]; ok {
		return i
	}

	return -1
}

// At returns the vertex in slot i, or nil for a hole or an out-of-range slot.
func (s *Store) At(i int) *Vertex {
	if i < 0 || i >= len(s.slots) {
		return nil
	}

	return s.slots[i]
}

// Vertex returns the stored vertex for id.
func (s *Store) Vertex(id string) (*Vertex, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}

	return s.slots[i], true
}

// Holes returns a copy of the free slots in ascending order.
// Complexity: O(H)
func (s *Store) Holes() []int {
	return append([]int(nil), s.free...)
}

// addHole records slot i as free, keeping s.free sorted.
func (s *Store) addHole(i int) {
	pos := sort.SearchInts(s.free, i)
	if pos < len(s.free) && s.free[pos] == i {
		return
	}
	s.free = append(s.free, 0)
	copy(s.free[pos+1:], s.free[pos:])
	s.free[pos] = i
}

// takeHole removes slot i from the free list if present.
func (s *Store) takeHole(i int) {
	pos := sort.SearchInts(s.free, i)
	if pos < len(s.free) && s.free[pos] == i {
		s.free = append(s.free[:pos], s.free[pos+1:]...)
	}
}

// Order returns the vertex IDs in slot order; holes are reported as "".
// Complexity: O(N)
func (s *Store) Order() []string {
	ids := make([]string, len(s.slots))
	for i, v := range s.slots {
		if v != nil {
			ids[i] = v.ID
		}
	}

	return ids
}

// SortByIndex sorts ids in place by their current slot. IDs that are not
// stored sort last, in their original relative order.
func (s *Store) SortByIndex(ids []string) {
	sort.SliceStable(ids, func(a, b int) bool {
		ia, oka := s.index[ids[a]]
		ib, okb := s.index[ids[b]]
		switch {
		case oka && okb:
			return ia < ib
		case oka:
			return true
		default:
			return false
		}
	})
}
