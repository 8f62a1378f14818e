// SPDX-License-Identifier: MIT
//
// File: methods_vertices.go
// Role: Vertex lifecycle: Insert, Remove, Rearrange.
// Determinism:
//   - Insert always takes the lowest free hole.
//   - Rearrange writes ids in the order given and moves freed slots to the
//     end of the window.

package core

import "fmt"

// Insert places v in the lowest free hole, or appends a new slot when there is
// none, and returns the slot used.
//
// Errors:
//   - ErrNilVertex, ErrEmptyVertexID: invalid input.
//   - ErrVertexExists: v.ID already occupies a slot.
//
// Complexity: O(H) for the hole bookkeeping, O(1) amortized otherwise.
func (s *Store) Insert(v *Vertex) (int, error) {
	// 1) Validate input
	if v == nil {
		return -1, ErrNilVertex
	}
	if v.ID == "" {
		return -1, ErrEmptyVertexID
	}
	if _, exists := s.index[v.ID]; exists {
		return -1, fmt.Errorf("%w: %q", ErrVertexExists, v.ID)
	}

	// 2) Reuse the first hole if any, else grow the arena
	slot := len(s.slots)
	if len(s.free) > 0 {
		slot = s.free[0]
		s.free = s.free[1:]
		s.slots[slot] = v
	} else {
		s.slots = append(s.slots, v)
	}
	s.index[v.ID] = slot

	return slot, nil
}

// Remove deletes the vertex id, drops every incident edge and turns its slot
// into a hole. It returns the freed slot.
//
// Complexity: O(deg(id) + H).
func (s *Store) Remove(id string) (int, error) {
	slot, ok := s.index[id]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrVertexNotFound, id)
	}

	// 1) Drop outgoing pairs, mirrored in the reverse map
	for to := range s.out[id] {
		delete(s.in[to], id)
		if len(s.in[to]) == 0 {
			delete(s.in, to)
		}
		s.edgeCount--
	}
	delete(s.out, id)

	// 2) Drop incoming pairs (a self-loop was already removed above)
	for from := range s.in[id] {
		delete(s.out[from], id)
		if len(s.out[from]) == 0 {
			delete(s.out, from)
		}
		s.edgeCount--
	}
	delete(s.in, id)

	// 3) Leave a hole
	s.slots[slot] = nil
	delete(s.index, id)
	s.addHole(slot)

	return slot, nil
}

// Rearrange rewrites the window [start, end] in one pass: ids[k] moves to slot
// start+k and the remaining slots of the window become holes. ids must be
// exactly the vertices currently stored inside the window.
//
// Errors:
//   - ErrBadWindow: bounds out of range, too many ids, or an id that is not
//     currently inside the window. The store is left unchanged.
//
// Complexity: O(end-start + H).
func (s *Store) Rearrange(start, end int, ids []string) error {
	// 1) Validate the window and its occupants
	if start < 0 || end >= len(s.slots) || start > end || len(ids) > end-start+1 {
		return fmt.Errorf("%w: [%d,%d] with %d ids", ErrBadWindow, start, end, len(ids))
	}
	occupied := 0
	for i := start; i <= end; i++ {
		if s.slots[i] != nil {
			occupied++
		}
	}
	if occupied != len(ids) {
		return fmt.Errorf("%w: %d ids for %d occupants", ErrBadWindow, len(ids), occupied)
	}
	moved := make([]*Vertex, len(ids))
	for k, id := range ids {
		i, ok := s.index[id]
		if !ok || i < start || i > end {
			return fmt.Errorf("%w: %q is not inside [%d,%d]", ErrBadWindow, id, start, end)
		}
		moved[k] = s.slots[i]
	}

	// 2) Write the new layout
	for k, v := range moved {
		slot := start + k
		if s.slots[slot] == nil {
			s.takeHole(slot)
		}
		s.slots[slot] = v
		s.index[v.ID] = slot
	}
	for slot := start + len(moved); slot <= end; slot++ {
		s.slots[slot] = nil
		s.addHole(slot)
	}

	return nil
}
