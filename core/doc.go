// SPDX-License-Identifier: MIT

// Package core provides the slot arena that stores the vertices and edges of an
// incremental dependency graph.
//
// The Store keeps vertices in an ordered slice of slots. A vertex's slot is its
// topological index; removing a vertex leaves a hole (a nil slot) which is
// handed out again, lowest first, to the next inserted vertex. Vertices are
// addressed by a stable string ID through an ID → slot map, so the arena never
// holds owning pointers between vertices.
//
// Edges are directed pairs (from, to) annotated with an EdgeKind bitmask:
//
//	Soft = 0b01  ordering-only dependency
//	Hard = 0b10  data + ordering dependency
//	Any  = 0b11  mask matching both kinds
//
// Several kinds may coexist on one pair. AddEdge ORs the requested bits into
// the pair, RemoveEdge clears them with AND-NOT, and a pair whose kind drops to
// zero no longer exists. Both forward and reverse adjacency are maintained so
// successor and predecessor lookups are O(deg).
//
// Core Methods:
//
//	// Vertex lifecycle
//	Insert(v *Vertex) (slot int, err error) // first free hole, else append
//	Remove(id string) error                 // leaves a hole, drops incident edges
//	Rearrange(start, end int, ids []string) // rewrite a slot window in one pass
//
//	// Edge lifecycle
//	AddEdge(from, to string, kind EdgeKind) (prev, now EdgeKind, err error)
//	RemoveEdge(from, to string, kind EdgeKind) (prev, now EdgeKind, err error)
//
//	// Queries
//	Index(id) / At(slot) / Vertex(id) / Kind(from, to)
//	Successors(id, mask) / Predecessors(id, mask)  // sorted by slot
//
// The Store is not safe for concurrent use; its single owner is the
// depgraph.Graph that wraps it.
//
// Errors:
//
//	ErrEmptyVertexID   - vertex ID is the empty string.
//	ErrNilVertex       - vertex pointer is nil.
//	ErrVertexExists    - a vertex with that ID already occupies a slot.
//	ErrVertexNotFound  - requested vertex does not exist.
//	ErrInvalidKind     - kind is zero or carries bits outside Any.
//	ErrBadWindow       - Rearrange was given an inconsistent window.
package core
