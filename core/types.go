// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"strings"
)

// Sentinel errors for store operations.
var (
	// ErrEmptyVertexID indicates that the provided Vertex has an empty ID.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrNilVertex indicates a nil *Vertex was passed in.
	ErrNilVertex = errors.New("core: vertex is nil")

	// ErrVertexExists indicates the ID already occupies a slot.
	ErrVertexExists = errors.New("core: vertex already exists")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrInvalidKind indicates an edge kind of zero or with unknown bits.
	ErrInvalidKind = errors.New("core: invalid edge kind")

	// ErrBadWindow indicates Rearrange was called with ids that do not match
	// the occupants of the window.
	ErrBadWindow = errors.New("core: bad rearrange window")
)

// EdgeKind is a bitmask describing what a dependency carries.
type EdgeKind uint8

const (
	// Soft edges order their endpoints but do not propagate dirtiness.
	Soft EdgeKind = 1 << iota
	// Hard edges order their endpoints and propagate dirtiness.
	Hard

	// Any matches every kind; it is a mask, valid for lookups and removals.
	Any = Soft | Hard
)

// Valid reports whether k is a non-empty subset of Any.
func (k EdgeKind) Valid() bool { return k != 0 && k&^Any == 0 }

// Has reports whether k shares at least one bit with mask.
func (k EdgeKind) Has(mask EdgeKind) bool { return k&mask != 0 }

// String renders the kind as "soft", "hard", "soft|hard" or "none".
func (k EdgeKind) String() string {
	if k == 0 {
		return "none"
	}
	parts := make([]string, 0, 2)
	if k&Soft != 0 {
		parts = append(parts, "soft")
	}
	if k&Hard != 0 {
		parts = append(parts, "hard")
	}
	if k&^Any != 0 {
		parts = append(parts, "invalid")
	}

	return strings.Join(parts, "|")
}

// ParseEdgeKind is the inverse of String for "soft", "hard" and "any".
func ParseEdgeKind(s string) (EdgeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "soft":
		return Soft, nil
	case "hard", "":
		return Hard, nil
	case "any", "soft|hard":
		return Any, nil
	}

	return 0, ErrInvalidKind
}

// Vertex is a client payload registered under a stable ID.
//
// ID must be unique among the vertices currently registered; it may be reused
// after the vertex is removed. Value is never inspected by the store.
type Vertex struct {
	// ID is the stable external identifier.
	ID string

	// Value is the opaque client payload.
	Value any
}

// NewVertex is shorthand for &Vertex{ID: id, Value: value}.
func NewVertex(id string, value any) *Vertex {
	return &Vertex{ID: id, Value: value}
}
