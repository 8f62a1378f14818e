// SPDX-License-Identifier: MIT
//
// File: mutate.go
// Role: Public mutation API. Structural changes (vertices, edges) are queued
//       and applied at the next batch; markers (dirty, root, informed) take
//       effect immediately.

package depgraph

import (
	"fmt"

	"github.com/katalvlaran/incgraph/core"
)

// AddVertex registers v and queues its insertion into the order.
//
// Errors:
//   - core.ErrNilVertex, core.ErrEmptyVertexID: invalid input.
//   - ErrDuplicateVertex: v.ID is registered or pending.
func (g *Graph) AddVertex(v *core.Vertex) error {
	if v == nil {
		return core.ErrNilVertex
	}
	if v.ID == "" {
		return core.ErrEmptyVertexID
	}
	if g.Has(v.ID) {
		return fmt.Errorf("%w: %q", ErrDuplicateVertex, v.ID)
	}

	g.vertices[v.ID] = v
	g.pending = append(g.pending, pendingOp{kind: opAddVertex, id: v.ID})

	return nil
}

// RemoveVertex unregisters id and queues its removal. Queued edge operations
// touching id are dropped. A removal that follows a queued addition of the
// same id cancels both.
//
// Errors:
//   - ErrUnknownVertex: id is not registered.
//   - ErrInvariantViolation: id is a root or a member of a known cycle.
func (g *Graph) RemoveVertex(id string) error {
	// 1) Validate
	if !g.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownVertex, id)
	}
	if g.IsRoot(id) {
		return fmt.Errorf("%w: cannot remove root %q", ErrInvariantViolation, id)
	}
	if g.cycles[id] != nil {
		return fmt.Errorf("%w: removing cycle member %q is not supported", ErrInvariantViolation, id)
	}

	// 2) Drop queued edge ops on id; cancel a queued addition
	cancelled := false
	kept := g.pending[:0]
	for _, op := range g.pending {
		switch {
		case op.isEdge() && (op.from == id || op.to == id):
			continue
		case op.kind == opAddVertex && op.id == id:
			cancelled = true
			continue
		}
		kept = append(kept, op)
	}
	g.pending = kept
	if !cancelled {
		g.pending = append(g.pending, pendingOp{kind: opRemoveVertex, id: id})
	}

	// 3) Forget markers
	delete(g.vertices, id)
	delete(g.dirty, id)

	return nil
}

// AddEdge queues the addition of kind to the pair (from, to).
//
// Errors:
//   - ErrInvalidKind: kind is 0 or has bits outside core.Any.
//   - ErrUnknownVertex: from or to is not registered.
func (g *Graph) AddEdge(from, to string, kind core.EdgeKind) error {
	if err := g.checkEdge(from, to, kind); err != nil {
		return err
	}
	g.pending = append(g.pending, pendingOp{kind: opAddEdge, from: from, to: to, edge: kind})

	return nil
}

// RemoveEdge queues the removal of kind from the pair (from, to).
// Removing a kind that is not present is a no-op once netted.
func (g *Graph) RemoveEdge(from, to string, kind core.EdgeKind) error {
	if err := g.checkEdge(from, to, kind); err != nil {
		return err
	}
	g.pending = append(g.pending, pendingOp{kind: opRemoveEdge, from: from, to: to, edge: kind})

	return nil
}

// checkEdge validates an edge operation against registered vertices.
func (g *Graph) checkEdge(from, to string, kind core.EdgeKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidKind, kind)
	}
	for _, id := range [2]string{from, to} {
		if !g.Has(id) {
			return fmt.Errorf("%w: %q", ErrUnknownVertex, id)
		}
	}

	return nil
}

// ReplaceIncoming makes sources the exact set of HARD predecessors of id,
// diffing against the committed edges overlaid with queued operations.
// It returns the sources whose HARD edge was removed (slot order) and the
// ones that were added (argument order). Nothing is queued on error.
func (g *Graph) ReplaceIncoming(id string, sources []string) (removed, added []string, err error) {
	// 1) Validate every id before touching the log
	if !g.Has(id) {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownVertex, id)
	}
	want := make(map[string]struct{}, len(sources))
	for _, s := range sources {
		if !g.Has(s) {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownVertex, s)
		}
		want[s] = struct{}{}
	}

	// 2) Current logical HARD sources: committed first, then queued ones
	var candidates []string
	seen := make(map[string]struct{})
	for _, p := range g.store.Predecessors(id, core.Hard) {
		seen[p] = struct{}{}
		candidates = append(candidates, p)
	}
	for _, op := range g.pending {
		if op.isEdge() && op.to == id {
			if _, ok := seen[op.from]; !ok {
				seen[op.from] = struct{}{}
				candidates = append(candidates, op.from)
			}
		}
	}
	current := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if g.Has(c) && g.logicalKind(c, id).Has(core.Hard) {
			current[c] = struct{}{}
		}
	}

	// 3) Diff and queue
	for _, c := range candidates {
		if _, ok := current[c]; !ok {
			continue
		}
		if _, keep := want[c]; !keep {
			removed = append(removed, c)
			g.pending = append(g.pending, pendingOp{kind: opRemoveEdge, from: c, to: id, edge: core.Hard})
		}
	}
	for _, s := range sources {
		if _, ok := current[s]; ok {
			continue
		}
		current[s] = struct{}{}
		added = append(added, s)
		g.pending = append(g.pending, pendingOp{kind: opAddEdge, from: s, to: id, edge: core.Hard})
	}

	return removed, added, nil
}

// MarkRoot flags id as externally observed.
func (g *Graph) MarkRoot(id string) error {
	if !g.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownVertex, id)
	}
	if g.IsRoot(id) {
		return fmt.Errorf("%w: %q is already a root", ErrInvariantViolation, id)
	}
	g.roots[id] = struct{}{}
	g.reach.Purge()

	return nil
}

// UnmarkRoot clears the root flag of id.
func (g *Graph) UnmarkRoot(id string) error {
	if !g.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownVertex, id)
	}
	if !g.IsRoot(id) {
		return fmt.Errorf("%w: %q is not a root", ErrInvariantViolation, id)
	}
	delete(g.roots, id)
	g.reach.Purge()

	return nil
}

// MarkVertexDirty flags id as needing reconciliation. Marking a vertex
// that sits before the current traversal position makes Process rewind.
func (g *Graph) MarkVertexDirty(id string) error {
	if !g.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownVertex, id)
	}
	g.markDirty(id)

	return nil
}

// ClearVertexDirty removes the dirty flag of id, if any.
func (g *Graph) ClearVertexDirty(id string) error {
	if !g.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownVertex, id)
	}
	delete(g.dirty, id)

	return nil
}

// MarkVertexCycleInformed records that id has already been told it is cyclic,
// so its next dirty pass reports RecalculateCycle.
//
// Errors:
//   - ErrUnknownVertex: id is not registered.
//   - ErrInvariantViolation: id is not a member of a known cycle.
func (g *Graph) MarkVertexCycleInformed(id string) error {
	if !g.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownVertex, id)
	}
	c := g.cycles[id]
	if c == nil {
		return fmt.Errorf("%w: %q is not part of a known cycle", ErrInvariantViolation, id)
	}
	c.informed[id] = true

	return nil
}
