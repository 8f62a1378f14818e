// SPDX-License-Identifier: MIT
//
// File: pending.go
// Role: Pending operation log and its batch application.
// Determinism:
//   - New vertices are placed in reverse post-order of the edges queued among
//     them, each taking the lowest free hole.
//   - Edge ops are netted per (from,to) pair and applied in first-seen order:
//     all removals, then all additions.

package depgraph

import (
	"fmt"

	"github.com/katalvlaran/incgraph/core"
	"github.com/katalvlaran/incgraph/dfs"
)

// opKind enumerates queued operations.
type opKind uint8

const (
	opAddVertex opKind = iota
	opRemoveVertex
	opAddEdge
	opRemoveEdge
)

// pendingOp is one entry of the pending operation log.
type pendingOp struct {
	kind     opKind
	id       string // vertex ops
	from, to string // edge ops
	edge     core.EdgeKind
}

func (op pendingOp) isEdge() bool {
	return op.kind == opAddEdge || op.kind == opRemoveEdge
}

// edgePair keys netted edge operations.
type edgePair struct{ from, to string }

// logicalKind is the kind of (from,to) once the queued log is applied.
func (g *Graph) logicalKind(from, to string) core.EdgeKind {
	k := g.store.Kind(from, to)
	for _, op := range g.pending {
		switch {
		case op.kind == opRemoveVertex && (op.id == from || op.id == to):
			k = 0
		case op.kind == opAddEdge && op.from == from && op.to == to:
			k |= op.edge
		case op.kind == opRemoveEdge && op.from == from && op.to == to:
			k &^= op.edge
		}
	}

	return k
}

// applyPending commits the queued log in one batch. Slots touched by
// reorders, cycle changes and dirty materializations lower g.rewind.
func (g *Graph) applyPending() error {
	if len(g.pending) == 0 {
		return nil
	}
	ops := g.pending
	g.pending = nil

	// 1) Split vertex ops from edge ops
	var (
		removals []string
		added    []string
		edgeOps  []pendingOp
	)
	for _, op := range ops {
		switch op.kind {
		case opRemoveVertex:
			removals = append(removals, op.id)
		case opAddVertex:
			added = append(added, op.id)
		default:
			edgeOps = append(edgeOps, op)
		}
	}

	// 2) Vertex removals leave holes
	for _, id := range removals {
		if _, err := g.store.Remove(id); err != nil {
			return fmt.Errorf("%w: apply removal: %v", ErrInvariantViolation, err)
		}
	}

	// 3) Pre-order new vertices over the edges queued among them
	if err := g.placeNew(added, edgeOps); err != nil {
		return err
	}

	// 4) Net edge ops against the committed kinds
	final := make(map[edgePair]core.EdgeKind)
	var pairs []edgePair
	for _, op := range edgeOps {
		p := edgePair{op.from, op.to}
		k, ok := final[p]
		if !ok {
			k = g.store.Kind(op.from, op.to)
			pairs = append(pairs, p)
		}
		if op.kind == opAddEdge {
			k |= op.edge
		} else {
			k &^= op.edge
		}
		final[p] = k
	}

	// 5) Removals first: they can only relax the order
	for _, p := range pairs {
		prev := g.store.Kind(p.from, p.to)
		if drop := prev &^ final[p]; drop != 0 {
			if err := g.dropEdge(p.from, p.to, drop); err != nil {
				return err
			}
		}
	}

	// 6) Additions drive the sorter for pairs that did not exist
	for _, p := range pairs {
		prev := g.store.Kind(p.from, p.to)
		if add := final[p] &^ prev; add != 0 {
			if err := g.insertEdge(p.from, p.to, add); err != nil {
				return err
			}
		}
	}

	g.reach.Purge()
	g.stats.Batches++
	g.log.Debug("batch applied",
		"ops", len(ops), "removed", len(removals), "added", len(added),
		"edges", len(pairs), "rewind", g.rewindString())

	return nil
}

// placeNew inserts new vertices in reverse post-order of their mutual edges.
func (g *Graph) placeNew(added []string, edgeOps []pendingOp) error {
	if len(added) == 0 {
		return nil
	}
	isNew := make(map[string]bool, len(added))
	for _, id := range added {
		isNew[id] = true
	}
	adj := make(map[string][]string)
	for _, op := range edgeOps {
		if op.kind == opAddEdge && isNew[op.from] && isNew[op.to] {
			adj[op.from] = append(adj[op.from], op.to)
		}
	}

	order, err := dfs.ReversePostOrder(added, func(id string) []string { return adj[id] })
	if err != nil {
		return fmt.Errorf("%w: pre-order: %v", ErrInvariantViolation, err)
	}
	for _, id := range order {
		slot, err := g.store.Insert(g.vertices[id])
		if err != nil {
			return fmt.Errorf("%w: apply addition: %v", ErrInvariantViolation, err)
		}
		if g.IsDirty(id) {
			g.noteRewind(slot)
		}
	}

	return nil
}

// dropEdge clears kind on a committed pair and splits a known cycle when an
// internal pair disappears.
func (g *Graph) dropEdge(from, to string, kind core.EdgeKind) error {
	_, now, err := g.store.RemoveEdge(from, to, kind)
	if err != nil {
		return fmt.Errorf("%w: remove edge: %v", ErrInvariantViolation, err)
	}
	if now != 0 {
		return nil
	}
	c := g.cycles[from]
	if c == nil || g.cycles[to] != c {
		return nil
	}
	c.removeEdge(from, to)
	if from == to {
		return nil
	}

	return g.splitCycle(c)
}

// insertEdge adds kind to a committed pair and restores the order when the
// pair is new.
func (g *Graph) insertEdge(from, to string, kind core.EdgeKind) error {
	prev, _, err := g.store.AddEdge(from, to, kind)
	if err != nil {
		return fmt.Errorf("%w: add edge: %v", ErrInvariantViolation, err)
	}
	if prev != 0 {
		return nil
	}

	return g.orderEdge(from, to)
}

// rewindString renders g.rewind for logs.
func (g *Graph) rewindString() string {
	if g.rewind == noRewind {
		return "none"
	}

	return fmt.Sprint(g.rewind)
}
