// SPDX-License-Identifier: MIT
//
// File: process.go
// Role: The Process traversal.
// Determinism:
//   - Vertices are visited by ascending slot; cycle members by slot inside
//     their block.
//   - The final invalidation phase starts from dirty vertices in slot order
//     and follows HARD successors in slot order.

package depgraph

import (
	"fmt"

	"github.com/katalvlaran/incgraph/core"
	"github.com/katalvlaran/incgraph/dfs"
)

// pass is the state of one Process call.
type pass struct {
	g         *Graph
	fn        ProcessFunc
	callbacks int
}

// Process applies queued operations, then walks the order and reports every
// dirty vertex that reaches a root, propagating dirtiness along HARD edges
// as the callback requests. Dirty vertices that reach no root are finally
// reported with Invalidate only. Process returns once no operation is queued
// and no vertex is dirty.
//
// Errors:
//   - ErrInvariantViolation: fn is nil, Process is called from inside fn, or
//     a batch could not be applied.
func (g *Graph) Process(fn ProcessFunc) error {
	if fn == nil {
		return fmt.Errorf("%w: nil ProcessFunc", ErrInvariantViolation)
	}
	if g.processing {
		return fmt.Errorf("%w: Process called re-entrantly", ErrInvariantViolation)
	}
	g.processing = true
	defer func() { g.processing = false }()

	g.reach.Purge()
	p := &pass{g: g, fn: fn}
	g.log.Debug("process start", "dirty", len(g.dirty), "pending", len(g.pending))

	for {
		if err := g.applyPending(); err != nil {
			return err
		}
		if err := p.scan(); err != nil {
			return err
		}
		p.flushUnreachable()
		g.dropStaleDirty()
		if len(g.pending) == 0 && len(g.dirty) == 0 {
			break
		}
	}

	g.log.Debug("process finish", "callbacks", p.callbacks)

	return nil
}

// scan visits dirty, root-reaching vertices by ascending slot, rewinding when
// earlier slots are touched, and restarts while a skipped dirty vertex has
// since become root-reaching.
func (p *pass) scan() error {
	g := p.g
	start := 0
	for {
		g.rewind = noRewind
		for i := start; i < g.store.Len(); {
			v := g.store.At(i)
			if v == nil || !g.IsDirty(v.ID) || !g.reachesRoot(v.ID) {
				i++
				continue
			}
			if err := p.visit(v.ID); err != nil {
				return err
			}

			// never beyond the next slot
			next := min(i+1, g.rewind)
			g.rewind = noRewind
			i = next
		}

		start = -1
		for i := 0; i < g.store.Len(); i++ {
			if v := g.store.At(i); v != nil && g.IsDirty(v.ID) && g.reachesRoot(v.ID) {
				start = i
				break
			}
		}
		if start < 0 {
			return nil
		}
	}
}

// visit runs inner rounds for id until its classification is stable.
func (p *pass) visit(id string) error {
	g := p.g
	for {
		// 1) Report and propagate
		before := g.cycles[id]
		var processed []string
		if before != nil {
			processed = p.runCycle(before)
		} else {
			processed = p.runVertex(id)
		}

		// 2) Clean, then commit what the callbacks queued
		for _, m := range processed {
			delete(g.dirty, m)
		}
		if err := g.applyPending(); err != nil {
			return err
		}

		// 3) Repeat only if cycle-hood flipped and id is dirty again
		if !g.store.Has(id) || !g.IsDirty(id) {
			return nil
		}
		if after := g.cycles[id]; (before == nil) == (after == nil) {
			return nil
		}
	}
}

// runCycle reports every member of c: Invalidate for informed members, then
// one of RecalculateCycle, Recalculate or Cycle each.
func (p *pass) runCycle(c *cycle) []string {
	g := p.g
	members := c.sorted(g.store)
	propagate := false

	for _, m := range members {
		if c.informed[m] {
			propagate = p.call(m, Invalidate) || propagate
		}
	}
	for _, m := range members {
		var a Action
		switch {
		case c.informed[m]:
			a = RecalculateCycle
		case c.initiallyDirty[m]:
			c.initiallyDirty[m] = false
			a = Recalculate
		default:
			c.informed[m] = true
			a = Cycle
		}
		propagate = p.call(m, a) || propagate
	}

	if propagate {
		for _, m := range members {
			g.store.EachSuccessor(m, core.Hard, func(to string, _ core.EdgeKind) {
				if !c.has(to) {
					g.markDirtyExpanding(to)
				}
			})
		}
	}

	return members
}

// runVertex reports an ordinary vertex. A HARD self-loop makes it cyclic on
// its own: Invalidate, then Cycle.
func (p *pass) runVertex(id string) []string {
	g := p.g
	var propagate bool
	if g.store.HasEdge(id, id, core.Hard) {
		propagate = p.call(id, Invalidate)
		// the Invalidate callback may have removed it
		if g.Has(id) {
			propagate = p.call(id, Cycle) || propagate
		}
	} else {
		propagate = p.call(id, Recalculate)
	}

	if propagate {
		g.store.EachSuccessor(id, core.Hard, func(to string, _ core.EdgeKind) {
			if to != id {
				g.markDirtyExpanding(to)
			}
		})
	}

	return []string{id}
}

// flushUnreachable reports every remaining committed dirty vertex with
// Invalidate, following HARD successors while the callback returns true.
func (p *pass) flushUnreachable() {
	g := p.g
	var starts []string
	for i := 0; i < g.store.Len(); i++ {
		if v := g.store.At(i); v != nil && g.IsDirty(v.ID) {
			starts = append(starts, v.ID)
		}
	}
	if len(starts) == 0 {
		return
	}

	propagate := make(map[string]bool)
	next := func(id string) []string {
		if !propagate[id] {
			return nil
		}
		return g.store.Successors(id, core.Hard)
	}
	// the hook never fails
	_, _ = dfs.DFS(starts, next, dfs.WithOnVisit(func(id string) error {
		delete(g.dirty, id)
		// removed by an earlier callback of this flush
		if !g.Has(id) {
			return nil
		}
		propagate[id] = p.call(id, Invalidate)
		return nil
	}))
}

// dropStaleDirty forgets dirty marks on ids that are no longer registered.
func (g *Graph) dropStaleDirty() {
	for id := range g.dirty {
		if !g.Has(id) {
			delete(g.dirty, id)
			g.log.Warn("dropped dirty mark on unregistered vertex", "vertex", id)
		}
	}
}

// call invokes the callback for id.
func (p *pass) call(id string, a Action) bool {
	g := p.g
	v, ok := g.vertices[id]
	if !ok {
		v, _ = g.store.Vertex(id)
	}
	p.callbacks++
	g.stats.Callbacks++
	g.log.Debug("callback", "vertex", id, "action", a)

	return p.fn(v, a)
}
