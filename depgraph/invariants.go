// SPDX-License-Identifier: MIT

package depgraph

import (
	"fmt"

	"github.com/katalvlaran/incgraph/core"
	"github.com/katalvlaran/incgraph/dfs"
)

// CheckInvariants verifies the committed structure and returns the first
// violation found, wrapped in ErrInvariantViolation. Queued operations are
// not considered.
//
// Checked:
//   - incoming adjacency mirrors outgoing adjacency;
//   - every edge a->b outside a shared known cycle has index(a) < index(b);
//   - every known cycle occupies a contiguous block of slots;
//   - every known cycle is exactly one strongly connected component and its
//     edge map matches the committed pairs among its members;
//   - dirty and root markers name registered vertices only.
func (g *Graph) CheckInvariants() error {
	// 1) Order
	for i := 0; i < g.store.Len(); i++ {
		v := g.store.At(i)
		if v == nil {
			continue
		}
		var bad string
		g.store.EachSuccessor(v.ID, core.Any, func(to string, _ core.EdgeKind) {
			if c := g.cycles[v.ID]; c != nil && c.has(to) {
				return
			}
			if to == v.ID {
				return
			}
			if g.store.MustIndex(to) <= i && bad == "" {
				bad = to
			}
		})
		if bad != "" {
			return fmt.Errorf("%w: edge %q->%q points backward (%d -> %d)",
				ErrInvariantViolation, v.ID, bad, i, g.store.MustIndex(bad))
		}
	}

	// 2) Incoming lists agree with outgoing kinds
	for i := 0; i < g.store.Len(); i++ {
		v := g.store.At(i)
		if v == nil {
			continue
		}
		var bad string
		g.store.EachPredecessor(v.ID, core.Any, func(from string, k core.EdgeKind) {
			if bad == "" && (!g.store.Has(from) || g.store.Kind(from, v.ID) != k) {
				bad = from
			}
		})
		if bad != "" {
			return fmt.Errorf("%w: incoming edge %q->%q disagrees with outgoing adjacency",
				ErrInvariantViolation, bad, v.ID)
		}
	}

	// 3) Cycles, once per record
	checked := make(map[*cycle]bool)
	for id, c := range g.cycles {
		if checked[c] {
			continue
		}
		checked[c] = true
		if err := g.checkCycle(id, c); err != nil {
			return err
		}
	}

	// 4) Markers
	for id := range g.dirty {
		if !g.Has(id) {
			return fmt.Errorf("%w: dirty marker on unregistered %q", ErrInvariantViolation, id)
		}
	}
	for id := range g.roots {
		if !g.Has(id) {
			return fmt.Errorf("%w: root marker on unregistered %q", ErrInvariantViolation, id)
		}
	}

	return nil
}

// checkCycle validates one known-cycle record.
func (g *Graph) checkCycle(id string, c *cycle) error {
	if !c.has(id) {
		return fmt.Errorf("%w: %q maps to a cycle it is not a member of", ErrInvariantViolation, id)
	}
	members := c.sorted(g.store)
	for _, m := range members {
		if g.cycles[m] != c {
			return fmt.Errorf("%w: member %q does not share its cycle record", ErrInvariantViolation, m)
		}
		if !g.store.Has(m) {
			return fmt.Errorf("%w: cycle member %q is not committed", ErrInvariantViolation, m)
		}
	}

	lo, hi := c.bounds(g.store)
	if hi-lo+1 != len(members) {
		return fmt.Errorf("%w: cycle %v spans [%d,%d]", ErrInvariantViolation, members, lo, hi)
	}

	if comps := dfs.StronglyConnected(members, g.succAny); len(comps) != 1 {
		return fmt.Errorf("%w: cycle %v holds %d components", ErrInvariantViolation, members, len(comps))
	}

	pairs := 0
	for _, m := range members {
		for _, to := range g.store.Successors(m, core.Any) {
			if !c.has(to) {
				continue
			}
			pairs++
			if _, ok := c.edges[m][to]; !ok {
				return fmt.Errorf("%w: cycle edge %q->%q is not recorded", ErrInvariantViolation, m, to)
			}
		}
	}
	recorded := 0
	for _, tos := range c.edges {
		recorded += len(tos)
	}
	if recorded != pairs {
		return fmt.Errorf("%w: cycle %v records %d edges, %d committed", ErrInvariantViolation, members, recorded, pairs)
	}

	return nil
}
