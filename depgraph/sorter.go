// SPDX-License-Identifier: MIT
//
// File: sorter.go
// Role: Incremental topological sorter (Pearce–Kelly style, windowed).
// Invariants kept:
//   - index(a) < index(b) for every edge a->b outside a known cycle.
//   - Each known cycle occupies a contiguous block of slots.

package depgraph

import (
	"fmt"

	"github.com/katalvlaran/incgraph/dfs"
)

// lowIndex is the slot of id, or the first slot of its known cycle.
func (g *Graph) lowIndex(id string) int {
	if c := g.cycles[id]; c != nil {
		lo, _ := c.bounds(g.store)
		return lo
	}

	return g.store.MustIndex(id)
}

// highIndex is the slot of id, or the last slot of its known cycle.
func (g *Graph) highIndex(id string) int {
	if c := g.cycles[id]; c != nil {
		_, hi := c.bounds(g.store)
		return hi
	}

	return g.store.MustIndex(id)
}

// orderEdge restores the order after the committed pair from->to appeared.
//
// Steps:
//  1. Same known cycle: record the pair, nothing moves.
//  2. Window [lb, ub] from the cycle-aware bounds; lb >= ub is a no-op.
//  3. Forward search from `to` over slots <= ub; reaching from's component
//     means a cycle formed and Tarjan extracts it.
//  4. Backward reachability from `from` over slots >= lb.
//  5. Rewrite the window: backward-only, new cycle, untouched, forward-only.
func (g *Graph) orderEdge(from, to string) error {
	// 1) Internal to a known cycle
	cf := g.cycles[from]
	if cf != nil && cf == g.cycles[to] {
		cf.addEdge(from, to)
		return nil
	}

	// 2) Window
	lb, ub := g.lowIndex(to), g.highIndex(from)
	if lb >= ub {
		return nil
	}

	// 3) Forward search bounded above by ub
	target := map[string]bool{from: true}
	if cf != nil {
		for m := range cf.members {
			target[m] = true
		}
	}
	found := false
	fwd, err := dfs.DFS([]string{to}, g.succAny,
		dfs.WithFilterNeighbor(func(id string) bool { return g.store.MustIndex(id) <= ub }),
		dfs.WithOnVisit(func(id string) error {
			if target[id] {
				found = true
			}
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("%w: forward search: %v", ErrInvariantViolation, err)
	}

	var formed map[string]bool
	if found {
		formed = g.extractCycle(fwd.Visited, to)
	}

	// 4) Backward search bounded below by lb
	backward := make(map[string]bool)
	for _, id := range dfs.Reachable([]string{from}, g.predAny, func(id string) bool {
		return g.store.MustIndex(id) >= lb
	}) {
		backward[id] = true
	}

	// 5) Regroup the window in current relative order
	var back, comp, rest, fore []string
	for i := lb; i <= ub; i++ {
		v := g.store.At(i)
		if v == nil {
			continue
		}
		switch id := v.ID; {
		case formed[id]:
			comp = append(comp, id)
		case backward[id]:
			back = append(back, id)
		case fwd.Visited[id]:
			fore = append(fore, id)
		default:
			rest = append(rest, id)
		}
	}
	layout := make([]string, 0, len(back)+len(comp)+len(rest)+len(fore))
	layout = append(layout, back...)
	layout = append(layout, comp...)
	layout = append(layout, rest...)
	layout = append(layout, fore...)

	return g.rewrite(lb, ub, layout, "edge", from+"->"+to)
}

// extractCycle runs Tarjan over the forward-reachable set, records the
// component containing seed and returns its members.
func (g *Graph) extractCycle(reached map[string]bool, seed string) map[string]bool {
	nodes := make([]string, 0, len(reached))
	for id := range reached {
		nodes = append(nodes, id)
	}
	g.store.SortByIndex(nodes)

	for _, comp := range dfs.StronglyConnected(nodes, g.succAny) {
		for _, id := range comp {
			if id != seed {
				continue
			}
			g.formCycle(comp)
			members := make(map[string]bool, len(comp))
			for _, m := range comp {
				members[m] = true
			}
			return members
		}
	}

	return nil
}

// rewrite writes layout into [lo, hi] unless the window already holds exactly
// that sequence with no holes, then notes lo for rewind and drops
// reachability answers.
func (g *Graph) rewrite(lo, hi int, layout []string, reason, subject string) error {
	same := hi-lo+1 == len(layout)
	for k := 0; same && k < len(layout); k++ {
		v := g.store.At(lo + k)
		same = v != nil && v.ID == layout[k]
	}
	if same {
		return nil
	}

	if err := g.store.Rearrange(lo, hi, layout); err != nil {
		return fmt.Errorf("%w: reorder [%d,%d]: %v", ErrInvariantViolation, lo, hi, err)
	}
	g.noteRewind(lo)
	g.reach.Purge()
	g.stats.Reorders++
	g.log.Debug("reorder", "reason", reason, "subject", subject, "lo", lo, "hi", hi, "moved", len(layout))

	return nil
}
