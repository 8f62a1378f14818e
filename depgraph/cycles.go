// SPDX-License-Identifier: MIT
//
// File: cycles.go
// Role: Known-cycle records: formation on merge, split on internal edge loss.
// Determinism:
//   - A split lays sub-components out in topological order, members of one
//     sub-component keeping their previous relative order.

package depgraph

import (
	"github.com/katalvlaran/incgraph/core"
	"github.com/katalvlaran/incgraph/dfs"
)

// cycle is the record shared by every member of one strongly connected
// component of size > 1.
type cycle struct {
	members map[string]struct{}
	// edges holds the committed pairs whose endpoints are both members.
	edges map[string]map[string]struct{}
	// informed marks members already told they are cyclic.
	informed map[string]bool
	// initiallyDirty marks members that were dirty when the cycle was recognised.
	initiallyDirty map[string]bool
}

func newCycle(size int) *cycle {
	return &cycle{
		members:        make(map[string]struct{}, size),
		edges:          make(map[string]map[string]struct{}, size),
		informed:       make(map[string]bool, size),
		initiallyDirty: make(map[string]bool, size),
	}
}

func (c *cycle) has(id string) bool {
	_, ok := c.members[id]
	return ok
}

func (c *cycle) addEdge(from, to string) {
	if c.edges[from] == nil {
		c.edges[from] = make(map[string]struct{})
	}
	c.edges[from][to] = struct{}{}
}

func (c *cycle) removeEdge(from, to string) {
	delete(c.edges[from], to)
	if len(c.edges[from]) == 0 {
		delete(c.edges, from)
	}
}

// sorted returns the members in slot order.
func (c *cycle) sorted(s *core.Store) []string {
	ids := make([]string, 0, len(c.members))
	for id := range c.members {
		ids = append(ids, id)
	}
	s.SortByIndex(ids)

	return ids
}

// bounds returns the first and last slot of the block.
func (c *cycle) bounds(s *core.Store) (lo, hi int) {
	lo, hi = -1, -1
	for id := range c.members {
		i := s.MustIndex(id)
		if lo < 0 || i < lo {
			lo = i
		}
		if i > hi {
			hi = i
		}
	}

	return lo, hi
}

// newRecord builds a record for ids, copying per-member flags from their
// previous records and computing initiallyDirty for first-time members.
func (g *Graph) newRecord(ids []string) *cycle {
	c := newCycle(len(ids))
	for _, id := range ids {
		c.members[id] = struct{}{}
	}
	for _, id := range ids {
		if old := g.cycles[id]; old != nil {
			c.informed[id] = old.informed[id]
			c.initiallyDirty[id] = old.initiallyDirty[id]
		} else {
			c.initiallyDirty[id] = g.IsDirty(id)
		}
		g.store.EachSuccessor(id, core.Any, func(to string, _ core.EdgeKind) {
			if c.has(to) {
				c.addEdge(id, to)
			}
		})
	}

	return c
}

// formCycle records ids as one known cycle, absorbing any records they
// belonged to, and marks every member dirty.
func (g *Graph) formCycle(ids []string) {
	c := g.newRecord(ids)
	for _, id := range ids {
		g.cycles[id] = c
	}
	for _, id := range ids {
		g.markDirty(id)
	}
	g.reach.Purge()
	g.stats.CyclesFormed++
	g.log.Debug("cycle formed", "members", c.sorted(g.store))
}

// splitCycle recomputes the strongly connected components of c's members
// after one of its internal pairs disappeared.
//
// Steps:
//  1. Tarjan over the members, induced edges only.
//  2. Lay sub-components out sources-first; rewrite the block only if that
//     changes the order.
//  3. Sub-components of size > 1 get fresh records with preserved flags;
//     singletons leave cycle-hood and are marked dirty.
func (g *Graph) splitCycle(c *cycle) error {
	members := c.sorted(g.store)

	// 1) Components come back sinks-first
	comps := dfs.StronglyConnected(members, g.succAny)
	if len(comps) == 1 {
		return nil
	}

	// 2) Reverse to sources-first, members by previous slot
	layout := make([]string, 0, len(members))
	for i := len(comps) - 1; i >= 0; i-- {
		g.store.SortByIndex(comps[i])
		layout = append(layout, comps[i]...)
	}
	lo := g.store.MustIndex(members[0])
	hi := g.store.MustIndex(members[len(members)-1])
	if err := g.rewrite(lo, hi, layout, "split", members[0]); err != nil {
		return err
	}

	// 3) Rebuild records
	for _, comp := range comps {
		if len(comp) > 1 {
			nc := g.newRecord(comp)
			for _, id := range comp {
				g.cycles[id] = nc
			}
			continue
		}
		delete(g.cycles, comp[0])
		g.markDirty(comp[0])
	}
	g.noteRewind(lo)
	g.reach.Purge()
	g.stats.CyclesSplit++
	g.log.Debug("cycle split", "members", members, "components", len(comps))

	return nil
}
