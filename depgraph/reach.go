// SPDX-License-Identifier: MIT

package depgraph

import "github.com/katalvlaran/incgraph/dfs"

// reachesRoot reports whether a root is reachable from id over edges of any
// kind. An exhausted search caches false for every vertex it visited; a
// successful one caches true for id only.
func (g *Graph) reachesRoot(id string) bool {
	if hit, ok := g.reach.Get(id); ok {
		return hit
	}

	found := false
	res, _ := dfs.DFS([]string{id}, g.succAny,
		// a cached negative needs no expansion
		dfs.WithFilterNeighbor(func(n string) bool {
			hit, ok := g.reach.Peek(n)
			return !ok || hit
		}),
		dfs.WithOnVisit(func(n string) error {
			if g.IsRoot(n) {
				found = true
				return dfs.ErrStop
			}
			if hit, ok := g.reach.Peek(n); ok && hit {
				found = true
				return dfs.ErrStop
			}
			return nil
		}),
	)

	if found {
		g.reach.Add(id, true)
		return true
	}
	for n := range res.Visited {
		g.reach.Add(n, false)
	}

	return false
}
