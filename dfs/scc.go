// SPDX-License-Identifier: MIT

package dfs

// tarjanFrame is one activation of the iterative Tarjan walk.
type tarjanFrame struct {
	id   string
	nbrs []string
	next int
}

// StronglyConnected partitions nodes into strongly connected components using
// Tarjan's algorithm, restricted to the subgraph induced by nodes: neighbors
// outside nodes are ignored.
//
// Components are returned sinks-first (reverse topological order of the
// condensation). Members of a component appear in the order they were popped
// off the Tarjan stack; callers that need a specific order sort them.
//
// Complexity: O(V + E).
func StronglyConnected(nodes []string, next NeighborFunc) [][]string {
	if next == nil || len(nodes) == 0 {
		return nil
	}

	inside := make(map[string]bool, len(nodes))
	for _, id := range nodes {
		inside[id] = true
	}

	var (
		index   = make(map[string]int, len(nodes))
		low     = make(map[string]int, len(nodes))
		onStack = make(map[string]bool, len(nodes))
		stack   []string
		frames  []tarjanFrame
		comps   [][]string
		counter int
	)

	push := func(id string) {
		index[id] = counter
		low[id] = counter
		counter++
		stack = append(stack, id)
		onStack[id] = true
		frames = append(frames, tarjanFrame{id: id, nbrs: next(id)})
	}

	for _, root := range nodes {
		if _, seen := index[root]; seen {
			continue
		}
		push(root)

		for len(frames) > 0 {
			top := &frames[len(frames)-1]

			// 1. Descend into the next unseen neighbor
			if top.next < len(top.nbrs) {
				w := top.nbrs[top.next]
				top.next++
				if !inside[w] {
					continue
				}
				if _, seen := index[w]; !seen {
					push(w)
					continue
				}
				if onStack[w] {
					low[top.id] = min(low[top.id], index[w])
				}
				continue
			}

			// 2. Finished: pop a component if top is its root
			id := top.id
			frames = frames[:len(frames)-1]
			if low[id] == index[id] {
				var comp []string
				for {
					n := len(stack) - 1
					w := stack[n]
					stack = stack[:n]
					onStack[w] = false
					comp = append(comp, w)
					if w == id {
						break
					}
				}
				comps = append(comps, comp)
			}

			// 3. Propagate low-link to the parent
			if len(frames) > 0 {
				parent := frames[len(frames)-1].id
				low[parent] = min(low[parent], low[id])
			}
		}
	}

	return comps
}
