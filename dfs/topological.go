// SPDX-License-Identifier: MIT

package dfs

// ReversePostOrder returns every vertex reachable from starts arranged so that
// each edge u->v that does not close a cycle has u before v.
//
// Edges into a vertex still on the work stack (back edges) are ignored, so the subgraph may be
// cyclic. Starts are entered last-to-first, which keeps mutually independent
// starts in their given order.
//
// Complexity: O(V + E).
func ReversePostOrder(starts []string, next NeighborFunc) ([]string, error) {
	// 1. Enter starts in reverse so that reversing post-order restores them
	rev := make([]string, len(starts))
	for i, s := range starts {
		rev[len(starts)-1-i] = s
	}

	// 2. Plain traversal; Visited covers both open and finished vertices
	res, err := DFS(rev, next)
	if err != nil {
		return nil, err
	}

	// 3. Reverse post-order in place
	order := res.Order
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	return order, nil
}
