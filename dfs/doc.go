// SPDX-License-Identifier: MIT

// Package dfs implements the iterative depth-first building blocks used by the
// incremental dependency graph: bounded traversal, cycle-tolerant
// reverse-post-order pre-ordering, and Tarjan's strongly connected components.
//
// What:
//
//   - DFS: explores as far as possible along each branch before backtracking,
//     from one or more start vertices. Supports:
//   - Pre-order (OnVisit) and post-order (OnExit) hooks
//   - Early stop via ErrStop from a hook
//   - Neighbor filtering (bounded windows, kind masks)
//   - ReversePostOrder: orders a possibly cyclic subgraph so that every edge
//     not closing a cycle points forward. Edges into a vertex that is still on
//     the work stack are ignored instead of failing.
//   - StronglyConnected: Tarjan's algorithm, returning components sinks-first.
//
// All three walk an explicit work stack instead of recursing, so stack usage
// is bounded on deep graphs.
//
// The traversals do not own a graph type. Callers pass a NeighborFunc that
// returns the IDs adjacent to a vertex in the direction of travel, which lets
// the same code walk forward edges, reverse edges, a transient subgraph or a
// single strongly connected component.
//
// Key Types & Constants:
//
//   - NeighborFunc: adjacency callback
//   - Option / DFSOptions: hooks and neighbor filter
//   - DFSResult: post-order, visited set, stop flag, diagnostics
//
// Complexity:
//
//   - DFS:               Time O(V+E), Memory O(V)
//   - ReversePostOrder:  Time O(V+E), Memory O(V)
//   - StronglyConnected: Time O(V+E), Memory O(V)
//
// Errors:
//
//   - ErrNilNeighbors    neighbor function is nil
//   - ErrStop            returned by a hook to end a traversal early (not reported)
//   - hook errors        propagated from OnVisit or OnExit
package dfs
