// SPDX-License-Identifier: MIT

// Package incgraph is an incremental dependency graph engine: it keeps a
// changing set of vertices in topological order, recognises the cycles that
// appear and disappear as edges move, and walks dirty vertices toward the
// roots that are observed from outside.
//
// Packages:
//
//	core/          slot-ordered vertex/edge store with SOFT and HARD edge kinds
//	dfs/           iterative DFS, reverse post-order and Tarjan SCC over NeighborFunc
//	depgraph/      the engine: batched mutations, windowed incremental sort,
//	               known-cycle records, root-reachability cache, Process traversal
//	scenario/      TOML scenarios replayed against depgraph with trace expectations
//	cmd/incgraph/  CLI that runs, dumps and checks scenarios
//
// Quick picture:
//
//	price ──► subtotal ──► total (root)
//	  qty ──►    ▲
//	             │ soft
//	          coupon
//
// Marking price dirty and calling Process recalculates price, subtotal and
// total in that order. A change of coupon alone never propagates: SOFT edges
// order vertices but do not carry dirtiness.
//
// Mutations are queued and applied at the next Process call, or whenever a
// callback returns, so callbacks may reshape the graph while it is walked.
//
//	go get github.com/katalvlaran/incgraph
package incgraph
