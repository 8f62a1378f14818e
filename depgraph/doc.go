// SPDX-License-Identifier: MIT

// Package depgraph is an incremental dependency graph engine.
//
// A Graph keeps a set of computation vertices in a topological order that is
// repaired incrementally as edges appear (a windowed Pearce–Kelly sort),
// recognises strongly connected components as atomic "known cycles" (Tarjan),
// and drives Process: a dirty-propagation traversal that tells a client
// callback which vertices to recompute, invalidate or report as cyclic.
//
// Lifecycle:
//
//	g, _ := depgraph.New(depgraph.WithLogger(logger))
//	_ = g.AddVertex(core.NewVertex("a", nil))  // queued
//	_ = g.AddEdge("a", "b", core.Hard)         // queued
//	_ = g.MarkRoot("b")                        // immediate
//	_ = g.MarkVertexDirty("a")                 // immediate
//	_ = g.Process(func(v *core.Vertex, a depgraph.Action) bool {
//	        // recompute v; return true if dependents must follow
//	        return true
//	})
//
// Structural changes are recorded in a pending log and committed in one batch
// before each traversal pass and after every callback, so the callback may
// freely add or remove vertices and edges. Markers (dirty, root, informed)
// take effect immediately.
//
// Actions (closed set):
//
//	Invalidate        drop the current result, do not recompute
//	Recalculate       recompute under ordinary rules
//	Cycle             first notification that the vertex is cyclic
//	RecalculateCycle  an informed cycle member was dirtied again
//
// Only dirty vertices that reach a root (over edges of any kind) are
// recomputed. The rest are reported with Invalidate at the end of Process,
// following HARD edges while the callback asks for propagation.
//
// Concurrency: none. A Graph belongs to one caller; Process must not be
// called from its own callback.
package depgraph
