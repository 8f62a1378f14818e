// SPDX-License-Identifier: MIT

// Package scenario loads declarative TOML descriptions of a dependency graph
// and a sequence of steps, runs them against a depgraph.Graph and compares
// the callback traces with the expectations written in the file.
//
// A scenario file looks like:
//
//	name  = "cycle detection"
//	roots = ["e"]
//
//	[[vertex]]
//	id    = "a"
//	dirty = true
//
//	[[edge]]
//	from = "a"
//	to   = "b"
//	kind = "hard"        # soft | hard | any, default hard
//
//	[[step]]
//	op = "process"
//	[step.expect]
//	a = ["RECALCULATE"]
//
// Supported step ops: add_vertex, remove_vertex, add_edge, remove_edge,
// mark_dirty, clear_dirty, mark_root, unmark_root, mark_informed,
// replace_incoming, process, check.
//
// A step may name the error it must fail with (duplicate, unknown,
// invariant, kind). Process steps may pin the per-vertex trace (expect), the
// flat callback sequence (sequence) and the resulting slot order (order).
package scenario
