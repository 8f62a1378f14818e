// SPDX-License-Identifier: MIT

package depgraph_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/incgraph/core"
	"github.com/katalvlaran/incgraph/depgraph"
)

// TestAddVertex_Duplicate rejects ids that are committed or still pending.
func TestAddVertex_Duplicate(t *testing.T) {
	g := newGraph(t)
	addVertices(t, g, "a")

	assert.ErrorIs(t, g.AddVertex(core.NewVertex("a", nil)), depgraph.ErrDuplicateVertex)
	process(t, g, newRecorder())
	assert.ErrorIs(t, g.AddVertex(core.NewVertex("a", nil)), depgraph.ErrDuplicateVertex)

	assert.ErrorIs(t, g.AddVertex(nil), core.ErrNilVertex)
	assert.ErrorIs(t, g.AddVertex(core.NewVertex("", nil)), core.ErrEmptyVertexID)
}

// TestAddVertex_QueuedUntilProcess keeps new vertices out of the order until a batch.
func TestAddVertex_QueuedUntilProcess(t *testing.T) {
	g := newGraph(t)
	addVertices(t, g, "a", "b")

	assert.Empty(t, g.Order())
	assert.True(t, g.Has("a"))
	assert.Equal(t, 2, g.Stats().Pending)

	process(t, g, newRecorder())
	assert.Equal(t, []string{"a", "b"}, g.Order())
	assert.Equal(t, 0, g.Stats().Pending)
}

// TestRemoveVertex_Errors covers unknown ids, roots and cycle members.
func TestRemoveVertex_Errors(t *testing.T) {
	g := cycleGraph(t)
	process(t, g, newRecorder())

	assert.ErrorIs(t, g.RemoveVertex("zz"), depgraph.ErrUnknownVertex)
	assert.ErrorIs(t, g.RemoveVertex("e"), depgraph.ErrInvariantViolation)
	assert.ErrorIs(t, g.RemoveVertex("c"), depgraph.ErrInvariantViolation)

	require.NoError(t, g.RemoveVertex("a"))
	assert.ErrorIs(t, g.RemoveVertex("a"), depgraph.ErrUnknownVertex)
}

// TestRemoveVertex_CancelsPendingAdd never materializes an added-then-removed vertex.
func TestRemoveVertex_CancelsPendingAdd(t *testing.T) {
	g := newGraph(t)
	addVertices(t, g, "a", "x")
	addHard(t, g, [2]string{"a", "x"})
	require.NoError(t, g.MarkVertexDirty("x"))

	require.NoError(t, g.RemoveVertex("x"))
	assert.False(t, g.Has("x"))
	assert.False(t, g.IsDirty("x"))
	assert.Equal(t, 1, g.Stats().Pending)

	process(t, g, newRecorder())
	assert.Equal(t, []string{"a"}, g.Order())
	assert.Equal(t, 0, g.Stats().Edges)
}

// TestSlotReuse puts a new vertex into the hole left by a removed one.
func TestSlotReuse(t *testing.T) {
	g := newGraph(t)
	addVertices(t, g, "a", "x", "c")
	process(t, g, newRecorder())

	require.NoError(t, g.RemoveVertex("x"))
	process(t, g, newRecorder())
	assert.Equal(t, []string{"a", "", "c"}, g.Order())

	addVertices(t, g, "y")
	process(t, g, newRecorder())
	assert.Equal(t, []string{"a", "y", "c"}, g.Order())

	idx, ok := g.Index("y")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

// TestRemoveThenReAdd reuses an id inside one batch; old edges do not survive.
func TestRemoveThenReAdd(t *testing.T) {
	g := newGraph(t)
	addVertices(t, g, "a", "x")
	addHard(t, g, [2]string{"a", "x"})
	process(t, g, newRecorder())

	require.NoError(t, g.RemoveVertex("x"))
	addVertices(t, g, "x")
	process(t, g, newRecorder())

	preds, err := g.Predecessors("x", core.Any)
	require.NoError(t, err)
	assert.Empty(t, preds)
	assert.Equal(t, []string{"a", "x"}, g.Order())
}

// TestEdge_Errors covers unknown endpoints and invalid kinds.
func TestEdge_Errors(t *testing.T) {
	g := newGraph(t)
	addVertices(t, g, "a")

	assert.ErrorIs(t, g.AddEdge("a", "zz", core.Hard), depgraph.ErrUnknownVertex)
	assert.ErrorIs(t, g.RemoveEdge("zz", "a", core.Hard), depgraph.ErrUnknownVertex)
	assert.ErrorIs(t, g.AddEdge("a", "a", 0), depgraph.ErrInvalidKind)
	assert.ErrorIs(t, g.AddEdge("a", "a", 0b100), depgraph.ErrInvalidKind)
}

// TestEdgeKinds_Lookup filters committed edges by kind mask in slot order.
func TestEdgeKinds_Lookup(t *testing.T) {
	g := newGraph(t)
	addVertices(t, g, "a", "b", "c")
	require.NoError(t, g.AddEdge("a", "c", core.Soft))
	require.NoError(t, g.AddEdge("a", "b", core.Hard))
	require.NoError(t, g.AddEdge("a", "b", core.Soft))
	process(t, g, newRecorder())

	succ, err := g.Successors("a", core.Any)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, succ)

	succ, _ = g.Successors("a", core.Hard)
	assert.Equal(t, []string{"b"}, succ)

	require.NoError(t, g.RemoveEdge("a", "b", core.Hard))
	process(t, g, newRecorder())
	succ, _ = g.Successors("a", core.Hard)
	assert.Empty(t, succ)
	preds, _ := g.Predecessors("b", core.Soft)
	assert.Equal(t, []string{"a"}, preds)

	_, err = g.Successors("zz", core.Any)
	assert.ErrorIs(t, err, depgraph.ErrUnknownVertex)
}

// TestMarkers covers root and dirty bookkeeping and their errors.
func TestMarkers(t *testing.T) {
	g := newGraph(t)
	addVertices(t, g, "a")

	require.NoError(t, g.MarkRoot("a"))
	assert.True(t, g.IsRoot("a"))
	assert.ErrorIs(t, g.MarkRoot("a"), depgraph.ErrInvariantViolation)
	require.NoError(t, g.UnmarkRoot("a"))
	assert.ErrorIs(t, g.UnmarkRoot("a"), depgraph.ErrInvariantViolation)
	assert.ErrorIs(t, g.MarkRoot("zz"), depgraph.ErrUnknownVertex)

	require.NoError(t, g.MarkVertexDirty("a"))
	assert.True(t, g.IsDirty("a"))
	require.NoError(t, g.ClearVertexDirty("a"))
	assert.False(t, g.IsDirty("a"))
	assert.ErrorIs(t, g.MarkVertexDirty("zz"), depgraph.ErrUnknownVertex)

	assert.ErrorIs(t, g.MarkVertexCycleInformed("a"), depgraph.ErrInvariantViolation)
	assert.ErrorIs(t, g.MarkVertexCycleInformed("zz"), depgraph.ErrUnknownVertex)
}

// TestReplaceIncoming diffs against committed and queued HARD edges.
func TestReplaceIncoming(t *testing.T) {
	g := newGraph(t)
	addVertices(t, g, "a", "b", "c", "d", "t")
	addHard(t, g, [2]string{"a", "t"}, [2]string{"b", "t"})
	require.NoError(t, g.AddEdge("c", "t", core.Soft))
	process(t, g, newRecorder())

	// queued but not yet applied
	addHard(t, g, [2]string{"d", "t"})

	removed, added, err := g.ReplaceIncoming("t", []string{"b", "c", "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "d"}, removed)
	assert.Equal(t, []string{"c"}, added)

	process(t, g, newRecorder())
	preds, _ := g.Predecessors("t", core.Hard)
	assert.Equal(t, []string{"b", "c"}, preds)
	preds, _ = g.Predecessors("t", core.Soft)
	assert.Equal(t, []string{"c"}, preds)

	// nothing changes when the set already matches
	removed, added, err = g.ReplaceIncoming("t", []string{"c", "b"})
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.Empty(t, added)
}

// TestReplaceIncoming_UnknownLeavesLogAlone validates before queuing anything.
func TestReplaceIncoming_UnknownLeavesLogAlone(t *testing.T) {
	g := newGraph(t)
	addVertices(t, g, "a", "t")
	process(t, g, newRecorder())

	_, _, err := g.ReplaceIncoming("t", []string{"a", "zz"})
	assert.ErrorIs(t, err, depgraph.ErrUnknownVertex)
	assert.Equal(t, 0, g.Stats().Pending)

	_, _, err = g.ReplaceIncoming("zz", nil)
	assert.ErrorIs(t, err, depgraph.ErrUnknownVertex)
}

// TestStats reports sizes and counters.
func TestStats(t *testing.T) {
	g := cycleGraph(t)
	process(t, g, newRecorder())

	s := g.Stats()
	assert.Equal(t, 5, s.Vertices)
	assert.Equal(t, 5, s.Edges)
	assert.Equal(t, 1, s.Cycles)
	assert.Equal(t, 1, s.CyclesFormed)
	assert.Equal(t, 1, s.Roots)
	assert.Zero(t, s.Dirty)
	assert.Equal(t, 5, s.Callbacks)
}

// TestWriteDOT renders clusters, roots and edge styles.
func TestWriteDOT(t *testing.T) {
	g := cycleGraph(t)
	require.NoError(t, g.AddEdge("a", "e", core.Soft))
	process(t, g, newRecorder())

	var buf bytes.Buffer
	require.NoError(t, g.WriteDOT(&buf))
	out := buf.String()

	assert.Contains(t, out, "digraph incgraph {")
	assert.Contains(t, out, "subgraph cluster_0")
	assert.Contains(t, out, `"e" [label="e #4", shape=doublecircle]`)
	assert.Contains(t, out, `"a" -> "b" [style=solid]`)
	assert.Contains(t, out, `"a" -> "e" [style=dashed]`)
}

// TestNew_Options accepts a custom cache size and ignores nil loggers.
func TestNew_Options(t *testing.T) {
	g := newGraph(t, depgraph.WithReachCacheSize(2), depgraph.WithLogger(nil))
	addVertices(t, g, "a", "b", "c", "d")
	addHard(t, g, [2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "d"})
	require.NoError(t, g.MarkRoot("d"))
	require.NoError(t, g.MarkVertexDirty("a"))

	rec := newRecorder()
	process(t, g, rec)
	assert.Equal(t, []string{"a:RECALCULATE", "b:RECALCULATE", "c:RECALCULATE", "d:RECALCULATE"}, rec.seq)
}

// TestAction_String round-trips every action name.
func TestAction_String(t *testing.T) {
	for _, a := range []depgraph.Action{depgraph.Invalidate, depgraph.Recalculate, depgraph.Cycle, depgraph.RecalculateCycle} {
		got, err := depgraph.ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	assert.Equal(t, "Action(9)", depgraph.Action(9).String())
	_, err := depgraph.ParseAction("explode")
	assert.Error(t, err)
}
