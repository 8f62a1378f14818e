// SPDX-License-Identifier: MIT

package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/incgraph/core"
)

// Common vertex IDs used across core tests.
const (
	VertexA = "A"
	VertexB = "B"
	VertexC = "C"
	VertexD = "D"
	VertexX = "X"
)

// newStoreWith returns a Store holding ids in slot order.
func newStoreWith(t *testing.T, ids ...string) *core.Store {
	t.Helper()
	s := core.NewStore()
	for _, id := range ids {
		_, err := s.Insert(core.NewVertex(id, nil))
		require.NoError(t, err)
	}

	return s
}

// TestInsert_AppendsInOrder verifies slots are handed out sequentially.
func TestInsert_AppendsInOrder(t *testing.T) {
	s := newStoreWith(t, VertexA, VertexB, VertexC)

	assert.Equal(t, []string{VertexA, VertexB, VertexC}, s.Order())
	assert.Equal(t, 3, s.VertexCount())
	assert.Equal(t, 2, s.MustIndex(VertexC))
}

// TestInsert_Rejects covers nil, empty and duplicate vertices.
func TestInsert_Rejects(t *testing.T) {
	s := newStoreWith(t, VertexA)

	_, err := s.Insert(nil)
	assert.ErrorIs(t, err, core.ErrNilVertex)

	_, err = s.Insert(core.NewVertex("", nil))
	assert.ErrorIs(t, err, core.ErrEmptyVertexID)

	_, err = s.Insert(core.NewVertex(VertexA, nil))
	assert.ErrorIs(t, err, core.ErrVertexExists)
}

// TestRemove_LeavesHoleThenReuses checks that the first hole is reused.
func TestRemove_LeavesHoleThenReuses(t *testing.T) {
	s := newStoreWith(t, VertexA, VertexB, VertexC, VertexD)

	slot, err := s.Remove(VertexB)
	require.NoError(t, err)
	assert.Equal(t, 1, slot)
	_, err = s.Remove(VertexD)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, s.Holes())
	assert.Nil(t, s.At(1))

	slot, err = s.Insert(core.NewVertex(VertexX, nil))
	require.NoError(t, err)
	assert.Equal(t, 1, slot)
	assert.Equal(t, []string{VertexA, VertexX, VertexC, ""}, s.Order())
	assert.Equal(t, []int{3}, s.Holes())
}

// TestRemove_Unknown returns ErrVertexNotFound.
func TestRemove_Unknown(t *testing.T) {
	s := core.NewStore()
	_, err := s.Remove(VertexA)
	assert.ErrorIs(t, err, core.ErrVertexNotFound)
}

// TestRemove_DropsIncidentEdges verifies in/out adjacency and self-loops are cleared.
func TestRemove_DropsIncidentEdges(t *testing.T) {
	s := newStoreWith(t, VertexA, VertexB, VertexC)
	_, _, _ = s.AddEdge(VertexA, VertexB, core.Hard)
	_, _, _ = s.AddEdge(VertexB, VertexC, core.Soft)
	_, _, _ = s.AddEdge(VertexB, VertexB, core.Hard)
	require.Equal(t, 3, s.EdgeCount())

	_, err := s.Remove(VertexB)
	require.NoError(t, err)

	assert.Equal(t, 0, s.EdgeCount())
	assert.Empty(t, s.Successors(VertexA, core.Any))
	assert.Empty(t, s.Predecessors(VertexC, core.Any))
}

// TestEdgeKinds_Accumulate covers OR on add and AND-NOT on remove.
func TestEdgeKinds_Accumulate(t *testing.T) {
	s := newStoreWith(t, VertexA, VertexB)

	prev, now, err := s.AddEdge(VertexA, VertexB, core.Soft)
	require.NoError(t, err)
	assert.Equal(t, core.EdgeKind(0), prev)
	assert.Equal(t, core.Soft, now)

	prev, now, err = s.AddEdge(VertexA, VertexB, core.Hard)
	require.NoError(t, err)
	assert.Equal(t, core.Soft, prev)
	assert.Equal(t, core.Any, now)
	assert.Equal(t, 1, s.EdgeCount())

	prev, now, err = s.RemoveEdge(VertexA, VertexB, core.Soft)
	require.NoError(t, err)
	assert.Equal(t, core.Any, prev)
	assert.Equal(t, core.Hard, now)
	assert.Equal(t, []string{VertexB}, s.Successors(VertexA, core.Hard))
	assert.Empty(t, s.Successors(VertexA, core.Soft))

	_, now, err = s.RemoveEdge(VertexA, VertexB, core.Any)
	require.NoError(t, err)
	assert.Equal(t, core.EdgeKind(0), now)
	assert.Equal(t, 0, s.EdgeCount())
	assert.False(t, s.HasEdge(VertexA, VertexB, core.Any))
}

// TestEdge_Errors covers invalid kinds and unknown endpoints.
func TestEdge_Errors(t *testing.T) {
	s := newStoreWith(t, VertexA)

	_, _, err := s.AddEdge(VertexA, VertexA, 0)
	assert.ErrorIs(t, err, core.ErrInvalidKind)
	_, _, err = s.AddEdge(VertexA, VertexA, 0b100)
	assert.ErrorIs(t, err, core.ErrInvalidKind)
	_, _, err = s.AddEdge(VertexA, VertexB, core.Hard)
	assert.ErrorIs(t, err, core.ErrVertexNotFound)
	_, _, err = s.RemoveEdge(VertexB, VertexA, core.Hard)
	assert.ErrorIs(t, err, core.ErrVertexNotFound)
}

// TestSuccessors_SortedBySlot verifies lookups follow topological order.
func TestSuccessors_SortedBySlot(t *testing.T) {
	s := newStoreWith(t, VertexA, VertexD, VertexC, VertexB)
	_, _, _ = s.AddEdge(VertexA, VertexB, core.Hard)
	_, _, _ = s.AddEdge(VertexA, VertexC, core.Soft)
	_, _, _ = s.AddEdge(VertexA, VertexD, core.Hard)

	assert.Equal(t, []string{VertexD, VertexC, VertexB}, s.Successors(VertexA, core.Any))
	assert.Equal(t, []string{VertexD, VertexB}, s.Successors(VertexA, core.Hard))
	assert.Equal(t, []string{VertexA}, s.Predecessors(VertexC, core.Soft))
}

// TestEachPredecessor_MirrorsOutgoing visits incoming edges with their kinds.
func TestEachPredecessor_MirrorsOutgoing(t *testing.T) {
	s := newStoreWith(t, VertexA, VertexB, VertexC)
	_, _, _ = s.AddEdge(VertexA, VertexC, core.Hard)
	_, _, _ = s.AddEdge(VertexB, VertexC, core.Soft)

	got := make(map[string]core.EdgeKind)
	s.EachPredecessor(VertexC, core.Any, func(from string, k core.EdgeKind) {
		got[from] = k
		assert.Equal(t, s.Kind(from, VertexC), k)
	})
	assert.Equal(t, map[string]core.EdgeKind{VertexA: core.Hard, VertexB: core.Soft}, got)

	hard := 0
	s.EachPredecessor(VertexC, core.Hard, func(string, core.EdgeKind) { hard++ })
	assert.Equal(t, 1, hard)
}

// TestRearrange_CompactsWindow moves vertices and pushes holes to the window end.
func TestRearrange_CompactsWindow(t *testing.T) {
	s := newStoreWith(t, VertexA, VertexB, VertexC, VertexD)
	_, err := s.Remove(VertexB)
	require.NoError(t, err)

	require.NoError(t, s.Rearrange(0, 3, []string{VertexD, VertexA, VertexC}))

	assert.Equal(t, []string{VertexD, VertexA, VertexC, ""}, s.Order())
	assert.Equal(t, []int{3}, s.Holes())
	assert.Equal(t, 0, s.MustIndex(VertexD))
}

// TestRearrange_BadWindow leaves the store untouched on mismatched input.
func TestRearrange_BadWindow(t *testing.T) {
	s := newStoreWith(t, VertexA, VertexB, VertexC)

	assert.ErrorIs(t, s.Rearrange(0, 1, []string{VertexA}), core.ErrBadWindow)
	assert.ErrorIs(t, s.Rearrange(0, 1, []string{VertexA, VertexC}), core.ErrBadWindow)
	assert.ErrorIs(t, s.Rearrange(2, 5, []string{VertexC}), core.ErrBadWindow)
	assert.Equal(t, []string{VertexA, VertexB, VertexC}, s.Order())
}

// TestEdgeKind_String covers rendering and parsing.
func TestEdgeKind_String(t *testing.T) {
	assert.Equal(t, "none", core.EdgeKind(0).String())
	assert.Equal(t, "soft", core.Soft.String())
	assert.Equal(t, "hard", core.Hard.String())
	assert.Equal(t, "soft|hard", core.Any.String())

	for _, in := range []string{"soft", "hard", "any"} {
		k, err := core.ParseEdgeKind(in)
		require.NoError(t, err)
		assert.True(t, k.Valid())
	}
	_, err := core.ParseEdgeKind("weird")
	assert.ErrorIs(t, err, core.ErrInvalidKind)
}
