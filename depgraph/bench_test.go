// SPDX-License-Identifier: MIT

package depgraph_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/incgraph/core"
	"github.com/katalvlaran/incgraph/depgraph"
)

// chain builds N0 -> N1 -> ... -> N(n-1) with the last vertex as root.
func chain(b *testing.B, n int) (*depgraph.Graph, []string) {
	b.Helper()
	g := newGraph(b)
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("N%d", i)
		require.NoError(b, g.AddVertex(core.NewVertex(ids[i], nil)))
		if i > 0 {
			require.NoError(b, g.AddEdge(ids[i-1], ids[i], core.Hard))
		}
	}
	require.NoError(b, g.MarkRoot(ids[n-1]))
	require.NoError(b, g.Process(func(*core.Vertex, depgraph.Action) bool { return false }))

	return g, ids
}

// BenchmarkProcess_Chain1000 measures a full propagation along a 1,000 vertex chain.
func BenchmarkProcess_Chain1000(b *testing.B) {
	g, ids := chain(b, 1000)
	fn := func(*core.Vertex, depgraph.Action) bool { return true }
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.MarkVertexDirty(ids[0])
		_ = g.Process(fn)
	}
}

// BenchmarkSorter_BackEdgeToggle measures forming and splitting a 1,000 vertex cycle.
func BenchmarkSorter_BackEdgeToggle(b *testing.B) {
	g, ids := chain(b, 1000)
	fn := func(*core.Vertex, depgraph.Action) bool { return false }
	last := ids[len(ids)-1]
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.AddEdge(last, ids[0], core.Soft)
		_ = g.Process(fn)
		_ = g.RemoveEdge(last, ids[0], core.Soft)
		_ = g.Process(fn)
	}
}
