// SPDX-License-Identifier: MIT

package depgraph_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/incgraph/core"
	"github.com/katalvlaran/incgraph/depgraph"
)

// recorder captures every callback, both as a flat sequence and per vertex.
type recorder struct {
	seq   []string
	trace map[string][]depgraph.Action
	hook  func(v *core.Vertex, a depgraph.Action)
	ret   bool
}

func newRecorder() *recorder {
	return &recorder{trace: make(map[string][]depgraph.Action), ret: true}
}

func (r *recorder) fn(v *core.Vertex, a depgraph.Action) bool {
	r.seq = append(r.seq, v.ID+":"+a.String())
	r.trace[v.ID] = append(r.trace[v.ID], a)
	if r.hook != nil {
		r.hook(v, a)
	}

	return r.ret
}

func (r *recorder) reset() {
	r.seq = nil
	r.trace = make(map[string][]depgraph.Action)
}

// newGraph returns an empty graph or fails the test.
func newGraph(t testing.TB, opts ...depgraph.Option) *depgraph.Graph {
	t.Helper()
	g, err := depgraph.New(opts...)
	require.NoError(t, err)

	return g
}

// addVertices registers ids in order.
func addVertices(t testing.TB, g *depgraph.Graph, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, g.AddVertex(core.NewVertex(id, nil)))
	}
}

// addHard queues HARD edges given as from,to pairs.
func addHard(t testing.TB, g *depgraph.Graph, pairs ...[2]string) {
	t.Helper()
	for _, p := range pairs {
		require.NoError(t, g.AddEdge(p[0], p[1], core.Hard))
	}
}

// process runs Process with rec and checks invariants afterwards.
func process(t testing.TB, g *depgraph.Graph, rec *recorder) {
	t.Helper()
	require.NoError(t, g.Process(rec.fn))
	require.NoError(t, g.CheckInvariants())
}

// processWithin runs Process with rec on a separate goroutine and fails the
// test when it has not returned after d.
func processWithin(t testing.TB, g *depgraph.Graph, rec *recorder, d time.Duration) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- g.Process(rec.fn) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(d):
		t.Fatalf("Process did not return within %s (dirty=%d)", d, g.Stats().Dirty)
	}
	require.NoError(t, g.CheckInvariants())
}

// cycleGraph builds the a..e graph with the b,c,d cycle, e as root and a dirty.
func cycleGraph(t testing.TB) *depgraph.Graph {
	t.Helper()
	g := newGraph(t)
	addVertices(t, g, "a", "b", "c", "d", "e")
	addHard(t, g,
		[2]string{"a", "b"},
		[2]string{"b", "c"},
		[2]string{"c", "d"},
		[2]string{"d", "b"},
		[2]string{"c", "e"},
	)
	require.NoError(t, g.MarkRoot("e"))
	require.NoError(t, g.MarkVertexDirty("a"))

	return g
}

// actions is shorthand for a callback trace.
func actions(a ...depgraph.Action) []depgraph.Action { return a }
