// SPDX-License-Identifier: MIT
//
// File: graph.go
// Role: Graph context object, constructor and read-only introspection.
// Determinism:
//   - Every list returned here is in topological (slot) order.

package depgraph

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/katalvlaran/incgraph/core"
)

// noRewind means no index was touched since the last reset.
const noRewind = math.MaxInt

// Graph keeps registered vertices in a topological order, tracks known cycles
// and drives the dirty-propagation traversal.
//
// A Graph is owned by a single logical caller and is not safe for concurrent
// use. The only re-entrancy allowed is mutation from inside a ProcessFunc.
type Graph struct {
	store *core.Store // committed vertices and edges
	log   *log.Logger

	vertices map[string]*core.Vertex // registered: committed or pending addition
	pending  []pendingOp

	dirty  map[string]struct{}
	roots  map[string]struct{}
	cycles map[string]*cycle // member id -> shared record

	reach *lru.Cache[string, bool]

	// rewind is the minimum slot touched since the traversal last looked.
	rewind     int
	processing bool

	stats Stats
}

// New returns an empty Graph configured by opts.
func New(opts ...Option) (*Graph, error) {
	// 1) Defaults, then caller overrides
	o := options{
		logger:         log.New(io.Discard),
		reachCacheSize: DefaultReachCacheSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	// 2) Reachability memo
	reach, err := lru.New[string, bool](o.reachCacheSize)
	if err != nil {
		return nil, fmt.Errorf("depgraph: reach cache: %w", err)
	}

	return &Graph{
		store:    core.NewStore(),
		log:      o.logger,
		vertices: make(map[string]*core.Vertex),
		dirty:    make(map[string]struct{}),
		roots:    make(map[string]struct{}),
		cycles:   make(map[string]*cycle),
		reach:    reach,
		rewind:   noRewind,
	}, nil
}

// Order returns committed vertex ids by slot, with "" for holes.
// Pending additions are not included until the next batch application.
func (g *Graph) Order() []string {
	return g.store.Order()
}

// Index returns the committed slot of id.
func (g *Graph) Index(id string) (int, bool) {
	return g.store.Index(id)
}

// Vertex returns the registered vertex id, committed or pending.
func (g *Graph) Vertex(id string) (*core.Vertex, bool) {
	v, ok := g.vertices[id]
	return v, ok
}

// Has reports whether id is registered.
func (g *Graph) Has(id string) bool {
	_, ok := g.vertices[id]
	return ok
}

// IsDirty reports whether id is marked dirty.
func (g *Graph) IsDirty(id string) bool {
	_, ok := g.dirty[id]
	return ok
}

// IsRoot reports whether id is marked root.
func (g *Graph) IsRoot(id string) bool {
	_, ok := g.roots[id]
	return ok
}

// CycleMembers returns the members of the known cycle containing id in slot
// order, or nil when id is not part of a known cycle.
func (g *Graph) CycleMembers(id string) []string {
	c := g.cycles[id]
	if c == nil {
		return nil
	}

	return c.sorted(g.store)
}

// Successors returns the committed successors of id whose edge kind
// intersects mask, in topological order.
func (g *Graph) Successors(id string, mask core.EdgeKind) ([]string, error) {
	if !g.Has(id) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVertex, id)
	}

	return g.store.Successors(id, mask), nil
}

// Predecessors returns the committed predecessors of id whose edge kind
// intersects mask, in topological order.
func (g *Graph) Predecessors(id string, mask core.EdgeKind) ([]string, error) {
	if !g.Has(id) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVertex, id)
	}

	return g.store.Predecessors(id, mask), nil
}

// Stats returns a snapshot of sizes and counters.
func (g *Graph) Stats() Stats {
	s := g.stats
	s.Vertices = g.store.VertexCount()
	s.Edges = g.store.EdgeCount()
	s.Holes = g.store.HoleCount()
	s.Pending = len(g.pending)
	s.Dirty = len(g.dirty)
	s.Roots = len(g.roots)

	seen := make(map[*cycle]struct{})
	for _, c := range g.cycles {
		seen[c] = struct{}{}
	}
	s.Cycles = len(seen)

	return s
}

// succAny lists committed successors over every edge kind, in slot order.
func (g *Graph) succAny(id string) []string {
	return g.store.Successors(id, core.Any)
}

// predAny lists committed predecessors over every edge kind, in slot order.
func (g *Graph) predAny(id string) []string {
	return g.store.Predecessors(id, core.Any)
}

// noteRewind lowers the rewind mark to slot.
func (g *Graph) noteRewind(slot int) {
	if slot >= 0 && slot < g.rewind {
		g.rewind = slot
	}
}

// markDirty flags id and, when it is committed, notes its slot for rewind.
// A vertex already unregistered but still committed until the next batch
// is left alone.
func (g *Graph) markDirty(id string) {
	if !g.Has(id) {
		return
	}
	g.dirty[id] = struct{}{}
	if i, ok := g.store.Index(id); ok {
		g.noteRewind(i)
	}
}

// markDirtyExpanding flags id, or every member of its known cycle.
func (g *Graph) markDirtyExpanding(id string) {
	if c := g.cycles[id]; c != nil {
		for m := range c.members {
			g.markDirty(m)
		}
		return
	}
	g.markDirty(id)
}
