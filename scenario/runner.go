// SPDX-License-Identifier: MIT

package scenario

import (
	"errors"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/katalvlaran/incgraph/core"
	"github.com/katalvlaran/incgraph/depgraph"
)

// errorClasses maps the names usable in Step.Error to sentinels.
var errorClasses = map[string]error{
	"duplicate": depgraph.ErrDuplicateVertex,
	"unknown":   depgraph.ErrUnknownVertex,
	"invariant": depgraph.ErrInvariantViolation,
	"kind":      depgraph.ErrInvalidKind,
}

// StepResult records what one step did.
type StepResult struct {
	Index int
	Op    string

	// Trace and Sequence are filled for process steps.
	Trace    map[string][]string
	Sequence []string

	// Err is the error returned by the graph, if any.
	Err error

	// Failures lists every expectation the step missed.
	Failures []string
}

// Failed reports whether the step missed an expectation.
func (r StepResult) Failed() bool { return len(r.Failures) > 0 }

// Result is the outcome of a scenario run.
type Result struct {
	Name  string
	Steps []StepResult
	Graph *depgraph.Graph
}

// Failed reports whether any step missed an expectation.
func (r *Result) Failed() bool {
	for _, st := range r.Steps {
		if st.Failed() {
			return true
		}
	}

	return false
}

// Run builds the initial graph, executes every step and checks expectations.
// It returns ErrExpectation together with the full Result when a step
// misbehaves, and a plain error when the setup itself is rejected.
func Run(s *Scenario, opts ...depgraph.Option) (*Result, error) {
	g, err := depgraph.New(opts...)
	if err != nil {
		return nil, err
	}
	if err := setup(g, s); err != nil {
		return nil, fmt.Errorf("scenario %q: setup: %w", s.Name, err)
	}

	res := &Result{Name: s.Name, Graph: g}
	for i, st := range s.Steps {
		res.Steps = append(res.Steps, runStep(g, i, st))
	}
	if res.Failed() {
		return res, fmt.Errorf("%w: scenario %q", ErrExpectation, s.Name)
	}

	return res, nil
}

// setup registers vertices, edges, roots and dirty marks.
func setup(g *depgraph.Graph, s *Scenario) error {
	for _, v := range s.Vertices {
		if err := g.AddVertex(core.NewVertex(v.ID, nil)); err != nil {
			return err
		}
	}
	for _, e := range s.Edges {
		kind, err := core.ParseEdgeKind(e.Kind)
		if err != nil {
			return err
		}
		if err := g.AddEdge(e.From, e.To, kind); err != nil {
			return err
		}
	}
	for _, id := range s.Roots {
		if err := g.MarkRoot(id); err != nil {
			return err
		}
	}
	for _, v := range s.Vertices {
		if v.Dirty {
			if err := g.MarkVertexDirty(v.ID); err != nil {
				return err
			}
		}
	}

	return nil
}

// runStep applies one step and evaluates its expectations.
func runStep(g *depgraph.Graph, i int, st Step) StepResult {
	res := StepResult{Index: i, Op: st.Op}

	// 1) Apply
	var removed, added []string
	switch st.Op {
	case OpAddVertex:
		res.Err = g.AddVertex(core.NewVertex(st.ID, nil))
	case OpRemoveVertex:
		res.Err = g.RemoveVertex(st.ID)
	case OpAddEdge:
		res.Err = g.AddEdge(st.From, st.To, stepKind(st.Kind))
	case OpRemoveEdge:
		res.Err = g.RemoveEdge(st.From, st.To, stepKind(st.Kind))
	case OpMarkDirty:
		res.Err = g.MarkVertexDirty(st.ID)
	case OpClearDirty:
		res.Err = g.ClearVertexDirty(st.ID)
	case OpMarkRoot:
		res.Err = g.MarkRoot(st.ID)
	case OpUnmarkRoot:
		res.Err = g.UnmarkRoot(st.ID)
	case OpMarkInformed:
		res.Err = g.MarkVertexCycleInformed(st.ID)
	case OpReplaceIncoming:
		removed, added, res.Err = g.ReplaceIncoming(st.ID, st.Sources)
	case OpProcess:
		res.Err = runProcess(g, st, &res)
	case OpCheck:
		res.Err = g.CheckInvariants()
	}

	// 2) Error expectation
	if st.Error != "" {
		if !errors.Is(res.Err, errorClasses[st.Error]) {
			res.Failures = append(res.Failures, fmt.Sprintf("want %s error, got %v", st.Error, res.Err))
		}
		return res
	}
	if res.Err != nil {
		res.Failures = append(res.Failures, fmt.Sprintf("unexpected error: %v", res.Err))
		return res
	}

	// 3) Value expectations
	if st.Op == OpReplaceIncoming {
		res.expect("removed", st.Removed, removed)
		res.expect("added", st.Added, added)
	}
	if st.Expect != nil {
		res.expect("trace", canonical(st.Expect), res.Trace)
	}
	if st.Sequence != nil {
		res.expect("sequence", st.Sequence, res.Sequence)
	}
	if st.Order != nil {
		res.expect("order", st.Order, g.Order())
	}

	return res
}

// runProcess runs Process with a recording callback.
func runProcess(g *depgraph.Graph, st Step, res *StepResult) error {
	ret := true
	if st.Return != nil {
		ret = *st.Return
	}
	res.Trace = make(map[string][]string)

	return g.Process(func(v *core.Vertex, a depgraph.Action) bool {
		res.Trace[v.ID] = append(res.Trace[v.ID], a.String())
		res.Sequence = append(res.Sequence, v.ID+":"+a.String())
		return ret
	})
}

// expect records a failure when got differs from want. Nil and empty
// slices compare equal.
func (r *StepResult) expect(what string, want, got any) {
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		r.Failures = append(r.Failures, fmt.Sprintf("%s mismatch (-want +got):\n%s", what, diff))
	}
}

// canonical rewrites expected action names to their Action.String form.
// Names were checked by Validate, so unknown ones are kept verbatim.
func canonical(expect map[string][]string) map[string][]string {
	out := make(map[string][]string, len(expect))
	for id, names := range expect {
		for _, n := range names {
			if a, err := depgraph.ParseAction(n); err == nil {
				n = a.String()
			}
			out[id] = append(out[id], n)
		}
	}

	return out
}

// stepKind parses a step's kind, mapping anything unparsable to 0 so that
// the graph reports ErrInvalidKind.
func stepKind(s string) core.EdgeKind {
	k, err := core.ParseEdgeKind(s)
	if err != nil {
		return 0
	}

	return k
}
