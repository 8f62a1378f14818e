// SPDX-License-Identifier: MIT

// Package depgraph defines the Graph context object, its options, the closed
// set of traversal actions and the sentinel errors returned by mutations.
//
// Errors:
//
//	ErrDuplicateVertex    - AddVertex with an id that is registered or pending.
//	ErrUnknownVertex      - an operation named an id that is not registered.
//	ErrInvariantViolation - root removal, double root mark/unmark, removal of a
//	                        cycle member, re-entrant Process, broken invariants.
//	ErrInvalidKind        - edge kind is zero or has bits outside core.Any.
package depgraph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/incgraph/core"
)

// Sentinel errors for graph operations.
var (
	// ErrDuplicateVertex indicates the vertex id is already registered or pending.
	ErrDuplicateVertex = errors.New("depgraph: duplicate vertex")

	// ErrUnknownVertex indicates an operation referenced an unregistered vertex.
	ErrUnknownVertex = errors.New("depgraph: unknown vertex")

	// ErrInvariantViolation indicates a call that would break a structural invariant.
	ErrInvariantViolation = errors.New("depgraph: invariant violation")

	// ErrInvalidKind indicates an edge kind outside {Soft, Hard, Any}.
	ErrInvalidKind = errors.New("depgraph: invalid edge kind")
)

// Action is the closed set of transitions reported to a ProcessFunc.
type Action uint8

const (
	// Invalidate drops the vertex's current result without recomputing it.
	Invalidate Action = iota + 1

	// Recalculate recomputes the vertex under ordinary, acyclic rules.
	Recalculate

	// Cycle informs the vertex for the first time that it is part of a cycle.
	Cycle

	// RecalculateCycle is used for a cycle member that was already informed
	// and has been dirtied again.
	RecalculateCycle
)

// String returns the upper-case action name.
func (a Action) String() string {
	switch a {
	case Invalidate:
		return "INVALIDATE"
	case Recalculate:
		return "RECALCULATE"
	case Cycle:
		return "CYCLE"
	case RecalculateCycle:
		return "RECALCULATE_CYCLE"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// ParseAction is the inverse of Action.String. Matching ignores case.
func ParseAction(s string) (Action, error) {
	for a := Invalidate; a <= RecalculateCycle; a++ {
		if strings.EqualFold(s, a.String()) {
			return a, nil
		}
	}

	return 0, fmt.Errorf("depgraph: unknown action %q", s)
}

// ProcessFunc is invoked by Process once per recognized transition of a vertex.
// Returning true propagates dirtiness to the vertex's HARD dependents.
//
// The callback may mutate the graph (vertices, edges, markers); those changes
// are queued and applied before the traversal continues. It must not call
// Process.
type ProcessFunc func(v *core.Vertex, action Action) bool

// DefaultReachCacheSize bounds the root-reachability cache when no size is given.
const DefaultReachCacheSize = 4096

// Option configures a Graph at construction time.
type Option func(*options)

// options holds construction-time settings.
type options struct {
	logger         *log.Logger
	reachCacheSize int
}

// WithLogger installs a structured logger for debug events.
// A nil logger keeps the default, which discards everything.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithReachCacheSize bounds the number of memoized root-reachability answers.
// Non-positive values select DefaultReachCacheSize.
func WithReachCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.reachCacheSize = n
		}
	}
}

// Stats is a point-in-time snapshot of the graph's size and activity counters.
type Stats struct {
	Vertices int // committed vertices
	Edges    int // committed (from,to) pairs
	Holes    int // free slots in the order
	Pending  int // queued operations
	Dirty    int
	Roots    int
	Cycles   int // known cycle records

	Batches      int // non-empty batch applications
	Reorders     int // window or block rewrites
	CyclesFormed int
	CyclesSplit  int
	Callbacks    int // ProcessFunc invocations
}
