// SPDX-License-Identifier: MIT

// Package dfs defines types and options for iterative depth-first traversal,
// including pre-/post-order hooks, early stop and neighbor filtering.
package dfs

import "errors"

var (
	// ErrNilNeighbors is returned when a nil NeighborFunc is passed in.
	ErrNilNeighbors = errors.New("dfs: neighbor function is nil")

	// ErrStop may be returned by OnVisit or OnExit to end the traversal
	// early. DFS then returns the partial result with Stopped set and a nil error.
	ErrStop = errors.New("dfs: stop traversal")
)

// NeighborFunc returns the IDs adjacent to id in the direction of travel.
// The returned slice is read but never retained or modified.
type NeighborFunc func(id string) []string

// Option configures optional behavior of DFS traversal.
type Option func(*DFSOptions)

// DFSOptions holds configurable parameters for DFS traversal.
type DFSOptions struct {
	// OnVisit, if non-nil, is invoked when a vertex is discovered (pre-order).
	// Returning ErrStop ends the traversal; any other error aborts it.
	OnVisit func(id string) error

	// OnExit, if non-nil, is invoked after all descendants of a vertex have
	// been explored (post-order), before it is appended to Order.
	OnExit func(id string) error

	// FilterNeighbor, if non-nil, is called for each neighbor before it is
	// entered. Return false to skip it.
	FilterNeighbor func(id string) bool

	// SkippedNeighbors counts neighbors rejected by FilterNeighbor.
	SkippedNeighbors int
}

// DefaultOptions returns DFSOptions with no hooks and no filter.
func DefaultOptions() DFSOptions {
	return DFSOptions{}
}

// WithOnVisit returns an Option that installs fn as a pre-order hook.
func WithOnVisit(fn func(id string) error) Option {
	return func(o *DFSOptions) {
		o.OnVisit = fn
	}
}

// WithOnExit returns an Option that installs fn as a post-order hook.
func WithOnExit(fn func(id string) error) Option {
	return func(o *DFSOptions) {
		o.OnExit = fn
	}
}

// WithFilterNeighbor returns an Option that filters neighbor IDs.
// If fn(id) == false, that neighbor is skipped and counted in SkippedNeighbors.
func WithFilterNeighbor(fn func(id string) bool) Option {
	return func(o *DFSOptions) {
		o.FilterNeighbor = fn
	}
}

// DFSResult captures the outcome of a depth-first traversal.
type DFSResult struct {
	// Order records vertices in the sequence they finished (post-order).
	// Vertices still on the stack when a traversal is stopped are absent.
	Order []string

	// Visited flags every vertex that was discovered.
	Visited map[string]bool

	// Stopped reports whether a hook returned ErrStop.
	Stopped bool

	// SkippedNeighbors reports how many neighbors FilterNeighbor rejected.
	SkippedNeighbors int
}
