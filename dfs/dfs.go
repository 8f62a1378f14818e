// SPDX-License-Identifier: MIT

// Package dfs implements iterative depth-first search over a NeighborFunc.
//
// Complexity:
//
//   - Time:   O(V + E) plus the cost of hooks and filters.
//   - Memory: O(V) for the work stack and the visited set.
package dfs

import (
	"errors"
	"fmt"
)

// frame is one entry of the explicit work stack: a vertex and the position of
// the next neighbor to examine.
type frame struct {
	id   string
	nbrs []string
	next int
}

// dfsWalker encapsulates state during DFS.
type dfsWalker struct {
	next  NeighborFunc
	opts  DFSOptions
	res   *DFSResult
	stack []frame
}

// DFS performs an iterative depth-first search from every start vertex in
// order, skipping starts that an earlier tree already reached.
// Returns the result, or an error if a hook aborts the traversal.
func DFS(starts []string, next NeighborFunc, opts ...Option) (*DFSResult, error) {
	// 1. Validate input
	if next == nil {
		return nil, ErrNilNeighbors
	}

	// 2. Apply options
	dopts := DefaultOptions()
	for _, fn := range opts {
		fn(&dopts)
	}

	// 3. Initialize result
	w := &dfsWalker{
		next: next,
		opts: dopts,
		res: &DFSResult{
			Order:   make([]string, 0, len(starts)),
			Visited: make(map[string]bool, len(starts)),
		},
	}

	// 4. Forest traversal over the given starts
	for _, s := range starts {
		if w.res.Visited[s] {
			continue
		}
		if err := w.walk(s); err != nil {
			if errors.Is(err, ErrStop) {
				w.res.Stopped = true
				break
			}

			return w.res, err
		}
	}

	// 5. Expose diagnostics
	w.res.SkippedNeighbors = w.opts.SkippedNeighbors

	return w.res, nil
}

// walk runs one DFS tree rooted at root using the explicit stack.
func (w *dfsWalker) walk(root string) error {
	if err := w.enter(root); err != nil {
		return err
	}

	for len(w.stack) > 0 {
		top := &w.stack[len(w.stack)-1]

		// 1. Examine the next unexplored neighbor, if any
		if top.next < len(top.nbrs) {
			nid := top.nbrs[top.next]
			top.next++

			if w.res.Visited[nid] {
				continue
			}
			if w.opts.FilterNeighbor != nil && !w.opts.FilterNeighbor(nid) {
				w.opts.SkippedNeighbors++
				continue
			}
			if err := w.enter(nid); err != nil {
				return err
			}
			continue
		}

		// 2. All neighbors explored: post-order
		id := top.id
		w.stack = w.stack[:len(w.stack)-1]
		if w.opts.OnExit != nil {
			if err := w.opts.OnExit(id); err != nil {
				return w.hookErr("OnExit", id, err)
			}
		}
		w.res.Order = append(w.res.Order, id)
	}

	return nil
}

// enter marks id visited, runs the pre-order hook and pushes its frame.
func (w *dfsWalker) enter(id string) error {
	w.res.Visited[id] = true
	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(id); err != nil {
			return w.hookErr("OnVisit", id, err)
		}
	}
	w.stack = append(w.stack, frame{id: id, nbrs: w.next(id)})

	return nil
}

// hookErr passes ErrStop through unchanged and wraps everything else.
func (w *dfsWalker) hookErr(hook, id string, err error) error {
	w.stack = w.stack[:0]
	if errors.Is(err, ErrStop) {
		return ErrStop
	}

	return fmt.Errorf("dfs: %s hook for %q: %w", hook, id, err)
}

// Reachable returns every vertex reachable from starts (starts included),
// in discovery order, entering only neighbors accepted by allow. A nil allow
// accepts every neighbor.
func Reachable(starts []string, next NeighborFunc, allow func(id string) bool) []string {
	var found []string
	opts := []Option{WithOnVisit(func(id string) error {
		found = append(found, id)
		return nil
	})}
	if allow != nil {
		opts = append(opts, WithFilterNeighbor(allow))
	}
	// hooks never fail here, so the error is always nil
	_, _ = DFS(starts, next, opts...)

	return found
}
