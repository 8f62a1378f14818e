// SPDX-License-Identifier: MIT

package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/katalvlaran/incgraph/core"
	"github.com/katalvlaran/incgraph/depgraph"
)

// Sentinel errors for loading and running scenarios.
var (
	// ErrInvalidScenario indicates a structurally invalid scenario file.
	ErrInvalidScenario = errors.New("scenario: invalid scenario")

	// ErrExpectation indicates at least one step did not behave as expected.
	ErrExpectation = errors.New("scenario: expectation failed")
)

// Step operations.
const (
	OpAddVertex       = "add_vertex"
	OpRemoveVertex    = "remove_vertex"
	OpAddEdge         = "add_edge"
	OpRemoveEdge      = "remove_edge"
	OpMarkDirty       = "mark_dirty"
	OpClearDirty      = "clear_dirty"
	OpMarkRoot        = "mark_root"
	OpUnmarkRoot      = "unmark_root"
	OpMarkInformed    = "mark_informed"
	OpReplaceIncoming = "replace_incoming"
	OpProcess         = "process"
	OpCheck           = "check"
)

// Scenario is one parsed scenario file.
type Scenario struct {
	Name        string       `toml:"name"`
	Description string       `toml:"description"`
	Roots       []string     `toml:"roots"`
	Vertices    []VertexSpec `toml:"vertex"`
	Edges       []EdgeSpec   `toml:"edge"`
	Steps       []Step       `toml:"step"`
}

// VertexSpec declares an initial vertex.
type VertexSpec struct {
	ID    string `toml:"id"`
	Dirty bool   `toml:"dirty"`
}

// EdgeSpec declares an initial edge.
type EdgeSpec struct {
	From string `toml:"from"`
	To   string `toml:"to"`
	Kind string `toml:"kind"`
}

// Step is one operation applied after the initial setup.
type Step struct {
	Op      string   `toml:"op"`
	ID      string   `toml:"id"`
	From    string   `toml:"from"`
	To      string   `toml:"to"`
	Kind    string   `toml:"kind"`
	Sources []string `toml:"sources"`

	// Error names the failure the step must produce:
	// duplicate, unknown, invariant or kind.
	Error string `toml:"error"`

	// Return is the value every callback returns during a process step.
	// Defaults to true.
	Return *bool `toml:"return"`

	// Expect maps vertex ids to their exact callback trace.
	Expect map[string][]string `toml:"expect"`
	// Sequence is the exact flat "id:ACTION" callback sequence.
	Sequence []string `toml:"sequence"`
	// Order is the slot order after the step ("" for holes).
	Order []string `toml:"order"`

	// Removed and Added pin the result of replace_incoming.
	Removed []string `toml:"removed"`
	Added   []string `toml:"added"`
}

// Load reads and parses the scenario at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: reading %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Parse decodes a scenario, rejecting unknown keys, and validates it.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate checks ops, required fields and edge kinds.
func (s *Scenario) Validate() error {
	for i, v := range s.Vertices {
		if v.ID == "" {
			return fmt.Errorf("%w: vertex #%d has no id", ErrInvalidScenario, i)
		}
	}
	for i, e := range s.Edges {
		if e.From == "" || e.To == "" {
			return fmt.Errorf("%w: edge #%d needs from and to", ErrInvalidScenario, i)
		}
		if _, err := core.ParseEdgeKind(e.Kind); err != nil {
			return fmt.Errorf("%w: edge #%d: %v", ErrInvalidScenario, i, err)
		}
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return fmt.Errorf("%w: step #%d (%s): %v", ErrInvalidScenario, i, st.Op, err)
		}
	}

	return nil
}

func (st Step) validate() error {
	switch st.Op {
	case OpAddVertex, OpRemoveVertex, OpMarkDirty, OpClearDirty,
		OpMarkRoot, OpUnmarkRoot, OpMarkInformed, OpReplaceIncoming:
		if st.ID == "" {
			return errors.New("id is required")
		}
	case OpAddEdge, OpRemoveEdge:
		if st.From == "" || st.To == "" {
			return errors.New("from and to are required")
		}
		if st.Error != "kind" {
			if _, err := core.ParseEdgeKind(st.Kind); err != nil {
				return err
			}
		}
	case OpProcess:
		for id, names := range st.Expect {
			for _, n := range names {
				if _, err := depgraph.ParseAction(n); err != nil {
					return fmt.Errorf("expect[%s]: %w", id, err)
				}
			}
		}
	case OpCheck:
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	switch st.Error {
	case "", "duplicate", "unknown", "invariant", "kind":
	default:
		return fmt.Errorf("unknown error class %q", st.Error)
	}

	return nil
}
