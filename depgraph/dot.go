// SPDX-License-Identifier: MIT

package depgraph

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/incgraph/core"
)

// WriteDOT renders the committed graph in Graphviz DOT syntax.
//
// Vertices are emitted in slot order and labelled "id #slot". Roots are drawn
// as double circles, dirty vertices filled, and each known cycle is wrapped in
// its own cluster. HARD edges are solid, SOFT-only edges dashed.
func (g *Graph) WriteDOT(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph incgraph {")
	fmt.Fprintln(bw, "  rankdir=LR;")
	fmt.Fprintln(bw, "  node [shape=circle];")

	// 1) Vertices, clusters for known cycles
	clustered := make(map[*cycle]bool)
	cluster := 0
	for i := 0; i < g.store.Len(); i++ {
		v := g.store.At(i)
		if v == nil {
			continue
		}
		c := g.cycles[v.ID]
		if c == nil {
			fmt.Fprintf(bw, "  %s;\n", g.dotNode(v.ID, i))
			continue
		}
		if clustered[c] {
			continue
		}
		clustered[c] = true
		fmt.Fprintf(bw, "  subgraph cluster_%d {\n    label=\"cycle\";\n    style=dashed;\n", cluster)
		cluster++
		for _, m := range c.sorted(g.store) {
			fmt.Fprintf(bw, "    %s;\n", g.dotNode(m, g.store.MustIndex(m)))
		}
		fmt.Fprintln(bw, "  }")
	}

	// 2) Edges
	for i := 0; i < g.store.Len(); i++ {
		v := g.store.At(i)
		if v == nil {
			continue
		}
		for _, to := range g.store.Successors(v.ID, core.Any) {
			style := "solid"
			if !g.store.HasEdge(v.ID, to, core.Hard) {
				style = "dashed"
			}
			fmt.Fprintf(bw, "  %s -> %s [style=%s];\n", quote(v.ID), quote(to), style)
		}
	}

	fmt.Fprintln(bw, "}")

	return bw.Flush()
}

// dotNode renders one vertex statement.
func (g *Graph) dotNode(id string, slot int) string {
	attrs := []string{fmt.Sprintf("label=%s", quote(fmt.Sprintf("%s #%d", id, slot)))}
	if g.IsRoot(id) {
		attrs = append(attrs, "shape=doublecircle")
	}
	if g.IsDirty(id) {
		attrs = append(attrs, "style=filled", "fillcolor=lightgrey")
	}

	return fmt.Sprintf("%s [%s]", quote(id), strings.Join(attrs, ", "))
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
