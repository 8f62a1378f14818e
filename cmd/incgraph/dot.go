// SPDX-License-Identifier: MIT

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/incgraph/scenario"
)

func newDotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dot <scenario.toml>",
		Short: "Replay a scenario and write the final graph in Graphviz DOT",
		Long: `Replay a scenario and write the final graph in Graphviz DOT.

Vertices carry their slot, dirty vertices are shaded, roots are drawn as
double circles and every known cycle is boxed in its own cluster. Soft-only
edges are dashed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.replay(args[0])
			switch {
			case errors.Is(err, scenario.ErrExpectation):
				a.warn(cmd.ErrOrStderr(), "scenario %q missed expectations", res.Name)
			case err != nil:
				return err
			}

			return res.Graph.WriteDOT(cmd.OutOrStdout())
		},
	}
}
