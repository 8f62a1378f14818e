// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/incgraph/scenario"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <scenario.toml>...",
		Short: "Replay scenarios and verify ordering and cycle invariants",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			p := a.paint
			bad := 0
			for _, path := range args {
				res, err := a.replay(path)
				switch {
				case errors.Is(err, scenario.ErrExpectation):
					a.warn(cmd.ErrOrStderr(), "scenario %q missed expectations", res.Name)
				case err != nil:
					return err
				}

				if err := res.Graph.CheckInvariants(); err != nil {
					bad++
					fmt.Fprintf(w, "%s %s: %v\n", p.paint(ErrorStyle, "BROKEN"), res.Name, err)
					continue
				}
				st := res.Graph.Stats()
				fmt.Fprintf(w, "%s %s %s\n", p.paint(SuccessStyle, "OK"), res.Name,
					p.paint(SubtitleStyle, fmt.Sprintf(
						"(vertices=%d edges=%d holes=%d cycles=%d reorders=%d callbacks=%d)",
						st.Vertices, st.Edges, st.Holes, st.Cycles, st.Reorders, st.Callbacks)))
			}
			if bad > 0 {
				return fmt.Errorf("%d of %d graphs violate invariants", bad, len(args))
			}
			return nil
		},
	}
}
