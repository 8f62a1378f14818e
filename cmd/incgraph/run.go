// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/incgraph/scenario"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario.toml>...",
		Short: "Replay scenarios and print their callback traces",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				res, err := a.replay(path)
				if res != nil {
					a.render(cmd.OutOrStdout(), res)
				}
				switch {
				case errors.Is(err, scenario.ErrExpectation):
					failed++
				case err != nil:
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(args))
			}
			return nil
		},
	}
}

// render prints every step of res, the calls of process steps in order and
// any missed expectation, followed by a PASS/FAIL line.
func (a *app) render(w io.Writer, res *scenario.Result) {
	p := a.paint
	fmt.Fprintln(w, p.paint(TitleStyle, res.Name))

	for _, st := range res.Steps {
		header := fmt.Sprintf("  #%d %s", st.Index, st.Op)
		if st.Err != nil {
			header += " -> " + st.Err.Error()
		}
		fmt.Fprintln(w, p.paint(SubtitleStyle, header))

		for _, call := range st.Sequence {
			id, action, _ := strings.Cut(call, ":")
			fmt.Fprintf(w, "      %s %s\n", id, p.paint(ActionStyle, action))
		}
		for _, f := range st.Failures {
			for _, line := range strings.Split(strings.TrimRight(f, "\n"), "\n") {
				fmt.Fprintln(w, "    "+p.paint(ErrorStyle, line))
			}
		}
	}

	if res.Failed() {
		fmt.Fprintln(w, p.paint(ErrorStyle, "FAIL")+" "+res.Name)
		return
	}
	fmt.Fprintln(w, p.paint(SuccessStyle, "PASS")+" "+res.Name)
}
