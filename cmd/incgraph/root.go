// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/incgraph/depgraph"
	"github.com/katalvlaran/incgraph/scenario"
)

// app carries state shared by every subcommand once configuration is loaded.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config
	logger *log.Logger
	paint  painter
}

// newRootCmd builds the command tree. Each call returns an independent tree.
func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "incgraph",
		Short: "Replay incremental dependency-graph scenarios",
		Long: TitleStyle.Render("incgraph") + SubtitleStyle.Render(" - incremental dependency graph engine") + `

incgraph loads a TOML scenario (vertices, edges, roots and an ordered list
of steps), replays it against the engine and checks every expectation.

` + SubtitleStyle.Render("Examples:") + `
  incgraph run cycle.toml      Print the callback trace of each process step
  incgraph dot cycle.toml      Dump the final graph in Graphviz DOT
  incgraph check cycle.toml    Verify ordering and cycle invariants`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (TOML)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log engine events at debug level")

	root.AddCommand(newRunCmd(a), newDotCmd(a), newCheckCmd(a))

	return root
}

// init loads configuration and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.cfgFile)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.LogLevel = log.DebugLevel
	}

	a.cfg = cfg
	a.paint = painter{color: cfg.Color}
	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "incgraph",
		Level:  cfg.LogLevel,
	})

	return nil
}

// replay loads the scenario at path and runs it with the configured engine
// options. An expectation failure comes back with its Result so callers can
// still report the trace.
func (a *app) replay(path string) (*scenario.Result, error) {
	s, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = path
	}
	a.logger.Debug("scenario loaded", "name", s.Name, "vertices", len(s.Vertices), "steps", len(s.Steps))

	return scenario.Run(s,
		depgraph.WithLogger(a.logger),
		depgraph.WithReachCacheSize(a.cfg.ReachCacheSize),
	)
}

// warn prints a styled warning line to w.
func (a *app) warn(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, a.paint.paint(WarningStyle, "Warning: ")+fmt.Sprintf(format, args...))
}
