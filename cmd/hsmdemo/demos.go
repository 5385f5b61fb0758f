package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tobbstr/hsm"
	"github.com/tobbstr/hsm/examples/levels"
	"github.com/tobbstr/hsm/examples/oven"
	"github.com/tobbstr/hsm/examples/process"
)

func newProcessCmd(a *app) *cobra.Command {
	var f demoFlags
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Run the flat process state machine",
		Long:  `Keys: 's' start, 'q' stop, 'p' pause, 'r' resume. The process times out after --set-time ticks.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := f.load(cmd.InOrStdin())
			if err != nil {
				return err
			}
			stop, err := a.start(cmd)
			if err != nil {
				return err
			}
			defer stop()

			opts, err := hooks[process.State, process.Event](a, "process")
			if err != nil {
				return err
			}
			p := process.New(sc.SetTime, cmd.OutOrStdout())
			s := &session[process.State, process.Event, *process.Process]{
				demo:       p,
				machine:    p.Machine,
				dispatcher: hsm.NewFlatDispatcher[process.State, process.Event, *process.Process](opts...),
				out:        cmd.OutOrStdout(),
			}
			return s.play(sc.Steps)
		},
	}
	f.register(cmd)
	return cmd
}

func newOvenCmd(a *app) *cobra.Command {
	var (
		f        demoFlags
		doorOpen bool
	)
	cmd := &cobra.Command{
		Use:   "oven",
		Short: "Run the toaster oven state machine",
		Long: `Keys: 's' start, 'q' stop, 'o' open the door, 'c' close the door. Opening the door while heating saves the
remaining time, closing it resumes heating.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := f.load(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if sc.DoorClosed == nil {
				closed := !doorOpen
				sc.DoorClosed = &closed
			}
			stop, err := a.start(cmd)
			if err != nil {
				return err
			}
			defer stop()

			opts, err := hooks[oven.State, oven.Event](a, "oven")
			if err != nil {
				return err
			}
			o := oven.New(sc.SetTime, *sc.DoorClosed, cmd.OutOrStdout())
			s := &session[oven.State, oven.Event, *oven.Oven]{
				demo:       o,
				machine:    o.Machine,
				dispatcher: hsm.NewDispatcher[oven.State, oven.Event, *oven.Oven](opts...),
				out:        cmd.OutOrStdout(),
			}
			return s.play(sc.Steps)
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&doorOpen, "door-open", false, "start with the oven door open")
	return cmd
}

func newLevelsCmd(a *app) *cobra.Command {
	var f demoFlags
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Run the three level hierarchical state machine",
		Long:  `Keys: '1', '2' and '3' post the events of the same number.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := f.load(cmd.InOrStdin())
			if err != nil {
				return err
			}
			stop, err := a.start(cmd)
			if err != nil {
				return err
			}
			defer stop()

			opts, err := hooks[levels.State, levels.Event](a, "levels")
			if err != nil {
				return err
			}
			d := levels.New(cmd.OutOrStdout())
			s := &session[levels.State, levels.Event, *levels.Demo]{
				demo:       d,
				machine:    d.Machine,
				dispatcher: hsm.NewDispatcher[levels.State, levels.Event, *levels.Demo](opts...),
				out:        cmd.OutOrStdout(),
			}
			return s.play(sc.Steps)
		},
	}
	f.register(cmd)
	return cmd
}

var diagrams = map[string]func() string{
	"process": func() string { return process.Topology().MermaidJSDiagram() },
	"oven":    func() string { return oven.Topology().MermaidJSDiagram() },
	"levels":  func() string { return levels.Topology().MermaidJSDiagram() },
}

func newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "graph {process|oven|levels}",
		Short:     "Print the state hierarchy of a demo",
		Long:      `Outputs a Mermaid diagram (stateDiagram-v2) of the states of a demo machine.`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"process", "oven", "levels"},
		RunE: func(cmd *cobra.Command, args []string) error {
			diagram, ok := diagrams[args[0]]
			if !ok {
				return fmt.Errorf("unknown demo %q", args[0])
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), diagram())
			return err
		},
	}
}
