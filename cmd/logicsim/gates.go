package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/logicsim/pkg/gatecount"
	"github.com/aretw0/logicsim/pkg/problem"
)

var gatesCmd = &cobra.Command{
	Use:   "gates [problem.yaml]",
	Short: "Count the distinct gates of a circuit",
	Long: `Counts the minimum number of gates of each kind needed by a set of gate expressions.
Without a file, counts the built-in EC2009-60 segment driver.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := newSimulator(cmd)
		if err != nil {
			return err
		}

		var sol *problem.GateSolution
		if len(args) == 0 {
			n := gatecount.EC2009_60()
			m := make(map[string][]string)
			for _, g := range n.Gates() {
				m[string(g.Kind)] = append(m[string(g.Kind)], g.Expr)
			}
			if sol, err = sim.CountGates(m); err != nil {
				return err
			}
		} else {
			p, err := problem.Load(args[0])
			if err != nil {
				return err
			}
			if p.Kind != problem.KindGates {
				return fmt.Errorf("%s: expected a gates problem, got %q", args[0], p.Kind)
			}
			if sol, err = sim.CountGates(p.Gates); err != nil {
				return err
			}
		}
		return sim.report(cmd.OutOrStdout()).Gates(sol)
	},
}

func init() {
	rootCmd.AddCommand(gatesCmd)
}
