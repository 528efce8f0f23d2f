package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/logicsim/internal/cli"
	"github.com/aretw0/logicsim/pkg/logic"
	"github.com/aretw0/logicsim/pkg/problem"
)

var latchCmd = &cobra.Command{
	Use:     "latch",
	Short:   "Step a NAND or NOR latch through a sequence of drives",
	Example: `  logicsim latch --kind nand --initial xx --step 01 --step 11`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kindFlag, _ := cmd.Flags().GetString("kind")
		initialFlag, _ := cmd.Flags().GetString("initial")
		stepFlags, _ := cmd.Flags().GetStringArray("step")

		kind, err := logic.ParseLatchKind(kindFlag)
		if err != nil {
			return err
		}
		initial, err := cli.ParseLatchState(initialFlag)
		if err != nil {
			return err
		}
		drives, err := cli.ParseDrives(stepFlags)
		if err != nil {
			return err
		}

		sim, err := newSimulator(cmd)
		if err != nil {
			return err
		}
		steps, err := sim.StepLatch(cmd.Context(), kind, initial, drives...)
		if err != nil {
			return err
		}
		return sim.report(cmd.OutOrStdout()).Latch(&problem.LatchSolution{Kind: kind, Initial: initial.String(), Steps: steps})
	},
}

func init() {
	rootCmd.AddCommand(latchCmd)
	latchCmd.Flags().String("kind", "nand", "Latch kind: nand or nor")
	latchCmd.Flags().String("initial", "xx", "Initial Q1Q2 (x marks an unknown output)")
	latchCmd.Flags().StringArray("step", nil, "Drive as P1P2, e.g. 01 (repeatable)")
	_ = latchCmd.MarkFlagRequired("step")
}
