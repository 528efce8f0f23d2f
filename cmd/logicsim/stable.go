package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/logicsim/pkg/analysis"
	"github.com/aretw0/logicsim/pkg/domain"
	"github.com/aretw0/logicsim/pkg/logic"
)

var stableCmd = &cobra.Command{
	Use:   "stable",
	Short: "List the stable states of a latch under a drive",
	Long: `Encodes the latch feedback equations as a SAT problem and enumerates every
state that holds under the drive. With --verify, also checks the JK table
against the characteristic equation.`,
	Example: `  logicsim stable --kind nand --drive 11`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kindFlag, _ := cmd.Flags().GetString("kind")
		driveFlag, _ := cmd.Flags().GetString("drive")
		verify, _ := cmd.Flags().GetBool("verify")

		kind, err := logic.ParseLatchKind(kindFlag)
		if err != nil {
			return err
		}
		d, err := domain.ParseDrive(driveFlag)
		if err != nil {
			return err
		}

		sim, err := newSimulator(cmd)
		if err != nil {
			return err
		}
		states, err := sim.StableStates(kind, d)
		if err != nil {
			return err
		}
		if err := sim.report(cmd.OutOrStdout()).Stable(string(kind), d, states); err != nil {
			return err
		}

		if verify {
			if err := analysis.VerifyJK(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "JK table matches Q+ = J·¬Q + ¬K·Q ✅")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stableCmd)
	stableCmd.Flags().String("kind", "nand", "Latch kind: nand or nor")
	stableCmd.Flags().String("drive", "11", "Drive as P1P2")
	stableCmd.Flags().Bool("verify", false, "Also verify the JK evaluator")
}
