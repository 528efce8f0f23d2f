package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/logicsim/internal/cli"
	"github.com/aretw0/logicsim/pkg/domain"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Clock a catalog counter and match the trace against options",
	Example: `  logicsim simulate --circuit jk-ring-counter --cycles 6 \
    --candidate A=11,10,00,11,10,00 --candidate D=01,10,00,01,10,00`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("circuit")
		cycles, _ := cmd.Flags().GetInt("cycles")
		flags, _ := cmd.Flags().GetStringArray("candidate")

		candidates, err := cli.ParseCandidates(flags)
		if err != nil {
			return err
		}
		sim, err := newSimulator(cmd)
		if err != nil {
			return err
		}

		trace, err := sim.Simulate(cmd.Context(), name, cycles)
		if err != nil {
			return err
		}
		sol, err := sim.Answer(cmd.Context(), name, trace, candidates)
		if err != nil && !errors.Is(err, domain.ErrNoMatch) && !errors.Is(err, domain.ErrAmbiguousMatch) {
			return err
		}
		if rerr := sim.report(cmd.OutOrStdout()).Counter(sol); rerr != nil {
			return rerr
		}

		strict, _ := cmd.Flags().GetBool("strict")
		if strict && err != nil {
			return fmt.Errorf("no single answer: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().String("circuit", "jk-ring-counter", "Catalog counter to simulate")
	simulateCmd.Flags().Int("cycles", 6, "Number of states to record")
	simulateCmd.Flags().StringArray("candidate", nil, "Option as NAME=STATE,STATE,... (repeatable)")
	simulateCmd.Flags().Bool("strict", false, "Exit non-zero when no single option matches")
}
