package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/logicsim/pkg/problem"
)

var runCmd = &cobra.Command{
	Use:   "run <problem.yaml>...",
	Short: "Solve problem documents",
	Long: `Loads each problem document (YAML, or JSON by extension), solves it and prints a report.
With --check the command fails when a document's expected answer is not reproduced.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := newSimulator(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		check, _ := cmd.Flags().GetBool("check")

		out := cmd.OutOrStdout()
		var failed []string
		for i, path := range args {
			p, err := problem.Load(path)
			if err != nil {
				return err
			}
			sol, err := sim.Solve(cmd.Context(), p)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if sol.Correct != nil && !*sol.Correct {
				failed = append(failed, path)
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(sol); err != nil {
					return err
				}
				continue
			}
			if i > 0 {
				fmt.Fprintln(out)
			}
			if err := sim.report(out).Solution(sol); err != nil {
				return err
			}
		}

		if check && len(failed) > 0 {
			return fmt.Errorf("%d problem(s) did not reproduce the expected answer: %v", len(failed), failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("json", false, "Print solutions as JSON")
	runCmd.Flags().Bool("check", false, "Fail when an expected answer is not reproduced")
}
