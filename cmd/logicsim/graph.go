package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/logicsim/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the state transition diagram of a counter",
	Long: `Outputs a Mermaid diagram (graph LR) of every state of the counter and its
successor. With --cycles, the states visited by a trace of that length are highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("circuit")
		cycles, _ := cmd.Flags().GetInt("cycles")

		sim, err := newSimulator(cmd)
		if err != nil {
			return err
		}
		counter, err := sim.Counter(name)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if cycles > 0 {
			trace, err := sim.SimulateCounter(cmd.Context(), counter, cycles)
			if err != nil {
				return err
			}
			overlay = graph.OverlayFromTrace(trace)
		}

		output, err := graph.GenerateMermaid(counter, overlay)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("circuit", "jk-ring-counter", "Catalog counter to draw")
	graphCmd.Flags().Int("cycles", 0, "Highlight the states of a trace of this length")
}
