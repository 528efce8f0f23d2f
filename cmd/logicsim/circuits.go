package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var circuitsCmd = &cobra.Command{
	Use:   "circuits",
	Short: "List the built-in circuits",
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := newSimulator(cmd)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tKIND\tDESCRIPTION")
		for _, e := range sim.Circuits() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Kind, e.Description)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(circuitsCmd)
}
