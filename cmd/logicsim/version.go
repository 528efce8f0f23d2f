package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/logicsim"
	"github.com/aretw0/logicsim/internal/report"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of logicsim",
	Run: func(cmd *cobra.Command, args []string) {
		banner, _ := cmd.Flags().GetBool("banner")
		if banner {
			report.PrintBanner(cmd.OutOrStdout(), logicsim.Version)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "logicsim version %s\n", logicsim.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("banner", false, "Print the ASCII banner")
}
