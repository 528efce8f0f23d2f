package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/logicsim/internal/cli"
)

var (
	globalOpts cli.Options
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "logicsim",
	Short: "logicsim simulates JK counters and NAND/NOR latches",
	Long: `logicsim answers exam-style questions about small sequential circuits:
it clocks JK flip-flop counters, matches their state traces against multiple-choice
options (cyclic rotation), steps cross-coupled latches and counts gates.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = cli.NewLogger(globalOpts)
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&globalOpts.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default $"+cli.EnvLogLevel+" or warn)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.LogFormat, "log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().StringVar(&globalOpts.Policy, "policy", "", "Answer policy when several options match: strict or first (overrides problem files)")
	rootCmd.PersistentFlags().Bool("markdown", false, "Render reports as markdown")
}

func newSimulator(cmd *cobra.Command) (*simulator, error) {
	sim, err := cli.NewSimulator(globalOpts, logger)
	if err != nil {
		return nil, err
	}
	markdown, _ := cmd.Flags().GetBool("markdown")
	return &simulator{Simulator: sim, markdown: markdown}, nil
}
