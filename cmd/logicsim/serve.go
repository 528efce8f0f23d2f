package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/logicsim/internal/cli"
	"github.com/aretw0/logicsim/internal/metrics"
	httpAdapter "github.com/aretw0/logicsim/pkg/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes the simulator as a JSON API over HTTP, with the OpenAPI document at
/openapi.yaml, Prometheus metrics at /metrics and an event stream at /events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")

		m := metrics.New(true)
		streams := httpAdapter.NewStreamManager()
		sim, err := cli.NewSimulator(globalOpts, logger, m.Hooks(), streams.Hooks())
		if err != nil {
			return err
		}

		handler, err := httpAdapter.NewHandler(sim,
			httpAdapter.WithStreams(streams),
			httpAdapter.WithMetrics(m.Handler()),
			httpAdapter.WithLogger(logger),
		)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cli.ListenAndServe(ctx, srv, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
