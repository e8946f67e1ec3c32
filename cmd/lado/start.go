package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ladobot/lado/pkg/log"
	"github.com/ladobot/lado/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Lado services",
	Long:  `Initializes the configured transports (Telegram) and blocks until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting lado")

		deps := NewDeps(ctx)
		services, err := initTransports(ctx, deps)
		if err != nil {
			return err
		}
		services = append(services, deps.Cleanup...)

		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("lado has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
