package main

import (
	"github.com/spf13/cobra"

	"github.com/ladobot/lado/internal/tui"
	"github.com/ladobot/lado/pkg/log"
)

var chatCmd = &cobra.Command{
	Use:           "chat",
	Short:         "Open the terminal chat",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		deps := NewDeps(ctx)
		defer func() {
			for _, c := range deps.Cleanup {
				if err := c.Shutdown(ctx); err != nil {
					log.FromCtx(ctx).Error().Err(err).Msg("cleanup failed")
				}
			}
		}()

		return tui.Run(ctx, deps.Assistant, deps.Chats, deps.Router, deps.Provider, deps.AppCfg.UILanguage)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
