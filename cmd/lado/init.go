package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ladobot/lado/internal/config"
	"github.com/ladobot/lado/pkg/env"
	"github.com/ladobot/lado/pkg/log"
)

var initCmd = &cobra.Command{
	Use:           "init",
	Short:         "Create the runtime directory with a starter .env",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		runtimePath := config.GetRuntimePath()

		if err := os.MkdirAll(runtimePath, 0755); err != nil {
			return fmt.Errorf("failed to create runtime directory: %w", err)
		}

		envPath := filepath.Join(runtimePath, ".env")
		if _, err := os.Stat(envPath); err == nil {
			logger.Info().Str("path", envPath).Msg(".env already exists, leaving it alone")
			return nil
		}

		starter := &config.OllamaConfig{
			Host:  "http://127.0.0.1:11434",
			Model: "llama3",
		}
		content, err := env.MarshalEnv(starter)
		if err != nil {
			return fmt.Errorf("failed to render .env: %w", err)
		}
		content += "# ENABLE_TELEGRAM=true\n# TELEGRAM_TOKEN=\n# TELEGRAM_OWNER_ID=\n"

		if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
			return fmt.Errorf("failed to write .env: %w", err)
		}

		logger.Info().Str("path", runtimePath).Msg("initialized runtime directory")
		logger.Info().Msg("Done! You can now run 'lado chat'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
