package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/ladobot/lado/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"LADO_RUNTIME_PATH" envDefault:".lado"`

	// Interface language for labels and defaults. The assistant answers in
	// the detected language of each message regardless of this setting.
	UILanguage string `env:"LADO_UI_LANGUAGE" envDefault:"russian"`

	// Transport Flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	// A relative runtime path anchors in the home directory, matching
	// GetRuntimePath. Otherwise the database lands in the process cwd.
	if !filepath.IsAbs(c.RuntimePath) {
		home, _ := os.UserHomeDir()
		c.RuntimePath = filepath.Join(home, c.RuntimePath)
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "lado.db")
}

// GetWordListPath points at the optional user supplied english=русский
// replacement list for the post translation filter.
func (c AppConfig) GetWordListPath() string {
	return filepath.Join(c.RuntimePath, "words.txt")
}
