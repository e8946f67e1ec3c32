package config

import (
	"context"

	"github.com/caarlos0/env/v11"

	"github.com/ladobot/lado/pkg/log"
)

type SearchConfig struct {
	// FetchFirstPage pulls the text of the top result on deep searches.
	FetchFirstPage bool `env:"LADO_SEARCH_FETCH_PAGE" envDefault:"true"`
}

func NewSearchConfig(ctx context.Context) *SearchConfig {
	c := &SearchConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Search config")
	}
	return c
}
