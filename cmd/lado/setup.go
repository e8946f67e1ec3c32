package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/ladobot/lado/internal/config"
	"github.com/ladobot/lado/internal/providers/llm"
	"github.com/ladobot/lado/internal/providers/translate"
	"github.com/ladobot/lado/internal/prompt"
	"github.com/ladobot/lado/internal/search"
	"github.com/ladobot/lado/internal/service/assistant"
	"github.com/ladobot/lado/internal/service/command"
	"github.com/ladobot/lado/internal/storage/sqlite"
	"github.com/ladobot/lado/internal/transport/telegram"
	"github.com/ladobot/lado/pkg/log"
	"github.com/ladobot/lado/pkg/srv"
)

// Deps is everything a transport needs to run a conversation.
type Deps struct {
	AppCfg    *config.AppConfig
	Assistant *assistant.Service
	Provider  *llm.Ollama
	Chats     *sqlite.ChatsRepo
	Contexts  *sqlite.ContextRepo
	Router    *command.Router
	Cleanup   []srv.Service
}

func NewDeps(ctx context.Context) *Deps {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	appCfg := config.NewAppConfig(ctx)
	ollamaCfg := config.NewOllamaConfig(ctx)
	searchCfg := config.NewSearchConfig(ctx)

	if err := os.MkdirAll(appCfg.GetRuntimePath(), 0755); err != nil {
		logger.Fatal().Err(err).Msg("failed to create runtime directory")
	}

	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}

	chats, err := sqlite.NewChatsRepo(ctx, db)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize chat repository")
	}
	contexts := sqlite.NewContextRepo(db)
	legacy := sqlite.NewLegacyMessagesRepo(db)

	// Extra english=русский pairs for the reply filter, if the user keeps one.
	if err := prompt.LoadExtraWords(appCfg.GetWordListPath()); err != nil {
		logger.Warn().Err(err).Msg("failed to load word list")
	}

	provider := llm.NewOllama(ollamaCfg.Host, ollamaCfg.Model)
	searcher := search.NewDuckDuckGo()
	translator := translate.NewGoogle()

	opts := []assistant.Option{
		assistant.WithHistoryFallback(legacy),
	}
	if searchCfg.FetchFirstPage {
		opts = append(opts, assistant.WithPageFetcher(search.NewPageFetcher()))
	}

	svc := assistant.New(provider, searcher, translator, chats, contexts, opts...)
	router := command.New(command.NewCommands(chats, contexts, provider))

	return &Deps{
		AppCfg:    appCfg,
		Assistant: svc,
		Provider:  provider,
		Chats:     chats,
		Contexts:  contexts,
		Router:    router,
		Cleanup:   []srv.Service{srv.NewCleanup(db.Close)},
	}
}

func initTransports(ctx context.Context, deps *Deps) ([]srv.Service, error) {
	var services []srv.Service

	if deps.AppCfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, deps.Assistant, deps.Chats, deps.Router)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
