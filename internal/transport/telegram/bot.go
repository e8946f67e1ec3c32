package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/ladobot/lado/internal/config"
	"github.com/ladobot/lado/internal/core"
	"github.com/ladobot/lado/internal/service/assistant"
	"github.com/ladobot/lado/pkg/log"
)

const baseContextKey = "base_context"

type Bot struct {
	bot       *tele.Bot
	cfg       *config.TelegramConfig
	assistant *assistant.Service
	chats     core.ChatRepository
	router    core.CmdRouter
	sender    *sender
	ownerID   int64

	mu           sync.Mutex
	mode         string
	forcedSearch bool
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	svc *assistant.Service,
	chats core.ChatRepository,
	router core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:       b,
		cfg:       cfg,
		assistant: svc,
		chats:     chats,
		router:    router,
		sender:    newSender(b),
		ownerID:   cfg.OwnerID,
		mode:      core.ModeFast,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return nil
	}

	// Transport local toggles, everything else goes through the router.
	if reply, handled := b.localCommand(text); handled {
		return c.Send(reply)
	}

	chatID, err := b.chats.ActiveChatID(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve active chat")
		return c.Send(fmt.Sprintf("Ошибка: %v", err))
	}

	if out, handled := b.router.Execute(ctx, chatID, text); handled {
		return b.sender.sendMarkdown(ctx, c.Chat(), out, false)
	}

	_ = c.Notify(tele.Typing)

	firstTurn := b.isFirstTurn(ctx, chatID)
	if err := b.chats.SaveMessage(ctx, chatID, core.RoleUser, text, nil); err != nil {
		logger.Warn().Err(err).Msg("failed to save user message")
	}

	b.mu.Lock()
	req := assistant.Request{
		ChatID:       chatID,
		Message:      text,
		UILanguage:   core.LangRussian,
		Mode:         b.mode,
		ForcedSearch: b.forcedSearch,
	}
	b.mu.Unlock()

	reply := b.assistant.Respond(ctx, req)
	if err := b.chats.SaveMessage(ctx, chatID, core.RoleAssistant, reply, nil); err != nil {
		logger.Warn().Err(err).Msg("failed to save assistant message")
	}

	// Fresh chats are named once the first exchange completed.
	if firstTurn {
		if err := b.chats.UpdateChatTitle(ctx, chatID, core.DeriveChatTitle(text)); err != nil {
			logger.Warn().Err(err).Msg("failed to update chat title")
		}
	}

	return b.sender.sendMarkdown(ctx, c.Chat(), reply, false)
}

// localCommand handles the mode and search toggles that only make sense
// per transport.
func (b *Bot) localCommand(text string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case text == "/search":
		b.forcedSearch = !b.forcedSearch
		if b.forcedSearch {
			return "🔍 Поиск включён", true
		}
		return "Поиск выключен", true

	case text == "/mode" || strings.HasPrefix(text, "/mode "):
		arg := strings.TrimSpace(strings.TrimPrefix(text, "/mode"))
		switch arg {
		case "":
			return fmt.Sprintf("Режим: %s (варианты: fast, thinking, pro)", b.mode), true
		case core.ModeFast, core.ModeThinking, core.ModePro:
			b.mode = arg
			return fmt.Sprintf("Режим: %s", arg), true
		default:
			return fmt.Sprintf("Неизвестный режим %q (варианты: fast, thinking, pro)", arg), true
		}
	}
	return "", false
}

// isFirstTurn reports whether the chat has no stored messages yet, read
// before the user turn is saved.
func (b *Bot) isFirstTurn(ctx context.Context, chatID int64) bool {
	messages, err := b.chats.Messages(ctx, chatID, 1)
	return err == nil && len(messages) == 0
}
