package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ladobot/lado/internal/core"
)

// NewChatCommand creates a chat and switches to it.
type NewChatCommand struct {
	chats     core.ChatRepository
	formatter *ResponseFormatter
}

func NewNewChatCommand(chats core.ChatRepository) *NewChatCommand {
	return &NewChatCommand{chats: chats, formatter: NewResponseFormatter()}
}

func (c *NewChatCommand) Name() string        { return "new" }
func (c *NewChatCommand) Description() string { return "Создать новый чат: /new [название]" }

func (c *NewChatCommand) Execute(ctx context.Context, _ int64, args []string) (string, error) {
	title := strings.Join(args, " ")
	id, err := c.chats.CreateChat(ctx, title)
	if err != nil {
		return "", fmt.Errorf("failed to create chat: %w", err)
	}
	if err := c.chats.SetActiveChat(ctx, id); err != nil {
		return "", fmt.Errorf("failed to switch chat: %w", err)
	}
	return c.formatter.Success(fmt.Sprintf("Создан чат #%d", id)), nil
}

// ChatsCommand lists chats newest-activity first.
type ChatsCommand struct {
	chats     core.ChatRepository
	formatter *ResponseFormatter
}

func NewChatsCommand(chats core.ChatRepository) *ChatsCommand {
	return &ChatsCommand{chats: chats, formatter: NewResponseFormatter()}
}

func (c *ChatsCommand) Name() string        { return "chats" }
func (c *ChatsCommand) Description() string { return "Список чатов" }

func (c *ChatsCommand) Execute(ctx context.Context, _ int64, _ []string) (string, error) {
	chats, err := c.chats.AllChats(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list chats: %w", err)
	}
	items := make([]string, 0, len(chats))
	for _, chat := range chats {
		marker := " "
		if chat.Active {
			marker = "*"
		}
		items = append(items, fmt.Sprintf("%s #%d %s", marker, chat.ID, chat.Title))
	}
	return c.formatter.Combine(c.formatter.Info("Чаты"), c.formatter.List(items)), nil
}

// SwitchCommand makes another chat active.
type SwitchCommand struct {
	chats     core.ChatRepository
	formatter *ResponseFormatter
}

func NewSwitchCommand(chats core.ChatRepository) *SwitchCommand {
	return &SwitchCommand{chats: chats, formatter: NewResponseFormatter()}
}

func (c *SwitchCommand) Name() string        { return "switch" }
func (c *SwitchCommand) Description() string { return "Переключить чат: /switch <id>" }

func (c *SwitchCommand) Execute(ctx context.Context, _ int64, args []string) (string, error) {
	if len(args) != 1 {
		return c.formatter.Usage("/switch <id>"), nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid chat id %q", args[0])
	}
	if err := c.chats.SetActiveChat(ctx, id); err != nil {
		return "", fmt.Errorf("failed to switch chat: %w", err)
	}
	return c.formatter.Success(fmt.Sprintf("Активный чат: #%d", id)), nil
}

// ClearCommand wipes the current chat's messages.
type ClearCommand struct {
	chats     core.ChatRepository
	formatter *ResponseFormatter
}

func NewClearCommand(chats core.ChatRepository) *ClearCommand {
	return &ClearCommand{chats: chats, formatter: NewResponseFormatter()}
}

func (c *ClearCommand) Name() string        { return "clear" }
func (c *ClearCommand) Description() string { return "Очистить историю текущего чата" }

func (c *ClearCommand) Execute(ctx context.Context, chatID int64, _ []string) (string, error) {
	if err := c.chats.ClearMessages(ctx, chatID); err != nil {
		return "", fmt.Errorf("failed to clear chat: %w", err)
	}
	return c.formatter.Success("История чата очищена"), nil
}

// DeleteCommand removes a chat entirely. Without arguments it deletes the
// current one.
type DeleteCommand struct {
	chats     core.ChatRepository
	formatter *ResponseFormatter
}

func NewDeleteCommand(chats core.ChatRepository) *DeleteCommand {
	return &DeleteCommand{chats: chats, formatter: NewResponseFormatter()}
}

func (c *DeleteCommand) Name() string        { return "delete" }
func (c *DeleteCommand) Description() string { return "Удалить чат: /delete [id]" }

func (c *DeleteCommand) Execute(ctx context.Context, chatID int64, args []string) (string, error) {
	target := chatID
	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid chat id %q", args[0])
		}
		target = id
	}
	if err := c.chats.DeleteChat(ctx, target); err != nil {
		return "", fmt.Errorf("failed to delete chat: %w", err)
	}
	return c.formatter.Success(fmt.Sprintf("Чат #%d удалён", target)), nil
}

// ForgetCommand wipes the current chat's context memory: remembered facts
// and search breadcrumbs.
type ForgetCommand struct {
	contexts  core.ContextMemoryRepository
	formatter *ResponseFormatter
}

func NewForgetCommand(contexts core.ContextMemoryRepository) *ForgetCommand {
	return &ForgetCommand{contexts: contexts, formatter: NewResponseFormatter()}
}

func (c *ForgetCommand) Name() string        { return "forget" }
func (c *ForgetCommand) Description() string { return "Забыть запомненные факты этого чата" }

func (c *ForgetCommand) Execute(ctx context.Context, chatID int64, _ []string) (string, error) {
	if err := c.contexts.ClearContext(ctx, chatID); err != nil {
		return "", fmt.Errorf("failed to clear context memory: %w", err)
	}
	return c.formatter.Success("Память очищена"), nil
}
