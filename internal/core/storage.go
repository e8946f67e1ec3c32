package core

import "context"

type ChatRepository interface {
	CreateChat(ctx context.Context, title string) (int64, error)
	AllChats(ctx context.Context) ([]Chat, error)
	ActiveChatID(ctx context.Context) (int64, error)
	SetActiveChat(ctx context.Context, chatID int64) error
	UpdateChatTitle(ctx context.Context, chatID int64, title string) error
	DeleteChat(ctx context.Context, chatID int64) error

	SaveMessage(ctx context.Context, chatID int64, role, content string, attachedFiles []string) error
	Messages(ctx context.Context, chatID int64, limit int) ([]StoredMessage, error)
	ClearMessages(ctx context.Context, chatID int64) error
	DeleteLastMessages(ctx context.Context, chatID int64, n int) error
}

type ContextMemoryRepository interface {
	SaveContext(ctx context.Context, chatID int64, contextType, content string) error
	RecentContext(ctx context.Context, chatID int64, limit int) ([]ContextEntry, error)
	ClearContext(ctx context.Context, chatID int64) error
}
