package core

import (
	"strings"
	"time"
)

const (
	LadoName      = "Lado"
	LadoUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	LadoVersion   = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Languages the assistant distinguishes. Detection is a plain
// Cyrillic-vs-Latin letter count, see internal/lang.
const (
	LangRussian = "russian"
	LangEnglish = "english"
)

// Response modes. Fast maps to the "short" prompt variant, Thinking to
// "deep", Pro to "pro".
const (
	ModeFast     = "fast"
	ModeThinking = "thinking"
	ModePro      = "pro"
)

// Context memory entry types.
const (
	ContextUserMemory  = "user_memory"
	ContextSearchQuick = "search_quick"
	ContextSearchDeep  = "search_deep"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat is one conversation. At most one chat has Active set.
type Chat struct {
	ID        int64
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Active    bool
}

// StoredMessage is a persisted chat message. AttachedFiles is a JSON
// array of file paths, empty when nothing was attached.
type StoredMessage struct {
	ID            int64
	ChatID        int64
	Role          string
	Content       string
	AttachedFiles []string
	CreatedAt     time.Time
}

// ContextEntry is one row of the per-chat context memory: either an
// explicit "remember this" fact or a search-summary breadcrumb.
type ContextEntry struct {
	ID        int64
	ChatID    int64
	Type      string
	Content   string
	CreatedAt time.Time
}

const (
	DefaultChatTitle = "Новый чат"
	maxChatTitleLen  = 40
)

// DeriveChatTitle turns the first message of a chat into its title.
func DeriveChatTitle(message string) string {
	title := strings.TrimSpace(message)
	if i := strings.IndexByte(title, '\n'); i >= 0 {
		title = title[:i]
	}
	runes := []rune(title)
	if len(runes) > maxChatTitleLen {
		title = string(runes[:maxChatTitleLen-3]) + "..."
	}
	if title == "" {
		title = DefaultChatTitle
	}
	return title
}
