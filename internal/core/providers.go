package core

import (
	"context"
	"time"
)

// AIProvider is a non-streaming chat completion backend.
type AIProvider interface {
	Chat(ctx context.Context, messages []Message, maxTokens int, timeout time.Duration) (string, error)
	Models(ctx context.Context) ([]string, error)
}

// Searcher runs a web search and returns pre-formatted result blocks.
// Implementations never return an error for "no results"; they return
// a user-facing text instead.
type Searcher interface {
	Search(ctx context.Context, query string, numResults int, region, language string) (string, error)
}

// Translator is a best-effort text translator. Implementations return
// the input unchanged on failure.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) string
}
