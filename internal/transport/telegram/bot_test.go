package telegram

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladobot/lado/internal/core"
)

func TestLocalCommand_SearchToggle(t *testing.T) {
	b := &Bot{mode: core.ModeFast}

	reply, handled := b.localCommand("/search")
	require.True(t, handled)
	assert.Contains(t, reply, "включён")
	assert.True(t, b.forcedSearch)

	reply, handled = b.localCommand("/search")
	require.True(t, handled)
	assert.Contains(t, reply, "выключен")
	assert.False(t, b.forcedSearch)
}

func TestLocalCommand_Mode(t *testing.T) {
	b := &Bot{mode: core.ModeFast}

	reply, handled := b.localCommand("/mode")
	require.True(t, handled)
	assert.Contains(t, reply, core.ModeFast)

	reply, handled = b.localCommand("/mode thinking")
	require.True(t, handled)
	assert.Equal(t, core.ModeThinking, b.mode)

	reply, handled = b.localCommand("/mode turbo")
	require.True(t, handled)
	assert.Contains(t, reply, "Неизвестный режим")
	assert.Equal(t, core.ModeThinking, b.mode, "mode unchanged on bad argument")

	_, handled = b.localCommand("/model llama3")
	assert.False(t, handled, "/model belongs to the shared router")
}

func TestLocalCommand_PlainTextIgnored(t *testing.T) {
	b := &Bot{mode: core.ModeFast}
	_, handled := b.localCommand("привет")
	assert.False(t, handled)
}

type stubChats struct {
	core.ChatRepository
	history []core.StoredMessage
}

func (s *stubChats) Messages(context.Context, int64, int) ([]core.StoredMessage, error) {
	return s.history, nil
}

func TestIsFirstTurn(t *testing.T) {
	chats := &stubChats{}
	b := &Bot{chats: chats}
	assert.True(t, b.isFirstTurn(context.Background(), 1), "empty chat is a first turn")

	// The check runs before the user message is stored, so any stored row
	// means the chat has already been named.
	chats.history = []core.StoredMessage{{Role: core.RoleUser, Content: "привет"}}
	assert.False(t, b.isFirstTurn(context.Background(), 1))
}

func TestSplitHTML(t *testing.T) {
	short := "короткое сообщение"
	assert.Equal(t, []string{short}, splitHTML(short, 100))

	long := strings.Repeat("строка текста\n", 50)
	chunks := splitHTML(long, 100)
	assert.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 100)
	}
	joined := strings.Join(chunks, "\n")
	assert.Equal(t, strings.TrimSpace(long), strings.TrimSpace(joined))
}
