package command

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladobot/lado/internal/core"
)

type memChats struct {
	core.ChatRepository
	chats   []core.Chat
	active  int64
	nextID  int64
	cleared []int64
	deleted []int64
}

func (m *memChats) CreateChat(_ context.Context, title string) (int64, error) {
	m.nextID++
	if title == "" {
		title = "Новый чат"
	}
	m.chats = append(m.chats, core.Chat{ID: m.nextID, Title: title})
	return m.nextID, nil
}

func (m *memChats) AllChats(context.Context) ([]core.Chat, error) {
	out := make([]core.Chat, len(m.chats))
	copy(out, m.chats)
	for i := range out {
		out[i].Active = out[i].ID == m.active
	}
	return out, nil
}

func (m *memChats) SetActiveChat(_ context.Context, id int64) error {
	m.active = id
	return nil
}

func (m *memChats) ClearMessages(_ context.Context, id int64) error {
	m.cleared = append(m.cleared, id)
	return nil
}

func (m *memChats) DeleteChat(_ context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type memContexts struct {
	core.ContextMemoryRepository
	cleared []int64
}

func (m *memContexts) ClearContext(_ context.Context, id int64) error {
	m.cleared = append(m.cleared, id)
	return nil
}

type memProvider struct {
	model string
}

func (m *memProvider) Model() string        { return m.model }
func (m *memProvider) SetModel(name string) { m.model = name }

func (m *memProvider) Models(context.Context) ([]string, error) {
	return []string{"llama3", "mistral"}, nil
}

func newTestRouter() (*Router, *memChats, *memContexts, *memProvider) {
	chats := &memChats{}
	contexts := &memContexts{}
	provider := &memProvider{model: "llama3"}
	return New(NewCommands(chats, contexts, provider)), chats, contexts, provider
}

func TestRouter_PlainTextPassesThrough(t *testing.T) {
	r, _, _, _ := newTestRouter()
	out, handled := r.Execute(context.Background(), 1, "привет")
	assert.False(t, handled)
	assert.Empty(t, out)
}

func TestRouter_UnknownCommand(t *testing.T) {
	r, _, _, _ := newTestRouter()
	out, handled := r.Execute(context.Background(), 1, "/nosuch")
	assert.True(t, handled)
	assert.Contains(t, out, "Неизвестная команда: /nosuch")
}

func TestRouter_NewAndSwitch(t *testing.T) {
	r, chats, _, _ := newTestRouter()

	out, handled := r.Execute(context.Background(), 1, "/new Про погоду")
	require.True(t, handled)
	assert.Contains(t, out, "Создан чат #1")
	assert.Equal(t, int64(1), chats.active, "new chat becomes active")
	assert.Equal(t, "Про погоду", chats.chats[0].Title)

	_, handled = r.Execute(context.Background(), 1, "/new")
	require.True(t, handled)
	assert.Equal(t, int64(2), chats.active)

	out, handled = r.Execute(context.Background(), 2, "/switch 1")
	require.True(t, handled)
	assert.Contains(t, out, "#1")
	assert.Equal(t, int64(1), chats.active)

	out, _ = r.Execute(context.Background(), 1, "/switch abc")
	assert.Contains(t, out, "Ошибка")
}

func TestRouter_ChatsListMarksActive(t *testing.T) {
	r, chats, _, _ := newTestRouter()
	r.Execute(context.Background(), 0, "/new первый")
	r.Execute(context.Background(), 0, "/new второй")
	chats.active = 2

	out, handled := r.Execute(context.Background(), 0, "/chats")
	require.True(t, handled)
	assert.Contains(t, out, "#1 первый")
	assert.Contains(t, out, "* #2 второй")
}

func TestRouter_ClearAndDeleteAndForget(t *testing.T) {
	r, chats, contexts, _ := newTestRouter()

	_, handled := r.Execute(context.Background(), 7, "/clear")
	require.True(t, handled)
	assert.Equal(t, []int64{7}, chats.cleared)

	_, handled = r.Execute(context.Background(), 7, "/delete")
	require.True(t, handled)
	assert.Equal(t, []int64{7}, chats.deleted)

	_, handled = r.Execute(context.Background(), 7, "/delete 3")
	require.True(t, handled)
	assert.Equal(t, []int64{7, 3}, chats.deleted)

	_, handled = r.Execute(context.Background(), 7, "/forget")
	require.True(t, handled)
	assert.Equal(t, []int64{7}, contexts.cleared)
}

func TestRouter_Model(t *testing.T) {
	r, _, _, provider := newTestRouter()

	out, handled := r.Execute(context.Background(), 1, "/model")
	require.True(t, handled)
	assert.Contains(t, out, "llama3")
	assert.Contains(t, out, "mistral")

	out, handled = r.Execute(context.Background(), 1, "/model mistral")
	require.True(t, handled)
	assert.Contains(t, out, "mistral")
	assert.Equal(t, "mistral", provider.model)
}

func TestRouter_ListCommandsSorted(t *testing.T) {
	r, _, _, _ := newTestRouter()
	cmds := r.ListCommands()
	require.Len(t, cmds, 7)
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name())
	}
	assert.True(t, sortedStrings(names), "commands must list in stable order: %v", names)
}

func sortedStrings(ss []string) bool {
	for i := 1; i < len(ss); i++ {
		if strings.Compare(ss[i-1], ss[i]) > 0 {
			return false
		}
	}
	return true
}

func TestRouter_Help(t *testing.T) {
	r, _, _, _ := newTestRouter()
	out, handled := r.Execute(context.Background(), 1, "/help")
	require.True(t, handled)
	for _, c := range r.ListCommands() {
		assert.Contains(t, out, "/"+c.Name())
	}
}
