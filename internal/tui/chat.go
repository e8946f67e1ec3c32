// Package tui is the terminal chat interface: a scrollback viewport, an
// input box and a status line with the current model and mode.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ladobot/lado/internal/core"
	"github.com/ladobot/lado/internal/lang"
	"github.com/ladobot/lado/internal/service/assistant"
	"github.com/ladobot/lado/pkg/log"
)

const historyWindow = 50

type responseMsg struct {
	generation int
	chatID     int64
	userText   string
	text       string
}

type historyMsg struct {
	chatID   int64
	title    string
	messages []core.StoredMessage
	err      error
}

type entry struct {
	role string
	text string
}

// ModelNamer reports the provider's active model for the status line.
type ModelNamer interface {
	Model() string
}

type Chat struct {
	ctx       context.Context
	assistant *assistant.Service
	chats     core.ChatRepository
	router    core.CmdRouter
	provider  ModelNamer

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model

	chatID     int64
	chatTitle  string
	uiLanguage string
	entries    []entry

	mode          string
	searchEnabled bool
	forcedSearch  bool
	attachment    string

	thinking   bool
	generation int
	cancel     context.CancelFunc

	width  int
	height int
	ready  bool
}

func NewChat(ctx context.Context, svc *assistant.Service, chats core.ChatRepository, router core.CmdRouter, provider ModelNamer, uiLanguage string) *Chat {
	ta := textarea.New()
	ta.Placeholder = "Напишите сообщение..."
	ta.Focus()
	ta.Prompt = "│ "
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Chat{
		ctx:           ctx,
		assistant:     svc,
		chats:         chats,
		router:        router,
		provider:      provider,
		input:         ta,
		spinner:       sp,
		mode:          core.ModeFast,
		searchEnabled: true,
		uiLanguage:    uiLanguage,
	}
}

func (m *Chat) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.loadHistory())
}

func (m *Chat) loadHistory() tea.Cmd {
	return func() tea.Msg {
		chatID, err := m.chats.ActiveChatID(m.ctx)
		if err != nil {
			return historyMsg{err: err}
		}
		title := core.DefaultChatTitle
		all, err := m.chats.AllChats(m.ctx)
		if err != nil {
			return historyMsg{err: err}
		}
		for _, c := range all {
			if c.ID == chatID {
				title = c.Title
				break
			}
		}
		messages, err := m.chats.Messages(m.ctx, chatID, historyWindow)
		if err != nil {
			return historyMsg{err: err}
		}
		return historyMsg{chatID: chatID, title: title, messages: messages}
	}
}

func (m *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chrome := m.input.Height() + 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chrome)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chrome
		}
		m.input.SetWidth(msg.Width - 2)
		m.refreshViewport()
		return m, nil

	case historyMsg:
		if msg.err != nil {
			m.entries = append(m.entries, entry{role: "error", text: msg.err.Error()})
			m.refreshViewport()
			return m, nil
		}
		m.chatID = msg.chatID
		m.chatTitle = msg.title
		m.entries = m.entries[:0]
		for _, sm := range msg.messages {
			m.entries = append(m.entries, entry{role: sm.Role, text: sm.Content})
		}
		m.refreshViewport()
		return m, nil

	case responseMsg:
		// A stale reply from a cancelled or superseded turn. Dropped before
		// persistence so stopped generations leave no assistant row behind.
		if msg.generation != m.generation {
			return m, nil
		}
		m.thinking = false
		m.cancel = nil
		logger := log.FromCtx(m.ctx)
		if err := m.chats.SaveMessage(m.ctx, msg.chatID, core.RoleAssistant, msg.text, nil); err != nil {
			logger.Warn().Err(err).Msg("failed to save assistant message")
		}
		m.entries = append(m.entries, entry{role: core.RoleAssistant, text: msg.text})
		// Fresh chats get their title from the first completed exchange.
		if m.chatTitle == core.DefaultChatTitle && len(m.entries) == 2 {
			title := core.DeriveChatTitle(msg.userText)
			if err := m.chats.UpdateChatTitle(m.ctx, msg.chatID, title); err != nil {
				logger.Warn().Err(err).Msg("failed to update chat title")
			} else {
				m.chatTitle = title
			}
		}
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.thinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.stopGeneration()
			return m, tea.Quit

		case "esc":
			m.stopGeneration()
			return m, nil

		case "ctrl+t":
			m.mode = nextMode(m.mode)
			return m, nil

		case "ctrl+s":
			m.searchEnabled = !m.searchEnabled
			return m, nil

		case "ctrl+f":
			// Forced search applies to the next send only.
			m.forcedSearch = !m.forcedSearch
			return m, nil

		case "ctrl+r":
			return m, m.regenerate()

		case "enter":
			return m, m.send()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func nextMode(mode string) string {
	switch mode {
	case core.ModeFast:
		return core.ModeThinking
	case core.ModeThinking:
		return core.ModePro
	default:
		return core.ModeFast
	}
}

func (m *Chat) stopGeneration() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.thinking {
		m.generation++
		m.thinking = false
		m.entries = append(m.entries, entry{role: "system", text: "⏹ Остановлено"})
		m.refreshViewport()
	}
}

func (m *Chat) send() tea.Cmd {
	if m.thinking {
		return nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}
	m.input.Reset()

	if strings.HasPrefix(text, "/attach ") {
		m.attachment = strings.TrimSpace(strings.TrimPrefix(text, "/attach "))
		m.entries = append(m.entries, entry{role: "system", text: "📎 " + m.attachment})
		m.refreshViewport()
		return nil
	}

	if out, handled := m.router.Execute(m.ctx, m.chatID, text); handled {
		m.entries = append(m.entries, entry{role: "system", text: out})
		m.refreshViewport()
		// Commands may create, switch or delete chats.
		return m.loadHistory()
	}

	// Plain-text triggers: "switch to english" flips the fallback language,
	// "забудь" drops history for this turn.
	if switched := lang.DetectSwitch(text); switched != "" {
		m.uiLanguage = switched
	}
	forget := lang.DetectForget(text)

	return m.ask(text, forget)
}

// ask persists the user turn and fires the model call in the background.
func (m *Chat) ask(text string, forget bool) tea.Cmd {
	logger := log.FromCtx(m.ctx)

	var attached []string
	if m.attachment != "" {
		attached = []string{m.attachment}
	}
	if err := m.chats.SaveMessage(m.ctx, m.chatID, core.RoleUser, text, attached); err != nil {
		logger.Warn().Err(err).Msg("failed to save user message")
	}

	m.entries = append(m.entries, entry{role: core.RoleUser, text: text})
	m.refreshViewport()

	req := assistant.Request{
		ChatID:        m.chatID,
		Message:       text,
		UILanguage:    m.uiLanguage,
		Mode:          m.mode,
		ForcedSearch:  m.forcedSearch && m.searchEnabled,
		DisableSearch: !m.searchEnabled,
		Forget:        forget,
		FilePath:      m.attachment,
	}
	m.attachment = ""
	m.forcedSearch = false
	m.thinking = true
	m.generation++
	generation := m.generation

	genCtx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel

	respond := func() tea.Msg {
		reply := m.assistant.Respond(genCtx, req)
		return responseMsg{generation: generation, chatID: req.ChatID, userText: text, text: reply}
	}
	return tea.Batch(m.spinner.Tick, respond)
}

// regenerate drops the last exchange and asks the last user message again.
func (m *Chat) regenerate() tea.Cmd {
	if m.thinking || len(m.entries) < 2 {
		return nil
	}
	last := m.entries[len(m.entries)-1]
	prev := m.entries[len(m.entries)-2]
	if last.role != core.RoleAssistant || prev.role != core.RoleUser {
		return nil
	}
	if err := m.chats.DeleteLastMessages(m.ctx, m.chatID, 2); err != nil {
		log.FromCtx(m.ctx).Warn().Err(err).Msg("failed to drop last exchange")
		return nil
	}
	m.entries = m.entries[:len(m.entries)-2]
	return m.ask(prev.text, false)
}

func (m *Chat) refreshViewport() {
	if !m.ready {
		return
	}
	var sb strings.Builder
	for _, e := range m.entries {
		switch e.role {
		case core.RoleUser:
			sb.WriteString(userStyle.Render("Вы") + "\n" + e.text + "\n\n")
		case core.RoleAssistant:
			sb.WriteString(assistantStyle.Render(core.LadoName) + "\n" + e.text + "\n\n")
		case "error":
			sb.WriteString(errorStyle.Render(e.text) + "\n\n")
		default:
			sb.WriteString(systemStyle.Render(e.text) + "\n\n")
		}
	}
	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

func (m *Chat) View() string {
	if !m.ready {
		return "Загрузка..."
	}

	status := m.statusLine()
	if m.thinking {
		status = m.spinner.View() + " Думаю...  " + status
	}

	return m.viewport.View() + "\n" +
		m.input.View() + "\n" +
		status
}

func (m *Chat) statusLine() string {
	search := statusStyle.Render("поиск выкл")
	switch {
	case m.searchEnabled && m.forcedSearch:
		search = statusOnStyle.Render("🔍 поиск!")
	case m.searchEnabled:
		search = statusOnStyle.Render("🔍 поиск")
	}
	return statusStyle.Render(fmt.Sprintf("%s · %s · ", m.chatTitle, m.provider.Model())) +
		statusOnStyle.Render(m.mode) +
		statusStyle.Render(" · ") + search +
		statusStyle.Render(" · ctrl+t режим · ctrl+s поиск · ctrl+f принудительно · ctrl+r заново · esc стоп")
}

// Run starts the chat interface and blocks until the user quits.
func Run(ctx context.Context, svc *assistant.Service, chats core.ChatRepository, router core.CmdRouter, provider ModelNamer, uiLanguage string) error {
	p := tea.NewProgram(NewChat(ctx, svc, chats, router, provider, uiLanguage), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
