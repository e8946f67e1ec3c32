// Package assistant assembles prompts and produces replies. Respond is
// the whole pipeline for one user turn: language and intent detection,
// prompt assembly from mode/memory/math fragments, the optional search
// branch, the model call and the post-call cleanup.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"

	"github.com/ladobot/lado/internal/core"
	"github.com/ladobot/lado/internal/intent"
	"github.com/ladobot/lado/internal/lang"
	"github.com/ladobot/lado/internal/prompt"
	"github.com/ladobot/lado/internal/search"
	"github.com/ladobot/lado/pkg/log"
)

const (
	maxHistoryLoad = 50
	// The rewriter only looks at the recent tail of the conversation.
	rewriteHistory = 10
	// Context-memory entries fed into the system prompt.
	contextEntries = 10

	quickSummaryLimit = 200
	deepSummaryLimit  = 500
	questionLimit     = 100
)

// Request is one user turn. ChatID may be zero when no chat is selected;
// persistence then degrades to the legacy flat log.
type Request struct {
	ChatID  int64
	Message string
	// UILanguage is the interface language, logged for diagnostics. Reply
	// language follows the detected language of the message, never this.
	UILanguage   string
	Mode         string
	DeepThinking bool
	ForcedSearch bool
	// DisableSearch wins over everything: the UI's search toggle is off.
	DisableSearch bool
	Forget        bool
	FilePath      string
}

// HistoryFallback is the flat message log used when no chat is active.
type HistoryFallback interface {
	Save(ctx context.Context, role, content string) error
	Load(ctx context.Context, limit int) ([]core.Message, error)
}

type Service struct {
	provider   core.AIProvider
	searcher   core.Searcher
	translator core.Translator
	chats      core.ChatRepository
	contexts   core.ContextMemoryRepository
	legacy     HistoryFallback
	fetcher    *search.PageFetcher
	encoder    *tiktoken.Tiktoken
	files      FileReader
}

type Option func(*Service)

// WithPageFetcher enables the deep-mode page fetch of the top search hit.
func WithPageFetcher(f *search.PageFetcher) Option {
	return func(s *Service) { s.fetcher = f }
}

// WithHistoryFallback wires the legacy flat log.
func WithHistoryFallback(h HistoryFallback) Option {
	return func(s *Service) { s.legacy = h }
}

// WithFileReader overrides attachment reading, used by tests.
func WithFileReader(r FileReader) Option {
	return func(s *Service) { s.files = r }
}

func New(
	provider core.AIProvider,
	searcher core.Searcher,
	translator core.Translator,
	chats core.ChatRepository,
	contexts core.ContextMemoryRepository,
	opts ...Option,
) *Service {
	s := &Service{
		provider:   provider,
		searcher:   searcher,
		translator: translator,
		chats:      chats,
		contexts:   contexts,
		files:      osFileReader{},
	}
	// Token counts are logging-only; a failed encoding init is not fatal.
	if enc, err := tiktoken.GetEncoding("cl100k_base"); err == nil {
		s.encoder = enc
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// unicodeMath maps typography that keyboards and LLM answers produce to
// the ASCII the math detector and the model handle best.
var unicodeMath = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"−", "-",
	"±", "+-",
	"–", "-",
	"—", "-",
)

// Respond runs the full turn and always returns displayable text. Errors
// along the way degrade to tagged fallback strings, never escape.
func (s *Service) Respond(ctx context.Context, req Request) string {
	logger := log.FromCtx(ctx)

	message := unicodeMath.Replace(req.Message)
	detected := lang.Detect(message)

	if fact, ok := rememberCommand(message); ok {
		return s.remember(ctx, req.ChatID, fact, detected)
	}
	logger.Debug().
		Str("language", detected).
		Str("ui_language", req.UILanguage).
		Bool("deep", req.DeepThinking).
		Bool("forced_search", req.ForcedSearch).
		Msg("turn started")

	history := s.loadHistory(ctx, req)

	decision := intent.AnalyzeSearchIntent(message, req.ForcedSearch, history)
	useSearch := decision.RequiresSearch
	if req.DisableSearch {
		useSearch = false
	}
	logger.Debug().
		Bool("requires_search", decision.RequiresSearch).
		Float64("confidence", decision.Confidence).
		Str("reason", decision.Reason).
		Msg("search intent")

	// Math always runs offline, even when the search button forced the
	// decision above. This override is applied last on purpose.
	isMath := intent.DetectMathProblem(message)
	if isMath && useSearch {
		logger.Info().Msg("math problem detected, search disabled")
	}
	if isMath {
		useSearch = false
	}

	variant := prompt.Variant(req.Mode, req.DeepThinking)
	deep := variant != prompt.VariantShort

	systemPrompt := prompt.Base(detected, variant)
	if s.contexts != nil && req.ChatID != 0 {
		entries, err := s.contexts.RecentContext(ctx, req.ChatID, contextEntries)
		if err != nil {
			logger.Warn().Err(err).Msg("context memory unavailable")
		} else {
			systemPrompt += prompt.MemoryBlock(detected, entries)
		}
	}
	if isMath {
		systemPrompt += "\n\n" + prompt.Math(detected, variant)
	}
	if detected == core.LangRussian {
		systemPrompt += prompt.RussianEnforcement
	}

	finalUserMessage := message
	if req.FilePath != "" {
		finalUserMessage = message + s.fileContext(ctx, req.FilePath, detected)
	}

	if useSearch {
		finalUserMessage = s.searchContext(ctx, message, history, detected, deep)
	}

	messages := []core.Message{{Role: core.RoleSystem, Content: systemPrompt}}
	if !req.Forget {
		messages = append(messages, history...)
	}
	messages = append(messages, core.Message{Role: core.RoleUser, Content: finalUserMessage})

	maxTokens, timeout := budgets(useSearch, deep)
	s.logPromptSize(ctx, messages)
	logger.Debug().Int("max_tokens", maxTokens).Dur("timeout", timeout).Msg("calling model")

	reply, err := s.provider.Chat(ctx, messages, maxTokens, timeout)
	if err != nil {
		logger.Error().Err(err).Msg("model call failed")
		return modelErrorText(detected)
	}

	// A Russian question answered in English after a search gets a
	// best-effort translation pass plus the word filter.
	if detected == core.LangRussian && useSearch && lang.Detect(reply) == core.LangEnglish {
		logger.Info().Msg("reply came back english, translating")
		reply = s.translator.Translate(ctx, reply, "en", "ru")
		reply = prompt.FilterEnglishWords(reply)
	}

	if useSearch && req.ChatID != 0 && reply != "" {
		s.saveSearchSummary(ctx, req.ChatID, message, reply, deep)
	}

	return reply
}

// remember persists a "запомни ..." fact and acknowledges without calling
// the model.
func (s *Service) remember(ctx context.Context, chatID int64, fact, detected string) string {
	logger := log.FromCtx(ctx)
	if fact == "" {
		if detected == core.LangEnglish {
			return "What should I remember?"
		}
		return "Что запомнить?"
	}
	if s.contexts != nil && chatID != 0 {
		if err := s.contexts.SaveContext(ctx, chatID, core.ContextUserMemory, fact); err != nil {
			logger.Error().Err(err).Msg("failed to save memory")
		}
	}
	logger.Info().Str("fact", fact).Msg("remembered user fact")
	if detected == core.LangEnglish {
		return "✓ Got it!"
	}
	return "✓ Запомнил!"
}

var rememberPrefixes = []string{"запомни", "remember"}

// rememberCommand strips the remember prefix plus any ":" or "," and
// reports whether the message was a remember command at all.
func rememberCommand(message string) (string, bool) {
	trimmed := strings.TrimSpace(message)
	lower := strings.ToLower(trimmed)
	for _, p := range rememberPrefixes {
		if !strings.HasPrefix(lower, p) {
			continue
		}
		rest := trimmed[len(p):]
		if rest != "" && rest[0] != ' ' && rest[0] != ':' && rest[0] != ',' {
			continue
		}
		return strings.TrimSpace(strings.TrimLeft(rest, " :,")), true
	}
	return "", false
}

// loadHistory returns the recent conversation oldest first, at most
// maxHistoryLoad turns. Without an active chat the legacy flat log is
// the source.
func (s *Service) loadHistory(ctx context.Context, req Request) []core.Message {
	logger := log.FromCtx(ctx)

	if s.chats != nil && req.ChatID != 0 {
		stored, err := s.chats.Messages(ctx, req.ChatID, maxHistoryLoad)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to load chat history")
			return nil
		}
		msgs := make([]core.Message, 0, len(stored))
		for _, m := range stored {
			if m.Role != core.RoleUser && m.Role != core.RoleAssistant {
				continue
			}
			msgs = append(msgs, core.Message{Role: m.Role, Content: m.Content})
		}
		return msgs
	}

	if s.legacy == nil {
		return nil
	}
	msgs, err := s.legacy.Load(ctx, maxHistoryLoad)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load legacy history")
		return nil
	}
	return msgs
}

// searchContext runs the search branch: rewrite, search, compress, wrap.
// The returned text replaces the user message entirely.
func (s *Service) searchContext(ctx context.Context, message string, history []core.Message, detected string, deep bool) string {
	logger := log.FromCtx(ctx)

	region, numResults := "us-en", 3
	if detected == core.LangRussian {
		region = "ru-ru"
	}
	if deep {
		numResults = 8
	}

	tail := history
	if len(tail) > rewriteHistory {
		tail = tail[len(tail)-rewriteHistory:]
	}
	query := search.BuildContextualQuery(ctx, message, tail, detected)
	logger.Info().Str("query", query).Msg("searching")

	results, err := s.searcher.Search(ctx, query, numResults, region, detected)
	if err != nil {
		logger.Warn().Err(err).Msg("search failed")
		results = "Ничего не найдено по вашему запросу."
	}

	// Roughly 1 token per 4 characters of Russian, 3 of English. The
	// budget leaves room for the system prompt and the answer.
	maxSearchTokens := 1000
	if deep {
		maxSearchTokens = 2000
	}
	maxSearchChars := maxSearchTokens * 3
	if detected == core.LangRussian {
		maxSearchChars = maxSearchTokens * 4
	}
	if len(results) > maxSearchChars {
		results = search.CompressResults(results, maxSearchChars)
	}

	if deep && s.fetcher != nil {
		if top := search.TopResultURL(results); top != "" {
			if page, err := s.fetcher.FetchText(ctx, top); err != nil {
				logger.Debug().Err(err).Str("url", top).Msg("page fetch failed")
			} else if page != "" {
				results += "\n\nТекст первого источника:\n" + page
			}
		}
	}

	return prompt.WrapSearchContext(detected, deep, results, message)
}

// budgets returns the reply token limit and per-call timeout for the
// search/depth combination.
func budgets(useSearch, deep bool) (maxTokens int, timeout time.Duration) {
	switch {
	case useSearch && deep:
		return 1500, 180 * time.Second
	case useSearch:
		return 800, 120 * time.Second
	case deep:
		return 2000, 120 * time.Second
	default:
		return 200, 60 * time.Second
	}
}

func modelErrorText(detected string) string {
	if detected == core.LangEnglish {
		return "❌ Error: no reply from the local model. Check that:\n1. Ollama is running\n2. The model is pulled\n3. There is enough memory"
	}
	return "❌ Ошибка: не удалось получить ответ от локальной модели. Проверьте:\n1. Запущена ли Ollama\n2. Загружена ли модель\n3. Достаточно ли памяти"
}

// saveSearchSummary leaves a one-line breadcrumb of a search-augmented
// answer in context memory.
func (s *Service) saveSearchSummary(ctx context.Context, chatID int64, question, reply string, deep bool) {
	limit, contextType := quickSummaryLimit, core.ContextSearchQuick
	if deep {
		limit, contextType = deepSummaryLimit, core.ContextSearchDeep
	}

	summary := reply
	if len([]rune(summary)) > limit {
		summary = string([]rune(summary)[:limit]) + "..."
	}
	q := question
	if len([]rune(q)) > questionLimit {
		q = string([]rune(q)[:questionLimit])
	}

	entry := fmt.Sprintf("Вопрос: %s | Вывод: %s", q, summary)
	if err := s.contexts.SaveContext(ctx, chatID, contextType, entry); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to save search summary")
	}
}

func (s *Service) logPromptSize(ctx context.Context, messages []core.Message) {
	if s.encoder == nil {
		return
	}
	total := 0
	for _, m := range messages {
		total += len(s.encoder.Encode(m.Content, nil, nil))
	}
	log.FromCtx(ctx).Debug().
		Int("messages", len(messages)).
		Int("prompt_tokens", total).
		Msg("prompt assembled")
}
