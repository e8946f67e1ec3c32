package search

import (
	"context"
	"regexp"
	"strings"

	"github.com/ladobot/lado/internal/core"
	"github.com/ladobot/lado/pkg/log"
)

// Clarifying-question markers. A hit anywhere in the message marks it as a
// follow-up to the previous question.
var clarifyingKeywordsRU = []string{
	"а почему", "а как", "а где", "а когда", "а что", "а кто", "а после", "а завтра", "а вчера", "а сегодня",
	"почему", "как именно", "что именно", "когда именно", "где именно",
	"расскажи", "подробнее", "ещё", "еще", "тоже", "также", "дальше",
	"его", "её", "их", "этого", "этой", "этим", "этот", "эта", "это",
	"тогда", "потом", "после этого", "что дальше",
	"завтра", "вчера", "сегодня", "послезавтра",
}

var clarifyingKeywordsEN = []string{
	"and why", "and how", "and where", "and when", "and what", "and who",
	"why", "how exactly", "what exactly", "when exactly", "where exactly",
	"tell me", "more", "also", "too", "then", "after", "next",
	"it", "its", "their", "this", "that", "those", "these",
	"tomorrow", "yesterday", "today",
}

// Messages that consist of a single temporal word are always follow-ups.
var temporalOnly = map[string]bool{
	"завтра": true, "вчера": true, "сегодня": true, "послезавтра": true,
	"tomorrow": true, "yesterday": true, "today": true,
}

type locationPattern struct {
	prefix      string
	replacement string
}

var locationPatternsRU = []locationPattern{
	{"а в ", "в "},
	{"а на ", "на "},
	{"а для ", "для "},
}

var locationPatternsEN = []locationPattern{
	{"and in ", "in "},
	{"and at ", "at "},
	{"and for ", "for "},
}

var prepositionsRU = []string{"в ", "на ", "для "}
var prepositionsEN = []string{"in ", "at ", "for "}

// BuildContextualQuery rewrites a follow-up question into a standalone
// search query by splicing in the previous user question. "погода в
// Москве" followed by "а в Питере" becomes "погода в Питере". Standalone
// questions come back unchanged.
//
// This is a heuristic with no grammatical parsing. The last-word fallback
// in the location branch is deliberately rough; it beats searching for the
// bare follow-up text.
func BuildContextualQuery(ctx context.Context, userMessage string, history []core.Message, language string) string {
	logger := log.FromCtx(ctx)

	if len(history) < 2 {
		return userMessage
	}

	keywords := clarifyingKeywordsEN
	if language == core.LangRussian {
		keywords = clarifyingKeywordsRU
	}

	userLower := strings.ToLower(strings.TrimSpace(userMessage))

	hasClarifying := false
	for _, kw := range keywords {
		if strings.Contains(userLower, kw) {
			hasClarifying = true
			break
		}
	}
	veryShort := len(strings.Fields(userMessage)) < 6
	startsWithA := strings.HasPrefix(userLower, "а ") || strings.HasPrefix(userLower, "and ")

	if !hasClarifying && !veryShort && !startsWithA && !temporalOnly[userLower] {
		return userMessage
	}

	// The most recent user question that is not the current one.
	var mainContext string
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == core.RoleUser && history[i].Content != userMessage {
			mainContext = history[i].Content
			break
		}
	}
	if mainContext == "" {
		logger.Debug().Msg("no prior question found, query unchanged")
		return userMessage
	}

	patterns, preps := locationPatternsEN, prepositionsEN
	if language == core.LangRussian {
		patterns, preps = locationPatternsRU, prepositionsRU
	}

	for _, p := range patterns {
		if !strings.HasPrefix(userLower, p.prefix) {
			continue
		}
		newLocation := userMessage[len(p.prefix):]
		if rewritten, ok := substituteLocation(mainContext, preps, p.replacement+newLocation); ok {
			logger.Debug().
				Str("from", mainContext).
				Str("to", rewritten).
				Msg("location substituted")
			return rewritten
		}
		// No preposition phrase found: swap the last word of the prior
		// question for the new location.
		words := strings.Fields(mainContext)
		rewritten := strings.ReplaceAll(mainContext, words[len(words)-1], newLocation)
		logger.Debug().Str("to", rewritten).Msg("location substituted via last word")
		return rewritten
	}

	combined := mainContext + " " + userMessage
	logger.Debug().Str("query", combined).Msg("follow-up expanded with prior question")
	return combined
}

// substituteLocation replaces the first "preposition + word" phrase in the
// prior question with the new location phrase.
func substituteLocation(mainContext string, preps []string, replacement string) (string, bool) {
	for _, prep := range preps {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(prep) + `\S+`)
		if loc := re.FindStringIndex(mainContext); loc != nil {
			return mainContext[:loc[0]] + replacement + mainContext[loc[1]:], true
		}
	}
	return "", false
}
