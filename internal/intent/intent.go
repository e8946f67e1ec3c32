// Package intent classifies free-text user input: does this message need a
// web search, is it a math problem, what category of query is it. All
// classifiers are pure keyword/regex scorers over static rule tables.
package intent

import (
	"strings"

	"github.com/ladobot/lado/internal/core"
)

// Decision is the outcome of search-intent analysis for one user turn.
// It is never persisted.
type Decision struct {
	RequiresSearch bool
	Confidence     float64
	Reason         string
	Forced         bool
}

// contextTurns is how many trailing user turns feed the weak context signal.
const contextTurns = 5

// AnalyzeSearchIntent decides whether the message needs a web search.
//
// A forced request short-circuits everything: the user pressed the search
// button, so no amount of offline signal may suppress it. Otherwise the
// message is scored against the internet/offline rule tables; keywords found
// in the message count full weight, keywords found in the last few user
// turns count half. Positive balance means search, with confidence scaled
// so that a balance of 5 saturates at 1.0.
func AnalyzeSearchIntent(message string, forced bool, history []core.Message) Decision {
	if forced {
		return Decision{
			RequiresSearch: true,
			Confidence:     1.0,
			Reason:         "forced_search_override",
			Forced:         true,
		}
	}

	lower := strings.ToLower(message)
	contextWords := collectContextWords(history)

	var internetScore, offlineScore float64
	reason := "keyword_balance"

	for _, rule := range internetRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				internetScore += rule.Weight
			} else if containsAny(contextWords, kw) {
				internetScore += rule.Weight / 2
			}
		}
	}

	for _, rule := range offlineRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				offlineScore += rule.Weight
			}
		}
	}

	for _, p := range definitionPatterns {
		if strings.Contains(lower, p) {
			internetScore += 2
			reason = "definition_question"
			break
		}
	}

	if strings.ContainsAny(lower, mathOperators) {
		offlineScore += 2
	}

	total := internetScore - offlineScore
	if total > 0 {
		confidence := total / 5.0
		if confidence > 1.0 {
			confidence = 1.0
		}
		return Decision{RequiresSearch: true, Confidence: confidence, Reason: reason}
	}
	return Decision{RequiresSearch: false, Confidence: 0.0, Reason: "offline_balance"}
}

// collectContextWords flattens the last contextTurns user messages into a
// single word list.
func collectContextWords(history []core.Message) []string {
	var words []string
	seen := 0
	for i := len(history) - 1; i >= 0 && seen < contextTurns; i-- {
		if history[i].Role != core.RoleUser {
			continue
		}
		words = append(words, strings.Fields(strings.ToLower(history[i].Content))...)
		seen++
	}
	return words
}

func containsAny(words []string, keyword string) bool {
	for _, w := range words {
		if strings.Contains(w, keyword) {
			return true
		}
	}
	return false
}
