// Package lang holds the character-counting language heuristics shared by
// the prompt assembler and the search pipeline.
package lang

import "strings"

// Detect classifies text as russian or english by comparing the number of
// Cyrillic letters against the number of ASCII letters. Ties and texts with
// no letters at all resolve to english. This is crude on purpose, no word
// boundaries and no locale, and must stay that way: stored prompts and
// context-memory rows were produced under exactly this rule.
func Detect(text string) string {
	var cyrillic, latin int
	for _, r := range text {
		switch {
		case r >= 0x0400 && r <= 0x04FF:
			cyrillic++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			latin++
		}
	}
	if cyrillic > latin {
		return "russian"
	}
	return "english"
}

var englishTriggers = []string{
	"перейди на английский", "переключись на английский", "давай на английском",
	"отвечай на английском", "switch to english", "speak english",
	"ответь на английском", "на английском",
}

var russianTriggers = []string{
	"перейди на русский", "переключись на русский", "давай на русском",
	"отвечай на русском", "switch to russian", "speak russian",
	"ответь на русском", "на русском",
}

// DetectSwitch reports whether the message asks to switch the interface
// language. Returns "russian", "english" or "" when no trigger matches.
func DetectSwitch(message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, t := range englishTriggers {
		if strings.Contains(lower, t) {
			return "english"
		}
	}
	for _, t := range russianTriggers {
		if strings.Contains(lower, t) {
			return "russian"
		}
	}
	return ""
}

var forgetTriggers = []string{
	"забудь", "забыть", "очисти память", "удали историю", "сотри память",
	"забудь все", "забудь всё", "очисти контекст", "обнули память",
	"forget", "forget everything", "clear memory", "clear history",
	"delete history", "erase memory", "reset memory", "clear context",
}

// DetectForget reports whether the message asks to drop conversation history.
func DetectForget(message string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, t := range forgetTriggers {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}
