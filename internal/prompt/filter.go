package prompt

import (
	"bufio"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// englishToRussian maps English connector/adjective/verb words that models
// habitually leave in Russian answers to Russian equivalents. Deliberately
// small: this is a post-filter of last resort after translation, not a
// dictionary.
var englishToRussian = map[string]string{
	"however":       "однако",
	"therefore":     "поэтому",
	"because":       "потому что",
	"also":          "также",
	"very":          "очень",
	"important":     "важно",
	"importantly":   "важно",
	"example":       "пример",
	"answer":        "ответ",
	"question":      "вопрос",
	"note":          "заметьте",
	"additionally":  "кроме того",
	"finally":       "наконец",
	"usually":       "обычно",
	"sometimes":     "иногда",
	"always":        "всегда",
	"never":         "никогда",
	"maybe":         "возможно",
	"probably":      "вероятно",
	"certainly":     "конечно",
	"generally":     "в целом",
	"specifically":  "конкретно",
	"basically":     "по сути",
	"actually":      "на самом деле",
	"interesting":   "интересно",
	"difficult":     "сложно",
	"easy":          "легко",
	"possible":      "возможно",
	"impossible":    "невозможно",
	"necessary":     "необходимо",
	"remember":      "помните",
	"understand":    "понимать",
	"means":         "означает",
	"includes":      "включает",
	"contains":      "содержит",
	"conclusion":    "вывод",
	"summary":       "итог",
	"result":        "результат",
	"results":       "результаты",
	"information":   "информация",
	"knowledge":     "знания",
	"people":        "люди",
	"today":         "сегодня",
	"now":           "сейчас",
	"good":          "хорошо",
	"best":          "лучший",
	"more":          "больше",
	"less":          "меньше",
	"many":          "много",
	"several":       "несколько",
	"different":     "разные",
	"common":        "распространённый",
	"popular":       "популярный",
	"modern":        "современный",
	"correct":       "правильно",
	"wrong":         "неверно",
	"of course":     "конечно",
	"for example":   "например",
	"in conclusion": "в заключение",
	"in general":    "в целом",
	"as well":       "также",
	"such as":       "такие как",
	"and so on":     "и так далее",
}

var filter = newWordFilter(englishToRussian)

type wordFilter struct {
	mu    sync.RWMutex
	words map[string]string
	re    *regexp.Regexp
}

func newWordFilter(base map[string]string) *wordFilter {
	f := &wordFilter{words: make(map[string]string, len(base))}
	for k, v := range base {
		f.words[k] = v
	}
	f.rebuild()
	return f
}

// rebuild compiles the matcher. Longest keys first so "for example" wins
// over "example". Caller must hold mu or be the sole owner.
func (f *wordFilter) rebuild() {
	keys := make([]string, 0, len(f.words))
	for k := range f.words {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	for i, k := range keys {
		keys[i] = regexp.QuoteMeta(k)
	}
	f.re = regexp.MustCompile(`(?i)\b(` + strings.Join(keys, "|") + `)\b`)
}

func (f *wordFilter) apply(text string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.re.ReplaceAllStringFunc(text, func(match string) string {
		if repl, ok := f.words[strings.ToLower(match)]; ok {
			return repl
		}
		return match
	})
}

func (f *wordFilter) extend(added map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, v := range added {
		f.words[k] = v
	}
	f.rebuild()
}

// FilterEnglishWords replaces dictionary-known English words in a Russian
// answer with Russian equivalents. Unknown English words pass through
// untouched, so proper nouns and product names survive.
func FilterEnglishWords(text string) string {
	return filter.apply(text)
}

// LoadExtraWords extends the filter dictionary from a user-supplied file of
// "english=русский" lines. A missing file is not an error.
func LoadExtraWords(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	added := map[string]string{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		en, ru, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		en = strings.ToLower(strings.TrimSpace(en))
		ru = strings.TrimSpace(ru)
		if en != "" && ru != "" {
			added[en] = ru
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	filter.extend(added)
	return nil
}
