package intent

import (
	"regexp"
	"strings"
)

var mathKeywords = []string{
	"реши", "вычисли", "посчитай", "упрости", "уравнение", "неравенство",
	"производн", "интеграл", "логарифм", "корень", "дробь", "матриц",
	"предел", "теорем", "докажи", "график функции", "одз",
	"solve", "calculate", "compute", "simplify", "equation", "inequality",
	"derivative", "integral", "logarithm", "square root", "fraction",
	"matrix", "limit", "theorem", "prove", "evaluate",
}

// Each entry is an independent symbol-pattern category. Matching two
// distinct categories is taken as math even without a keyword.
var mathSymbolPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[=+\-*/^×÷]`),                 // operators
	regexp.MustCompile(`\d\s*[=+\-*/^×÷]\s*\d`),       // digit-operator-digit expression
	regexp.MustCompile(`[√∛∜±]`),                      // radicals and plus-minus
	regexp.MustCompile(`[²³⁴⁵⁶⁷⁸⁹⁰¹]`),                // superscripts
	regexp.MustCompile(`(?i)\b[xyz]\b\s*[=^+\-*/<>]`), // variable followed by an operator
}

// DetectMathProblem reports whether the message looks like a math problem.
// Permissive on purpose: a stray "x" next to an operator can trip it, and
// that is preferred over sending an equation to a search engine.
func DetectMathProblem(text string) bool {
	lower := strings.ToLower(text)

	categories := 0
	for _, p := range mathSymbolPatterns {
		if p.MatchString(text) {
			categories++
		}
	}
	if categories >= 2 {
		return true
	}
	if categories == 0 {
		return false
	}

	for _, kw := range mathKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
