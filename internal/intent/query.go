package intent

import "strings"

// QueryType carries the search category plus hints for the search backend:
// Domains filter result URLs by substring, Keywords are appended to the
// query string to sharpen results.
type QueryType struct {
	Category string
	Domains  []string
	Keywords []string
}

type categoryRule struct {
	category   string
	keywordsRU []string
	keywordsEN []string
	domainsRU  []string
	domainsEN  []string
	extraRU    []string
	extraEN    []string
	anyLang    bool // keywordsRU checked regardless of language
}

// categoryRules is evaluated top to bottom, first match wins. Overlapping
// keyword sets are resolved by position in this list, not by best match.
var categoryRules = []categoryRule{
	{
		category:   "weather",
		keywordsRU: []string{"погода", "температура", "градус", "прогноз", "осадки", "дожд", "снег", "ветер", "климат", "мороз", "жара", "солнечно", "облачно"},
		keywordsEN: []string{"weather", "temperature", "forecast", "rain", "snow", "wind", "climate", "sunny", "cloudy"},
		domainsRU:  []string{"weather", "meteo", "gismeteo", "погода", "yandex.ru/pogoda"},
		domainsEN:  []string{"weather.com", "accuweather", "weatherapi", "meteo"},
		extraRU:    []string{"прогноз погоды", "температура", "метеосервис"},
		extraEN:    []string{"weather forecast", "temperature"},
	},
	{
		category:   "tech",
		keywordsRU: []string{"телефон", "смартфон", "компьютер", "ноутбук", "планшет", "айфон", "iphone", "samsung", "характеристик", "сравни", "лучше", "процессор", "память", "экран", "камера", "батарея", "гаджет"},
		keywordsEN: []string{"phone", "smartphone", "computer", "laptop", "tablet", "iphone", "samsung", "specs", "compare", "better", "processor", "memory", "screen", "camera", "battery", "gadget"},
		domainsRU:  []string{"ixbt", "overclockers", "dns-shop", "citilink", "mobile-review", "tech", "gadget"},
		domainsEN:  []string{"gsmarena", "techradar", "cnet", "anandtech", "tomshardware", "tech", "review"},
		extraRU:    []string{"обзор", "характеристики", "тест", "сравнение"},
		extraEN:    []string{"review", "specs", "comparison", "test"},
	},
	{
		category:   "cooking",
		keywordsRU: []string{"рецепт", "приготов", "готов", "блюдо", "ингредиент", "выпека", "варить", "жарить", "запека", "кухня", "салат", "суп", "десерт", "торт"},
		keywordsEN: []string{"recipe", "cook", "dish", "ingredient", "bake", "fry", "roast", "kitchen", "salad", "soup", "dessert", "cake"},
		domainsRU:  []string{"russianfood", "edimdoma", "povar", "gastronom", "recipe", "рецепт"},
		domainsEN:  []string{"allrecipes", "foodnetwork", "epicurious", "recipe", "cooking"},
		extraRU:    []string{"рецепт с фото", "как приготовить", "пошаговый рецепт"},
		extraEN:    []string{"recipe with photos", "how to cook", "step by step"},
	},
	{
		category:   "learning",
		keywordsRU: []string{"что такое", "как работает", "объясни", "расскажи", "чем отличается", "зачем", "почему", "определение", "значение"},
		keywordsEN: []string{"what is", "how does", "explain", "tell me", "difference", "why", "definition", "meaning"},
		domainsRU:  []string{"wikipedia", "wiki", "habr", "образование", "учебный"},
		domainsEN:  []string{"wikipedia", "wiki", "education", "tutorial"},
		extraRU:    []string{"определение", "объяснение", "что это"},
		extraEN:    []string{"definition", "explanation", "what is"},
	},
	{
		category:   "programming",
		anyLang:    true,
		keywordsRU: []string{"код", "программ", "python", "javascript", "java", "c++", "html", "css", "api", "функция", "метод", "класс", "error", "bug", "github", "stackoverflow", "code", "script"},
		domainsRU:  []string{"stackoverflow", "github", "habr", "docs", "documentation", "developer"},
		domainsEN:  []string{"stackoverflow", "github", "habr", "docs", "documentation", "developer"},
		extraRU:    []string{"documentation", "example", "tutorial", "code"},
		extraEN:    []string{"documentation", "example", "tutorial", "code"},
	},
	{
		category:   "news",
		keywordsRU: []string{"новост", "событ", "сегодня", "вчера", "произошло", "случилось"},
		keywordsEN: []string{"news", "event", "today", "yesterday", "happened", "occurred"},
		domainsRU:  []string{"news", "новости", "lenta", "tass", "ria", "rbc"},
		domainsEN:  []string{"news", "bbc", "cnn", "reuters", "nytimes"},
		extraRU:    []string{"новости", "событие", "последние новости"},
		extraEN:    []string{"latest news", "breaking news", "event"},
	},
}

// AnalyzeQueryType assigns a search category by walking the rule table in
// priority order. Unmatched queries fall through to a catch-all with no
// domain filter.
func AnalyzeQueryType(query, language string) QueryType {
	lower := strings.ToLower(query)
	russian := language == "russian"

	for _, rule := range categoryRules {
		keywords := rule.keywordsEN
		if russian || rule.anyLang {
			keywords = rule.keywordsRU
		}
		if !matchesAny(lower, keywords) {
			continue
		}
		if russian {
			return QueryType{Category: rule.category, Domains: rule.domainsRU, Keywords: rule.extraRU}
		}
		return QueryType{Category: rule.category, Domains: rule.domainsEN, Keywords: rule.extraEN}
	}
	return QueryType{Category: "general"}
}

func matchesAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
