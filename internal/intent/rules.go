package intent

// Rule is one scored keyword group. Keywords match as plain substrings of
// the lowercased message, without tokenization, so short Russian stems
// fire inside longer words too. That looseness is load-bearing: the
// stored confidence values were produced under substring semantics.
type Rule struct {
	Name     string
	Keywords []string
	Weight   float64
}

// internetRules lists signals that a query needs fresh data from the web.
var internetRules = []Rule{
	{Name: "time", Weight: 1, Keywords: []string{
		"сейчас", "сегодня", "завтра", "вчера", "который час", "какое число",
		"now", "today", "tomorrow", "yesterday", "current time", "what date",
	}},
	{Name: "weather", Weight: 1, Keywords: []string{
		"погода", "температура", "прогноз", "осадки", "дожд", "снег",
		"weather", "temperature", "forecast", "rain", "snow",
	}},
	{Name: "news", Weight: 1, Keywords: []string{
		"новост", "событи", "произошло", "случилось",
		"news", "headline", "happened", "breaking",
	}},
	{Name: "location", Weight: 1, Keywords: []string{
		"где находится", "адрес", "как добраться", "маршрут",
		"where is", "address", "how to get to", "directions",
	}},
	{Name: "realtime", Weight: 1, Keywords: []string{
		"курс", "цена", "стоимость", "сколько стоит", "расписание", "акции",
		"price", "cost", "how much is", "schedule", "stock", "exchange rate",
	}},
	{Name: "software", Weight: 1, Keywords: []string{
		"последняя версия", "обновление", "вышла", "релиз",
		"latest version", "update", "released", "release date",
	}},
	{Name: "recipes", Weight: 1, Keywords: []string{
		"рецепт", "как приготовить",
		"recipe", "how to cook",
	}},
	{Name: "search-verbs", Weight: 1, Keywords: []string{
		"найди", "поищи", "погугли", "посмотри в интернете",
		"search", "look up", "google", "find online",
	}},
}

// offlineRules lists signals that the model can answer from its own weights.
var offlineRules = []Rule{
	{Name: "math", Weight: 1, Keywords: []string{
		"реши", "вычисли", "посчитай", "уравнение", "пример",
		"solve", "calculate", "compute", "equation",
	}},
	{Name: "creative", Weight: 1, Keywords: []string{
		"напиши", "придумай", "сочини", "стихотворение", "поздравление", "рассказ",
		"write", "compose", "poem", "story", "congratulation",
	}},
	{Name: "translation", Weight: 1, Keywords: []string{
		"переведи", "перевод",
		"translate", "translation",
	}},
	{Name: "code", Weight: 1, Keywords: []string{
		"напиши код", "функцию", "скрипт", "программу",
		"write code", "function", "script", "snippet",
	}},
	{Name: "rewrite", Weight: 1, Keywords: []string{
		"перефразируй", "сократи", "исправь", "улучши текст",
		"rephrase", "shorten", "fix this", "improve the text",
	}},
}

// definitionPatterns add a strong internet signal: bare "what is X" /
// "who is X" questions usually want an up-to-date answer.
var definitionPatterns = []string{
	"что такое", "кто такой", "кто такая", "кто такие",
	"what is", "who is", "what are",
}

const mathOperators = "=+-*/^"
