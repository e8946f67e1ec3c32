package prompt

import (
	"fmt"

	"github.com/ladobot/lado/internal/core"
)

const divider = "═══════════════════════════════════════════════════════════"

const searchInstructionRuDeep = `🧠 УМНЫЙ АНАЛИЗ ИНФОРМАЦИИ ИЗ ИНТЕРНЕТА

⚠️ КОНТЕКСТ ДИАЛОГА:
- Учитывай предыдущие сообщения в истории
- Если вопрос является продолжением темы - развивай её
- Связывай найденную информацию с тем, о чём говорилось ранее

🎯 АНАЛИЗ РЕЗУЛЬТАТОВ:
1. Определи тип запроса (погода, техника, кулинария, обучение, код, новости)
2. Проанализируй РЕЛЕВАНТНОСТЬ каждого источника
3. Отбрось информацию, которая НЕ относится к запросу
4. Сравни информацию из разных источников
5. Если есть противоречия - укажи на них

📝 ПРАВИЛА ОТВЕТА:
- Используй ТОЛЬКО релевантную информацию из результатов поиска
- Убери лишнее (форумы, мнения, если запрос технический)
- Пиши ЧЕЛОВЕЧЕСКИМ языком, а не копируй текст
- Дай краткий, понятный вывод
- НЕ используй устаревшие знания

КРИТИЧЕСКИ ВАЖНО: Отвечай ТОЛЬКО на РУССКОМ языке! Переведи всю информацию на русский, кроме имён собственных и названий.`

const searchInstructionRuQuick = `🎯 БЫСТРЫЙ АНАЛИЗ

1. Определи тип запроса
2. Найди ГЛАВНУЮ информацию в результатах
3. Убери лишнее
4. Дай КРАТКИЙ ответ по сути

ВАЖНО:
- Только релевантная информация
- Человеческий язык
- Без лишних деталей

КРИТИЧЕСКИ ВАЖНО: Отвечай ТОЛЬКО на РУССКОМ языке! Переведи всю информацию на русский, кроме имён собственных и названий.`

const searchInstructionEnDeep = `🧠 SMART INFORMATION ANALYSIS

⚠️ DIALOG CONTEXT:
- Consider previous messages in history
- If the question continues the topic - develop it
- Connect found information with what was discussed earlier

🎯 RESULTS ANALYSIS:
1. Identify query type (weather, tech, cooking, learning, code, news)
2. Analyze RELEVANCE of each source
3. Discard information NOT related to the query
4. Compare information from different sources
5. If there are contradictions - point them out

📝 RESPONSE RULES:
- Use ONLY relevant information from search results
- Remove irrelevant (forums, opinions if query is technical)
- Write in HUMAN language, don't copy text
- Give brief, clear conclusion
- DON'T use outdated knowledge`

const searchInstructionEnQuick = `🎯 QUICK ANALYSIS

1. Identify query type
2. Find MAIN information in results
3. Remove irrelevant
4. Give BRIEF answer to the point

IMPORTANT:
- Only relevant information
- Human language
- No unnecessary details`

// WrapSearchContext builds the message that replaces the user's text when
// search ran: the result blocks, a depth-specific instruction block and
// the original question.
func WrapSearchContext(language string, deep bool, searchResults, userMessage string) string {
	if language == core.LangRussian {
		instruction := searchInstructionRuQuick
		if deep {
			instruction = searchInstructionRuDeep
		}
		return fmt.Sprintf(`

%s
🔍 АКТУАЛЬНАЯ ИНФОРМАЦИЯ ИЗ ИНТЕРНЕТА (DuckDuckGo)
%s

%s

%s
📋 ИНСТРУКЦИЯ ДЛЯ ОТВЕТА:
%s

%s

Вопрос пользователя: %s
`, divider, divider, searchResults, divider, divider, instruction, userMessage)
	}

	instruction := searchInstructionEnQuick
	if deep {
		instruction = searchInstructionEnDeep
	}
	return fmt.Sprintf(`

%s
🔍 CURRENT INFORMATION FROM THE INTERNET (DuckDuckGo)
%s

%s

%s
📋 RESPONSE INSTRUCTIONS:
%s

%s

User's question: %s
`, divider, divider, searchResults, divider, divider, instruction, userMessage)
}
