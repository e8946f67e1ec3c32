package search

import (
	"strconv"
	"strings"
)

const (
	resultMarker = "[Результат "

	// Per result, roughly this many characters go to the title and link
	// lines; whatever is left feeds the description, but never less than
	// descFloor.
	headerReserve = 200
	descFloor     = 100
)

// CompressResults shrinks formatted search output to fit a character
// budget. The budget is split evenly across result blocks and only the
// description line is truncated; titles and links survive whole. Output
// that cannot be split into blocks is hard-truncated.
func CompressResults(searchResults string, maxLength int) string {
	if len(searchResults) <= maxLength {
		return searchResults
	}

	parts := strings.Split(searchResults, resultMarker)
	if len(parts) <= 1 {
		return truncateRunes(searchResults, maxLength) + "..."
	}
	parts = parts[1:]

	perResult := maxLength / len(parts)
	availableDesc := perResult - headerReserve
	if availableDesc < descFloor {
		availableDesc = descFloor
	}

	compressed := make([]string, 0, len(parts))
	for i, part := range parts {
		var title, desc, link string
		for _, line := range strings.Split(resultMarker+part, "\n") {
			switch {
			case strings.HasPrefix(line, "Заголовок:"):
				title = line
			case strings.HasPrefix(line, "Описание:"):
				desc = line
			case strings.HasPrefix(line, "Ссылка:"):
				link = line
			}
		}

		const descPrefix = "Описание: "
		if text, ok := strings.CutPrefix(desc, descPrefix); ok && len(text) > availableDesc {
			desc = descPrefix + truncateRunes(text, availableDesc) + "..."
		}

		compressed = append(compressed, strings.Join([]string{
			resultMarker + strconv.Itoa(i+1) + "]",
			title,
			desc,
			link,
		}, "\n"))
	}
	return strings.Join(compressed, "\n\n")
}

// truncateRunes cuts at a byte budget without splitting a UTF-8 sequence.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && s[max]&0xC0 == 0x80 {
		max--
	}
	return s[:max]
}
