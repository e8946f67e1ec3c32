package search

import (
	"fmt"
	"strings"
	"testing"
)

func formattedResults(n, descLen int) string {
	blocks := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		blocks = append(blocks, fmt.Sprintf(
			"[Результат %d]\nЗаголовок: Заголовок %d\nОписание: %s\nСсылка: https://example.com/%d",
			i, i, strings.Repeat("о", descLen), i))
	}
	return strings.Join(blocks, "\n\n")
}

func TestCompressResults_NoopUnderBudget(t *testing.T) {
	in := formattedResults(2, 50)
	if got := CompressResults(in, 10000); got != in {
		t.Fatal("short input must pass through unchanged")
	}
}

func TestCompressResults_TruncatesDescriptions(t *testing.T) {
	in := formattedResults(3, 4000)
	got := CompressResults(in, 2000)

	if len(got) >= len(in) {
		t.Fatalf("no compression happened: %d >= %d", len(got), len(in))
	}
	for i := 1; i <= 3; i++ {
		if !strings.Contains(got, fmt.Sprintf("[Результат %d]", i)) {
			t.Errorf("result %d block lost", i)
		}
		if !strings.Contains(got, fmt.Sprintf("Ссылка: https://example.com/%d", i)) {
			t.Errorf("result %d link lost", i)
		}
		if !strings.Contains(got, fmt.Sprintf("Заголовок: Заголовок %d", i)) {
			t.Errorf("result %d title lost", i)
		}
	}
	if !strings.Contains(got, "...") {
		t.Error("truncated description must carry an ellipsis")
	}
}

func TestCompressResults_DescriptionFloor(t *testing.T) {
	// Tiny budget: descriptions still keep at least the floor length.
	in := formattedResults(5, 4000)
	got := CompressResults(in, 500)
	for _, line := range strings.Split(got, "\n") {
		if text, ok := strings.CutPrefix(line, "Описание: "); ok {
			trimmed := strings.TrimSuffix(text, "...")
			if len(trimmed) > descFloor {
				t.Fatalf("description longer than floor: %d bytes", len(trimmed))
			}
		}
	}
}

func TestCompressResults_UnsplittableInput(t *testing.T) {
	in := strings.Repeat("просто длинный текст без блоков ", 100)
	got := CompressResults(in, 64)
	if !strings.HasSuffix(got, "...") {
		t.Fatal("hard truncation must append an ellipsis")
	}
	if len(got) > 64+3 {
		t.Fatalf("hard truncation overshoots: %d bytes", len(got))
	}
}
