package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/microcosm-cc/bluemonday"
)

func resultDiv(title, href, snippet string) string {
	return fmt.Sprintf(`
<div class="result results_links results_links_deep web-result">
  <h2 class="result__title"><a class="result__a" href="%s">%s</a></h2>
  <a class="result__snippet" href="%s">%s</a>
</div>`, href, title, href, snippet)
}

func newTestSearcher(t *testing.T, handler http.HandlerFunc) *DuckDuckGo {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &DuckDuckGo{
		client:   srv.Client(),
		endpoint: srv.URL,
		sanitize: bluemonday.StrictPolicy(),
	}
}

func TestSearch_FormatsResultBlocks(t *testing.T) {
	d := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("kl"); got != "ru-ru" {
			t.Errorf("region param = %q, want ru-ru", got)
		}
		page := "<html><body>" +
			resultDiv("Гисметео", "https://www.gismeteo.ru/moscow", "Прогноз <b>погоды</b> в Москве") +
			resultDiv("Яндекс Погода", "https://yandex.ru/pogoda/moscow", "Температура сегодня") +
			"</body></html>"
		fmt.Fprint(w, page)
	})

	out, err := d.Search(context.Background(), "погода в Москве", 5, "ru-ru", "russian")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "[Результат 1]") || !strings.Contains(out, "[Результат 2]") {
		t.Fatalf("result blocks missing:\n%s", out)
	}
	if !strings.Contains(out, "Заголовок: Гисметео") {
		t.Errorf("title line missing:\n%s", out)
	}
	if !strings.Contains(out, "Ссылка: https://www.gismeteo.ru/moscow") {
		t.Errorf("link line missing:\n%s", out)
	}
	if strings.Contains(out, "<b>") {
		t.Error("snippet markup leaked into output")
	}
}

func TestSearch_DomainFilterFallsBackWhenThin(t *testing.T) {
	// A weather query against results with no weather domains: the filter
	// finds nothing, so the unfiltered head must come back.
	d := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		page := "<html><body>" +
			resultDiv("Форум", "https://forum.example.com/1", "обсуждение") +
			resultDiv("Блог", "https://blog.example.com/2", "заметка") +
			"</body></html>"
		fmt.Fprint(w, page)
	})

	out, err := d.Search(context.Background(), "какая погода в Москве", 5, "wt-wt", "russian")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "forum.example.com") {
		t.Fatalf("fallback to unfiltered results did not happen:\n%s", out)
	}
}

func TestSearch_NoResults(t *testing.T) {
	d := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body></body></html>")
	})
	out, err := d.Search(context.Background(), "чтототакоенесуществующее", 5, "wt-wt", "russian")
	if err != nil {
		t.Fatal(err)
	}
	if out != noResultsText {
		t.Fatalf("empty result text = %q", out)
	}
}

func TestSearch_ServerError(t *testing.T) {
	d := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})
	if _, err := d.Search(context.Background(), "погода", 5, "wt-wt", "russian"); err == nil {
		t.Fatal("expected an error on HTTP 403")
	}
}

func TestDecodeRedirect(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{
			"//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.gismeteo.ru%2Fmoscow&rut=abc",
			"https://www.gismeteo.ru/moscow",
		},
		{"https://direct.example.com/page", "https://direct.example.com/page"},
	}
	for _, tt := range tests {
		if got := decodeRedirect(tt.in); got != tt.want {
			t.Errorf("decodeRedirect(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTopResultURL(t *testing.T) {
	block := "[Результат 1]\nЗаголовок: X\nОписание: Y\nСсылка: https://example.com/top\n\n[Результат 2]\nСсылка: https://example.com/second"
	if got := TopResultURL(block); got != "https://example.com/top" {
		t.Fatalf("TopResultURL = %q", got)
	}
	if got := TopResultURL("пусто"); got != "" {
		t.Fatalf("want empty, got %q", got)
	}
}
