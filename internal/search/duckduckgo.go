// Package search implements web search over the DuckDuckGo HTML endpoint
// plus the helpers around it: query categorization, contextual query
// rewriting, result compression and full-page fetching for deep mode.
package search

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/ladobot/lado/internal/core"
	"github.com/ladobot/lado/internal/intent"
	"github.com/ladobot/lado/pkg/log"
)

const (
	htmlEndpoint   = "https://html.duckduckgo.com/html/"
	requestTimeout = 30 * time.Second

	noResultsText = "Ничего не найдено по вашему запросу."
)

// Result is one parsed search hit.
type Result struct {
	Title   string
	Snippet string
	URL     string
}

// DuckDuckGo scrapes the JS-free HTML endpoint. No API key, no official
// client; results come back as the Russian-labeled blocks the prompt
// assembler expects.
type DuckDuckGo struct {
	client   *http.Client
	endpoint string
	sanitize *bluemonday.Policy
}

var _ core.Searcher = (*DuckDuckGo)(nil)

func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{
		client:   &http.Client{Timeout: requestTimeout},
		endpoint: htmlEndpoint,
		sanitize: bluemonday.StrictPolicy(),
	}
}

// Search runs a categorized search. The query is sharpened with up to two
// category keywords, three times the requested results are fetched, and
// hits are filtered down by the category's domain list. A thin filter
// result (fewer than max(2, n/2) hits) falls back to the unfiltered set.
func (d *DuckDuckGo) Search(ctx context.Context, query string, numResults int, region, language string) (string, error) {
	if numResults <= 0 {
		numResults = 5
	}
	logger := log.FromCtx(ctx)

	qt := intent.AnalyzeQueryType(query, language)
	enhanced := query
	if len(qt.Keywords) > 0 {
		extra := qt.Keywords
		if len(extra) > 2 {
			extra = extra[:2]
		}
		enhanced = query + " " + strings.Join(extra, " ")
	}
	logger.Debug().
		Str("category", qt.Category).
		Str("query", enhanced).
		Msg("search started")

	raw, err := d.fetch(ctx, enhanced, region, numResults*3)
	if err != nil {
		return "", fmt.Errorf("duckduckgo fetch: %w", err)
	}
	logger.Debug().Int("raw", len(raw)).Msg("raw results received")

	results := filterByDomains(raw, qt.Domains, numResults)
	if len(results) == 0 {
		return noResultsText, nil
	}

	blocks := make([]string, 0, len(results))
	for i, r := range results {
		blocks = append(blocks, fmt.Sprintf(
			"[Результат %d]\nЗаголовок: %s\nОписание: %s\nСсылка: %s",
			i+1, r.Title, r.Snippet, r.URL))
	}
	logger.Info().
		Str("category", qt.Category).
		Int("results", len(results)).
		Msg("search finished")
	return strings.Join(blocks, "\n\n"), nil
}

// filterByDomains keeps hits whose URL contains any relevant domain
// substring. An empty domain list or a too-thin filtered set yields the
// plain head of the raw list.
func filterByDomains(raw []Result, domains []string, numResults int) []Result {
	if len(domains) == 0 {
		return head(raw, numResults)
	}
	var filtered []Result
	for _, r := range raw {
		link := strings.ToLower(r.URL)
		for _, dom := range domains {
			if strings.Contains(link, dom) {
				filtered = append(filtered, r)
				break
			}
		}
		if len(filtered) >= numResults {
			break
		}
	}
	floor := numResults / 2
	if floor < 2 {
		floor = 2
	}
	if len(filtered) < floor {
		return head(raw, numResults)
	}
	return filtered
}

func head(rs []Result, n int) []Result {
	if len(rs) > n {
		return rs[:n]
	}
	return rs
}

func (d *DuckDuckGo) fetch(ctx context.Context, query, region string, maxResults int) ([]Result, error) {
	form := url.Values{}
	form.Set("q", query)
	if region != "" {
		form.Set("kl", region)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.endpoint+"?"+form.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", core.LadoUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en-US;q=0.5")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return d.parse(resp.Body, maxResults)
}

func (d *DuckDuckGo) parse(body io.Reader, maxResults int) ([]Result, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var results []Result
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find("a.result__a").First()
		href, _ := link.Attr("href")
		title := strings.TrimSpace(link.Text())
		// Snippets carry <b> highlight markup; strip it, keep the text.
		snippetHTML, _ := sel.Find(".result__snippet").First().Html()
		snippet := strings.TrimSpace(html.UnescapeString(d.sanitize.Sanitize(snippetHTML)))
		if title == "" || href == "" {
			return true
		}
		if snippet == "" {
			snippet = "Нет описания"
		}
		results = append(results, Result{
			Title:   title,
			Snippet: snippet,
			URL:     decodeRedirect(href),
		})
		return len(results) < maxResults
	})
	return results, nil
}

// decodeRedirect unwraps DuckDuckGo's uddg= redirect links to the target
// URL. Anything unrecognized passes through untouched.
func decodeRedirect(href string) string {
	idx := strings.Index(href, "uddg=")
	if idx < 0 {
		return href
	}
	target := href[idx+len("uddg="):]
	if amp := strings.Index(target, "&"); amp >= 0 {
		target = target[:amp]
	}
	if decoded, err := url.QueryUnescape(target); err == nil {
		return decoded
	}
	return href
}
