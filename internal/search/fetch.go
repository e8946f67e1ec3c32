package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/inbucket/html2text"

	"github.com/ladobot/lado/internal/core"
	"github.com/ladobot/lado/pkg/retry"
)

const (
	maxPageSize      = 1 << 20 // 1MB limit
	pageFetchTimeout = 15 * time.Second

	// Deep mode appends at most this much extracted page text to the
	// search block.
	maxPageText = 3000
)

// PageFetcher downloads a result page and reduces it to plain text. Used
// in deep mode to enrich the top search hit beyond its snippet.
type PageFetcher struct {
	client  *http.Client
	retrier *retry.Retrier
}

func NewPageFetcher() *PageFetcher {
	cfg := retry.NewDefaultConfig()
	cfg.MaxRetries = 2
	return &PageFetcher{
		client:  &http.Client{Timeout: pageFetchTimeout},
		retrier: retry.NewRetrier(cfg),
	}
}

// FetchText fetches the URL and returns its readable text, truncated to
// maxPageText bytes on a rune boundary.
func (f *PageFetcher) FetchText(ctx context.Context, pageURL string) (string, error) {
	var body string
	err := f.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", core.LadoUserAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to fetch page: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
		}

		body, err = html2text.FromReader(io.LimitReader(resp.Body, maxPageSize), html2text.Options{
			OmitLinks:    true,
			PrettyTables: false,
		})
		if err != nil {
			return fmt.Errorf("failed to extract text: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	body = strings.TrimSpace(body)
	if len(body) > maxPageText {
		body = truncateRunes(body, maxPageText) + "..."
	}
	return body, nil
}

// TopResultURL pulls the first "Ссылка:" line out of a formatted result
// block. Empty when the block carries no links.
func TopResultURL(formatted string) string {
	for _, line := range strings.Split(formatted, "\n") {
		if u, ok := strings.CutPrefix(line, "Ссылка: "); ok {
			return strings.TrimSpace(u)
		}
	}
	return ""
}
