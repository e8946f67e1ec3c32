// Package translate is a best-effort text translator backed by the free
// Google translate endpoint. It exists for one case: a Russian question
// answered in English after a search. Failures are swallowed and the
// input comes back unchanged, callers never branch on translation errors.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ladobot/lado/internal/core"
	"github.com/ladobot/lado/pkg/log"
)

const (
	endpoint       = "https://translate.googleapis.com/translate_a/single"
	requestTimeout = 20 * time.Second

	// Chunks are split on sentence boundaries under this many characters;
	// the endpoint rejects oversized queries.
	maxChunk = 4500
)

type Google struct {
	client   *http.Client
	endpoint string
}

var _ core.Translator = (*Google)(nil)

func NewGoogle() *Google {
	return &Google{
		client:   &http.Client{Timeout: requestTimeout},
		endpoint: endpoint,
	}
}

// Translate converts text between languages, chunking long input on
// sentence boundaries. Any failure returns the original text.
func (g *Google) Translate(ctx context.Context, text, from, to string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	logger := log.FromCtx(ctx)
	logger.Debug().Int("length", len(text)).Str("from", from).Str("to", to).Msg("translating")

	if len(text) <= maxChunk {
		out, err := g.translateChunk(ctx, text, from, to)
		if err != nil {
			logger.Warn().Err(err).Msg("translation failed, keeping original")
			return text
		}
		return out
	}

	var parts []string
	for _, chunk := range splitSentences(text, maxChunk) {
		out, err := g.translateChunk(ctx, chunk, from, to)
		if err != nil {
			logger.Warn().Err(err).Msg("translation failed, keeping original")
			return text
		}
		parts = append(parts, out)
	}
	return strings.Join(parts, " ")
}

func (g *Google) translateChunk(ctx context.Context, text, from, to string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", from)
	q.Set("tl", to)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", core.LadoUserAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate endpoint returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	// Reply shape: [[["перевод","original",...],...],...]
	var parsed []json.RawMessage
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed) == 0 {
		return "", fmt.Errorf("unexpected translate response")
	}
	var segments [][]json.RawMessage
	if err := json.Unmarshal(parsed[0], &segments); err != nil {
		return "", fmt.Errorf("unexpected translate response")
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var piece string
		if err := json.Unmarshal(seg[0], &piece); err != nil {
			continue
		}
		sb.WriteString(piece)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty translation")
	}
	return sb.String(), nil
}

// splitSentences groups sentence-sized pieces into chunks below the limit.
// A single oversized sentence becomes its own chunk and is sent as is.
func splitSentences(text string, limit int) []string {
	sentences := strings.SplitAfter(text, ". ")
	var chunks []string
	var current strings.Builder
	for _, s := range sentences {
		if current.Len() > 0 && current.Len()+len(s) > limit {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		current.WriteString(s)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
