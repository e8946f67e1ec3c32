// Package llm talks to the local Ollama server over its native chat API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ladobot/lado/internal/core"
	"github.com/ladobot/lado/pkg/log"
)

// maxAttempts bounds retries on transient failures. HTTP status errors are
// never retried: a 404 or 500 from Ollama will not heal in one second.
const maxAttempts = 2

const retryPause = time.Second

// Ollama is a non-streaming client for POST /api/chat.
type Ollama struct {
	host   string
	model  string
	client *http.Client
}

var _ core.AIProvider = (*Ollama)(nil)

func NewOllama(host, model string) *Ollama {
	return &Ollama{
		host:   strings.TrimRight(host, "/"),
		model:  model,
		client: &http.Client{},
	}
}

func (o *Ollama) Model() string { return o.model }

// SetModel switches the model used by subsequent calls. Not safe for
// concurrent use with Chat; the UI serializes turns anyway.
func (o *Ollama) SetModel(name string) { o.model = name }

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []core.Message `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  chatOptions    `json:"options"`
}

type chatOptions struct {
	NumPredict int `json:"num_predict"`
}

type chatResponse struct {
	Message *core.Message `json:"message"`
}

// statusError marks a non-2xx reply; it is terminal, never retried.
type statusError struct {
	code   int
	status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("ollama returned HTTP %d: %s", e.code, e.status)
}

// Chat sends the conversation and returns the assistant reply. The timeout
// is per attempt. Timeouts, connection failures and malformed replies get
// one retry; on the final attempt a malformed reply is returned stringified
// so the caller still has something to show.
func (o *Ollama) Chat(ctx context.Context, messages []core.Message, maxTokens int, timeout time.Duration) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:    o.model,
		Messages: messages,
		Stream:   false,
		Options:  chatOptions{NumPredict: maxTokens},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	logger := log.FromCtx(ctx)
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		logger.Debug().
			Int("attempt", attempt).
			Dur("timeout", timeout).
			Int("max_tokens", maxTokens).
			Msg("calling ollama")

		reply, raw, err := o.doChat(ctx, payload, timeout)
		if err == nil && reply != "" {
			logger.Debug().Int("length", len(reply)).Msg("ollama replied")
			return reply, nil
		}

		var se *statusError
		if errors.As(err, &se) {
			return "", err
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if err == nil {
			// 200 with no message.content in the body.
			lastErr = fmt.Errorf("unexpected ollama response: %s", raw)
		} else {
			lastErr = err
		}
		logger.Warn().Err(lastErr).Int("attempt", attempt).Msg("ollama call failed")

		if attempt < maxAttempts {
			// A timed-out attempt already cost the full per-call timeout;
			// retry immediately. Only connection-level failures pause.
			if !errors.Is(lastErr, context.DeadlineExceeded) {
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(retryPause):
				}
			}
			continue
		}
		if err == nil {
			// Surface the stringified body rather than nothing.
			return raw, nil
		}
	}
	return "", fmt.Errorf("ollama unavailable after %d attempts: %w", maxAttempts, lastErr)
}

func (o *Ollama) doChat(ctx context.Context, payload []byte, timeout time.Duration) (reply, raw string, err error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", &statusError{code: resp.StatusCode, status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("read ollama response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", string(body), nil
	}
	if parsed.Message == nil || parsed.Message.Content == "" {
		return "", string(body), nil
	}
	return strings.TrimSpace(parsed.Message.Content), string(body), nil
}

// Models lists locally pulled models via GET /api/tags.
func (o *Ollama) Models(ctx context.Context) ([]string, error) {
	type tag struct {
		Name string `json:"name"`
	}
	type tagsResponse struct {
		Models []tag `json:"models"`
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.host+"/api/tags", nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama not available: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var result tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(result.Models))
	for _, m := range result.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
