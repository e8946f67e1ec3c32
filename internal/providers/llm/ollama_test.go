package llm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladobot/lado/internal/core"
)

func testMessages() []core.Message {
	return []core.Message{
		{Role: core.RoleSystem, Content: "Ты полезный ассистент."},
		{Role: core.RoleUser, Content: "привет"},
	}
}

func TestChat_Success(t *testing.T) {
	var gotBody atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		buf, _ := io.ReadAll(r.Body)
		gotBody.Store(string(buf))
		fmt.Fprint(w, `{"message":{"role":"assistant","content":"  Привет!  "}}`)
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "llama3")
	reply, err := o.Chat(context.Background(), testMessages(), 200, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "Привет!", reply)

	body, _ := gotBody.Load().(string)
	assert.Contains(t, body, `"model":"llama3"`)
	assert.Contains(t, body, `"stream":false`)
	assert.Contains(t, body, `"num_predict":200`)
}

func TestChat_NoRetryOnHTTPError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "llama3")
	_, err := o.Chat(context.Background(), testMessages(), 200, 5*time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), calls.Load(), "HTTP status errors must not be retried")
}

func TestChat_RetriesConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // every dial now fails

	o := NewOllama(srv.URL, "llama3")
	start := time.Now()
	_, err := o.Chat(context.Background(), testMessages(), 200, 5*time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 attempts")
	assert.GreaterOrEqual(t, time.Since(start), retryPause, "second attempt must wait out the pause")
}

func TestChat_TimeoutRetriesWithoutPause(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "llama3")
	start := time.Now()
	_, err := o.Chat(context.Background(), testMessages(), 200, 50*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 attempts")
	assert.Equal(t, int32(2), calls.Load())
	assert.Less(t, time.Since(start), retryPause, "timed-out attempts retry immediately")
}

func TestChat_MalformedReplyRetriedThenStringified(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"done":true}`)
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "llama3")
	reply, err := o.Chat(context.Background(), testMessages(), 200, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "malformed reply gets exactly one retry")
	assert.Contains(t, reply, `"done":true`, "final malformed reply is surfaced stringified")
}

func TestChat_RecoversOnSecondAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			fmt.Fprint(w, `{"oops":1}`)
			return
		}
		fmt.Fprint(w, `{"message":{"role":"assistant","content":"готово"}}`)
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "llama3")
	reply, err := o.Chat(context.Background(), testMessages(), 200, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "готово", reply)
	assert.Equal(t, int32(2), calls.Load())
}

func TestChat_ContextCancelStops(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{"message":{"role":"assistant","content":"поздно"}}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	o := NewOllama(srv.URL, "llama3")
	_, err := o.Chat(ctx, testMessages(), 200, 5*time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		fmt.Fprint(w, `{"models":[{"name":"llama3"},{"name":"mistral:7b"}]}`)
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "llama3")
	models, err := o.Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3", "mistral:7b"}, models)
}

func TestNewOllama_TrimsTrailingSlash(t *testing.T) {
	o := NewOllama("http://127.0.0.1:11434/", "llama3")
	assert.False(t, strings.HasSuffix(o.host, "/"))
}
