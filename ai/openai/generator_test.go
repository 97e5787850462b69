package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/poiesic/sumry/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func TestBaseURL(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"http://localhost:11434", "http://localhost:11434/v1"},
		{"http://localhost:11434/", "http://localhost:11434/v1"},
		{"http://localhost:11434/v1", "http://localhost:11434/v1"},
		{"https://api.openai.com/v1/", "https://api.openai.com/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, baseURL(tt.host))
		})
	}
}

func TestChatMessageType(t *testing.T) {
	assert.Equal(t, llms.ChatMessageTypeSystem, chatMessageType(ai.RoleSystem))
	assert.Equal(t, llms.ChatMessageTypeHuman, chatMessageType(ai.RoleUser))
	assert.Equal(t, llms.ChatMessageTypeAI, chatMessageType(ai.RoleAssistant))
}

func TestNewGenerator_InvalidConfig(t *testing.T) {
	cfg := ai.NewConfig(ai.WithModel(""))

	_, err := NewGenerator(cfg)
	assert.Error(t, err)
}

func TestGenerator_Generate(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "test-model",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "extracted"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2}
		}`))
	}))
	defer server.Close()

	gen, err := NewGenerator(ai.NewConfig(ai.WithHost(server.URL), ai.WithModel("test-model")))
	require.NoError(t, err)

	out, err := gen.Generate(context.Background(), ai.Request{
		Messages: []ai.Message{ai.SystemMessage("sys"), ai.UserMessage("hello")},
	})
	require.NoError(t, err)

	assert.Equal(t, "extracted", out)
	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "test-model", gotBody["model"])
}

func TestGenerator_EmptyMessages(t *testing.T) {
	gen, err := NewGenerator(ai.NewConfig(ai.WithHost("http://127.0.0.1:1")))
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), ai.Request{})
	assert.ErrorIs(t, err, ai.ErrEmptyMessages)
}

func TestGenerator_ErrorCauses(t *testing.T) {
	userRequest := ai.Request{Messages: []ai.Message{ai.UserMessage("hello")}}

	t.Run("server error is a protocol error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": {"message": "boom"}}`))
		}))
		defer server.Close()

		gen, err := NewGenerator(ai.NewConfig(ai.WithHost(server.URL)))
		require.NoError(t, err)

		_, err = gen.Generate(context.Background(), userRequest)
		require.Error(t, err)

		var statusErr *ai.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
		assert.Contains(t, statusErr.Body, "boom")
		assert.Equal(t, ai.CauseProtocol, ai.Classify(err))
	})

	t.Run("rate limit is a protocol error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		gen, err := NewGenerator(ai.NewConfig(ai.WithHost(server.URL)))
		require.NoError(t, err)

		_, err = gen.Generate(context.Background(), userRequest)
		assert.Equal(t, ai.CauseProtocol, ai.Classify(err))
	})

	t.Run("slow response is a timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()

		cfg := ai.NewConfig(ai.WithHost(server.URL), ai.WithTimeouts(0, 50*time.Millisecond, 0, 0))
		gen, err := NewGenerator(cfg)
		require.NoError(t, err)

		_, err = gen.Generate(context.Background(), userRequest)
		require.Error(t, err)
		assert.Equal(t, ai.CauseTimeout, ai.Classify(err))
	})

	t.Run("refused connection is a connection error", func(t *testing.T) {
		gen, err := NewGenerator(ai.NewConfig(ai.WithHost("http://127.0.0.1:1")))
		require.NoError(t, err)

		_, err = gen.Generate(context.Background(), userRequest)
		require.Error(t, err)
		assert.Equal(t, ai.CauseConnection, ai.Classify(err))
	})

	t.Run("canceled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		gen, err := NewGenerator(ai.NewConfig(ai.WithHost(server.URL)))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(20*time.Millisecond, cancel)

		_, err = gen.Generate(ctx, userRequest)
		require.Error(t, err)
		assert.Equal(t, ai.CauseCanceled, ai.Classify(err))
	})
}

func TestTranslateError_MappedCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ai.Cause
	}{
		{"deadline", context.DeadlineExceeded, ai.CauseTimeout},
		{"canceled", context.Canceled, ai.CauseCanceled},
		{"rate limit", errors.New("rate limit exceeded"), ai.CauseProtocol},
		{"unavailable", errors.New("service unavailable"), ai.CauseProtocol},
		{"unknown", errors.New("something odd"), ai.CauseOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ai.Classify(translateError(tt.err, &callRecord{})))
		})
	}
}

func TestCauseForCode(t *testing.T) {
	assert.Equal(t, ai.CauseTimeout, causeForCode(llms.ErrCodeTimeout))
	assert.Equal(t, ai.CauseCanceled, causeForCode(llms.ErrCodeCanceled))
	assert.Equal(t, ai.CauseProtocol, causeForCode(llms.ErrCodeProviderUnavailable))
	assert.Equal(t, ai.CauseProtocol, causeForCode(llms.ErrCodeRateLimit))
	assert.Equal(t, ai.Cause(""), causeForCode(llms.ErrCodeUnknown))
}
