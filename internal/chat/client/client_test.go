package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hellodash/dashboard-backend/internal/chat/types"
	"github.com/hellodash/dashboard-backend/internal/pkg/apikey"
)

// chatStub fakes the completions and models endpoints, recording the last
// completion payload and counting requests.
type chatStub struct {
	completionStatus int
	completionBody   string
	modelsStatus     int
	modelsBody       string

	completionCalls atomic.Int64
	modelsCalls     atomic.Int64
	lastPayload     []byte
	lastAuth        string
}

func (s *chatStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/chat/completions":
			s.completionCalls.Add(1)
			s.lastPayload, _ = io.ReadAll(r.Body)
			s.lastAuth = r.Header.Get("Authorization")
			w.WriteHeader(s.completionStatus)
			w.Write([]byte(s.completionBody))
		case "/models":
			s.modelsCalls.Add(1)
			s.lastAuth = r.Header.Get("Authorization")
			w.WriteHeader(s.modelsStatus)
			w.Write([]byte(s.modelsBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newTestClient(t *testing.T, apiHost, apiKey string) *Client {
	t.Helper()
	c, err := New(&types.Config{APIHost: apiHost, APIKey: apiKey}, zap.NewNop())
	require.NoError(t, err)
	return c
}

func userMessages(content string) []types.Message {
	return []types.Message{{Role: "user", Content: content}}
}

const successBody = `{
	"model": "gpt-3.5-turbo-0125",
	"choices": [{"message": {"role": "assistant", "content": "Hello there."}, "finish_reason": "stop"}],
	"usage": {"prompt_tokens": 12, "completion_tokens": 4, "total_tokens": 16}
}`

func TestComplete_Success(t *testing.T) {
	stub := &chatStub{completionStatus: http.StatusOK, completionBody: successBody}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL, "sk-test")
	result, err := c.Complete(context.Background(), &types.CompletionRequest{Messages: userMessages("Hi")})
	require.NoError(t, err)

	assert.Equal(t, "Hello there.", result.Text)
	assert.Equal(t, "gpt-3.5-turbo-0125", result.Model)
	assert.Equal(t, "stop", result.FinishReason)
	assert.Equal(t, 16, result.Usage.TotalTokens)
	assert.Equal(t, "Bearer sk-test", stub.lastAuth)
}

func TestComplete_EmptyConversation(t *testing.T) {
	stub := &chatStub{}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL, "sk-test")
	_, err := c.Complete(context.Background(), &types.CompletionRequest{})

	assert.ErrorIs(t, err, types.ErrEmptyConversation)
	assert.EqualError(t, err, "conversation history cannot be empty")
	assert.Zero(t, stub.completionCalls.Load(), "no network call expected")
}

func TestComplete_MissingAPIKey(t *testing.T) {
	stub := &chatStub{}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL, "")
	_, err := c.Complete(context.Background(), &types.CompletionRequest{Messages: userMessages("Hi")})

	assert.ErrorIs(t, err, types.ErrAPIKeyRequired)
	assert.Zero(t, stub.completionCalls.Load(), "no network call expected")
}

func TestComplete_NoChoicesIsPlaceholderSuccess(t *testing.T) {
	stub := &chatStub{
		completionStatus: http.StatusOK,
		completionBody:   `{"model": "gpt-3.5-turbo", "choices": [], "usage": {"total_tokens": 5}}`,
	}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL, "sk-test")
	result, err := c.Complete(context.Background(), &types.CompletionRequest{Messages: userMessages("Hi")})

	require.NoError(t, err, "an empty choices list is a success with placeholder text")
	assert.Equal(t, "No response generated", result.Text)
	assert.Equal(t, "unknown", result.FinishReason)
}

func TestComplete_MaxTokensOmittedWhenNil(t *testing.T) {
	stub := &chatStub{completionStatus: http.StatusOK, completionBody: successBody}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL, "sk-test")
	_, err := c.Complete(context.Background(), &types.CompletionRequest{Messages: userMessages("Hi")})
	require.NoError(t, err)

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(stub.lastPayload, &payload))
	_, present := payload["max_tokens"]
	assert.False(t, present, "nil max_tokens must not appear in the payload")
}

func TestComplete_MaxTokensSentWhenSet(t *testing.T) {
	stub := &chatStub{completionStatus: http.StatusOK, completionBody: successBody}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	maxTokens := 256
	c := newTestClient(t, srv.URL, "sk-test")
	_, err := c.Complete(context.Background(), &types.CompletionRequest{
		Messages:  userMessages("Hi"),
		MaxTokens: &maxTokens,
	})
	require.NoError(t, err)

	var payload struct {
		MaxTokens int `json:"max_tokens"`
	}
	require.NoError(t, json.Unmarshal(stub.lastPayload, &payload))
	assert.Equal(t, 256, payload.MaxTokens)
}

func TestComplete_MessagesPassedThroughInOrder(t *testing.T) {
	stub := &chatStub{completionStatus: http.StatusOK, completionBody: successBody}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	history := []types.Message{
		{Role: "system", Content: "You are concise."},
		{Role: "user", Content: "Hi"},
		{Role: "assistant", Content: "Hello."},
		{Role: "user", Content: "Tell me more."},
	}

	c := newTestClient(t, srv.URL, "sk-test")
	_, err := c.Complete(context.Background(), &types.CompletionRequest{Messages: history})
	require.NoError(t, err)

	var payload struct {
		Messages []types.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(stub.lastPayload, &payload))
	assert.Equal(t, history, payload.Messages)
}

func TestComplete_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, types.ErrInvalidAPIKey},
		{"rate limited", http.StatusTooManyRequests, `{}`, types.ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &chatStub{completionStatus: tt.status, completionBody: tt.body}
			srv := httptest.NewServer(stub.handler())
			defer srv.Close()

			c := newTestClient(t, srv.URL, "sk-test")
			_, err := c.Complete(context.Background(), &types.CompletionRequest{Messages: userMessages("Hi")})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestComplete_ProviderErrorMessage(t *testing.T) {
	stub := &chatStub{
		completionStatus: http.StatusBadRequest,
		completionBody:   `{"error": {"message": "model not found", "type": "invalid_request_error"}}`,
	}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL, "sk-test")
	_, err := c.Complete(context.Background(), &types.CompletionRequest{Messages: userMessages("Hi")})

	var provErr *types.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "model not found", provErr.Message)
	assert.Equal(t, "HTTP_400", provErr.Code)
}

func TestComplete_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url, "sk-test")
	_, err := c.Complete(context.Background(), &types.CompletionRequest{Messages: userMessages("Hi")})

	var provErr *types.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "REQUEST_FAILED", provErr.Code)
}

func TestCompleteMessage(t *testing.T) {
	stub := &chatStub{completionStatus: http.StatusOK, completionBody: successBody}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL, "sk-test")
	_, err := c.CompleteMessage(context.Background(), "  Hi there  ", "You are helpful.")
	require.NoError(t, err)

	var payload struct {
		Model    string          `json:"model"`
		Messages []types.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(stub.lastPayload, &payload))
	require.Len(t, payload.Messages, 2)
	assert.Equal(t, types.Message{Role: "system", Content: "You are helpful."}, payload.Messages[0])
	assert.Equal(t, types.Message{Role: "user", Content: "Hi there"}, payload.Messages[1])
	assert.Equal(t, "gpt-3.5-turbo", payload.Model)
}

func TestCompleteMessage_EmptyMessage(t *testing.T) {
	stub := &chatStub{}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL, "sk-test")
	_, err := c.CompleteMessage(context.Background(), "   ", "")

	assert.ErrorIs(t, err, types.ErrEmptyMessage)
	assert.Zero(t, stub.completionCalls.Load())
}

func TestListModels_FiltersChatModels(t *testing.T) {
	stub := &chatStub{
		modelsStatus: http.StatusOK,
		modelsBody: `{"data": [
			{"id": "gpt-4o", "owned_by": "openai"},
			{"id": "whisper-1", "owned_by": "openai"},
			{"id": "claude-3-opus", "owned_by": "anthropic"},
			{"id": "text-embedding-3-small", "owned_by": "openai"}
		]}`,
	}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL, "sk-test")
	models, err := c.ListModels(context.Background())
	require.NoError(t, err)

	require.Len(t, models, 2)
	assert.Equal(t, "gpt-4o", models[0].ID)
	assert.Equal(t, "claude-3-opus", models[1].ID)
}

func TestListModels_Unauthorized(t *testing.T) {
	stub := &chatStub{modelsStatus: http.StatusUnauthorized, modelsBody: `{}`}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL, "sk-bad")
	_, err := c.ListModels(context.Background())
	assert.ErrorIs(t, err, types.ErrInvalidAPIKey)
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   apikey.Status
	}{
		{"valid key", http.StatusOK, `{"data": [{"id": "gpt-4o"}]}`, apikey.StatusValid},
		{"invalid key", http.StatusUnauthorized, `{"error": {"message": "Invalid API key"}}`, apikey.StatusInvalid},
		{"unparseable body", http.StatusOK, `not-json`, apikey.StatusError},
		{"server error", http.StatusInternalServerError, `{}`, apikey.StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &chatStub{modelsStatus: tt.status, modelsBody: tt.body}
			srv := httptest.NewServer(stub.handler())
			defer srv.Close()

			c := newTestClient(t, srv.URL, "sk-test")
			assert.Equal(t, tt.want, c.ValidateKey(context.Background()))
			assert.Equal(t, int64(1), stub.modelsCalls.Load())
		})
	}
}

func TestValidateKey_MissingKey(t *testing.T) {
	stub := &chatStub{}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL, "")
	assert.Equal(t, apikey.StatusError, c.ValidateKey(context.Background()))
	assert.Zero(t, stub.modelsCalls.Load(), "no network call expected")
}
