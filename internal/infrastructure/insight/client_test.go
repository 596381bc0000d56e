package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleslens/backend/internal/domain"
)

// completionResponse builds a chat completion payload with the given reply
func completionResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:     "test",
		Object: "chat.completion",
		Model:  "gpt-4o-mini",
		Choices: []openai.ChatCompletionChoice{
			{
				Index:        0,
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
				FinishReason: openai.FinishReasonStop,
			},
		},
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "", "gpt-4o-mini", 0)

	assert.NotNil(t, client)
	assert.Equal(t, "gpt-4o-mini", client.model)
	assert.Equal(t, 20*time.Second, client.timeout)
	assert.NotNil(t, client.rateLimiter)
}

func TestComplete_Success(t *testing.T) {
	var gotReq openai.ChatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionResponse("Deal Probability: 72%\nProfitability: High\nNext Step: Schedule a call"))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gpt-4o-mini", 5*time.Second)

	reply, err := client.Complete(context.Background(), "assess this deal")

	require.NoError(t, err)
	assert.Contains(t, reply, "Deal Probability: 72%")
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, gotReq.Messages[0].Role)
	assert.Equal(t, "assess this deal", gotReq.Messages[1].Content)
}

func TestComplete_ServerError(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gpt-4o-mini", 5*time.Second)

	reply, err := client.Complete(context.Background(), "prompt")

	assert.Empty(t, reply)
	assert.ErrorIs(t, err, domain.ErrInsightAPIFailure)
	assert.Equal(t, 1, attempts) // surfaced, not retried
}

func TestComplete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{ID: "test", Object: "chat.completion"})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gpt-4o-mini", 5*time.Second)

	_, err := client.Complete(context.Background(), "prompt")

	assert.ErrorIs(t, err, domain.ErrInsightAPIFailure)
}

func TestComplete_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gpt-4o-mini", 100*time.Millisecond)

	_, err := client.Complete(context.Background(), "prompt")

	assert.ErrorIs(t, err, domain.ErrInsightAPIFailure)
}

func TestComplete_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, "gpt-4o-mini", 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Complete(ctx, "prompt")
	assert.Error(t, err)
}
