package insight

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/saleslens/backend/internal/domain"
	logx "github.com/saleslens/backend/pkg/logger"
)

const systemMessage = "You are a B2B sales assistant that assesses resolved product recommendations."

// Client sends single-turn insight prompts to an OpenAI-compatible chat
// completion backend. Failures are surfaced, not retried; the caller decides
// whether a recommendation ships without its insight.
type Client struct {
	api         *openai.Client
	model       string
	timeout     time.Duration
	rateLimiter *rate.Limiter
}

// NewClient creates an insight client. baseURL overrides the default OpenAI
// endpoint, which also lets tests point the client at a local server.
func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	// Keeps a burst of concurrent requests from hammering the backend
	limiter := rate.NewLimiter(rate.Limit(2), 5)

	return &Client{
		api:         openai.NewClientWithConfig(cfg),
		model:       model,
		timeout:     timeout,
		rateLimiter: limiter,
	}
}

// Complete sends one prompt and returns the raw reply text. The per-request
// timeout bounds tail latency on the backend call.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInsightAPIFailure, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: backend returned no choices", domain.ErrInsightAPIFailure)
	}

	logx.Debug().
		Str("model", c.model).
		Dur("elapsed", time.Since(start)).
		Msg("insight completion received")

	return resp.Choices[0].Message.Content, nil
}
