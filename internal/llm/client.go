package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	maxRetries = 3
	retryDelay = 2 * time.Second
)

// Provider identifies a configured chat-completions backend. All supported
// providers speak the OpenAI chat-completions protocol, so one adapter
// covers them; only the base URL and default model differ.
type Provider struct {
	Name    string
	APIKey  string
	BaseURL string
	Model   string
}

// ErrNoProvider is returned when no provider API key was configured.
var ErrNoProvider = errors.New("no LLM provider API key configured")

// ImagePart is an inline image attached to a request, as a data URL.
type ImagePart struct {
	MimeType string
	Base64   string
}

// Request is one chat completion round-trip.
type Request struct {
	System   string
	Prompt   string
	JSONMode bool
	Images   []ImagePart
}

// Completer is the outbound surface the services depend on. Tests swap in a
// stub; production wiring uses Client.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Client calls the configured provider through go-openai, with a token
// bucket in front and retries on transient upstream failures.
type Client struct {
	api      *openai.Client
	model    string
	provider string
	limiter  *RateLimiter
}

// NewClient builds a client for the given provider. The rate limiter may be
// nil, in which case calls go straight through.
func NewClient(p Provider, limiter *RateLimiter) *Client {
	cfg := openai.DefaultConfig(p.APIKey)
	if p.BaseURL != "" {
		cfg.BaseURL = p.BaseURL
	}
	return &Client{
		api:      openai.NewClientWithConfig(cfg),
		model:    p.Model,
		provider: p.Name,
		limiter:  limiter,
	}
}

// Provider returns the name of the backing provider.
func (c *Client) Provider() string { return c.provider }

// Complete sends one chat completion and returns the text of the first
// choice. Transient upstream errors (429, 5xx) are retried with a linear
// backoff; everything else fails immediately.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	chatReq := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: buildMessages(req),
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(retryDelay * time.Duration(attempt)):
			}
		}

		resp, err := c.api.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			lastErr = err
			if !isRetryable(err) {
				return "", fmt.Errorf("provider %s: %w", c.provider, err)
			}
			continue
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("provider %s returned no choices", c.provider)
		}
		return resp.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("provider %s after %d retries: %w", c.provider, maxRetries, lastErr)
}

func buildMessages(req Request) []openai.ChatCompletionMessage {
	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	if len(req.Images) == 0 {
		return append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: req.Prompt,
		})
	}

	parts := []openai.ChatMessagePart{{
		Type: openai.ChatMessagePartTypeText,
		Text: req.Prompt,
	}}
	for _, img := range req.Images {
		mime := img.MimeType
		if mime == "" {
			mime = "image/png"
		}
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL: fmt.Sprintf("data:%s;base64,%s", mime, img.Base64),
			},
		})
	}
	return append(messages, openai.ChatCompletionMessage{
		Role:         openai.ChatMessageRoleUser,
		MultiContent: parts,
	})
}

func isRetryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}
	// Transport-level failures (connection reset, timeout) are worth one
	// more attempt unless the context is already gone.
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) &&
		!strings.Contains(err.Error(), "invalid_api_key")
}
