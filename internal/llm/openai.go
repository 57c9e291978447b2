package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/pkordes/park-tracker/internal/domain"
)

// DefaultOpenAIBaseURL is used when Options.BaseURL is empty.
const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient calls any OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	client *resty.Client
	model  string
}

// NewOpenAIClient creates an OpenAIClient from opts.
func NewOpenAIClient(opts Options) *OpenAIClient {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultOpenAIBaseURL
	}

	c := resty.New().
		SetBaseURL(base).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(opts.APIKey)
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	return &OpenAIClient{client: c, model: opts.Model}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete implements Completer.
func (c *OpenAIClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   256,
		Temperature: 0,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&req).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("llm.OpenAIClient.Complete: %w: %v", domain.ErrModelUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("llm.OpenAIClient.Complete: %w: status %d", domain.ErrModelUnavailable, resp.StatusCode())
	}

	var cr chatResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return "", fmt.Errorf("llm.OpenAIClient.Complete: %w: decode response: %v", domain.ErrModelUnavailable, err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("llm.OpenAIClient.Complete: %w: no choices returned", domain.ErrModelUnavailable)
	}
	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}
