// Package nlu extracts structured meaning from free-form customer text:
// intent classification, menu item extraction, menu inquiry detection, and
// entity patterns for phone numbers and zip codes. Every model-backed call
// degrades to a deterministic fallback when the provider is unreachable, so
// the conversation keeps working without a model.
package nlu

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkoukk/tiktoken-go"

	"github.com/user/quickbite/pkg/llm"
)

// Client wraps a completion provider with timeout, retry, and a prompt token
// budget.
type Client struct {
	provider        llm.Provider
	timeout         time.Duration
	retry           *RetryPolicy
	tokenizer       *tiktoken.Tiktoken
	maxPromptTokens int
}

// NewClient creates an NLU client around the given provider. The model name
// is only used to pick a tokenizer for the prompt budget; unknown models fall
// back to the cl100k_base encoding, and if that also fails token counts are
// estimated. A non-positive budget disables the check entirely.
func NewClient(provider llm.Provider, model string, timeout time.Duration, maxPromptTokens int) *Client {
	var tokenizer *tiktoken.Tiktoken
	if maxPromptTokens > 0 {
		var err error
		tokenizer, err = tiktoken.EncodingForModel(model)
		if err != nil {
			tokenizer, err = tiktoken.GetEncoding("cl100k_base")
			if err != nil {
				slog.Warn("no tokenizer available, estimating token counts", "model", model, "error", err)
				tokenizer = nil
			}
		}
	}
	return &Client{
		provider:        provider,
		timeout:         timeout,
		retry:           DefaultRetryPolicy(),
		tokenizer:       tokenizer,
		maxPromptTokens: maxPromptTokens,
	}
}

// countTokens returns the token count for the given text, or a conservative
// estimate when no tokenizer is available.
func (c *Client) countTokens(text string) int {
	if c.tokenizer == nil {
		return len(text) / 4
	}
	return len(c.tokenizer.Encode(text, nil, nil))
}

// Query sends a single-turn prompt to the provider and returns the raw
// response text. The second return value is false when the call failed or the
// prompt exceeded the token budget; callers fall back to deterministic
// behavior in that case.
func (c *Client) Query(ctx context.Context, system, prompt string) (string, bool) {
	if c.maxPromptTokens > 0 {
		if total := c.countTokens(system) + c.countTokens(prompt); total > c.maxPromptTokens {
			slog.Warn("prompt exceeds token budget", "tokens", total, "budget", c.maxPromptTokens)
			return "", false
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []llm.Message{}
	if system != "" {
		messages = append(messages, llm.Message{Role: "system", Content: system})
	}
	messages = append(messages, llm.Message{Role: "user", Content: prompt})

	var resp *llm.Response
	err := c.retry.Execute(ctx, func() error {
		var callErr error
		resp, callErr = c.provider.Complete(ctx, messages)
		return callErr
	})
	if err != nil {
		slog.Warn("model call failed, using fallback", "error", err)
		return "", false
	}
	return resp.Content, true
}
