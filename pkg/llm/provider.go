// pkg/llm/provider.go

// Package llm defines the completion provider abstraction and shared
// request/response types. Concrete clients live in subpackages.
package llm

import "context"

// Provider is a chat completion backend.
type Provider interface {
	Complete(ctx context.Context, messages []Message) (*Response, error)
}

// Config holds the connection settings shared by provider clients.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
}
