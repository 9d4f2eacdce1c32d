// Package common holds the provider-agnostic chat types shared by the LLM
// backends.
package common

import "time"

// Message represents a chat message. System messages configure the model;
// user and assistant messages carry the exchange.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TokenUsage represents token usage information
type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// ChatResponse represents the response from a chat request
type ChatResponse struct {
	Message    string      `json:"message"`
	TokenUsage *TokenUsage `json:"token_usage,omitempty"`
}

// Provider represents an LLM provider interface
type Provider interface {
	// Chat sends a single chat request and waits for the full reply
	Chat(messages []Message) (*ChatResponse, error)

	// Close closes any resources
	Close() error
}

// ProviderConfig holds configuration for creating a provider
type ProviderConfig struct {
	Provider string // "claude", "anthropic", "openai", "openrouter"
	APIKey   string
	BaseURL  string // optional override
	Model    string // model name
	Timeout  time.Duration
}
