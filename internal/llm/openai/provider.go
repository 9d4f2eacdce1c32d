package openai

import (
	"fmt"

	"github.com/swagforge/swagforge-cli/internal/llm/common"
)

// OpenAIProvider implements common.Provider for OpenAI/OpenRouter
type OpenAIProvider struct {
	client *Client
}

// NewOpenAIProvider creates a new OpenAI/OpenRouter provider
func NewOpenAIProvider(config common.ProviderConfig) (*OpenAIProvider, error) {
	baseURL := config.BaseURL
	if baseURL == "" && config.Provider == "openrouter" {
		baseURL = "https://openrouter.ai/api/v1"
	}

	client, err := NewClientWithConfig(config.APIKey, config.Model, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return &OpenAIProvider{client: client}, nil
}

// Chat sends a chat request and waits for the full reply
func (p *OpenAIProvider) Chat(messages []common.Message) (*common.ChatResponse, error) {
	openaiMessages := make([]Message, 0, len(messages))
	for _, msg := range messages {
		openaiMessages = append(openaiMessages, Message{Role: msg.Role, Content: msg.Content})
	}

	response, tokenUsage, err := p.client.Chat(openaiMessages)
	if err != nil {
		return nil, err
	}

	out := &common.ChatResponse{Message: response.Message}
	if tokenUsage != nil {
		out.TokenUsage = &common.TokenUsage{
			InputTokens:  tokenUsage.InputTokens,
			OutputTokens: tokenUsage.OutputTokens,
		}
	}
	return out, nil
}

// Close closes any resources
func (p *OpenAIProvider) Close() error {
	return nil
}
