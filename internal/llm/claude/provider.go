package claude

import (
	"fmt"

	"github.com/swagforge/swagforge-cli/internal/llm/common"
)

// ClaudeProvider implements common.Provider for Claude
type ClaudeProvider struct {
	client *Client
}

// NewClaudeProvider creates a new Claude provider
func NewClaudeProvider(config common.ProviderConfig) (*ClaudeProvider, error) {
	client, err := NewClientWithConfig(config.APIKey, config.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create Claude client: %w", err)
	}
	return &ClaudeProvider{client: client}, nil
}

// Chat sends a chat request and waits for the full reply
func (p *ClaudeProvider) Chat(messages []common.Message) (*common.ChatResponse, error) {
	claudeMessages := make([]Message, 0, len(messages))
	for _, msg := range messages {
		claudeMessages = append(claudeMessages, Message{Role: msg.Role, Content: msg.Content})
	}

	responseText, tokenUsage, err := p.client.Chat(claudeMessages)
	if err != nil {
		return nil, err
	}

	response := &common.ChatResponse{Message: responseText}
	if tokenUsage != nil {
		response.TokenUsage = &common.TokenUsage{
			InputTokens:  tokenUsage.InputTokens,
			OutputTokens: tokenUsage.OutputTokens,
		}
	}
	return response, nil
}

// Close closes any resources
func (p *ClaudeProvider) Close() error {
	return nil
}
