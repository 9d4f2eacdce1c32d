package claude

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/swagforge/swagforge-cli/internal/infra/logger"
)

// MaxTokens caps a single conversion reply. OpenAPI documents for large
// specs get close to this, so it stays generous.
const MaxTokens = 8192

type Client struct {
	client anthropic.Client
	model  string
	ctx    context.Context
}

type Message struct {
	Role    string
	Content string
}

// TokenUsage represents token usage information
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
}

// NewClientWithConfig creates a new Claude client with explicit API key and
// model, falling back to the standard environment variables.
func NewClientWithConfig(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
	}

	if model == "" {
		model = os.Getenv("ANTHROPIC_MODEL")
		if model == "" {
			model = string(anthropic.ModelClaudeSonnet4_20250514)
		}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	// Custom base URL for proxies
	if baseURL := os.Getenv("ANTHROPIC_BASE_URL"); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{
		client: anthropic.NewClient(opts...),
		model:  model,
		ctx:    context.Background(),
	}, nil
}

// Chat sends a chat request and returns the concatenated text reply. System
// messages become cached system blocks; everything else alternates between
// user and assistant turns.
func (c *Client) Chat(messages []Message) (string, *TokenUsage, error) {
	if len(messages) == 0 {
		return "", nil, fmt.Errorf("no messages provided")
	}

	var systemBlocks []anthropic.TextBlockParam
	var anthropicMessages []anthropic.MessageParam

	for _, msg := range messages {
		if msg.Content == "" {
			continue
		}
		if msg.Role == "system" {
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{
				Text:         msg.Content,
				CacheControl: anthropic.CacheControlEphemeralParam{},
			})
			continue
		}

		role := anthropic.MessageParamRoleUser
		if msg.Role == "assistant" || msg.Role == "model" {
			role = anthropic.MessageParamRoleAssistant
		}
		anthropicMessages = append(anthropicMessages, anthropic.MessageParam{
			Role: role,
			Content: []anthropic.ContentBlockParamUnion{
				{OfText: &anthropic.TextBlockParam{Text: msg.Content}},
			},
		})
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: MaxTokens,
		Messages:  anthropicMessages,
	}
	if len(systemBlocks) > 0 {
		params.System = systemBlocks
	}

	message, err := c.client.Messages.New(c.ctx, params)
	if err != nil {
		logger.Error("Anthropic error", logger.Err(err))
		return "", nil, fmt.Errorf("anthropic error: %w", err)
	}

	var responseText string
	for _, block := range message.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			responseText += text.Text
		}
	}

	usage := &TokenUsage{
		InputTokens:  message.Usage.InputTokens,
		OutputTokens: message.Usage.OutputTokens,
	}
	return responseText, usage, nil
}

// Close is a no-op for the Claude client
func (c *Client) Close() {
	// No-op
}
