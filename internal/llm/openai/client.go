package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var thinkTagRegex = regexp.MustCompile(`(?s)<think>.*?</think>\s*`)

// stripThinkTags removes <think>...</think> blocks from responses. Local
// models (Ollama/llama.cpp) embed reasoning inline in the content field
// instead of using a dedicated reasoning field.
func stripThinkTags(content string) string {
	if !strings.Contains(content, "<think>") {
		return content
	}
	return strings.TrimSpace(thinkTagRegex.ReplaceAllString(content, ""))
}

// Message represents a chat message
type Message struct {
	Role    string
	Content string
}

// ChatResponse represents the response from a chat completion
type ChatResponse struct {
	Message string
}

// TokenUsage represents token usage information
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
}

// Client is a custom OpenAI/OpenRouter client
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
	ctx        context.Context
}

// NewClientWithConfig creates a new client with explicit configuration
func NewClientWithConfig(apiKey, model, baseURL string) (*Client, error) {
	if model == "" {
		model = os.Getenv("OPENAI_MODEL")
		if model == "" {
			return nil, fmt.Errorf("model is required")
		}
	}

	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &Client{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		ctx:        context.Background(),
	}, nil
}

// Chat sends a non-streaming chat request against /v1/chat/completions.
func (c *Client) Chat(messages []Message) (*ChatResponse, *TokenUsage, error) {
	reqBody := c.buildRequestPayload(messages)
	bodyBytes, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(c.ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, nil, err
	}

	c.setHeaders(req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(body))
	}

	res := gjson.ParseBytes(body)
	content := stripThinkTags(res.Get("choices.0.message.content").String())

	usage := &TokenUsage{
		InputTokens:  res.Get("usage.prompt_tokens").Int(),
		OutputTokens: res.Get("usage.completion_tokens").Int(),
	}
	return &ChatResponse{Message: content}, usage, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if strings.Contains(c.baseURL, "openrouter.ai") {
		req.Header.Set("X-Title", "swagforge")
	}
}

func (c *Client) buildRequestPayload(messages []Message) map[string]interface{} {
	converted := make([]map[string]interface{}, 0, len(messages))
	for _, m := range messages {
		converted = append(converted, map[string]interface{}{
			"role":    m.Role,
			"content": m.Content,
		})
	}

	payload := map[string]interface{}{
		"model":    c.model,
		"messages": converted,
		"stream":   false,
	}

	if strings.HasPrefix(c.model, "o1") || strings.HasPrefix(c.model, "o3") {
		payload["reasoning_effort"] = "medium"
		payload["max_completion_tokens"] = 10000
	}

	return payload
}
