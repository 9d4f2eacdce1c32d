// Package specconv converts non-OpenAPI API descriptions (markdown, plain
// text) into OpenAPI 3.0 JSON through an LLM provider.
package specconv

import (
	"fmt"
	"strings"
	"time"

	"github.com/swagforge/swagforge-cli/internal/config"
	"github.com/swagforge/swagforge-cli/internal/core/openapi"
	"github.com/swagforge/swagforge-cli/internal/llm"
	"github.com/swagforge/swagforge-cli/internal/llm/common"
)

const conversionPrompt = `Convert the following API specification to OpenAPI 3.0 JSON format.

Source format: %s
Source file content:
---
%s
---

Requirements:
1. Output ONLY valid JSON - no markdown, no code blocks, no explanations
2. Follow OpenAPI 3.0.x specification strictly
3. Preserve all endpoints, methods, parameters, and response schemas
4. If some information is missing, make reasonable assumptions
5. Include proper paths, methods, parameters, request bodies, and responses

Output the complete OpenAPI 3.0 JSON specification:`

// DetectFormat guesses the source format from the file name and content,
// purely to hint the model.
func DetectFormat(name string, content []byte) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown"):
		return "markdown"
	case strings.HasSuffix(lower, ".graphql") || strings.HasSuffix(lower, ".gql"):
		return "graphql"
	}
	if strings.HasPrefix(strings.TrimSpace(string(content)), "#") {
		return "markdown"
	}
	return "plain text"
}

// ToOpenAPI sends the source document to the configured LLM provider and
// returns the extracted OpenAPI 3.0 JSON. The result is parsed once to
// confirm it is a usable document.
func ToOpenAPI(content []byte, sourceFormat string) ([]byte, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key configured - set %s or the api_key config key", config.GetEnvVarName("api_key"))
	}

	provider, err := llm.CreateProvider(common.ProviderConfig{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Model:    cfg.Model,
		Timeout:  120 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}
	defer func() { _ = provider.Close() }()

	prompt := fmt.Sprintf(conversionPrompt, sourceFormat, string(content))
	response, err := provider.Chat([]common.Message{{Role: "user", Content: prompt}})
	if err != nil {
		return nil, fmt.Errorf("LLM conversion failed: %w", err)
	}

	jsonContent := ExtractJSON(response.Message)
	if jsonContent == "" {
		return nil, fmt.Errorf("LLM did not return valid JSON")
	}

	doc, err := openapi.Parse([]byte(jsonContent))
	if err != nil {
		return nil, fmt.Errorf("LLM output is not a parseable document: %w", err)
	}
	if doc.DetectVersion() == "unknown" {
		return nil, fmt.Errorf("LLM output is not an OpenAPI document")
	}

	return []byte(jsonContent), nil
}

// ExtractJSON extracts the first complete JSON object from an LLM reply,
// tolerating markdown code fences around it.
func ExtractJSON(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
		response = strings.TrimSuffix(response, "```")
		response = strings.TrimSpace(response)
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
		response = strings.TrimSuffix(response, "```")
		response = strings.TrimSpace(response)
	}

	start := strings.Index(response, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	for i := start; i < len(response); i++ {
		switch response[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return response[start : i+1]
			}
		}
	}
	return ""
}
