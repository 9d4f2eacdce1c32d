package openapi

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a parsed Swagger/OpenAPI document kept as a raw nested map.
// The converter only ever reads from it; vendor extensions and unknown keys
// survive untouched.
type Document map[string]any

// Parse decodes an OpenAPI document from JSON, falling back to YAML.
func Parse(content []byte) (Document, error) {
	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("failed to parse specification (tried JSON and YAML): %w", err)
		}
	}
	return Document(data), nil
}

// ParseFile reads and decodes an OpenAPI document from disk.
func ParseFile(path string) (Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(content)
}

// DetectVersion reports the specification flavor of the document:
// "3.1.x", "3.0.x", "2.0" or "unknown".
func (d Document) DetectVersion() string {
	if v, ok := d["openapi"].(string); ok {
		if strings.HasPrefix(v, "3.1") {
			return "3.1.x"
		}
		return "3.0.x"
	}
	if _, ok := d["swagger"]; ok {
		return "2.0"
	}
	return "unknown"
}

// Info returns the document's info block, never nil.
func (d Document) Info() map[string]any {
	info, _ := d["info"].(map[string]any)
	if info == nil {
		return map[string]any{}
	}
	return info
}

// APIName returns the API title, falling back to a generic name.
func (d Document) APIName() string {
	if title, ok := d.Info()["title"].(string); ok && title != "" {
		return title
	}
	return "API Collection"
}

// Paths returns the paths block, never nil.
func (d Document) Paths() map[string]any {
	paths, _ := d["paths"].(map[string]any)
	if paths == nil {
		return map[string]any{}
	}
	return paths
}

// Servers returns the server URLs declared by the document.
func (d Document) Servers() []string {
	raw, _ := d["servers"].([]any)
	var urls []string
	for _, entry := range raw {
		if server, ok := entry.(map[string]any); ok {
			if url, ok := server["url"].(string); ok && url != "" {
				urls = append(urls, url)
			}
		}
	}
	return urls
}

var (
	invalidNameChars = regexp.MustCompile(`[^\w\s-]`)
	nameSeparators   = regexp.MustCompile(`[-\s]+`)
)

// SanitizeName normalizes an API or collection name into a stable
// identifier: word characters only, runs of whitespace and hyphens collapsed
// to a single hyphen, lowercased. Shared by collection-id generation and
// default-config matching.
func SanitizeName(name string) string {
	s := invalidNameChars.ReplaceAllString(name, "")
	s = nameSeparators.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return strings.ToLower(s)
}
