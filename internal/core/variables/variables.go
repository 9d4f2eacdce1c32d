// Package variables extracts {{variable}} references from collection trees
// and produces reusable variable names and default values.
package variables

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

var (
	referencePattern = regexp.MustCompile(`\{\{(\w+)\}\}`)
	baseURLPattern   = regexp.MustCompile(`^(https?://[^/]+)`)
	separatorPattern = regexp.MustCompile(`[_\s-]+`)
)

// Extract walks a JSON tree and returns the unique variable names referenced
// as {{name}} anywhere in its strings, sorted for stable output.
func Extract(data any) []string {
	seen := map[string]struct{}{}
	collect(data, seen)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collect(data any, seen map[string]struct{}) {
	switch v := data.(type) {
	case map[string]any:
		for _, value := range v {
			collect(value, seen)
		}
	case []any:
		for _, item := range v {
			collect(item, seen)
		}
	case string:
		for _, match := range referencePattern.FindAllStringSubmatch(v, -1) {
			seen[match[1]] = struct{}{}
		}
	}
}

// ReplaceBaseURL swaps the scheme and authority of a URL for a variable
// reference, keeping the path. URLs without a recognizable base pass
// through unchanged.
func ReplaceBaseURL(url, variableName string) string {
	match := baseURLPattern.FindString(url)
	if match == "" {
		return url
	}
	return fmt.Sprintf("{{%s}}%s", variableName, url[len(match):])
}

// Reference renders a field name as a variable reference, camelCasing it
// first.
func Reference(fieldName string) string {
	return fmt.Sprintf("{{%s}}", Name(fieldName))
}

// Name converts a field name to a camelCase variable name. Underscores,
// hyphens and spaces separate words.
func Name(fieldName string) string {
	parts := separatorPattern.Split(strings.ToLower(fieldName), -1)
	filtered := parts[:0]
	for _, part := range parts {
		if part != "" {
			filtered = append(filtered, part)
		}
	}
	if len(filtered) == 0 {
		return ""
	}
	name := filtered[0]
	for _, part := range filtered[1:] {
		name += strings.ToUpper(part[:1]) + part[1:]
	}
	return name
}

// DefaultValue guesses a sensible placeholder for a variable from common
// name patterns.
func DefaultValue(varName string, now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	lower := strings.ToLower(varName)
	switch {
	case strings.Contains(lower, "url") || strings.Contains(lower, "endpoint"):
		return "https://example.com"
	case strings.Contains(lower, "id"):
		return "1"
	case strings.Contains(lower, "email"):
		return "user@example.com"
	case strings.Contains(lower, "token") || strings.Contains(lower, "key"):
		return "your-token-here"
	case strings.Contains(lower, "date"):
		return now().Format("2006-01-02")
	case strings.Contains(lower, "page") || strings.Contains(lower, "limit") || strings.Contains(lower, "size"):
		return "10"
	default:
		return "{{value}}"
	}
}
