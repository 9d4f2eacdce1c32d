package postman

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/swagforge/swagforge-cli/internal/core/auth"
)

// Builder accumulates collection info, auth, variables, folders and requests
// into a Postman Collection v2.1 document.
type Builder struct {
	collection map[string]any
}

// NewBuilder returns an empty collection builder. Every built collection
// carries a fresh _postman_id.
func NewBuilder() *Builder {
	return &Builder{
		collection: map[string]any{
			"info": map[string]any{
				"name":         "",
				"description":  "",
				"schema":       SchemaV21,
				"_postman_id":  uuid.NewString(),
				"_exporter_id": ExporterID,
			},
			"item":     []any{},
			"auth":     map[string]any{},
			"variable": []any{},
		},
	}
}

// SetInfo sets the collection name, description and optional version.
func (b *Builder) SetInfo(name, description, version string) *Builder {
	info := b.collection["info"].(map[string]any)
	info["name"] = name
	info["description"] = description
	if version != "" {
		info["version"] = version
	}
	return b
}

// SetAuth sets collection-level authentication. A nil provider leaves the
// collection without an auth block.
func (b *Builder) SetAuth(provider auth.Provider) *Builder {
	if provider == nil {
		return b
	}
	b.collection["auth"] = provider.Block()
	return b
}

// RequestSpec describes one request to add to the collection.
type RequestSpec struct {
	Name        string
	Method      string
	URL         string
	Description string
	Headers     []any
	Body        map[string]any
	Params      []any
	Auth        map[string]any
	Responses   []any
	Events      []any
}

// AddRequest appends a request item built from the spec.
func (b *Builder) AddRequest(spec RequestSpec) *Builder {
	b.appendItem(BuildRequestItem(spec))
	return b
}

// BuildRequestItem renders a RequestSpec into a Postman request item without
// attaching it to any collection.
func BuildRequestItem(spec RequestSpec) map[string]any {
	headers := spec.Headers
	if headers == nil {
		headers = []any{}
	}
	params := spec.Params
	if params == nil {
		params = []any{}
	}
	responses := spec.Responses
	if responses == nil {
		responses = []any{}
	}

	request := map[string]any{
		"method": strings.ToUpper(spec.Method),
		"header": headers,
		"url": map[string]any{
			"raw":   spec.URL,
			"host":  ParseHost(spec.URL),
			"path":  ParsePath(spec.URL),
			"query": params,
		},
	}
	if spec.Description != "" {
		request["description"] = spec.Description
	}
	if spec.Body != nil {
		request["body"] = spec.Body
	}
	if spec.Auth != nil {
		request["auth"] = spec.Auth
	}

	item := map[string]any{
		"name":     spec.Name,
		"request":  request,
		"response": responses,
	}
	if spec.Events != nil {
		item["event"] = spec.Events
	}
	return item
}

// AddFolder appends a folder item holding the given children.
func (b *Builder) AddFolder(name string, items []any) *Builder {
	if items == nil {
		items = []any{}
	}
	b.appendItem(map[string]any{
		"name": name,
		"item": items,
	})
	return b
}

// AddVariable upserts a collection-level variable by key.
func (b *Builder) AddVariable(key, value, variableType string) *Builder {
	if variableType == "" {
		variableType = "string"
	}
	variables := b.collection["variable"].([]any)
	for _, raw := range variables {
		if variable, ok := raw.(map[string]any); ok && variable["key"] == key {
			variable["value"] = value
			variable["type"] = variableType
			return b
		}
	}
	b.collection["variable"] = append(variables, map[string]any{
		"key":   key,
		"value": value,
		"type":  variableType,
	})
	return b
}

// SetBaseURL registers the baseUrl variable from the domain portion of a
// server URL. URLs that already reference a variable are left alone.
func (b *Builder) SetBaseURL(baseURL string) *Builder {
	if strings.Contains(baseURL, "{{") {
		return b
	}
	parsed, err := url.Parse(baseURL)
	if err == nil && parsed.Host != "" {
		b.AddVariable("baseUrl", parsed.Scheme+"://"+parsed.Host, "string")
	} else {
		b.AddVariable("baseUrl", baseURL, "string")
	}
	return b
}

// Build returns the completed collection document.
func (b *Builder) Build() map[string]any {
	return b.collection
}

func (b *Builder) appendItem(item map[string]any) {
	b.collection["item"] = append(b.collection["item"].([]any), item)
}

var (
	variableToken   = regexp.MustCompile(`\{\{[^}]+\}\}`)
	leadingVariable = regexp.MustCompile(`^\{\{([^}]+)\}\}`)
)

// urlSentinel stands in for {{var}} tokens so a generic URL parser can run;
// sentinel-only segments are dropped from the result afterwards.
const urlSentinel = "placeholder"

// ParseHost extracts the host portion of a URL as a segment list, tolerating
// Postman variables. A URL anchored on a url-like variable (e.g. {{baseUrl}})
// keeps that variable as its sole host segment.
func ParseHost(raw string) []any {
	if match := leadingVariable.FindStringSubmatch(raw); match != nil {
		varName := match[1]
		if varName == "baseUrl" || strings.Contains(strings.ToLower(varName), "url") {
			return []any{"{{" + varName + "}}"}
		}
	}

	temp := variableToken.ReplaceAllString(raw, urlSentinel)
	parsed, err := url.Parse(temp)
	if err == nil && parsed.Host != "" && parsed.Host != urlSentinel {
		return []any{parsed.Host}
	}
	return []any{}
}

// ParsePath extracts the path segments of a URL, tolerating Postman
// variables. Segments that were pure variables are dropped.
func ParsePath(raw string) []any {
	temp := variableToken.ReplaceAllString(raw, urlSentinel)
	parsed, err := url.Parse(temp)
	if err != nil {
		return []any{}
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return []any{}
	}

	segments := []any{}
	for _, part := range strings.Split(path, "/") {
		if part != urlSentinel {
			segments = append(segments, part)
		}
	}
	return segments
}
