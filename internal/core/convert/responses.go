package convert

import (
	"strconv"
	"strings"

	"github.com/swagforge/swagforge-cli/internal/core/openapi"
	"github.com/swagforge/swagforge-cli/internal/core/postman"
)

type statusInfo struct {
	code int
	text string
}

// statusFallbacks maps the non-numeric response keys OpenAPI allows to a
// representative status.
var statusFallbacks = map[string]statusInfo{
	"default": {200, "OK"},
	"2XX":     {200, "OK"},
	"3XX":     {300, "Multiple Choices"},
	"4XX":     {400, "Bad Request"},
	"5XX":     {500, "Internal Server Error"},
}

// statusFor resolves a response key to a numeric code and status text.
// Numeric keys keep the key itself as status text; unknown non-numeric keys
// degrade to 200 OK.
func statusFor(key string) (int, string) {
	if code, err := strconv.Atoi(key); err == nil {
		return code, key
	}
	if info, ok := statusFallbacks[key]; ok {
		return info.code, info.text
	}
	return 200, "OK"
}

// buildResponses renders the operation's declared responses as saved Postman
// responses, each carrying the original request shape. JSON response bodies
// come from an explicit example, else from the schema's property metadata.
func (c *converter) buildResponses(operation map[string]any, method, fullURL string, headers, query []any, body map[string]any) []any {
	responsesDef, _ := operation["responses"].(map[string]any)

	out := []any{}
	for _, key := range sortedKeys(responsesDef) {
		def, _ := responsesDef[key].(map[string]any)
		code, statusText := statusFor(key)

		description, _ := def["description"].(string)
		if description == "" {
			description = "Response"
		}

		originalRequest := map[string]any{
			"method": strings.ToUpper(method),
			"header": headers,
			"url": map[string]any{
				"raw":   fullURL,
				"host":  postman.ParseHost(fullURL),
				"path":  postman.ParsePath(fullURL),
				"query": query,
			},
		}
		if body != nil {
			originalRequest["body"] = body
		}

		response := map[string]any{
			"name":            key + " " + description,
			"originalRequest": originalRequest,
			"status":          statusText,
			"code":            code,
			"header":          []any{},
			"body":            "",
		}

		respHeaders := []any{}
		if bodyValue, ok := c.responseBody(def); ok {
			response["body"] = postman.JSONString(bodyValue)
			respHeaders = append(respHeaders, map[string]any{
				"key":   "Content-Type",
				"value": "application/json",
				"type":  "text",
			})
		}

		headersDef, _ := def["headers"].(map[string]any)
		for _, name := range sortedKeys(headersDef) {
			spec, _ := headersDef[name].(map[string]any)
			respHeaders = append(respHeaders, map[string]any{
				"key":   name,
				"value": responseHeaderValue(name, spec),
				"type":  "text",
			})
		}

		response["header"] = respHeaders
		out = append(out, response)
	}
	return out
}

// responseBody extracts the JSON response body value: an explicit example
// wins; otherwise the schema yields property metadata, not examples.
func (c *converter) responseBody(def map[string]any) (any, bool) {
	content, _ := def["content"].(map[string]any)
	jsonContent, _ := content["application/json"].(map[string]any)
	if jsonContent == nil {
		return nil, false
	}

	schema, _ := jsonContent["schema"].(map[string]any)
	if ref, ok := schema["$ref"].(string); ok {
		schema = openapi.ResolveRef(c.doc, ref)
	}

	if example, ok := jsonContent["example"]; ok && truthy(example) {
		return normalizeValue(example), true
	}
	if len(schema) > 0 {
		return openapi.ExtractProperties(schema, c.doc), true
	}
	return nil, false
}

// responseHeaderValue picks a placeholder for a declared response header:
// the example if present, else a variable reference for strings, else the
// schema default.
func responseHeaderValue(name string, spec map[string]any) string {
	if example, ok := spec["example"]; ok && truthy(example) {
		return stringify(example)
	}
	schema, _ := spec["schema"].(map[string]any)
	if len(schema) == 0 {
		return ""
	}
	headerType, _ := schema["type"].(string)
	switch headerType {
	case "", "string":
		return "{{" + name + "}}"
	case "integer":
		if v, ok := schema["default"]; ok {
			return stringify(v)
		}
		return "0"
	default:
		return stringify(schema["default"])
	}
}

// responseStatusCodes lists the numeric codes declared by an operation,
// driving status-script selection.
func responseStatusCodes(operation map[string]any) []int {
	responsesDef, _ := operation["responses"].(map[string]any)
	codes := make([]int, 0, len(responsesDef))
	for _, key := range sortedKeys(responsesDef) {
		code, _ := statusFor(key)
		codes = append(codes, code)
	}
	return codes
}
