package convert

import (
	"github.com/swagforge/swagforge-cli/internal/core/openapi"
	"github.com/swagforge/swagforge-cli/internal/core/postman"
)

// bodyContentTypes is the content-type preference order; the first declared
// type wins.
var bodyContentTypes = []string{
	"application/json",
	"application/xml",
	"multipart/form-data",
	"application/x-www-form-urlencoded",
}

// requestBody renders the operation's request body. JSON becomes a raw body
// with json language hints, form types become urlencoded field lists, and
// anything else falls back to raw text. Explicit examples win over
// schema-generated ones. Operations without a usable body return nil.
func (c *converter) requestBody(operation map[string]any) map[string]any {
	requestBody, _ := operation["requestBody"].(map[string]any)
	content, _ := requestBody["content"].(map[string]any)

	var contentType string
	var contentData map[string]any
	for _, ct := range bodyContentTypes {
		if data, ok := content[ct].(map[string]any); ok {
			contentType = ct
			contentData = data
			break
		}
	}
	if contentData == nil {
		return nil
	}

	schema, _ := contentData["schema"].(map[string]any)
	if ref, ok := schema["$ref"].(string); ok {
		schema = openapi.ResolveRef(c.doc, ref)
	}

	var bodyData any
	if example, ok := contentData["example"]; ok && truthy(example) {
		bodyData = normalizeValue(example)
	} else if len(schema) > 0 {
		bodyData = normalizeValue(c.examples.Generate(schema, c.doc))
	}
	if bodyData == nil {
		return nil
	}

	switch contentType {
	case "application/json":
		return map[string]any{
			"mode": "raw",
			"raw":  postman.JSONString(bodyData),
			"options": map[string]any{
				"raw": map[string]any{"language": "json"},
			},
		}
	case "multipart/form-data", "application/x-www-form-urlencoded":
		fields := []any{}
		if m, ok := bodyData.(map[string]any); ok {
			for _, key := range sortedKeys(m) {
				fields = append(fields, map[string]any{
					"key":   key,
					"value": stringify(m[key]),
					"type":  "text",
				})
			}
		}
		return map[string]any{
			"mode":       "urlencoded",
			"urlencoded": fields,
		}
	default:
		return map[string]any{
			"mode": "raw",
			"raw":  stringify(bodyData),
			"options": map[string]any{
				"raw": map[string]any{"language": "text"},
			},
		}
	}
}
