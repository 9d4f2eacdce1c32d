package openapi

import (
	"fmt"
	"slices"
	"time"
)

// ExampleGenerator synthesizes placeholder bodies from schemas. Explicit
// example values win over defaults, which win over type-directed synthesis.
// The clock is injectable so date/date-time synthesis stays deterministic
// under test.
type ExampleGenerator struct {
	Now func() time.Time
}

// NewExampleGenerator returns a generator on the wall clock.
func NewExampleGenerator() *ExampleGenerator {
	return &ExampleGenerator{Now: time.Now}
}

// Generate produces an example JSON value for a schema node.
func (g *ExampleGenerator) Generate(schema map[string]any, doc Document) any {
	return g.generate(schema, doc, map[string]bool{})
}

func (g *ExampleGenerator) generate(schema map[string]any, doc Document, visited map[string]bool) any {
	if len(schema) == 0 {
		return map[string]any{}
	}

	schema, release, stop := derefSchema(schema, doc, visited)
	if stop {
		return map[string]any{}
	}
	defer release()

	switch schemaString(schema, "type", "object") {
	case "object":
		return g.generateObject(schema, doc, visited)
	case "array":
		items, _ := schema["items"].(map[string]any)
		if len(items) > 0 {
			item := g.generate(items, doc, visited)
			if truthy(item) {
				return []any{item}
			}
		}
		return []any{}
	case "string":
		if example, ok := schema["example"]; ok && example != nil {
			return example
		}
		if enum := stringSlice(schema["enum"]); len(enum) > 0 {
			return enum[0]
		}
		return "{{value}}"
	case "integer":
		return valueOrFallback(schema, 0)
	case "number":
		return valueOrFallback(schema, 0.0)
	case "boolean":
		return valueOrFallback(schema, true)
	}

	return map[string]any{}
}

func (g *ExampleGenerator) generateObject(schema map[string]any, doc Document, visited map[string]bool) map[string]any {
	properties, _ := schema["properties"].(map[string]any)
	required := stringSlice(schema["required"])
	example := map[string]any{}

	for propName, raw := range properties {
		propSchema, _ := raw.(map[string]any)
		propSchema, release, stop := derefSchema(propSchema, doc, visited)
		if stop {
			continue
		}

		propType := schemaString(propSchema, "type", "string")
		propFormat := schemaString(propSchema, "format", "")
		propExample, hasExample := propSchema["example"]
		propDefault, hasDefault := propSchema["default"]

		switch {
		case propFormat == "date-time" || propFormat == "datetime":
			switch {
			case hasExample:
				example[propName] = timestampString(propExample)
			case hasDefault:
				example[propName] = timestampString(propDefault)
			default:
				example[propName] = g.Now().Format(time.RFC3339)
			}
		case propFormat == "date":
			switch {
			case hasExample:
				example[propName] = dateString(propExample)
			case hasDefault:
				example[propName] = dateString(propDefault)
			default:
				example[propName] = g.Now().Format("2006-01-02")
			}
		case hasExample:
			example[propName] = normalizeTime(propExample)
		case hasDefault:
			example[propName] = normalizeTime(propDefault)
		case slices.Contains(required, propName) || len(required) == 0:
			// No example anywhere: synthesize by type, but only for
			// required fields when the schema declares any.
			switch propType {
			case "string":
				example[propName] = "{{" + propName + "}}"
			case "integer":
				example[propName] = 0
			case "number":
				example[propName] = 0.0
			case "boolean":
				example[propName] = true
			case "array":
				items, _ := propSchema["items"].(map[string]any)
				if len(items) > 0 {
					item := g.generate(items, doc, visited)
					if truthy(item) {
						example[propName] = []any{item}
					} else {
						example[propName] = []any{}
					}
				} else {
					example[propName] = []any{}
				}
			case "object":
				example[propName] = g.generate(propSchema, doc, visited)
			default:
				example[propName] = "{{" + propName + "}}"
			}
		}

		release()
	}

	return example
}

// valueOrFallback prefers an explicit example, then a default, then the
// type's zero example.
func valueOrFallback(schema map[string]any, fallback any) any {
	if v, ok := schema["example"]; ok && v != nil {
		return v
	}
	if v, ok := schema["default"]; ok && v != nil {
		return v
	}
	return fallback
}

// timestampString renders an example that may have been decoded by the YAML
// parser as a native timestamp.
func timestampString(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	return fmt.Sprintf("%v", v)
}

func dateString(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	return fmt.Sprintf("%v", v)
}

// normalizeTime converts YAML-decoded timestamps to strings and leaves every
// other value untouched.
func normalizeTime(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	return v
}

// truthy mirrors JSON emptiness: nil, false, zero numbers, empty strings,
// maps and slices all count as empty.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}
