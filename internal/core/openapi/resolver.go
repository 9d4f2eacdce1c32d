package openapi

import (
	"slices"
	"strings"
)

const schemaRefPrefix = "#/components/schemas/"

// ResolveRef resolves a local schema reference. Only refs of the exact form
// #/components/schemas/<Name> are supported; anything else, including a ref
// to a missing schema, resolves to an empty schema rather than an error so
// a single bad ref cannot abort a whole conversion.
func ResolveRef(doc Document, ref string) map[string]any {
	if !strings.HasPrefix(ref, schemaRefPrefix) {
		return map[string]any{}
	}
	name := strings.TrimPrefix(ref, schemaRefPrefix)
	components, _ := doc["components"].(map[string]any)
	schemas, _ := components["schemas"].(map[string]any)
	schema, _ := schemas[name].(map[string]any)
	if schema == nil {
		return map[string]any{}
	}
	return schema
}

// derefSchema resolves a leading $ref while tracking the refs on the current
// resolution path. A ref already on the path reports stop=true so a cyclic
// schema degrades to an empty stub instead of recursing forever. The
// returned release func removes the ref from the path once the resolved
// schema has been fully walked.
func derefSchema(schema map[string]any, doc Document, visited map[string]bool) (resolved map[string]any, release func(), stop bool) {
	noop := func() {}
	ref, ok := schema["$ref"].(string)
	if !ok {
		return schema, noop, false
	}
	if visited[ref] {
		return nil, noop, true
	}
	visited[ref] = true
	return ResolveRef(doc, ref), func() { delete(visited, ref) }, false
}

// ExtractProperties walks a schema and returns type metadata instead of
// example values. Object schemas yield a map of property name to
// {name,type,nullable,required[,format,description,default,enum]}, with
// nested objects under a "properties" sub-map and arrays-of-objects under
// "items.properties". Array schemas of objects yield a single-element slice
// carrying the item metadata; primitive schemas yield their own descriptor.
func ExtractProperties(schema map[string]any, doc Document) any {
	return extractProperties(schema, doc, map[string]bool{})
}

func extractProperties(schema map[string]any, doc Document, visited map[string]bool) any {
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
		return extractObjectProperties(schema, doc, visited)
	case "array":
		return extractArrayProperties(schema, doc, visited)
	default:
		return primitiveDescriptor(schema)
	}
}

func extractObjectProperties(schema map[string]any, doc Document, visited map[string]bool) map[string]any {
	properties, _ := schema["properties"].(map[string]any)
	required := stringSlice(schema["required"])
	result := map[string]any{}

	for propName, raw := range properties {
		propSchema, _ := raw.(map[string]any)
		propSchema, release, stop := derefSchema(propSchema, doc, visited)
		if stop {
			result[propName] = map[string]any{}
			continue
		}

		propType := schemaString(propSchema, "type", "string")
		info := map[string]any{
			"name":     propName,
			"type":     propType,
			"nullable": schemaBool(propSchema, "nullable"),
			"required": slices.Contains(required, propName),
		}
		if format := schemaString(propSchema, "format", ""); format != "" {
			info["format"] = format
		}
		for _, key := range []string{"description", "default", "enum"} {
			if v, ok := propSchema[key]; ok {
				info[key] = v
			}
		}

		switch propType {
		case "object":
			info["properties"] = extractProperties(propSchema, doc, visited)
		case "array":
			items, _ := propSchema["items"].(map[string]any)
			if len(items) > 0 {
				items, itemsRelease, stop := derefSchema(items, doc, visited)
				if !stop {
					itemType := schemaString(items, "type", "string")
					itemInfo := map[string]any{"type": itemType}
					if itemType == "object" {
						itemInfo["properties"] = extractProperties(items, doc, visited)
					}
					info["items"] = itemInfo
					itemsRelease()
				}
			}
		}

		result[propName] = info
		release()
	}

	return result
}

func extractArrayProperties(schema map[string]any, doc Document, visited map[string]bool) any {
	items, _ := schema["items"].(map[string]any)
	if len(items) == 0 {
		return map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string", "nullable": false},
		}
	}

	items, release, stop := derefSchema(items, doc, visited)
	if stop {
		return []any{}
	}
	defer release()

	itemType := schemaString(items, "type", "string")
	if itemType == "object" {
		nested := extractProperties(items, doc, visited)
		if m, ok := nested.(map[string]any); ok && len(m) == 0 {
			return []any{}
		}
		return []any{nested}
	}
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":     itemType,
			"nullable": schemaBool(items, "nullable"),
		},
	}
}

func primitiveDescriptor(schema map[string]any) map[string]any {
	info := map[string]any{
		"type":     schemaString(schema, "type", "object"),
		"nullable": schemaBool(schema, "nullable"),
	}
	for _, key := range []string{"format", "description", "default", "enum"} {
		if v, ok := schema[key]; ok {
			info[key] = v
		}
	}
	return info
}

func schemaString(m map[string]any, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func schemaBool(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}

func stringSlice(v any) []string {
	raw, _ := v.([]any)
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		if s, ok := entry.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
