package security

import (
	"strings"

	"github.com/tidwall/gjson"
)

// maxFieldDepth bounds the body flattening recursion.
const maxFieldDepth = 10

// ExtractStringFields returns the dotted paths of every string field in a
// JSON body, in document order. Arrays are sampled through their first
// element only; an array of strings contributes the array field itself.
func ExtractStringFields(rawJSON string) []string {
	if !gjson.Valid(rawJSON) {
		return nil
	}
	return collectStringFields(gjson.Parse(rawJSON), "", 0)
}

func collectStringFields(value gjson.Result, prefix string, depth int) []string {
	if depth >= maxFieldDepth {
		return nil
	}

	var fields []string

	if value.IsObject() {
		value.ForEach(func(key, child gjson.Result) bool {
			path := key.String()
			if prefix != "" {
				path = prefix + "." + path
			}
			switch {
			case child.IsObject():
				fields = append(fields, collectStringFields(child, path, depth+1)...)
			case child.IsArray():
				elements := child.Array()
				if len(elements) == 0 {
					return true
				}
				first := elements[0]
				if first.IsObject() {
					fields = append(fields, collectStringFields(first, path, depth+1)...)
				} else if first.Type == gjson.String {
					fields = append(fields, path)
				}
			case child.Type == gjson.String:
				fields = append(fields, path)
			}
			return true
		})
		return fields
	}

	if value.IsArray() {
		elements := value.Array()
		if len(elements) == 0 {
			return nil
		}
		first := elements[0]
		if first.IsObject() {
			return collectStringFields(first, prefix, depth)
		}
		if first.Type == gjson.String && prefix != "" {
			return []string{prefix}
		}
	}

	return nil
}

// SetNestedValue sets a dotted-path field in a decoded JSON object, creating
// intermediate objects as needed. A non-object intermediate is replaced.
func SetNestedValue(data map[string]any, path string, value any) map[string]any {
	if path == "" || data == nil {
		return data
	}

	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value

	return data
}
