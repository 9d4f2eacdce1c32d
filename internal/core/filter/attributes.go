// Package filter expands a stored request into per-attribute filtered
// variants, grouped into a generated "<name> Filtering" folder next to the
// original request.
package filter

import (
	"github.com/tidwall/gjson"
)

// Attribute is the metadata descriptor for one flattened response field:
// name, type, nullable, required, path, plus optional value, format,
// description, default and enum entries.
type Attribute map[string]any

// Set holds extracted attributes keyed by dotted path, preserving document
// order so generated requests come out in a stable order.
type Set struct {
	order []string
	attrs map[string]Attribute
}

func NewSet() *Set {
	return &Set{attrs: map[string]Attribute{}}
}

// Put inserts or overwrites an attribute. An overwrite keeps the original
// position in the order.
func (s *Set) Put(path string, attr Attribute) {
	if _, ok := s.attrs[path]; !ok {
		s.order = append(s.order, path)
	}
	s.attrs[path] = attr
}

func (s *Set) Get(path string) (Attribute, bool) {
	attr, ok := s.attrs[path]
	return attr, ok
}

// Value returns the captured value for a path, nil when the attribute is
// unknown or carries no value.
func (s *Set) Value(path string) any {
	if attr, ok := s.attrs[path]; ok {
		return attr["value"]
	}
	return nil
}

func (s *Set) Paths() []string {
	return s.order
}

func (s *Set) Len() int {
	return len(s.order)
}

// Extract flattens a response body into attribute metadata. Bodies shaped as
// schema descriptions (objects whose values carry "type" or "name" keys) are
// read as metadata; anything else falls back to flat value extraction with
// each entry re-wrapped as a plain descriptor.
func Extract(rawJSON string) *Set {
	schema := ExtractSchemaMeta(rawJSON)
	if schema.Len() > 0 && anyHasType(schema) {
		return schema
	}

	flat := ExtractFlat(rawJSON)
	wrapped := NewSet()
	for _, path := range flat.Paths() {
		attr, _ := flat.Get(path)
		wrapped.Put(path, Attribute{
			"name":     path,
			"type":     attrType(attr),
			"nullable": false,
			"required": false,
			"path":     path,
		})
	}
	return wrapped
}

// ExtractFlat flattens a JSON value into dotted-path attributes with runtime
// types. Arrays are sampled through their first element only.
func ExtractFlat(rawJSON string) *Set {
	set := NewSet()
	if !gjson.Valid(rawJSON) {
		return set
	}
	collectFlat(gjson.Parse(rawJSON), "", set)
	return set
}

func collectFlat(value gjson.Result, prefix string, set *Set) {
	if value.IsObject() {
		value.ForEach(func(key, child gjson.Result) bool {
			path := key.String()
			if prefix != "" {
				path = prefix + "." + path
			}
			if child.IsObject() || child.IsArray() {
				collectFlat(child, path, set)
			} else {
				set.Put(path, Attribute{
					"value": child.Value(),
					"type":  runtimeType(child),
					"path":  path,
				})
			}
			return true
		})
		return
	}

	if value.IsArray() {
		elements := value.Array()
		if len(elements) == 0 {
			return
		}
		first := elements[0]
		if first.IsObject() {
			collectFlat(first, prefix, set)
		} else if prefix != "" {
			set.Put(prefix, Attribute{
				"value": first.Value(),
				"type":  "string",
				"path":  prefix,
			})
		}
	}
}

// ExtractSchemaMeta reads a body that is itself a schema description. A
// nested object carrying a "type" or "name" key is treated as one
// attribute's metadata; other objects are recursed into with dotted keys.
func ExtractSchemaMeta(rawJSON string) *Set {
	set := NewSet()
	if !gjson.Valid(rawJSON) {
		return set
	}
	root := gjson.Parse(rawJSON)
	if !root.IsObject() {
		return set
	}
	collectSchemaMeta(root, "", set)
	return set
}

func collectSchemaMeta(value gjson.Result, prefix string, set *Set) {
	value.ForEach(func(key, child gjson.Result) bool {
		name := key.String()
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		if child.IsObject() {
			if child.Get("type").Exists() || child.Get("name").Exists() {
				set.Put(path, schemaAttribute(name, child))
			} else {
				collectSchemaMeta(child, path, set)
			}
			return true
		}

		set.Put(path, Attribute{
			"name":     name,
			"type":     runtimeType(child),
			"nullable": false,
			"required": false,
			"path":     name,
			"value":    child.Value(),
		})
		return true
	})
}

func schemaAttribute(key string, meta gjson.Result) Attribute {
	attr := Attribute{
		"name":     stringOr(meta.Get("name"), key),
		"type":     stringOr(meta.Get("type"), "string"),
		"nullable": meta.Get("nullable").Bool(),
		"required": meta.Get("required").Bool(),
		"path":     key,
	}
	for _, field := range []string{"format", "description", "default", "enum"} {
		if v := meta.Get(field); v.Exists() {
			attr[field] = v.Value()
		}
	}
	return attr
}

func stringOr(v gjson.Result, fallback string) string {
	if v.Exists() && v.Type == gjson.String {
		return v.String()
	}
	return fallback
}

func runtimeType(v gjson.Result) string {
	switch v.Type {
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Number:
		return "number"
	default:
		return "string"
	}
}

func attrType(attr Attribute) string {
	if t, ok := attr["type"].(string); ok && t != "" {
		return t
	}
	return "string"
}

func anyHasType(set *Set) bool {
	for _, path := range set.Paths() {
		attr, _ := set.Get(path)
		if _, ok := attr["type"]; ok {
			return true
		}
	}
	return false
}
