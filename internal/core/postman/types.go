package postman

import (
	"errors"
	"strings"
)

const (
	// SchemaV21 identifies the Postman Collection v2.1 format.
	SchemaV21 = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

	// ExporterID marks collections produced by this tool.
	ExporterID = "swagger-to-postman-converter"
)

var (
	// ErrInvalidCollection reports a document missing the info/item shape
	// required of every Postman collection.
	ErrInvalidCollection = errors.New("invalid collection structure: info and item are required")

	// ErrNotFound reports a missing collection, request or folder lookup.
	ErrNotFound = errors.New("not found")
)

// Kind is the explicit item discriminant. Collections on disk encode it in
// item names ("injection" substring, "(copy)" substring); Classify recovers
// it once at the JSON boundary so the engines never re-parse names.
type Kind int

const (
	KindNormal Kind = iota
	KindInjection
	KindClone
)

func (k Kind) String() string {
	switch k {
	case KindInjection:
		return "injection"
	case KindClone:
		return "clone"
	default:
		return "normal"
	}
}

// Classify derives an item's kind from the legacy name convention. Folders
// and requests share the "injection" substring rule; only requests can be
// clones.
func Classify(item map[string]any) Kind {
	name := strings.ToLower(ItemName(item))
	if strings.Contains(name, "injection") {
		return KindInjection
	}
	if IsRequest(item) && strings.Contains(name, "(copy)") {
		return KindClone
	}
	return KindNormal
}

// injectionFolderNames are the folder names the variant generator produces.
var injectionFolderNames = []string{
	"xss-injection", "sql-injection", "html-injection",
	"xss-injections", "sql-injections", "html-injections",
}

// IsInjectionFolderName reports whether a folder name marks one of the
// generated injection folders.
func IsInjectionFolderName(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range injectionFolderNames {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// IsFolder reports whether the item carries a nested item list.
func IsFolder(item map[string]any) bool {
	_, ok := item["item"].([]any)
	return ok
}

// IsRequest reports whether the item carries a request object.
func IsRequest(item map[string]any) bool {
	_, ok := item["request"]
	return ok
}

// ItemName returns the item's display name, empty if absent.
func ItemName(item map[string]any) string {
	name, _ := item["name"].(string)
	return name
}

// ItemMethod returns the HTTP method of a request item, empty for folders.
func ItemMethod(item map[string]any) string {
	request, _ := item["request"].(map[string]any)
	method, _ := request["method"].(string)
	return method
}

// ItemChildren returns a folder's child list, nil for requests.
func ItemChildren(item map[string]any) []any {
	children, _ := item["item"].([]any)
	return children
}

// Validate checks the top-level collection shape before any write.
func Validate(collection map[string]any) error {
	if collection == nil {
		return ErrInvalidCollection
	}
	if _, ok := collection["info"]; !ok {
		return ErrInvalidCollection
	}
	if _, ok := collection["item"]; !ok {
		return ErrInvalidCollection
	}
	return nil
}

// CollectionName returns the collection's display name.
func CollectionName(collection map[string]any) string {
	info, _ := collection["info"].(map[string]any)
	name, _ := info["name"].(string)
	return name
}

// Items returns the collection's top-level item list.
func Items(collection map[string]any) []any {
	items, _ := collection["item"].([]any)
	return items
}

// CloneValue produces a structural deep copy of a JSON tree. The engines
// clone before every mutation so trees stay owned values, never shared.
func CloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = CloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = CloneValue(val)
		}
		return out
	default:
		return v
	}
}

// CloneItem deep-copies a collection item.
func CloneItem(item map[string]any) map[string]any {
	cloned, _ := CloneValue(item).(map[string]any)
	return cloned
}
