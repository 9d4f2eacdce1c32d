package postman

import (
	"bytes"
	"encoding/json"
	"strings"
)

// JSONString renders a JSON tree with two-space indentation and without HTML
// escaping, the form used for raw request bodies and saved response bodies.
func JSONString(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return strings.TrimRight(buf.String(), "\n")
}
