package auth

import (
	"fmt"
)

// Provider renders authentication configuration into the Postman auth block
// shape used at both collection and request level.
type Provider interface {
	// Block returns the Postman v2.1 auth object for this provider
	Block() map[string]any

	// Type returns the authentication type identifier
	Type() string

	// Validate checks if the configuration is valid
	Validate() error

	// Redact returns a copy with sensitive data hidden (for logging)
	Redact() Provider
}

// FromConfig builds a provider from a declared auth type and its values.
// "jwt" is an alias for bearer. Unknown or empty types yield nil: the
// collection simply gets no auth block.
func FromConfig(authType string, values map[string]string) Provider {
	if authType == "" || len(values) == 0 {
		return nil
	}

	switch authType {
	case "apiKey", "apikey":
		return NewAPIKeyAuth(values["key"], values["value"], values["location"])
	case "basic":
		return NewBasicAuth(values["username"], values["password"])
	case "bearer", "jwt":
		return NewBearerAuth(values["token"])
	}

	return nil
}

// ParseAuthType validates a user-supplied auth type string
func ParseAuthType(authType string) (string, error) {
	validTypes := map[string]bool{
		"none":   true,
		"bearer": true,
		"jwt":    true,
		"apikey": true,
		"apiKey": true,
		"basic":  true,
	}

	if !validTypes[authType] {
		return "", fmt.Errorf("invalid auth type: %s (valid: none, bearer, jwt, apikey, basic)", authType)
	}

	return authType, nil
}

// RedactString hides sensitive data for logging
func RedactString(s string) string {
	if len(s) == 0 {
		return "<empty>"
	}
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "***" + s[len(s)-4:]
}

// entry is one key/value row inside a Postman auth block
func entry(key, value string) map[string]any {
	return map[string]any{
		"key":   key,
		"value": value,
		"type":  "string",
	}
}
