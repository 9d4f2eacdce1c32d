package auth

import (
	"fmt"
	"strings"
)

// BasicAuth represents HTTP Basic authentication
type BasicAuth struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewBasicAuth creates a new Basic authentication provider
func NewBasicAuth(username, password string) *BasicAuth {
	return &BasicAuth{
		Username: username,
		Password: password,
	}
}

// Block returns the Postman basic auth object
func (b *BasicAuth) Block() map[string]any {
	return map[string]any{
		"type": "basic",
		"basic": []any{
			entry("username", b.Username),
			entry("password", b.Password),
		},
	}
}

// Type returns the authentication type
func (b *BasicAuth) Type() string {
	return "basic"
}

// Validate checks if username and password are present
func (b *BasicAuth) Validate() error {
	if strings.TrimSpace(b.Username) == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if strings.TrimSpace(b.Password) == "" {
		return fmt.Errorf("password cannot be empty")
	}
	return nil
}

// Redact returns a copy with password redacted
func (b *BasicAuth) Redact() Provider {
	return &BasicAuth{
		Username: b.Username,
		Password: "***",
	}
}

// String returns a human-readable representation
func (b *BasicAuth) String() string {
	return fmt.Sprintf("Basic Auth (%s)", b.Username)
}
