package auth

import (
	"fmt"
	"strings"
)

// BearerAuth represents Bearer token authentication. JWT auth renders to the
// same Postman block, so it shares this provider.
type BearerAuth struct {
	Token string `json:"token"`
}

// NewBearerAuth creates a new Bearer authentication provider
func NewBearerAuth(token string) *BearerAuth {
	return &BearerAuth{Token: token}
}

// Block returns the Postman bearer auth object
func (b *BearerAuth) Block() map[string]any {
	return map[string]any{
		"type": "bearer",
		"bearer": []any{
			entry("token", b.Token),
		},
	}
}

// Type returns the authentication type
func (b *BearerAuth) Type() string {
	return "bearer"
}

// Validate checks if the token is present
func (b *BearerAuth) Validate() error {
	if strings.TrimSpace(b.Token) == "" {
		return fmt.Errorf("bearer token cannot be empty")
	}
	return nil
}

// Redact returns a copy with the token redacted
func (b *BearerAuth) Redact() Provider {
	return &BearerAuth{
		Token: RedactString(b.Token),
	}
}

// String returns a human-readable representation
func (b *BearerAuth) String() string {
	return fmt.Sprintf("Bearer Token (%s)", RedactString(b.Token))
}
