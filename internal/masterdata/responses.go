package masterdata

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/swagforge/swagforge-cli/internal/core/security"
)

// InjectionResponseConfig is the expected error response for one injection
// type ("xss", "sql" or "html").
type InjectionResponseConfig struct {
	ID            string `json:"id"`
	InjectionType string `json:"injection_type"`
	StatusCode    int    `json:"status_code"`
	Message       string `json:"message"`
	Enabled       *bool  `json:"enabled,omitempty"`
}

func validInjectionType(t string) bool {
	switch strings.ToLower(t) {
	case "xss", "sql", "html":
		return true
	}
	return false
}

func (r *Repository) InjectionResponses() []InjectionResponseConfig {
	return append([]InjectionResponseConfig{}, r.responses...)
}

// AddInjectionResponse stores a response configuration, assigning an ID when
// absent.
func (r *Repository) AddInjectionResponse(resp InjectionResponseConfig) (InjectionResponseConfig, error) {
	if !validInjectionType(resp.InjectionType) {
		return InjectionResponseConfig{}, fmt.Errorf("injection_type must be 'xss', 'sql' or 'html', got %q", resp.InjectionType)
	}
	resp.InjectionType = strings.ToLower(resp.InjectionType)
	if resp.StatusCode == 0 {
		resp.StatusCode = 400
	}
	if resp.ID == "" {
		resp.ID = uuid.NewString()
	}
	r.responses = append(r.responses, resp)
	return resp, nil
}

func (r *Repository) UpdateInjectionResponse(resp InjectionResponseConfig) error {
	if !validInjectionType(resp.InjectionType) {
		return fmt.Errorf("injection_type must be 'xss', 'sql' or 'html', got %q", resp.InjectionType)
	}
	resp.InjectionType = strings.ToLower(resp.InjectionType)
	for i, existing := range r.responses {
		if existing.ID == resp.ID {
			r.responses[i] = resp
			return nil
		}
	}
	return fmt.Errorf("injection response %q: %w", resp.ID, ErrNotFound)
}

func (r *Repository) DeleteInjectionResponse(id string) error {
	for i, resp := range r.responses {
		if resp.ID == id {
			r.responses = append(r.responses[:i], r.responses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("injection response %q: %w", id, ErrNotFound)
}

// ResponseForInjectionType returns the first enabled configuration for an
// injection type, nil when none is configured. It feeds the security
// generator's synthetic responses.
func (r *Repository) ResponseForInjectionType(injectionType string) *security.InjectionResponse {
	lower := strings.ToLower(injectionType)
	for _, resp := range r.responses {
		if strings.ToLower(resp.InjectionType) == lower && enabled(resp.Enabled) {
			message := resp.Message
			if message == "" {
				message = "Bad Request"
			}
			status := resp.StatusCode
			if status == 0 {
				status = 400
			}
			return &security.InjectionResponse{StatusCode: status, Message: message}
		}
	}
	return nil
}
