package masterdata

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// GlobalHeader is applied to every generated request.
type GlobalHeader struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"`
}

// GlobalHeaders returns all headers sorted by key.
func (r *Repository) GlobalHeaders() []GlobalHeader {
	headers := append([]GlobalHeader{}, r.headers...)
	sort.SliceStable(headers, func(i, j int) bool {
		return headers[i].Key < headers[j].Key
	})
	return headers
}

// EnabledHeaders returns the enabled headers as key/value pairs, in stored
// order, ready to splice into a request's header list.
func (r *Repository) EnabledHeaders() []map[string]string {
	var headers []map[string]string
	for _, h := range r.headers {
		if enabled(h.Enabled) {
			headers = append(headers, map[string]string{"key": h.Key, "value": h.Value})
		}
	}
	return headers
}

// AddGlobalHeader stores a header; duplicate keys are rejected.
func (r *Repository) AddGlobalHeader(header GlobalHeader) (GlobalHeader, error) {
	for _, existing := range r.headers {
		if existing.Key == header.Key && existing.ID != header.ID {
			return GlobalHeader{}, fmt.Errorf("header with key %q already exists", header.Key)
		}
	}
	if header.ID == "" {
		header.ID = uuid.NewString()
	}
	r.headers = append(r.headers, header)
	return header, nil
}

func (r *Repository) UpdateGlobalHeader(header GlobalHeader) error {
	for _, existing := range r.headers {
		if existing.Key == header.Key && existing.ID != header.ID {
			return fmt.Errorf("header with key %q already exists", header.Key)
		}
	}
	for i, existing := range r.headers {
		if existing.ID == header.ID {
			r.headers[i] = header
			return nil
		}
	}
	return fmt.Errorf("global header %q: %w", header.ID, ErrNotFound)
}

func (r *Repository) DeleteGlobalHeader(id string) error {
	for i, h := range r.headers {
		if h.ID == id {
			r.headers = append(r.headers[:i], r.headers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("global header %q: %w", id, ErrNotFound)
}
