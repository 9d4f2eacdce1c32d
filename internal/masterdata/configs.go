package masterdata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/swagforge/swagforge-cli/internal/core/openapi"
)

// DefaultAPIConfig supplies default variable values for one API in one
// environment, keyed by the API's sanitized name.
type DefaultAPIConfig struct {
	ID          string            `json:"id"`
	APIName     string            `json:"api_name"`
	Environment string            `json:"environment"`
	Variables   map[string]string `json:"variables"`
	Description string            `json:"description,omitempty"`
	Enabled     *bool             `json:"enabled,omitempty"`
}

// DefaultAPIConfigs returns all configs sorted by API name then environment.
func (r *Repository) DefaultAPIConfigs() []DefaultAPIConfig {
	configs := append([]DefaultAPIConfig{}, r.configs...)
	sort.SliceStable(configs, func(i, j int) bool {
		if configs[i].APIName != configs[j].APIName {
			return configs[i].APIName < configs[j].APIName
		}
		return configs[i].Environment < configs[j].Environment
	})
	return configs
}

// AddDefaultAPIConfig stores a config; one per (API, environment) pair.
func (r *Repository) AddDefaultAPIConfig(config DefaultAPIConfig) (DefaultAPIConfig, error) {
	for _, existing := range r.configs {
		if existing.APIName == config.APIName && existing.Environment == config.Environment && existing.ID != config.ID {
			return DefaultAPIConfig{}, fmt.Errorf("configuration already exists for API %q and environment %q",
				config.APIName, config.Environment)
		}
	}
	if config.ID == "" {
		config.ID = uuid.NewString()
	}
	r.configs = append(r.configs, config)
	return config, nil
}

func (r *Repository) UpdateDefaultAPIConfig(config DefaultAPIConfig) error {
	for _, existing := range r.configs {
		if existing.APIName == config.APIName && existing.Environment == config.Environment && existing.ID != config.ID {
			return fmt.Errorf("configuration already exists for API %q and environment %q",
				config.APIName, config.Environment)
		}
	}
	for i, existing := range r.configs {
		if existing.ID == config.ID {
			r.configs[i] = config
			return nil
		}
	}
	return fmt.Errorf("default API config %q: %w", config.ID, ErrNotFound)
}

func (r *Repository) DeleteDefaultAPIConfig(id string) error {
	for i, c := range r.configs {
		if c.ID == id {
			r.configs = append(r.configs[:i], r.configs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("default API config %q: %w", id, ErrNotFound)
}

// DefaultValues resolves configured values for the named variables of an API
// in an environment. The API name match is tolerant: sanitized names compare
// case-insensitively, exact names win as a fallback. Unknown variables are
// simply absent from the result.
func (r *Repository) DefaultValues(apiName, environment string, variableNames []string) map[string]string {
	sanitized := strings.ToLower(openapi.SanitizeName(apiName))

	for _, config := range r.configs {
		if !enabled(config.Enabled) || config.Environment != environment {
			continue
		}
		nameMatches := strings.ToLower(openapi.SanitizeName(config.APIName)) == sanitized ||
			config.APIName == apiName ||
			strings.EqualFold(config.APIName, apiName)
		if !nameMatches {
			continue
		}

		result := map[string]string{}
		for _, name := range variableNames {
			if value, ok := config.Variables[name]; ok {
				result[name] = value
			}
		}
		return result
	}
	return map[string]string{}
}
