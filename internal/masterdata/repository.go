// Package masterdata owns the editable configuration that conversions pull
// in: status-code scripts, injection response messages, global headers,
// filtering conditions, per-API default variables and the login collection.
// Everything lives as JSON files under one directory and is loaded once per
// command; mutations are written back with an explicit Flush.
package masterdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	scriptsFile    = "status_scripts.json"
	responsesFile  = "injection_responses.json"
	headersFile    = "global_headers.json"
	conditionsFile = "filtering_conditions.json"
	configsFile    = "default_api_configs.json"
	loginFile      = "login.postman_collection.json"
)

// ErrNotFound is returned by lookups and deletes on unknown entries.
var ErrNotFound = errors.New("master data entry not found")

// Repository holds the loaded master data for one directory.
type Repository struct {
	dir string

	scripts    []StatusScript
	responses  []InjectionResponseConfig
	headers    []GlobalHeader
	conditions []FilteringCondition
	configs    []DefaultAPIConfig
	login      map[string]any
}

func New(dir string) *Repository {
	return &Repository{dir: dir}
}

func (r *Repository) Dir() string {
	return r.dir
}

// Load reads every master data file. Missing files fall back to the built-in
// defaults; they are materialized on the next Flush.
func (r *Repository) Load() error {
	var scripts scriptsDocument
	if err := r.readFile(scriptsFile, &scripts); err != nil {
		return err
	} else if scripts.Scripts == nil {
		scripts.Scripts = defaultStatusScripts()
	}
	r.scripts = scripts.Scripts

	var responses responsesDocument
	if err := r.readFile(responsesFile, &responses); err != nil {
		return err
	} else if responses.Responses == nil {
		responses.Responses = defaultInjectionResponses()
	}
	r.responses = responses.Responses

	var headers headersDocument
	if err := r.readFile(headersFile, &headers); err != nil {
		return err
	}
	r.headers = headers.Headers

	var conditions conditionsDocument
	if err := r.readFile(conditionsFile, &conditions); err != nil {
		return err
	} else if conditions.Conditions == nil {
		conditions.Conditions = defaultFilteringConditions()
	}
	r.conditions = conditions.Conditions

	var configs configsDocument
	if err := r.readFile(configsFile, &configs); err != nil {
		return err
	}
	r.configs = configs.Configs

	login, err := r.readLogin()
	if err != nil {
		return err
	}
	r.login = login

	return nil
}

// Flush writes every master data file, creating the directory when needed.
func (r *Repository) Flush() error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("failed to create master data directory: %w", err)
	}

	files := map[string]any{
		scriptsFile:    scriptsDocument{Scripts: r.scripts},
		responsesFile:  responsesDocument{Responses: r.responses},
		headersFile:    headersDocument{Headers: r.headers},
		conditionsFile: conditionsDocument{Conditions: r.conditions},
		configsFile:    configsDocument{Configs: r.configs},
	}
	for name, doc := range files {
		if err := r.writeFile(name, doc); err != nil {
			return err
		}
	}

	if r.login != nil {
		if err := r.writeFile(loginFile, r.login); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) readFile(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (r *Repository) writeFile(name string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(r.dir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (r *Repository) readLogin() (map[string]any, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, loginFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", loginFile, err)
	}
	var collection map[string]any
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", loginFile, err)
	}
	return collection, nil
}

// enabled treats an absent flag as true, matching how the files are edited
// by hand.
func enabled(flag *bool) bool {
	return flag == nil || *flag
}

func enabledFlag(v bool) *bool {
	return &v
}

type scriptsDocument struct {
	Scripts []StatusScript `json:"scripts"`
}

type responsesDocument struct {
	Responses []InjectionResponseConfig `json:"responses"`
}

type headersDocument struct {
	Headers []GlobalHeader `json:"headers"`
}

type conditionsDocument struct {
	Conditions []FilteringCondition `json:"conditions"`
}

type configsDocument struct {
	Configs []DefaultAPIConfig `json:"configs"`
}
