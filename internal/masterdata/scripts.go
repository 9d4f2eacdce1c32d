package masterdata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// StatusScript is a pre-request or test script attached to a status code or
// a range such as "2XX".
type StatusScript struct {
	ID          string `json:"id"`
	StatusCode  string `json:"status_code"`
	ScriptType  string `json:"script_type"`
	Script      string `json:"script"`
	Description string `json:"description,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"`
}

func validScriptType(t string) bool {
	return t == "pre-request" || t == "test"
}

// StatusScripts returns all scripts sorted by status code then type.
func (r *Repository) StatusScripts() []StatusScript {
	scripts := append([]StatusScript{}, r.scripts...)
	sort.SliceStable(scripts, func(i, j int) bool {
		if scripts[i].StatusCode != scripts[j].StatusCode {
			return scripts[i].StatusCode < scripts[j].StatusCode
		}
		return scripts[i].ScriptType < scripts[j].ScriptType
	})
	return scripts
}

func (r *Repository) StatusScript(id string) (StatusScript, error) {
	for _, s := range r.scripts {
		if s.ID == id {
			return s, nil
		}
	}
	return StatusScript{}, fmt.Errorf("status script %q: %w", id, ErrNotFound)
}

// AddStatusScript stores a script, assigning an ID when absent.
func (r *Repository) AddStatusScript(script StatusScript) (StatusScript, error) {
	if !validScriptType(script.ScriptType) {
		return StatusScript{}, fmt.Errorf("script_type must be 'pre-request' or 'test', got %q", script.ScriptType)
	}
	if script.ID == "" {
		script.ID = uuid.NewString()
	}
	r.scripts = append(r.scripts, script)
	return script, nil
}

func (r *Repository) UpdateStatusScript(script StatusScript) error {
	if !validScriptType(script.ScriptType) {
		return fmt.Errorf("script_type must be 'pre-request' or 'test', got %q", script.ScriptType)
	}
	for i, s := range r.scripts {
		if s.ID == script.ID {
			r.scripts[i] = script
			return nil
		}
	}
	return fmt.Errorf("status script %q: %w", script.ID, ErrNotFound)
}

func (r *Repository) DeleteStatusScript(id string) error {
	for i, s := range r.scripts {
		if s.ID == id {
			r.scripts = append(r.scripts[:i], r.scripts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("status script %q: %w", id, ErrNotFound)
}

// ScriptsForStatusCodes collects the enabled script lines for a set of
// status codes, exact matches first, then range matches ("4XX"). Scripts
// whose normalized content already appeared are skipped.
func (r *Repository) ScriptsForStatusCodes(codes []int) (prerequest, test []string) {
	seen := map[string]struct{}{}

	for _, code := range codes {
		keys := []string{fmt.Sprintf("%d", code)}
		if rangeKey := statusRange(code); rangeKey != "" {
			keys = append(keys, rangeKey)
		}

		for _, key := range keys {
			for _, script := range r.scripts {
				if script.StatusCode != key || !enabled(script.Enabled) {
					continue
				}
				content := strings.TrimSpace(script.Script)
				if content == "" {
					continue
				}

				scriptType := strings.ReplaceAll(script.ScriptType, "-", "")
				if scriptType != "prerequest" {
					scriptType = "test"
				}
				dedupKey := scriptType + ":" + normalizeScript(content)
				if _, dup := seen[dedupKey]; dup {
					continue
				}
				seen[dedupKey] = struct{}{}

				lines := scriptLines(script.Script)
				if scriptType == "prerequest" {
					prerequest = append(prerequest, lines...)
				} else {
					test = append(test, lines...)
				}
			}
		}
	}
	return prerequest, test
}

func statusRange(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2XX"
	case code >= 300 && code < 400:
		return "3XX"
	case code >= 400 && code < 500:
		return "4XX"
	case code >= 500 && code < 600:
		return "5XX"
	}
	return ""
}

// normalizeScript collapses whitespace so two formattings of the same script
// dedup to one entry.
func normalizeScript(script string) string {
	var lines []string
	for _, line := range strings.Split(script, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}

// scriptLines splits a script into exec lines, keeping interior blank lines
// but dropping trailing ones.
func scriptLines(script string) []string {
	lines := strings.Split(strings.ReplaceAll(script, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
