package convert

import (
	"sort"
	"strings"
	"time"

	"github.com/swagforge/swagforge-cli/internal/core/variables"
)

var stageDisplayNames = map[string]string{
	"local": "Local",
	"dev":   "Development",
	"qa":    "QA",
	"uat":   "UAT",
	"prod":  "Production",
}

// StageDisplay returns the display form of a stage name used in environment
// ids, names and file names. Unknown stages are capitalized.
func StageDisplay(stage string) string {
	if display, ok := stageDisplayNames[stage]; ok {
		return display
	}
	if stage == "" {
		return ""
	}
	return strings.ToUpper(stage[:1]) + stage[1:]
}

// stageURL maps a stage to its base URL. Local always points at a local
// server; dev/qa/uat prefix the host; prod keeps the original.
func stageURL(stage, original string) string {
	switch stage {
	case "local":
		return "http://localhost:8000"
	case "dev", "qa", "uat":
		if strings.Contains(original, "api.example.com") {
			return strings.ReplaceAll(original, "api.example.com", stage+"-api.example.com")
		}
		return strings.ReplaceAll(original, "https://", "https://"+stage+"-")
	default:
		return original
	}
}

// buildEnvironments renders one Postman environment document per selected
// stage. Configured defaults win over stage URLs and name-pattern values;
// password and token auth variables are typed secret.
func buildEnvironments(apiName, collectionID, serverURL string, vars []string, opts Options) []EnvironmentFile {
	if len(opts.Environments) == 0 {
		return nil
	}

	authKeys := make([]string, 0, len(opts.AuthValues))
	for key := range opts.AuthValues {
		authKeys = append(authKeys, key)
	}
	sort.Strings(authKeys)

	exportedAt := opts.Now().Format(time.RFC3339)
	varNames := append([]string{"baseUrl"}, vars...)

	files := make([]EnvironmentFile, 0, len(opts.Environments))
	for _, stage := range opts.Environments {
		display := StageDisplay(stage)

		defaults := map[string]string{}
		if opts.Defaults != nil {
			defaults = opts.Defaults.DefaultValues(apiName, stage, varNames)
		}

		baseValue := defaults["baseUrl"]
		if baseValue == "" {
			baseValue = stageURL(stage, serverURL)
		}
		values := []any{envValue("baseUrl", baseValue, "default")}

		for _, key := range authKeys {
			value, ok := defaults[key]
			if !ok {
				value = opts.AuthValues[key]
			}
			kind := "default"
			if key == "password" || key == "token" {
				kind = "secret"
			}
			values = append(values, envValue(key, value, kind))
		}

		for _, name := range vars {
			if strings.EqualFold(name, "baseurl") {
				continue
			}
			if _, isAuth := opts.AuthValues[name]; isAuth {
				continue
			}
			value, ok := defaults[name]
			if !ok {
				value = variables.DefaultValue(name, opts.Now)
			}
			values = append(values, envValue(name, value, "default"))
		}

		files = append(files, EnvironmentFile{
			Stage:   stage,
			Display: display,
			Document: map[string]any{
				"id":                      collectionID + "-" + display,
				"name":                    apiName + " - " + display,
				"values":                  values,
				"_postman_variable_scope": "environment",
				"_postman_exported_at":    exportedAt,
				"_postman_exported_using": "Swagger to Postman Converter",
			},
		})
	}
	return files
}

func envValue(key, value, kind string) map[string]any {
	return map[string]any{
		"key":     key,
		"value":   value,
		"type":    kind,
		"enabled": true,
	}
}
