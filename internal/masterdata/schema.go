package masterdata

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema reflects the JSON Schema of one master data file, for editor
// validation of hand-edited files. Known names: status_scripts,
// injection_responses, global_headers, filtering_conditions,
// default_api_configs.
func Schema(name string) ([]byte, error) {
	reflector := jsonschema.Reflector{DoNotReference: true}

	var schema *jsonschema.Schema
	switch name {
	case "status_scripts":
		schema = reflector.Reflect(&scriptsDocument{})
	case "injection_responses":
		schema = reflector.Reflect(&responsesDocument{})
	case "global_headers":
		schema = reflector.Reflect(&headersDocument{})
	case "filtering_conditions":
		schema = reflector.Reflect(&conditionsDocument{})
	case "default_api_configs":
		schema = reflector.Reflect(&configsDocument{})
	default:
		return nil, fmt.Errorf("unknown master data file %q", name)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// SchemaNames lists the master data files Schema knows about.
func SchemaNames() []string {
	return []string{
		"status_scripts",
		"injection_responses",
		"global_headers",
		"filtering_conditions",
		"default_api_configs",
	}
}
