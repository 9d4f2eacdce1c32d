package openapi

import (
	"reflect"
	"testing"
	"time"
)

func frozenGenerator() *ExampleGenerator {
	frozen := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	return &ExampleGenerator{Now: func() time.Time { return frozen }}
}

func TestGenerateExamplePriority(t *testing.T) {
	g := frozenGenerator()
	doc := Document{}
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explicit":  map[string]any{"type": "string", "example": "given"},
			"defaulted": map[string]any{"type": "integer", "default": 7},
			"synth":     map[string]any{"type": "string"},
		},
	}

	example := g.Generate(schema, doc).(map[string]any)
	if example["explicit"] != "given" {
		t.Errorf("example should win: %v", example["explicit"])
	}
	if example["defaulted"] != 7 {
		t.Errorf("default should win over synthesis: %v", example["defaulted"])
	}
	if example["synth"] != "{{synth}}" {
		t.Errorf("string synthesis should be a placeholder: %v", example["synth"])
	}
}

func TestGenerateExampleTypeSynthesis(t *testing.T) {
	g := frozenGenerator()
	doc := Document{}
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"count":   map[string]any{"type": "integer"},
			"ratio":   map[string]any{"type": "number"},
			"active":  map[string]any{"type": "boolean"},
			"nested":  map[string]any{"type": "object", "properties": map[string]any{"inner": map[string]any{"type": "string"}}},
			"samples": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
	}

	example := g.Generate(schema, doc).(map[string]any)
	if example["count"] != 0 {
		t.Errorf("integer synthesis: %v", example["count"])
	}
	if example["ratio"] != 0.0 {
		t.Errorf("number synthesis: %v", example["ratio"])
	}
	if example["active"] != true {
		t.Errorf("boolean synthesis: %v", example["active"])
	}
	nested := example["nested"].(map[string]any)
	if nested["inner"] != "{{inner}}" {
		t.Errorf("nested object synthesis: %v", nested)
	}
	if !reflect.DeepEqual(example["samples"], []any{"{{value}}"}) {
		t.Errorf("array synthesis: %v", example["samples"])
	}
}

func TestGenerateExampleRequiredOnly(t *testing.T) {
	g := frozenGenerator()
	doc := Document{}
	schema := map[string]any{
		"type":     "object",
		"required": []any{"must"},
		"properties": map[string]any{
			"must":  map[string]any{"type": "string"},
			"maybe": map[string]any{"type": "string"},
		},
	}

	example := g.Generate(schema, doc).(map[string]any)
	if _, ok := example["must"]; !ok {
		t.Error("required field missing from example")
	}
	if _, ok := example["maybe"]; ok {
		t.Error("optional field should be omitted when required[] is non-empty")
	}
}

func TestGenerateExampleDates(t *testing.T) {
	g := frozenGenerator()
	doc := Document{}
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"createdAt": map[string]any{"type": "string", "format": "date-time"},
			"birthday":  map[string]any{"type": "string", "format": "date"},
		},
	}

	example := g.Generate(schema, doc).(map[string]any)
	if example["createdAt"] != "2025-03-14T09:26:53Z" {
		t.Errorf("date-time synthesis: %v", example["createdAt"])
	}
	if example["birthday"] != "2025-03-14" {
		t.Errorf("date synthesis: %v", example["birthday"])
	}
}

func TestGenerateExampleEnumAndBareString(t *testing.T) {
	g := frozenGenerator()
	doc := Document{}

	enum := map[string]any{"type": "string", "enum": []any{"red", "blue"}}
	if got := g.Generate(enum, doc); got != "red" {
		t.Errorf("enum should pick first value, got %v", got)
	}

	bare := map[string]any{"type": "string"}
	if got := g.Generate(bare, doc); got != "{{value}}" {
		t.Errorf("bare string schema should yield {{value}}, got %v", got)
	}
}

func TestGenerateExampleRef(t *testing.T) {
	g := frozenGenerator()
	doc := docWithSchemas(map[string]any{
		"User": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": map[string]any{"type": "string"},
			},
		},
	})
	schema := map[string]any{"$ref": "#/components/schemas/User"}

	example := g.Generate(schema, doc).(map[string]any)
	if example["name"] != "{{name}}" {
		t.Errorf("ref example: %v", example)
	}
}

func TestGenerateExampleCyclicRefTerminates(t *testing.T) {
	g := frozenGenerator()
	doc := docWithSchemas(map[string]any{
		"Node": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"next": map[string]any{"$ref": "#/components/schemas/Node"},
				"name": map[string]any{"type": "string"},
			},
		},
	})

	example := g.Generate(map[string]any{"$ref": "#/components/schemas/Node"}, doc).(map[string]any)
	if example["name"] != "{{name}}" {
		t.Errorf("outer fields should still generate: %v", example)
	}
}
