package openapi

import (
	"reflect"
	"testing"
)

func docWithSchemas(schemas map[string]any) Document {
	return Document{
		"components": map[string]any{"schemas": schemas},
	}
}

func TestResolveRef(t *testing.T) {
	doc := docWithSchemas(map[string]any{
		"User": map[string]any{"type": "object"},
	})

	if got := ResolveRef(doc, "#/components/schemas/User"); got["type"] != "object" {
		t.Errorf("expected User schema, got %v", got)
	}
	if got := ResolveRef(doc, "#/components/schemas/Missing"); len(got) != 0 {
		t.Errorf("missing schema should resolve empty, got %v", got)
	}
	if got := ResolveRef(doc, "#/definitions/User"); len(got) != 0 {
		t.Errorf("non-component ref should resolve empty, got %v", got)
	}
	if got := ResolveRef(Document{}, "#/components/schemas/User"); len(got) != 0 {
		t.Errorf("empty doc should resolve empty, got %v", got)
	}
}

func TestExtractPropertiesObject(t *testing.T) {
	doc := Document{}
	schema := map[string]any{
		"type":     "object",
		"required": []any{"name"},
		"properties": map[string]any{
			"name": map[string]any{
				"type":        "string",
				"description": "display name",
			},
			"age": map[string]any{
				"type":     "integer",
				"format":   "int32",
				"nullable": true,
				"default":  21,
			},
		},
	}

	result, ok := ExtractProperties(schema, doc).(map[string]any)
	if !ok {
		t.Fatalf("expected map result")
	}

	name := result["name"].(map[string]any)
	if name["type"] != "string" || name["required"] != true || name["nullable"] != false {
		t.Errorf("unexpected name metadata: %v", name)
	}
	if name["description"] != "display name" {
		t.Errorf("description not carried: %v", name)
	}

	age := result["age"].(map[string]any)
	if age["required"] != false || age["nullable"] != true || age["format"] != "int32" || age["default"] != 21 {
		t.Errorf("unexpected age metadata: %v", age)
	}
}

func TestExtractPropertiesResolvesRefs(t *testing.T) {
	doc := docWithSchemas(map[string]any{
		"Address": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"city": map[string]any{"type": "string"},
			},
		},
	})
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"home": map[string]any{"$ref": "#/components/schemas/Address"},
			"work": map[string]any{"$ref": "#/components/schemas/Address"},
		},
	}

	result := ExtractProperties(schema, doc).(map[string]any)
	for _, key := range []string{"home", "work"} {
		info, ok := result[key].(map[string]any)
		if !ok || info["type"] != "object" {
			t.Fatalf("%s not resolved as object: %v", key, result[key])
		}
		nested := info["properties"].(map[string]any)
		if _, ok := nested["city"]; !ok {
			t.Errorf("%s missing nested city property", key)
		}
	}
}

func TestExtractPropertiesArrayOfObjects(t *testing.T) {
	doc := Document{}
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tags": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"label": map[string]any{"type": "string"},
					},
				},
			},
		},
	}

	result := ExtractProperties(schema, doc).(map[string]any)
	tags := result["tags"].(map[string]any)
	items := tags["items"].(map[string]any)
	if items["type"] != "object" {
		t.Fatalf("expected object items, got %v", items)
	}
	nested := items["properties"].(map[string]any)
	if _, ok := nested["label"]; !ok {
		t.Errorf("array item properties missing label: %v", nested)
	}
}

func TestExtractPropertiesTopLevelArray(t *testing.T) {
	doc := Document{}

	objArray := map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id": map[string]any{"type": "integer"},
			},
		},
	}
	result, ok := ExtractProperties(objArray, doc).([]any)
	if !ok || len(result) != 1 {
		t.Fatalf("expected single-element slice, got %v", result)
	}

	primArray := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "integer"},
	}
	prim := ExtractProperties(primArray, doc).(map[string]any)
	items := prim["items"].(map[string]any)
	if items["type"] != "integer" {
		t.Errorf("unexpected primitive array items: %v", items)
	}
}

func TestExtractPropertiesPrimitive(t *testing.T) {
	doc := Document{}
	schema := map[string]any{"type": "string", "format": "email", "enum": []any{"a", "b"}}
	result := ExtractProperties(schema, doc).(map[string]any)
	if result["type"] != "string" || result["format"] != "email" {
		t.Errorf("unexpected primitive descriptor: %v", result)
	}
	if !reflect.DeepEqual(result["enum"], []any{"a", "b"}) {
		t.Errorf("enum not carried: %v", result["enum"])
	}
}

func TestExtractPropertiesCyclicRef(t *testing.T) {
	doc := docWithSchemas(map[string]any{
		"Node": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"value": map[string]any{"type": "string"},
				"next":  map[string]any{"$ref": "#/components/schemas/Node"},
			},
		},
	})
	schema := map[string]any{"$ref": "#/components/schemas/Node"}

	// Must terminate; the revisited ref degrades to an empty stub.
	result := ExtractProperties(schema, doc).(map[string]any)
	if _, ok := result["value"]; !ok {
		t.Errorf("outer level should still carry value: %v", result)
	}
	next := result["next"].(map[string]any)
	if len(next) != 0 {
		t.Errorf("cyclic ref should produce empty stub, got %v", next)
	}
}
