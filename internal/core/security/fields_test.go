package security

import (
	"reflect"
	"testing"
)

func TestExtractStringFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "flat object",
			raw:  `{"name": "Bob", "age": 30, "active": true}`,
			want: []string{"name"},
		},
		{
			name: "nested object",
			raw:  `{"user": {"name": "Bob", "age": 30}, "note": "hi"}`,
			want: []string{"user.name", "note"},
		},
		{
			name: "array of objects samples first element",
			raw:  `{"items": [{"sku": "a", "qty": 1}, {"sku": "b"}]}`,
			want: []string{"items.sku"},
		},
		{
			name: "array of strings contributes the array path",
			raw:  `{"tags": ["red", "blue"]}`,
			want: []string{"tags"},
		},
		{
			name: "empty array ignored",
			raw:  `{"tags": [], "name": "x"}`,
			want: []string{"name"},
		},
		{
			name: "no string fields",
			raw:  `{"count": 3, "ok": false}`,
			want: nil,
		},
		{
			name: "invalid json",
			raw:  `{"name": `,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractStringFields(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractStringFields(%s) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestExtractStringFieldsDepthCap(t *testing.T) {
	raw := `{"a":{"b":{"c":{"d":{"e":{"f":{"g":{"h":{"i":{"j":{"k":"deep"}}}}}}}}}}}`
	if got := ExtractStringFields(raw); got != nil {
		t.Errorf("fields beyond the depth cap must be skipped, got %v", got)
	}

	shallow := `{"a":{"b":{"c":"ok"}}}`
	if got := ExtractStringFields(shallow); !reflect.DeepEqual(got, []string{"a.b.c"}) {
		t.Errorf("shallow fields must survive, got %v", got)
	}
}

func TestSetNestedValue(t *testing.T) {
	data := map[string]any{
		"user": map[string]any{"name": "Bob", "age": float64(30)},
	}
	SetNestedValue(data, "user.name", "payload")

	user := data["user"].(map[string]any)
	if user["name"] != "payload" {
		t.Errorf("nested value not set: %v", user["name"])
	}
	if user["age"] != float64(30) {
		t.Errorf("sibling field disturbed: %v", user["age"])
	}
}

func TestSetNestedValueCreatesIntermediates(t *testing.T) {
	data := map[string]any{}
	SetNestedValue(data, "a.b.c", "v")

	b := data["a"].(map[string]any)["b"].(map[string]any)
	if b["c"] != "v" {
		t.Errorf("intermediate objects not created: %v", data)
	}
}

func TestSetNestedValueReplacesNonObjectIntermediate(t *testing.T) {
	data := map[string]any{"a": "scalar"}
	SetNestedValue(data, "a.b", "v")

	a, ok := data["a"].(map[string]any)
	if !ok || a["b"] != "v" {
		t.Errorf("non-object intermediate should be replaced: %v", data)
	}
}
