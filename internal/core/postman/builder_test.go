package postman

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/swagforge/swagforge-cli/internal/core/auth"
)

func TestBuilderInfoAndID(t *testing.T) {
	collection := NewBuilder().
		SetInfo("Orders API", "order management", "1.2.0").
		Build()

	info := collection["info"].(map[string]any)
	if info["name"] != "Orders API" || info["description"] != "order management" {
		t.Errorf("unexpected info: %v", info)
	}
	if info["version"] != "1.2.0" {
		t.Errorf("version not set: %v", info)
	}
	if info["schema"] != SchemaV21 {
		t.Errorf("unexpected schema: %v", info["schema"])
	}
	if id, _ := info["_postman_id"].(string); id == "" {
		t.Error("collection must carry a _postman_id")
	}

	// Version omitted when empty
	bare := NewBuilder().SetInfo("X", "", "").Build()
	if _, ok := bare["info"].(map[string]any)["version"]; ok {
		t.Error("empty version should be omitted")
	}
}

func TestBuilderAuth(t *testing.T) {
	collection := NewBuilder().
		SetAuth(auth.FromConfig("bearer", map[string]string{"token": "{{authToken}}"})).
		Build()

	block := collection["auth"].(map[string]any)
	if block["type"] != "bearer" {
		t.Errorf("unexpected auth block: %v", block)
	}

	// Unknown auth type: block stays empty
	plain := NewBuilder().
		SetAuth(auth.FromConfig("oauth2", map[string]string{"x": "y"})).
		Build()
	if len(plain["auth"].(map[string]any)) != 0 {
		t.Errorf("unknown auth type should leave auth empty: %v", plain["auth"])
	}
}

func TestBuilderAddVariableUpserts(t *testing.T) {
	b := NewBuilder()
	b.AddVariable("baseUrl", "https://a.example.com", "string")
	b.AddVariable("token", "abc", "secret")
	b.AddVariable("baseUrl", "https://b.example.com", "string")

	variables := b.Build()["variable"].([]any)
	if len(variables) != 2 {
		t.Fatalf("expected 2 variables, got %d", len(variables))
	}
	first := variables[0].(map[string]any)
	if first["key"] != "baseUrl" || first["value"] != "https://b.example.com" {
		t.Errorf("upsert failed: %v", first)
	}
}

func TestBuilderSetBaseURL(t *testing.T) {
	b := NewBuilder()
	b.SetBaseURL("https://api.example.com/v2/pets")

	variables := b.Build()["variable"].([]any)
	if len(variables) != 1 {
		t.Fatalf("expected baseUrl variable, got %v", variables)
	}
	v := variables[0].(map[string]any)
	if v["key"] != "baseUrl" || v["value"] != "https://api.example.com" {
		t.Errorf("baseUrl should hold only the domain: %v", v)
	}

	// Variable references are left alone
	b2 := NewBuilder()
	b2.SetBaseURL("{{baseUrl}}")
	if len(b2.Build()["variable"].([]any)) != 0 {
		t.Error("variable reference should not register baseUrl")
	}
}

func TestParseHost(t *testing.T) {
	tests := []struct {
		url  string
		want []any
	}{
		{"{{baseUrl}}/users", []any{"{{baseUrl}}"}},
		{"{{serviceUrl}}/users", []any{"{{serviceUrl}}"}},
		{"https://api.example.com/v1/users", []any{"api.example.com"}},
		{"{{host}}/api", []any{}},
		{"relative/path", []any{}},
	}
	for _, tt := range tests {
		if got := ParseHost(tt.url); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseHost(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		url  string
		want []any
	}{
		{"{{baseUrl}}/users/{{userId}}/orders", []any{"users", "orders"}},
		{"https://api.example.com/v1/users", []any{"v1", "users"}},
		{"{{baseUrl}}", []any{}},
		{"https://api.example.com", []any{}},
	}
	for _, tt := range tests {
		if got := ParsePath(tt.url); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParsePath(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestBuilderAddRequestShape(t *testing.T) {
	b := NewBuilder()
	b.AddRequest(RequestSpec{
		Name:   "Create User",
		Method: "post",
		URL:    "{{baseUrl}}/users",
		Body: map[string]any{
			"mode": "raw",
			"raw":  `{"name":"{{name}}"}`,
		},
	})

	items := b.Build()["item"].([]any)
	item := items[0].(map[string]any)
	request := item["request"].(map[string]any)
	if request["method"] != "POST" {
		t.Errorf("method should be uppercased: %v", request["method"])
	}
	url := request["url"].(map[string]any)
	if url["raw"] != "{{baseUrl}}/users" {
		t.Errorf("raw url lost: %v", url)
	}
	if _, ok := item["response"].([]any); !ok {
		t.Error("request items always carry a response list")
	}
	if _, ok := item["event"]; ok {
		t.Error("event should be absent when no scripts are attached")
	}
}

// One build+serialize cycle must not lose builder-managed fields.
func TestBuildSerializeRoundTrip(t *testing.T) {
	collection := NewBuilder().
		SetInfo("Round Trip", "lossless", "").
		SetAuth(auth.FromConfig("apiKey", map[string]string{"key": "X-Key", "value": "{{apiKey}}"})).
		AddVariable("baseUrl", "https://api.example.com", "string").
		AddRequest(RequestSpec{Name: "Ping", Method: "GET", URL: "{{baseUrl}}/ping"}).
		Build()

	data, err := json.Marshal(collection)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(collection, decoded) {
		t.Error("collection changed across a serialize cycle")
	}
}
