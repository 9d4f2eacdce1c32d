package convert

import (
	"testing"
)

type stubDefaults struct {
	values map[string]map[string]string // stage -> variable -> value
}

func (s *stubDefaults) DefaultValues(apiName, environment string, variableNames []string) map[string]string {
	return s.values[environment]
}

func environmentValues(t *testing.T, env EnvironmentFile) map[string]map[string]any {
	t.Helper()
	values, _ := env.Document["values"].([]any)
	byKey := map[string]map[string]any{}
	for _, raw := range values {
		value, _ := raw.(map[string]any)
		key, _ := value["key"].(string)
		byKey[key] = value
	}
	return byKey
}

func TestEnvironmentStageURLs(t *testing.T) {
	result := mustConvert(t, Options{
		Environments: []string{"local", "qa", "prod"},
	})
	if len(result.Environments) != 3 {
		t.Fatalf("expected 3 environments, got %d", len(result.Environments))
	}

	tests := []struct {
		index   int
		display string
		baseURL string
	}{
		{0, "Local", "http://localhost:8000"},
		{1, "QA", "https://qa-api.orders.example/v1"},
		{2, "Production", "https://api.orders.example/v1"},
	}
	for _, tt := range tests {
		env := result.Environments[tt.index]
		if env.Display != tt.display {
			t.Errorf("environment %d: display %q, want %q", tt.index, env.Display, tt.display)
		}
		values := environmentValues(t, env)
		if values["baseUrl"]["value"] != tt.baseURL {
			t.Errorf("%s baseUrl = %v, want %q", tt.display, values["baseUrl"]["value"], tt.baseURL)
		}
	}
}

func TestEnvironmentDocumentShape(t *testing.T) {
	result := mustConvert(t, Options{Environments: []string{"qa"}})
	env := result.Environments[0]

	if env.Document["id"] != "orders-api-QA" {
		t.Errorf("unexpected id: %v", env.Document["id"])
	}
	if env.Document["name"] != "Orders API - QA" {
		t.Errorf("unexpected name: %v", env.Document["name"])
	}
	if env.Document["_postman_variable_scope"] != "environment" {
		t.Errorf("unexpected scope: %v", env.Document["_postman_variable_scope"])
	}
	if env.Document["_postman_exported_at"] != "2025-03-14T09:30:00Z" {
		t.Errorf("exported-at must come from the injected clock: %v", env.Document["_postman_exported_at"])
	}

	values, _ := env.Document["values"].([]any)
	if len(values) == 0 {
		t.Fatal("environment must carry values")
	}
	first, _ := values[0].(map[string]any)
	if first["key"] != "baseUrl" || first["enabled"] != true {
		t.Errorf("baseUrl must be the first value: %v", first)
	}
}

func TestEnvironmentAuthSecrets(t *testing.T) {
	result := mustConvert(t, Options{
		AuthType:     "bearer",
		AuthValues:   map[string]string{"token": "abc123"},
		Environments: []string{"dev"},
	})
	values := environmentValues(t, result.Environments[0])

	token := values["token"]
	if token == nil {
		t.Fatal("auth variable missing from environment")
	}
	if token["type"] != "secret" || token["value"] != "abc123" {
		t.Errorf("token must be a secret: %v", token)
	}
}

func TestEnvironmentDefaultsOverride(t *testing.T) {
	defaults := &stubDefaults{values: map[string]map[string]string{
		"qa": {"baseUrl": "https://qa.internal", "customer": "ACME"},
	}}
	result := mustConvert(t, Options{
		Environments: []string{"qa", "prod"},
		Defaults:     defaults,
	})

	qa := environmentValues(t, result.Environments[0])
	if qa["baseUrl"]["value"] != "https://qa.internal" {
		t.Errorf("configured baseUrl must win: %v", qa["baseUrl"])
	}
	if qa["customer"]["value"] != "ACME" {
		t.Errorf("configured value must win: %v", qa["customer"])
	}
	if qa["page"]["value"] != "10" {
		t.Errorf("unconfigured variable must use the name heuristic: %v", qa["page"])
	}

	prod := environmentValues(t, result.Environments[1])
	if prod["baseUrl"]["value"] != "https://api.orders.example/v1" {
		t.Errorf("unconfigured stage must fall back to the stage URL: %v", prod["baseUrl"])
	}
	if prod["customer"]["value"] == "ACME" {
		t.Error("defaults must be resolved per stage")
	}
}

func TestEnvironmentSkipsBaseURLAndAuthDuplicates(t *testing.T) {
	result := mustConvert(t, Options{
		AuthType:     "bearer",
		AuthValues:   map[string]string{"token": "abc123"},
		Environments: []string{"local"},
	})
	values, _ := result.Environments[0].Document["values"].([]any)

	counts := map[string]int{}
	for _, raw := range values {
		value, _ := raw.(map[string]any)
		key, _ := value["key"].(string)
		counts[key]++
	}
	for key, n := range counts {
		if n > 1 {
			t.Errorf("variable %q appears %d times", key, n)
		}
	}
}

func TestStageDisplayUnknown(t *testing.T) {
	if got := StageDisplay("staging"); got != "Staging" {
		t.Errorf("StageDisplay = %q", got)
	}
}
