package postman

import (
	"reflect"
	"testing"
)

func request(name, method string) map[string]any {
	return map[string]any{
		"name": name,
		"request": map[string]any{
			"method": method,
		},
	}
}

func folder(name string, children ...any) map[string]any {
	if children == nil {
		children = []any{}
	}
	return map[string]any{
		"name": name,
		"item": children,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		item map[string]any
		want Kind
	}{
		{"plain request", request("Get Users", "GET"), KindNormal},
		{"injection request", request("Get Users - XSS Injection field", "GET"), KindInjection},
		{"case insensitive", request("SQL INJECTION probe", "POST"), KindInjection},
		{"clone request", request("Get Users (Copy 1712)", "GET"), KindClone},
		{"plain folder", folder("Users"), KindNormal},
		{"injection folder", folder("XSS-Injections"), KindInjection},
		{"copy folder stays normal", folder("Users (Copy)"), KindNormal},
	}
	for _, tt := range tests {
		if got := Classify(tt.item); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsInjectionFolderName(t *testing.T) {
	for _, name := range []string{"XSS-Injections", "sql-injection", "HTML-Injections", "legacy html-injection set"} {
		if !IsInjectionFolderName(name) {
			t.Errorf("%q should be an injection folder name", name)
		}
	}
	for _, name := range []string{"Users", "Injection Molding", "xss"} {
		if IsInjectionFolderName(name) {
			t.Errorf("%q should not be an injection folder name", name)
		}
	}
}

func TestFolderRequestDiscrimination(t *testing.T) {
	f := folder("Users", request("Get", "GET"))
	r := request("Get", "GET")

	if !IsFolder(f) || IsRequest(f) {
		t.Error("folder misclassified")
	}
	if IsFolder(r) || !IsRequest(r) {
		t.Error("request misclassified")
	}
	if ItemMethod(r) != "GET" {
		t.Errorf("unexpected method %q", ItemMethod(r))
	}
	if ItemMethod(f) != "" {
		t.Errorf("folder should have no method, got %q", ItemMethod(f))
	}
	if len(ItemChildren(f)) != 1 {
		t.Errorf("unexpected children: %v", ItemChildren(f))
	}
}

func TestValidate(t *testing.T) {
	valid := map[string]any{
		"info": map[string]any{"name": "X"},
		"item": []any{},
	}
	if err := Validate(valid); err != nil {
		t.Errorf("valid collection rejected: %v", err)
	}

	for _, invalid := range []map[string]any{
		nil,
		{"item": []any{}},
		{"info": map[string]any{}},
	} {
		if err := Validate(invalid); err != ErrInvalidCollection {
			t.Errorf("expected ErrInvalidCollection for %v, got %v", invalid, err)
		}
	}
}

func TestCloneValueIsDeep(t *testing.T) {
	original := map[string]any{
		"name": "Get",
		"request": map[string]any{
			"method": "GET",
			"header": []any{map[string]any{"key": "Accept", "value": "application/json"}},
		},
	}

	cloned := CloneItem(original)
	if !reflect.DeepEqual(original, cloned) {
		t.Fatal("clone differs from original")
	}

	cloned["request"].(map[string]any)["method"] = "POST"
	header := cloned["request"].(map[string]any)["header"].([]any)
	header[0].(map[string]any)["key"] = "Authorization"

	if original["request"].(map[string]any)["method"] != "GET" {
		t.Error("mutating clone affected original method")
	}
	origHeader := original["request"].(map[string]any)["header"].([]any)
	if origHeader[0].(map[string]any)["key"] != "Accept" {
		t.Error("mutating clone affected original header")
	}
}
