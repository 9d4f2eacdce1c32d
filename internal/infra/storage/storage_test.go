package storage

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/swagforge/swagforge-cli/internal/core/postman"
)

func testHome(t *testing.T) {
	t.Helper()
	t.Setenv("SWAGFORGE_HOME", t.TempDir())
}

func sampleCollection(name string) map[string]any {
	return map[string]any{
		"info": map[string]any{
			"name":        name,
			"_postman_id": "11111111-1111-1111-1111-111111111111",
			"schema":      postman.SchemaV21,
		},
		"item": []any{
			map[string]any{
				"name":    "Get Things",
				"request": map[string]any{"method": "GET"},
			},
		},
	}
}

func TestCollectionSaveLoadListDelete(t *testing.T) {
	testHome(t)

	id := CollectionID("Orders API")
	if id != "orders-api" {
		t.Fatalf("unexpected collection id: %q", id)
	}

	path, err := SaveCollection(id, sampleCollection("Orders API"))
	if err != nil {
		t.Fatalf("SaveCollection: %v", err)
	}
	if !strings.HasSuffix(path, "orders-api/orders-api.postman_collection.json") {
		t.Errorf("unexpected path layout: %s", path)
	}

	loaded, err := LoadCollection(id)
	if err != nil {
		t.Fatalf("LoadCollection: %v", err)
	}
	if postman.CollectionName(loaded) != "Orders API" {
		t.Errorf("unexpected loaded name: %v", postman.CollectionName(loaded))
	}

	collections, err := ListCollections()
	if err != nil {
		t.Fatalf("ListCollections: %v", err)
	}
	if len(collections) != 1 || collections[0].ID != id {
		t.Errorf("unexpected listing: %+v", collections)
	}
	if collections[0].Size == 0 {
		t.Error("listing must report file size")
	}

	if err := DeleteCollection(id); err != nil {
		t.Fatalf("DeleteCollection: %v", err)
	}
	if _, err := LoadCollection(id); !errors.Is(err, postman.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := DeleteCollection(id); !errors.Is(err, postman.ErrNotFound) {
		t.Errorf("double delete should be ErrNotFound, got %v", err)
	}
}

func TestSaveCollectionRejectsInvalid(t *testing.T) {
	testHome(t)
	if _, err := SaveCollection("x", map[string]any{"name": "no info"}); err == nil {
		t.Error("invalid collection must be rejected")
	}
}

func TestSaveCollectionDoesNotEscapeMarkup(t *testing.T) {
	testHome(t)

	collection := sampleCollection("Markup")
	items := collection["item"].([]any)
	items[0].(map[string]any)["request"].(map[string]any)["body"] = map[string]any{
		"mode": "raw",
		"raw":  "<script>alert('XSS')</script>",
	}

	path, err := SaveCollection("markup", collection)
	if err != nil {
		t.Fatalf("SaveCollection: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "<script>") {
		t.Error("markup must not be HTML-escaped on disk")
	}
}

func TestCloneCollection(t *testing.T) {
	testHome(t)

	if _, err := SaveCollection("orders-api", sampleCollection("Orders API")); err != nil {
		t.Fatalf("SaveCollection: %v", err)
	}

	newID, newName, err := CloneCollection("orders-api")
	if err != nil {
		t.Fatalf("CloneCollection: %v", err)
	}
	if !strings.HasPrefix(newName, "Orders API (Copy ") {
		t.Errorf("unexpected clone name: %q", newName)
	}
	if !strings.HasPrefix(newID, "orders-api-copy-") {
		t.Errorf("unexpected clone id: %q", newID)
	}

	cloned, err := LoadCollection(newID)
	if err != nil {
		t.Fatalf("clone must be loadable: %v", err)
	}
	if postman.CollectionName(cloned) != newName {
		t.Errorf("clone name mismatch: %v", postman.CollectionName(cloned))
	}

	original, err := LoadCollection("orders-api")
	if err != nil {
		t.Fatalf("original must survive: %v", err)
	}
	if postman.CollectionName(original) != "Orders API" {
		t.Errorf("original name must be untouched: %v", postman.CollectionName(original))
	}
}

func TestCloneRequest(t *testing.T) {
	testHome(t)

	if _, err := SaveCollection("orders-api", sampleCollection("Orders API")); err != nil {
		t.Fatalf("SaveCollection: %v", err)
	}

	name, err := CloneRequest("orders-api", "Get Things")
	if err != nil {
		t.Fatalf("CloneRequest: %v", err)
	}
	if !strings.HasPrefix(name, "Get Things (Copy ") {
		t.Errorf("unexpected clone name: %q", name)
	}

	collection, err := LoadCollection("orders-api")
	if err != nil {
		t.Fatalf("LoadCollection: %v", err)
	}
	items := postman.Items(collection)
	if len(items) != 2 {
		t.Fatalf("clone must be appended at root, got %d items", len(items))
	}

	if _, err := CloneRequest("orders-api", "Missing"); !errors.Is(err, postman.ErrNotFound) {
		t.Errorf("unknown request should be ErrNotFound, got %v", err)
	}
}

func TestEnvironmentLifecycle(t *testing.T) {
	testHome(t)

	env := map[string]any{
		"id":     "e1",
		"name":   "Orders API - QA",
		"values": []any{},
		"_postman_variable_scope": "environment",
	}
	path, err := SaveEnvironment("orders-api", "QA", env)
	if err != nil {
		t.Fatalf("SaveEnvironment: %v", err)
	}
	if !strings.HasSuffix(path, "orders-api/orders-api-QA.postman_environment.json") {
		t.Errorf("unexpected environment path: %s", path)
	}

	environments, err := ListEnvironments()
	if err != nil {
		t.Fatalf("ListEnvironments: %v", err)
	}
	if len(environments) != 1 || environments[0].API != "orders-api" {
		t.Fatalf("unexpected listing: %+v", environments)
	}

	loaded, err := LoadEnvironment("QA")
	if err != nil {
		t.Fatalf("environment should match by suffix: %v", err)
	}
	if loaded["name"] != "Orders API - QA" {
		t.Errorf("unexpected environment data: %v", loaded)
	}

	if err := DeleteEnvironment("orders-api-QA"); err != nil {
		t.Fatalf("DeleteEnvironment: %v", err)
	}
	if _, err := FindEnvironment("orders-api-QA"); !errors.Is(err, postman.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSpecSaveAndFind(t *testing.T) {
	testHome(t)

	if _, err := SaveSpec("petstore.yaml", []byte("openapi: 3.0.0\n")); err != nil {
		t.Fatalf("SaveSpec: %v", err)
	}

	path, err := FindSpec("petstore")
	if err != nil {
		t.Fatalf("FindSpec without extension: %v", err)
	}
	if !strings.HasSuffix(path, "petstore.yaml") {
		t.Errorf("unexpected spec path: %s", path)
	}

	if _, err := FindSpec("missing"); !errors.Is(err, postman.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	specs, err := ListSpecs()
	if err != nil {
		t.Fatalf("ListSpecs: %v", err)
	}
	if len(specs) != 1 || specs[0] != "petstore.yaml" {
		t.Errorf("unexpected spec listing: %v", specs)
	}
}

func TestSanitizeID(t *testing.T) {
	if got := SanitizeID(`../evil\name?`); got != "..evilname" {
		t.Errorf("SanitizeID = %q", got)
	}
}
