package convert

import (
	"strings"
	"testing"
	"time"

	"github.com/swagforge/swagforge-cli/internal/core/openapi"
	"github.com/swagforge/swagforge-cli/internal/core/postman"
	"github.com/swagforge/swagforge-cli/internal/core/security"
)

func fixtureDoc() openapi.Document {
	return openapi.Document{
		"openapi": "3.0.0",
		"info": map[string]any{
			"title":       "Orders API",
			"description": "Order management",
			"version":     "1.0.0",
		},
		"servers": []any{
			map[string]any{"url": "https://api.orders.example/v1"},
		},
		"paths": map[string]any{
			"/orders": map[string]any{
				"get": map[string]any{
					"summary": "List Orders",
					"parameters": []any{
						map[string]any{
							"name": "page", "in": "query",
							"schema": map[string]any{"type": "integer", "default": 1},
						},
						map[string]any{
							"name": "q", "in": "query",
							"schema": map[string]any{"type": "string"},
						},
						map[string]any{
							"name": "X-Trace", "in": "header",
							"schema": map[string]any{"type": "string", "default": "abc"},
						},
					},
					"responses": map[string]any{
						"200": map[string]any{
							"description": "Success",
							"content": map[string]any{
								"application/json": map[string]any{
									"example": map[string]any{"total": 2},
								},
							},
						},
					},
				},
				"post": map[string]any{
					"summary": "Create Order",
					"requestBody": map[string]any{
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{"$ref": "#/components/schemas/Order"},
							},
						},
					},
					"responses": map[string]any{
						"201": map[string]any{"description": "Created"},
						"4XX": map[string]any{"description": "Client Error"},
					},
				},
			},
			"/orders/{orderId}": map[string]any{
				"get": map[string]any{
					"operationId": "get_order",
					"parameters": []any{
						map[string]any{
							"name": "orderId", "in": "path", "required": true,
							"schema": map[string]any{"type": "string"},
						},
					},
					"responses": map[string]any{
						"200": map[string]any{"description": "Success"},
					},
				},
			},
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"Order": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"customer": map[string]any{"type": "string"},
						"total":    map[string]any{"type": "number", "example": 9.5},
					},
				},
			},
		},
	}
}

func frozenClock() time.Time {
	return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
}

func mustConvert(t *testing.T, opts Options) *Result {
	t.Helper()
	opts.Now = frozenClock
	result, err := Convert(fixtureDoc(), opts)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	return result
}

func itemAt(t *testing.T, result *Result, index int) map[string]any {
	t.Helper()
	items := postman.Items(result.Collection)
	if index >= len(items) {
		t.Fatalf("expected at least %d items, got %d", index+1, len(items))
	}
	item, _ := items[index].(map[string]any)
	return item
}

func requestOf(t *testing.T, item map[string]any) map[string]any {
	t.Helper()
	request, _ := item["request"].(map[string]any)
	if request == nil {
		t.Fatalf("item %q has no request", item["name"])
	}
	return request
}

func TestConvertCollectionShape(t *testing.T) {
	result := mustConvert(t, Options{})

	if result.APIName != "Orders API" || result.CollectionID != "orders-api" {
		t.Errorf("unexpected identity: %q / %q", result.APIName, result.CollectionID)
	}

	info, _ := result.Collection["info"].(map[string]any)
	if info["name"] != "Orders API" || info["schema"] != postman.SchemaV21 {
		t.Errorf("unexpected info: %v", info)
	}
	if id, _ := info["_postman_id"].(string); id == "" {
		t.Error("collection must carry a _postman_id")
	}

	items := postman.Items(result.Collection)
	if len(items) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(items))
	}
	names := []string{
		postman.ItemName(items[0].(map[string]any)),
		postman.ItemName(items[1].(map[string]any)),
		postman.ItemName(items[2].(map[string]any)),
	}
	want := []string{"List Orders", "Create Order", "get_order"}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("item %d: got %q, want %q", i, names[i], name)
		}
	}
}

func TestConvertBaseURLVariable(t *testing.T) {
	result := mustConvert(t, Options{})

	vars, _ := result.Collection["variable"].([]any)
	if len(vars) != 1 {
		t.Fatalf("expected one collection variable, got %d", len(vars))
	}
	baseVar, _ := vars[0].(map[string]any)
	if baseVar["key"] != "baseUrl" || baseVar["value"] != "https://api.orders.example" {
		t.Errorf("baseUrl variable must hold the domain only: %v", baseVar)
	}

	request := requestOf(t, itemAt(t, result, 0))
	url, _ := request["url"].(map[string]any)
	if url["raw"] != "{{baseUrl}}/v1/orders" {
		t.Errorf("server path must survive after the variable: %v", url["raw"])
	}
}

func TestConvertParameters(t *testing.T) {
	result := mustConvert(t, Options{})
	request := requestOf(t, itemAt(t, result, 0))

	url, _ := request["url"].(map[string]any)
	query, _ := url["query"].([]any)
	if len(query) != 2 {
		t.Fatalf("expected 2 query params, got %d", len(query))
	}
	page, _ := query[0].(map[string]any)
	if page["key"] != "page" || page["value"] != "{{page}}" {
		t.Errorf("defaulted param must reference a variable: %v", page)
	}
	q, _ := query[1].(map[string]any)
	if q["key"] != "q" || q["value"] != "" {
		t.Errorf("param without default must stay empty: %v", q)
	}

	headers, _ := request["header"].([]any)
	if len(headers) != 1 {
		t.Fatalf("expected 1 header, got %d", len(headers))
	}
	trace, _ := headers[0].(map[string]any)
	if trace["key"] != "X-Trace" || trace["value"] != "{{X-Trace}}" {
		t.Errorf("unexpected header param: %v", trace)
	}
}

func TestConvertPathParameters(t *testing.T) {
	result := mustConvert(t, Options{})
	request := requestOf(t, itemAt(t, result, 2))

	url, _ := request["url"].(map[string]any)
	if url["raw"] != "{{baseUrl}}/v1/orders/{{orderId}}" {
		t.Errorf("path param must become a variable reference: %v", url["raw"])
	}
}

func TestConvertJSONBodyFromSchema(t *testing.T) {
	result := mustConvert(t, Options{})
	request := requestOf(t, itemAt(t, result, 1))

	body, _ := request["body"].(map[string]any)
	if body == nil || body["mode"] != "raw" {
		t.Fatalf("expected raw body: %v", body)
	}
	raw, _ := body["raw"].(string)
	if !strings.Contains(raw, `"customer": "{{customer}}"`) {
		t.Errorf("schema string must synthesize a variable reference: %s", raw)
	}
	if !strings.Contains(raw, `"total": 9.5`) {
		t.Errorf("property example must win: %s", raw)
	}
	options, _ := body["options"].(map[string]any)
	rawOpts, _ := options["raw"].(map[string]any)
	if rawOpts["language"] != "json" {
		t.Errorf("json body must carry the json language hint: %v", options)
	}
}

func TestConvertFormBody(t *testing.T) {
	doc := fixtureDoc()
	paths := doc.Paths()
	orders := paths["/orders"].(map[string]any)
	post := orders["post"].(map[string]any)
	post["requestBody"] = map[string]any{
		"content": map[string]any{
			"application/x-www-form-urlencoded": map[string]any{
				"schema": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":  map[string]any{"type": "string"},
						"count": map[string]any{"type": "integer", "default": 3},
					},
				},
			},
		},
	}

	result, err := Convert(doc, Options{Now: frozenClock})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	request := requestOf(t, itemAt(t, result, 1))
	body, _ := request["body"].(map[string]any)
	if body["mode"] != "urlencoded" {
		t.Fatalf("form content must be urlencoded: %v", body)
	}
	fields, _ := body["urlencoded"].([]any)
	if len(fields) != 2 {
		t.Fatalf("expected 2 form fields, got %d", len(fields))
	}
	count, _ := fields[0].(map[string]any)
	if count["key"] != "count" || count["value"] != "3" {
		t.Errorf("form values must be strings: %v", count)
	}
}

func TestConvertResponses(t *testing.T) {
	result := mustConvert(t, Options{})

	item := itemAt(t, result, 1)
	responses, _ := item["response"].([]any)
	if len(responses) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(responses))
	}

	created, _ := responses[0].(map[string]any)
	if created["name"] != "201 Created" || created["status"] != "201" || created["code"] != 201 {
		t.Errorf("unexpected numeric response: %v", created)
	}
	original, _ := created["originalRequest"].(map[string]any)
	if original["method"] != "POST" {
		t.Errorf("original request must carry the method: %v", original)
	}
	if _, hasBody := original["body"]; !hasBody {
		t.Error("original request must carry the request body")
	}

	clientErr, _ := responses[1].(map[string]any)
	if clientErr["name"] != "4XX Client Error" || clientErr["status"] != "Bad Request" || clientErr["code"] != 400 {
		t.Errorf("range key must map to a representative status: %v", clientErr)
	}
}

func TestConvertResponseExampleBody(t *testing.T) {
	result := mustConvert(t, Options{})

	item := itemAt(t, result, 0)
	responses, _ := item["response"].([]any)
	if len(responses) != 1 {
		t.Fatalf("expected 1 response, got %d", len(responses))
	}
	success, _ := responses[0].(map[string]any)
	if success["body"] != postman.JSONString(map[string]any{"total": 2}) {
		t.Errorf("response example must be serialized: %v", success["body"])
	}
	headers, _ := success["header"].([]any)
	if len(headers) != 1 {
		t.Fatalf("expected a Content-Type header, got %v", headers)
	}
	ct, _ := headers[0].(map[string]any)
	if ct["key"] != "Content-Type" || ct["value"] != "application/json" {
		t.Errorf("unexpected response header: %v", ct)
	}
}

func TestConvertGlobalHeaders(t *testing.T) {
	result := mustConvert(t, Options{
		GlobalHeaders: []Header{
			{Key: "X-Trace", Value: "{{traceId}}", Description: "trace id"},
			{Key: "X-Api-Key", Value: "{{apiKey}}"},
		},
	})
	request := requestOf(t, itemAt(t, result, 0))

	headers, _ := request["header"].([]any)
	if len(headers) != 2 {
		t.Fatalf("expected 2 headers, got %d", len(headers))
	}
	trace, _ := headers[0].(map[string]any)
	if trace["value"] != "{{traceId}}" {
		t.Errorf("global header must win over the parameter: %v", trace)
	}
	apiKey, _ := headers[1].(map[string]any)
	if apiKey["key"] != "X-Api-Key" {
		t.Errorf("unexpected second header: %v", apiKey)
	}
}

func TestConvertAuth(t *testing.T) {
	result := mustConvert(t, Options{
		AuthType:   "bearer",
		AuthValues: map[string]string{"token": "{{token}}"},
	})

	collectionAuth, _ := result.Collection["auth"].(map[string]any)
	if collectionAuth["type"] != "bearer" {
		t.Errorf("collection auth missing: %v", collectionAuth)
	}
	request := requestOf(t, itemAt(t, result, 0))
	requestAuth, _ := request["auth"].(map[string]any)
	if requestAuth["type"] != "bearer" {
		t.Errorf("request auth missing: %v", requestAuth)
	}
}

type stubScripts struct {
	prerequest []string
	test       []string
	gotCodes   []int
}

func (s *stubScripts) ScriptsForStatusCodes(codes []int) ([]string, []string) {
	s.gotCodes = codes
	return s.prerequest, s.test
}

func TestConvertStatusScriptEvents(t *testing.T) {
	scripts := &stubScripts{test: []string{"pm.test('ok', function () {});"}}
	result := mustConvert(t, Options{Scripts: scripts})

	item := itemAt(t, result, 1)
	events, _ := item["event"].([]any)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	event, _ := events[0].(map[string]any)
	if event["listen"] != "test" {
		t.Errorf("unexpected event: %v", event)
	}
}

func TestConvertInjectionFolders(t *testing.T) {
	result := mustConvert(t, Options{
		Injections: security.Selected(true, true, false),
	})

	item := itemAt(t, result, 1)
	if !postman.IsFolder(item) || postman.ItemName(item) != "Create Order" {
		t.Fatalf("injection mode must wrap each request in a folder: %v", item["name"])
	}
	children := postman.ItemChildren(item)
	if len(children) != 3 {
		t.Fatalf("expected original + 2 injection folders, got %d", len(children))
	}
	original, _ := children[0].(map[string]any)
	if !postman.IsRequest(original) || postman.ItemName(original) != "Create Order" {
		t.Errorf("first child must be the original request: %v", original["name"])
	}
	xss, _ := children[1].(map[string]any)
	if postman.ItemName(xss) != "XSS-Injections" {
		t.Errorf("unexpected folder order: %v", xss["name"])
	}
	variants := postman.ItemChildren(xss)
	if len(variants) != 1 {
		t.Fatalf("one string field must yield one variant, got %d", len(variants))
	}
	variant, _ := variants[0].(map[string]any)
	if postman.ItemName(variant) != "Create Order XSS-Injection customer" {
		t.Errorf("unexpected variant name: %v", variant["name"])
	}
}

func TestConvertLoginFolderFirst(t *testing.T) {
	login := []any{
		map[string]any{"name": "Obtain Token", "request": map[string]any{"method": "POST"}},
	}
	result := mustConvert(t, Options{LoginItems: login})

	first := itemAt(t, result, 0)
	if postman.ItemName(first) != "Login" {
		t.Fatalf("login folder must be first, got %q", postman.ItemName(first))
	}
	children := postman.ItemChildren(first)
	if len(children) != 1 {
		t.Fatalf("login folder must carry the stored items, got %d", len(children))
	}
}

func TestConvertStripsItemIDs(t *testing.T) {
	result := mustConvert(t, Options{})
	for _, raw := range postman.Items(result.Collection) {
		item, _ := raw.(map[string]any)
		if _, ok := item["_postman_id"]; ok {
			t.Errorf("item %q must not carry a _postman_id", item["name"])
		}
	}
}

func TestConvertVariables(t *testing.T) {
	result := mustConvert(t, Options{})

	got := map[string]bool{}
	for _, name := range result.Variables {
		got[name] = true
	}
	for _, want := range []string{"baseUrl", "page", "customer"} {
		if !got[want] {
			t.Errorf("variable %q missing from %v", want, result.Variables)
		}
	}
}

func TestConvertRejectsUnnameableAPI(t *testing.T) {
	doc := openapi.Document{
		"openapi": "3.0.0",
		"info":    map[string]any{"title": "!!!"},
		"paths":   map[string]any{},
	}
	if _, err := Convert(doc, Options{Now: frozenClock}); err == nil {
		t.Error("an API name that sanitizes to nothing must be rejected")
	}
}
