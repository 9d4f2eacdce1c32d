// Package convert turns a parsed OpenAPI document into a Postman collection
// plus per-stage environment files. Master-data inputs (global headers,
// status scripts, injection responses, default values, the login collection)
// arrive through Options so the engine stays decoupled from the store.
package convert

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/swagforge/swagforge-cli/internal/core/auth"
	"github.com/swagforge/swagforge-cli/internal/core/openapi"
	"github.com/swagforge/swagforge-cli/internal/core/postman"
	"github.com/swagforge/swagforge-cli/internal/core/security"
	"github.com/swagforge/swagforge-cli/internal/core/variables"
)

// Header is one global header merged into every generated request.
type Header struct {
	Key         string
	Value       string
	Description string
}

// DefaultsSource resolves configured default values for environment
// variables, keyed by API name and stage.
type DefaultsSource interface {
	DefaultValues(apiName, environment string, variableNames []string) map[string]string
}

// Options controls one conversion run. Zero values mean: no auth, no
// injection folders, no environments, no master data.
type Options struct {
	AuthType      string
	AuthValues    map[string]string
	Injections    []security.Class
	Environments  []string
	GlobalHeaders []Header
	Scripts       security.ScriptSource
	Responses     security.ResponseSource
	Defaults      DefaultsSource
	LoginItems    []any
	Now           func() time.Time
}

// Result is the output of a conversion: the collection, the variables it
// references and the generated environment documents. Persisting the result
// is the caller's job.
type Result struct {
	APIName      string
	CollectionID string
	Collection   map[string]any
	Variables    []string
	Environments []EnvironmentFile
}

// EnvironmentFile is one generated Postman environment, named after its
// stage's display form.
type EnvironmentFile struct {
	Stage    string
	Display  string
	Document map[string]any
}

var domainPattern = regexp.MustCompile(`^(https?://[^/]+)`)

// methodOrder fixes the request order within a path; only these methods
// become requests.
var methodOrder = []string{"get", "post", "put", "patch", "delete", "head", "options"}

// Convert builds the collection and environment files for a document.
func Convert(doc openapi.Document, opts Options) (*Result, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	apiName := doc.APIName()
	collectionID := openapi.SanitizeName(apiName)
	if collectionID == "" {
		return nil, fmt.Errorf("api name %q sanitizes to an empty identifier", apiName)
	}

	info := doc.Info()
	description, _ := info["description"].(string)
	version, _ := info["version"].(string)

	provider := auth.FromConfig(opts.AuthType, opts.AuthValues)
	builder := postman.NewBuilder().SetInfo(apiName, description, version).SetAuth(provider)

	serverURL := "https://api.example.com"
	if servers := doc.Servers(); len(servers) > 0 {
		serverURL = servers[0]
	}
	baseURL := registerBaseURL(builder, serverURL)

	c := &converter{
		doc:      doc,
		opts:     opts,
		examples: &openapi.ExampleGenerator{Now: opts.Now},
	}
	if provider != nil {
		c.authBlock = provider.Block()
	}

	paths := doc.Paths()
	for _, path := range sortedKeys(paths) {
		pathItem, _ := paths[path].(map[string]any)
		for _, method := range methodOrder {
			operation, ok := pathItem[method].(map[string]any)
			if !ok {
				continue
			}
			c.addOperation(builder, baseURL, path, method, operation)
		}
	}

	collection := builder.Build()
	cleanItemIDs(postman.Items(collection))

	if len(opts.LoginItems) > 0 {
		items := postman.Items(collection)
		login := map[string]any{"name": "Login", "item": opts.LoginItems}
		collection["item"] = append([]any{login}, items...)
	}

	vars := variables.Extract(collection)

	return &Result{
		APIName:      apiName,
		CollectionID: collectionID,
		Collection:   collection,
		Variables:    vars,
		Environments: buildEnvironments(apiName, collectionID, serverURL, vars, opts),
	}, nil
}

// registerBaseURL splits the server URL into a baseUrl variable holding the
// scheme and host, and returns the request URL prefix. A server URL with a
// path keeps it after the variable reference.
func registerBaseURL(builder *postman.Builder, serverURL string) string {
	domain := domainPattern.FindString(serverURL)
	if domain == "" {
		builder.AddVariable("baseUrl", serverURL, "string")
		return "{{baseUrl}}"
	}
	builder.AddVariable("baseUrl", domain, "string")
	serverPath := strings.Trim(serverURL[len(domain):], "/")
	if serverPath == "" {
		return "{{baseUrl}}"
	}
	return "{{baseUrl}}/" + serverPath
}

type converter struct {
	doc       openapi.Document
	opts      Options
	examples  *openapi.ExampleGenerator
	authBlock map[string]any
}

func (c *converter) addOperation(builder *postman.Builder, baseURL, path, method string, operation map[string]any) {
	summary, _ := operation["summary"].(string)
	description, _ := operation["description"].(string)
	operationID, _ := operation["operationId"].(string)
	if operationID == "" {
		operationID = method + "_" + strings.Trim(strings.ReplaceAll(path, "/", "_"), "_")
	}
	requestName := summary
	if requestName == "" {
		requestName = operationID
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	fullURL := baseURL + path

	headers := c.globalHeaders()
	query := []any{}

	params, _ := operation["parameters"].([]any)
	for _, raw := range params {
		param, _ := raw.(map[string]any)
		name, _ := param["name"].(string)
		in, _ := param["in"].(string)
		schema, _ := param["schema"].(map[string]any)

		// A declared default signals the value is worth templating.
		value := ""
		if truthy(schema["default"]) {
			value = "{{" + name + "}}"
		}

		switch in {
		case "header":
			if !hasHeaderKey(headers, name) {
				headers = append(headers, map[string]any{
					"key":   name,
					"value": value,
					"type":  "string",
				})
			}
		case "query":
			query = append(query, map[string]any{
				"key":   name,
				"value": value,
				"type":  "string",
			})
		case "path":
			fullURL = strings.ReplaceAll(fullURL, "{"+name+"}", "{{"+name+"}}")
		}
	}

	body := c.requestBody(operation)
	responses := c.buildResponses(operation, method, fullURL, headers, query, body)

	prerequest, test := c.scriptsFor(responseStatusCodes(operation))
	events := postman.ScriptEvents(prerequest, test)

	if len(c.opts.Injections) > 0 {
		folderItems := []any{
			postman.BuildRequestItem(postman.RequestSpec{
				Name:      requestName,
				Method:    method,
				URL:       fullURL,
				Headers:   headers,
				Body:      body,
				Params:    query,
				Auth:      c.authBlock,
				Responses: responses,
				Events:    events,
			}),
		}

		generator := &security.Generator{Scripts: c.opts.Scripts, Responses: c.opts.Responses}
		tmpl := security.RequestTemplate{
			Name:      requestName,
			Method:    method,
			URL:       fullURL,
			Headers:   headers,
			Query:     query,
			Body:      body,
			Auth:      c.authBlock,
			Responses: responses,
		}
		for _, class := range c.opts.Injections {
			folderItems = append(folderItems, generator.Folder(class, tmpl))
		}

		builder.AddFolder(requestName, folderItems)
		return
	}

	builder.AddRequest(postman.RequestSpec{
		Name:        requestName,
		Method:      method,
		URL:         fullURL,
		Description: description,
		Headers:     headers,
		Body:        body,
		Params:      query,
		Auth:        c.authBlock,
		Responses:   responses,
		Events:      events,
	})
}

// globalHeaders renders the configured headers; operation parameters are
// merged after these, so global headers win on key conflicts.
func (c *converter) globalHeaders() []any {
	headers := []any{}
	for _, h := range c.opts.GlobalHeaders {
		if hasHeaderKey(headers, h.Key) {
			continue
		}
		headers = append(headers, map[string]any{
			"key":         h.Key,
			"value":       h.Value,
			"type":        "string",
			"description": h.Description,
		})
	}
	return headers
}

func (c *converter) scriptsFor(codes []int) (prerequest, test []string) {
	if c.opts.Scripts == nil || len(codes) == 0 {
		return nil, nil
	}
	return c.opts.Scripts.ScriptsForStatusCodes(codes)
}

// cleanItemIDs strips _postman_id from every item; only the collection
// itself carries one.
func cleanItemIDs(items []any) {
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		delete(item, "_postman_id")
		if children, ok := item["item"].([]any); ok {
			cleanItemIDs(children)
		}
	}
}

func hasHeaderKey(headers []any, key string) bool {
	for _, raw := range headers {
		if header, ok := raw.(map[string]any); ok && header["key"] == key {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalizeValue deep-copies a tree, rendering YAML-decoded timestamps as
// RFC 3339 strings so they serialize cleanly.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format(time.RFC3339)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeValue(val)
		}
		return out
	default:
		return v
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// truthy mirrors JSON emptiness: nil, false, zero numbers, empty strings,
// maps and slices all count as empty.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}
