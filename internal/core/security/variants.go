package security

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/swagforge/swagforge-cli/internal/core/postman"
	"github.com/swagforge/swagforge-cli/internal/infra/logger"
)

// InjectionResponse is the configured expected error for an injection class.
type InjectionResponse struct {
	StatusCode int
	Message    string
}

// ScriptSource supplies pre-request/test script lines for a set of response
// status codes.
type ScriptSource interface {
	ScriptsForStatusCodes(codes []int) (prerequest, test []string)
}

// ResponseSource supplies the configured injection response for a class, nil
// when none is configured.
type ResponseSource interface {
	ResponseForInjectionType(classID string) *InjectionResponse
}

// RequestTemplate is the request being expanded into variants.
type RequestTemplate struct {
	Name      string
	Method    string
	URL       string
	Headers   []any
	Query     []any
	Body      map[string]any
	Auth      map[string]any
	Responses []any
}

// Generator produces per-field injection variants. Scripts and Responses may
// be nil, in which case variants carry no scripts and no synthetic response.
type Generator struct {
	Scripts   ScriptSource
	Responses ResponseSource
}

// Folder builds the injection folder for one class: one variant request per
// string field of the template's raw JSON body. A missing or unparseable
// body yields an empty folder rather than an error.
func (g *Generator) Folder(class Class, tmpl RequestTemplate) map[string]any {
	folder := map[string]any{
		"name": class.FolderName,
		"item": []any{},
	}

	raw := rawBody(tmpl.Body)
	if raw == "" {
		return folder
	}
	var bodyData map[string]any
	if err := json.Unmarshal([]byte(raw), &bodyData); err != nil {
		// Degraded output beats aborting a whole conversion.
		logger.Debug("skipping injection variants for unparseable body",
			logger.String("request", tmpl.Name),
			logger.Err(err))
		return folder
	}

	fields := ExtractStringFields(raw)
	if len(fields) == 0 {
		return folder
	}

	payload := class.Payloads[0]
	injResponse := g.injectionResponse(class)
	prerequest, test := g.scriptsFor([]int{400})

	items := make([]any, 0, len(fields))
	for _, fieldPath := range fields {
		var variantBody map[string]any
		if err := json.Unmarshal([]byte(raw), &variantBody); err != nil {
			continue
		}
		SetNestedValue(variantBody, fieldPath, payload)
		variantRaw := postman.JSONString(variantBody)

		responses := append([]any{}, tmpl.Responses...)
		if injResponse != nil {
			responses = append(responses, g.syntheticResponse(tmpl, variantRaw, injResponse))
		}

		displayName := strings.ReplaceAll(fieldPath, ".", "-")
		request := map[string]any{
			"method": strings.ToUpper(tmpl.Method),
			"header": tmpl.Headers,
			"url": map[string]any{
				"raw":   tmpl.URL,
				"host":  postman.ParseHost(tmpl.URL),
				"path":  postman.ParsePath(tmpl.URL),
				"query": tmpl.Query,
			},
			"body": rawJSONBody(variantRaw),
		}
		if tmpl.Auth != nil {
			request["auth"] = tmpl.Auth
		}

		variant := map[string]any{
			"name":     fmt.Sprintf("%s %s %s", tmpl.Name, class.Tag, displayName),
			"request":  request,
			"response": responses,
		}

		testScripts := append([]string{}, test...)
		if injResponse != nil && injResponse.Message != "" {
			testScripts = append(testScripts, messageValidationScript(injResponse.Message)...)
		}
		if events := postman.ScriptEvents(prerequest, testScripts); len(events) > 0 {
			variant["event"] = events
		}

		items = append(items, variant)
	}

	folder["item"] = items
	return folder
}

// syntheticResponse is the expected 400-style response attached to every
// variant when an injection response is configured.
func (g *Generator) syntheticResponse(tmpl RequestTemplate, variantRaw string, resp *InjectionResponse) map[string]any {
	return map[string]any{
		"name": fmt.Sprintf("%d %s", resp.StatusCode, resp.Message),
		"originalRequest": map[string]any{
			"method": strings.ToUpper(tmpl.Method),
			"header": tmpl.Headers,
			"url": map[string]any{
				"raw":   tmpl.URL,
				"host":  postman.ParseHost(tmpl.URL),
				"path":  postman.ParsePath(tmpl.URL),
				"query": tmpl.Query,
			},
			"body": rawJSONBody(variantRaw),
		},
		"status": fmt.Sprintf("%d", resp.StatusCode),
		"code":   resp.StatusCode,
		"header": []any{
			map[string]any{
				"key":   "Content-Type",
				"value": "application/json",
				"type":  "text",
			},
		},
		"body": postman.JSONString(map[string]any{
			"error":      resp.Message,
			"statusCode": resp.StatusCode,
		}),
	}
}

func (g *Generator) injectionResponse(class Class) *InjectionResponse {
	if g.Responses == nil {
		return nil
	}
	return g.Responses.ResponseForInjectionType(class.ID)
}

func (g *Generator) scriptsFor(codes []int) (prerequest, test []string) {
	if g.Scripts == nil {
		return nil, nil
	}
	return g.Scripts.ScriptsForStatusCodes(codes)
}

// messageValidationScript asserts that the response body contains the
// configured error message. The message is escaped for embedding into the
// generated JavaScript source.
func messageValidationScript(message string) []string {
	escaped := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
	).Replace(message)

	return []string{
		fmt.Sprintf(`pm.test("Response should contain injection error message: %s", function () {`, escaped),
		"    const responseBody = pm.response.json();",
		fmt.Sprintf(`    pm.expect(responseBody.error || responseBody.message || JSON.stringify(responseBody)).to.include("%s");`, escaped),
		"});",
	}
}

func rawBody(body map[string]any) string {
	if body == nil {
		return ""
	}
	if mode, _ := body["mode"].(string); mode != "raw" {
		return ""
	}
	raw, _ := body["raw"].(string)
	return raw
}

func rawJSONBody(raw string) map[string]any {
	return map[string]any{
		"mode": "raw",
		"raw":  raw,
		"options": map[string]any{
			"raw": map[string]any{"language": "json"},
		},
	}
}
