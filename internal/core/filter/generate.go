package filter

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/swagforge/swagforge-cli/internal/core/postman"
	"github.com/swagforge/swagforge-cli/internal/infra/logger"
)

// Mapping routes a response attribute into a request field, legacy flavor.
type Mapping struct {
	ResponseAttribute string `json:"responseAttribute"`
	RequestField      string `json:"requestField"`
}

// BodyMapping describes how one request field is filled per generated
// variant. Mode is one of response, manual, special or none.
type BodyMapping struct {
	Mode     string `json:"mode"`
	Source   string `json:"source"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Params selects the target request and the generation strategy. Exactly one
// strategy applies, checked in order: attribute-condition iteration (when
// GenerateAll is set or SelectedConditions is non-empty), the deprecated
// legacy Filters list, or a single mapped clone.
type Params struct {
	RequestName        string
	RequestMethod      string
	ObjectType         string
	GenerateAll        bool
	SelectedConditions map[string][]string
	Filters            []Filter
	Mappings           []Mapping
	BodyMappings       map[string]BodyMapping
	CustomAttributes   map[string]Attribute
}

// Generator produces filtered request variants inside a collection tree.
type Generator struct {
	Conditions ConditionSource
}

// Apply generates the filtered requests for params and installs them as a
// "<request name> Filtering" folder next to the target request, replacing a
// preexisting folder of that name at its position. It returns the number of
// generated requests. The collection is mutated in place.
func (g *Generator) Apply(collection map[string]any, params Params, responseBody string) (int, error) {
	if collection == nil {
		return 0, postman.ErrInvalidCollection
	}
	target, owner := findRequestOwner(collection, params.RequestName, params.RequestMethod)
	if target == nil {
		return 0, fmt.Errorf("request %q (%s): %w", params.RequestName, params.RequestMethod, postman.ErrNotFound)
	}

	attrs := Extract(responseBody)
	mergeCustomAttributes(attrs, params.CustomAttributes)

	objectType := params.ObjectType
	if objectType == "" {
		objectType = "Object"
	}

	var generated []any
	switch {
	case params.GenerateAll || len(params.SelectedConditions) > 0:
		for _, path := range attrs.Paths() {
			attr, _ := attrs.Get(path)
			for _, condition := range g.attributeConditions(path, attr, params.SelectedConditions) {
				generated = append(generated, g.fromAttribute(target, path, attr, condition, objectType, params.BodyMappings, attrs))
			}
		}
	case len(params.Filters) > 0:
		logger.Warn("legacy filter list is deprecated, applying unified field mapping without query key mangling",
			logger.String("request", params.RequestName))
		flat := ExtractFlat(responseBody)
		for _, f := range params.Filters {
			generated = append(generated, legacyClone(target, f, params.Mappings, flat))
		}
	default:
		generated = append(generated, mappedClone(target, params.Mappings, ExtractFlat(responseBody)))
	}

	if len(generated) == 0 {
		return 0, fmt.Errorf("no filtered requests generated for %q", params.RequestName)
	}

	folderName := params.RequestName + " Filtering"
	installFolder(owner, folderName, generated)
	ensureCollectionShape(collection)
	return len(generated), nil
}

func (g *Generator) attributeConditions(path string, attr Attribute, selected map[string][]string) []string {
	if conditions, ok := selected[path]; ok {
		return conditions
	}
	return g.conditionsFor(attrType(attr))
}

func (g *Generator) conditionsFor(dataType string) []string {
	if g.Conditions != nil {
		if conditions := g.Conditions.ConditionsForType(dataType); len(conditions) > 0 {
			return conditions
		}
	}
	return DefaultConditions(dataType)
}

// fromAttribute builds one variant for an attribute-condition pair. Field
// values come from the body mappings when provided, else from the default
// filter field set.
func (g *Generator) fromAttribute(original map[string]any, attrName string, attr Attribute, condition, objectType string, bodyMappings map[string]BodyMapping, attrs *Set) map[string]any {
	clone := prepareClone(original, fmt.Sprintf("%s_%s_%s",
		itemName(original), attrName, strings.ReplaceAll(condition, " ", "_")))

	request := requestObject(clone)
	ensureURL(request)

	fields := resolveFields(attrName, attrType(attr), condition, objectType, bodyMappings, attrs)

	if isQueryMethod(request) {
		for _, f := range fields {
			upsertQuery(request, f.key, fmt.Sprint(f.value))
		}
	} else if bodyMappings != nil {
		mergeBodyFields(request, fields)
	} else {
		replaceBody(request, fields)
	}

	ensureHeaders(request)
	return clone
}

type fieldValue struct {
	key   string
	value any
}

// resolveFields computes the per-variant field values. With no body mappings
// the default filter field set is used.
func resolveFields(attrName, dataType, condition, objectType string, bodyMappings map[string]BodyMapping, attrs *Set) []fieldValue {
	if bodyMappings == nil {
		return []fieldValue{
			{"attributeName", attrName},
			{"objectType", objectType},
			{"dataType", dataType},
			{"condition", condition},
			{"attributeValue", "{{attributeValue}}"},
		}
	}

	keys := make([]string, 0, len(bodyMappings))
	for key := range bodyMappings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var fields []fieldValue
	for _, key := range keys {
		mapping := bodyMappings[key]
		if mapping.Disabled {
			continue
		}
		switch mapping.Mode {
		case "response":
			value := attrs.Value(mapping.Source)
			if value == nil {
				if attr, ok := attrs.Get(mapping.Source); ok {
					value = attr["default"]
				}
			}
			if value == nil {
				value = ""
			}
			fields = append(fields, fieldValue{key, value})
		case "manual":
			fields = append(fields, fieldValue{key, mapping.Value})
		case "special":
			switch mapping.Source {
			case "attributeName":
				fields = append(fields, fieldValue{key, attrName})
			case "objectType":
				fields = append(fields, fieldValue{key, objectType})
			case "dataType":
				fields = append(fields, fieldValue{key, dataType})
			case "condition":
				fields = append(fields, fieldValue{key, condition})
			case "attributeValue":
				fields = append(fields, fieldValue{key, "{{attributeValue}}"})
			}
		}
	}
	return fields
}

// legacyClone applies the deprecated flat-filter flavor through the unified
// mapping helpers. The old query key mangling for NEQ and Contains is gone;
// the condition lands as a plain key/value pair.
func legacyClone(original map[string]any, f Filter, mappings []Mapping, flat *Set) map[string]any {
	suffix := strings.ReplaceAll(fmt.Sprintf("%s_%s_%s", f.Attribute, f.Condition, f.Value), " ", "_")
	clone := prepareClone(original, fmt.Sprintf("%s_%s", itemName(original), suffix))

	request := requestObject(clone)
	ensureURL(request)
	applyMappings(request, mappings, flat)

	if isQueryMethod(request) {
		upsertQuery(request, f.Attribute, f.Value)
	} else {
		mergeBodyFields(request, []fieldValue{{f.Attribute, f.Value}})
	}
	return clone
}

// mappedClone is the fallback when neither conditions nor filters are given:
// a single clone with only the mappings applied.
func mappedClone(original map[string]any, mappings []Mapping, flat *Set) map[string]any {
	clone := prepareClone(original, itemName(original)+"_Mapped")
	request := requestObject(clone)
	ensureURL(request)
	applyMappings(request, mappings, flat)
	return clone
}

func applyMappings(request map[string]any, mappings []Mapping, flat *Set) {
	for _, m := range mappings {
		value := flat.Value(m.ResponseAttribute)
		if value == nil {
			continue
		}
		if isQueryMethod(request) {
			upsertQuery(request, m.RequestField, fmt.Sprint(value))
		} else {
			mergeBodyFields(request, []fieldValue{{m.RequestField, value}})
		}
	}
}

func mergeCustomAttributes(attrs *Set, custom map[string]Attribute) {
	names := make([]string, 0, len(custom))
	for name := range custom {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		meta := custom[name]
		attrs.Put(name, Attribute{
			"name":     stringField(meta, "name", name),
			"type":     stringField(meta, "type", "string"),
			"nullable": boolField(meta, "nullable"),
			"required": false,
			"path":     name,
		})
	}
}

func stringField(attr Attribute, key, fallback string) string {
	if s, ok := attr[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func boolField(attr Attribute, key string) bool {
	b, _ := attr[key].(bool)
	return b
}

// prepareClone deep-copies an item, renames it and strips the fields that
// must not appear on a generated request.
func prepareClone(original map[string]any, name string) map[string]any {
	clone := postman.CloneItem(original)
	clone["name"] = name
	delete(clone, "_postman_id")
	delete(clone, "response")
	delete(clone, "item")
	if _, ok := clone["request"].(map[string]any); !ok {
		clone["request"] = map[string]any{}
	}
	return clone
}

func itemName(item map[string]any) string {
	if name, ok := item["name"].(string); ok && name != "" {
		return name
	}
	return "Request"
}

func requestObject(item map[string]any) map[string]any {
	request, _ := item["request"].(map[string]any)
	return request
}

func isQueryMethod(request map[string]any) bool {
	method, _ := request["method"].(string)
	switch strings.ToUpper(method) {
	case "GET", "HEAD", "DELETE":
		return true
	}
	return false
}

// ensureURL normalizes the request URL object: raw reconstructed from the
// parts when missing, host/path/query guaranteed to be lists.
func ensureURL(request map[string]any) {
	url, ok := request["url"].(map[string]any)
	if !ok {
		url = map[string]any{"raw": "", "host": []any{}, "path": []any{}, "query": []any{}}
		request["url"] = url
		return
	}
	for _, key := range []string{"host", "path", "query"} {
		if _, ok := url[key].([]any); !ok {
			url[key] = []any{}
		}
	}
	if _, ok := url["raw"].(string); !ok {
		url["raw"] = reconstructRaw(url)
	}
}

func reconstructRaw(url map[string]any) string {
	join := func(parts []any) []string {
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if s, ok := p.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}

	segments := append(join(url["host"].([]any)), join(url["path"].([]any))...)
	raw := strings.Join(segments, "/")

	var pairs []string
	for _, q := range url["query"].([]any) {
		entry, ok := q.(map[string]any)
		if !ok {
			continue
		}
		key, _ := entry["key"].(string)
		if key == "" {
			continue
		}
		value, _ := entry["value"].(string)
		pairs = append(pairs, key+"="+value)
	}
	if len(pairs) > 0 {
		raw += "?" + strings.Join(pairs, "&")
	}
	if raw == "" {
		raw = "{{baseUrl}}"
	}
	return raw
}

func ensureHeaders(request map[string]any) {
	if _, ok := request["header"].([]any); !ok {
		request["header"] = []any{}
	}
}

func upsertQuery(request map[string]any, key, value string) {
	url := request["url"].(map[string]any)
	query := url["query"].([]any)
	for _, q := range query {
		entry, ok := q.(map[string]any)
		if !ok {
			continue
		}
		if entry["key"] == key {
			entry["value"] = value
			return
		}
	}
	url["query"] = append(query, map[string]any{
		"key":   key,
		"value": value,
		"type":  "string",
	})
}

// mergeBodyFields merges field values into the raw JSON body, dotted-path
// aware, creating the body when absent. An unparseable existing body is
// replaced by the mapped fields alone.
func mergeBodyFields(request map[string]any, fields []fieldValue) {
	body := ensureBody(request)

	data := map[string]any{}
	if raw, ok := body["raw"].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			data = map[string]any{}
		}
	}
	for _, f := range fields {
		setNested(data, f.key, f.value)
	}
	body["raw"] = postman.JSONString(data)
}

// replaceBody overwrites the raw body with exactly the given fields.
func replaceBody(request map[string]any, fields []fieldValue) {
	body := ensureBody(request)
	data := map[string]any{}
	for _, f := range fields {
		setNested(data, f.key, f.value)
	}
	body["raw"] = postman.JSONString(data)
}

func ensureBody(request map[string]any) map[string]any {
	if body, ok := request["body"].(map[string]any); ok {
		return body
	}
	body := map[string]any{
		"mode": "raw",
		"raw":  "{}",
		"options": map[string]any{
			"raw": map[string]any{"language": "json"},
		},
	}
	request["body"] = body
	return body
}

func setNested(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// findRequestOwner locates a request by name and method, depth first, and
// returns it together with the map whose "item" list contains it. The owner
// is the collection itself for root-level requests.
func findRequestOwner(owner map[string]any, name, method string) (map[string]any, map[string]any) {
	items, _ := owner["item"].([]any)
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if _, isFolder := item["item"].([]any); isFolder {
			if found, foundOwner := findRequestOwner(item, name, method); found != nil {
				return found, foundOwner
			}
			continue
		}
		if item["name"] == name && strings.EqualFold(postman.ItemMethod(item), method) {
			return item, owner
		}
	}
	return nil, nil
}

// installFolder places the generated folder into the owner's item list,
// replacing a same-named folder at its existing position, else appending.
func installFolder(owner map[string]any, name string, generated []any) {
	folder := map[string]any{"name": name, "item": generated}
	items, _ := owner["item"].([]any)
	for i, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if _, isFolder := item["item"].([]any); isFolder && item["name"] == name {
			items[i] = folder
			owner["item"] = items
			return
		}
	}
	owner["item"] = append(items, folder)
}

func ensureCollectionShape(collection map[string]any) {
	info, ok := collection["info"].(map[string]any)
	if !ok {
		info = map[string]any{}
		collection["info"] = info
	}
	if _, ok := info["_postman_id"].(string); !ok {
		info["_postman_id"] = uuid.NewString()
	}
	if _, ok := collection["variable"].([]any); !ok {
		collection["variable"] = []any{}
	}
}
