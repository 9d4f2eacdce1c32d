package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swagforge/swagforge-cli/internal/core/filter"
	"github.com/swagforge/swagforge-cli/internal/core/postman"
	"github.com/swagforge/swagforge-cli/internal/infra/storage"
)

var (
	filterResponseFile  string
	filterObjectType    string
	filterAllConditions bool
	filterConditions    []string
	filterAttributes    []string
	filterMappings      []string
)

var filterCmd = &cobra.Command{
	Use:   "filter <collection-id> <request-name> <method>",
	Short: "Generate filter-test requests from a response's attributes",
	Long: `Filter extracts attributes from the target request's saved response
(or a response file given with --response), generates one request per
attribute/condition pair and installs them as a "<request name> Filtering"
folder next to the target request. GET, HEAD and DELETE variants carry the
filter as query parameters, other methods as fields merged into the JSON
body.

Conditions default to the master-data list per attribute type; --conditions
narrows them per attribute and --all-conditions generates every pair.`,
	Args: cobra.ExactArgs(3),
	Run:  runFilter,
}

func init() {
	filterCmd.Flags().StringVar(&filterResponseFile, "response", "", "Path to a response body JSON file (default: the request's saved response)")
	filterCmd.Flags().StringVar(&filterObjectType, "object-type", "", "Object type name stamped into generated bodies")
	filterCmd.Flags().BoolVar(&filterAllConditions, "all-conditions", false, "Generate every condition for every attribute")
	filterCmd.Flags().StringArrayVar(&filterConditions, "conditions", nil, "Conditions per attribute, e.g. 'status=EQ,NEQ' (repeatable)")
	filterCmd.Flags().StringArrayVar(&filterAttributes, "attributes", nil, "Extra attributes as 'name:type', e.g. 'score:integer' (repeatable)")
	filterCmd.Flags().StringArrayVar(&filterMappings, "map", nil, "Response-to-request field mapping 'responseAttr=requestField' (repeatable)")
}

func runFilter(cmd *cobra.Command, args []string) {
	id, requestName, method := args[0], args[1], args[2]

	collection, err := storage.LoadCollection(id)
	if err != nil {
		fail("failed to load collection", err)
	}

	responseBody := loadResponseBody(collection, requestName, method)

	params := filter.Params{
		RequestName:        requestName,
		RequestMethod:      method,
		ObjectType:         filterObjectType,
		GenerateAll:        filterAllConditions,
		SelectedConditions: parseSelectedConditions(filterConditions),
		Mappings:           parseMappings(filterMappings),
		CustomAttributes:   parseCustomAttributes(filterAttributes),
	}

	generator := &filter.Generator{Conditions: loadMasterData()}
	count, err := generator.Apply(collection, params, responseBody)
	if err != nil {
		fail("filter generation failed", err)
	}

	path, err := storage.SaveCollection(id, collection)
	if err != nil {
		fail("failed to save collection", err)
	}

	fmt.Printf("✓ Generated %d filtered requests for '%s'\n", count, requestName)
	fmt.Printf("  %s\n", path)
}

// loadResponseBody resolves the response JSON the attributes come from: the
// --response file when given, else the first saved response on the target
// request.
func loadResponseBody(collection map[string]any, requestName, method string) string {
	if filterResponseFile != "" {
		data, err := os.ReadFile(filterResponseFile)
		if err != nil {
			fail("failed to read response file", err)
		}
		return string(data)
	}

	body := savedResponseBody(postman.Items(collection), requestName, method)
	if body == "" {
		fail(fmt.Sprintf("request %q (%s) has no saved response; provide one with --response", requestName, method), nil)
	}
	return body
}

func savedResponseBody(items []any, requestName, method string) string {
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if postman.IsFolder(item) {
			if body := savedResponseBody(postman.ItemChildren(item), requestName, method); body != "" {
				return body
			}
			continue
		}
		if postman.ItemName(item) != requestName || !strings.EqualFold(postman.ItemMethod(item), method) {
			continue
		}
		responses, _ := item["response"].([]any)
		for _, rawResponse := range responses {
			response, ok := rawResponse.(map[string]any)
			if !ok {
				continue
			}
			if body, ok := response["body"].(string); ok && body != "" {
				return body
			}
		}
	}
	return ""
}

func parseSelectedConditions(entries []string) map[string][]string {
	if len(entries) == 0 {
		return nil
	}
	selected := make(map[string][]string)
	for _, entry := range entries {
		attr, conditions, ok := strings.Cut(entry, "=")
		if !ok || attr == "" {
			fail(fmt.Sprintf("invalid --conditions entry %q (expected 'attribute=COND,COND')", entry), nil)
		}
		selected[attr] = splitList(conditions)
	}
	return selected
}

func parseCustomAttributes(entries []string) map[string]filter.Attribute {
	if len(entries) == 0 {
		return nil
	}
	attrs := make(map[string]filter.Attribute)
	for _, entry := range entries {
		name, dataType, ok := strings.Cut(entry, ":")
		if !ok || name == "" {
			fail(fmt.Sprintf("invalid --attributes entry %q (expected 'name:type')", entry), nil)
		}
		attrs[name] = filter.Attribute{"name": name, "type": dataType}
	}
	return attrs
}

func parseMappings(entries []string) []filter.Mapping {
	var mappings []filter.Mapping
	for _, entry := range entries {
		source, target, ok := strings.Cut(entry, "=")
		if !ok || source == "" || target == "" {
			fail(fmt.Sprintf("invalid --map entry %q (expected 'responseAttr=requestField')", entry), nil)
		}
		mappings = append(mappings, filter.Mapping{ResponseAttribute: source, RequestField: target})
	}
	return mappings
}
