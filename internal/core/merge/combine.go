package merge

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/swagforge/swagforge-cli/internal/core/postman"
)

// Source is one collection feeding a multi-collection combine.
type Source struct {
	Name      string
	Items     []any
	Variables []any
}

// Combine merges several collections into one. Requests are grouped by name
// (or by the per-request folder the conversion flow created), duplicates are
// renamed after their source collection, injection folders are re-attached
// to their request folder, and variables are unioned by key.
func Combine(name string, sources []Source) (map[string]any, error) {
	if len(sources) < 2 {
		return nil, fmt.Errorf("at least 2 collections are required for merging")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("merged collection name is required")
	}

	var allRequests []map[string]any
	var allInjectionFolders []map[string]any
	for _, source := range sources {
		requests, injections := extractRequests(source.Items, source.Name, "")
		allRequests = append(allRequests, requests...)
		allInjectionFolders = append(allInjectionFolders, injections...)
	}
	if len(allRequests) == 0 {
		return nil, fmt.Errorf("no requests found in selected collections")
	}

	grouped, order := groupRequestsByName(allRequests)
	folders := buildFolderStructure(grouped, order, allInjectionFolders)

	return map[string]any{
		"info": map[string]any{
			"name":         name,
			"description":  fmt.Sprintf("Merged collection from %d collections", len(sources)),
			"schema":       postman.SchemaV21,
			"_exporter_id": postman.ExporterID,
			"_postman_id":  uuid.NewString(),
		},
		"item":     folders,
		"variable": unionVariables(sources),
		"auth":     map[string]any{},
	}, nil
}

const (
	sourceCollectionKey = "_source_collection"
	parentFolderKey     = "_parent_folder"
)

// extractRequests walks a collection's items and returns every request plus
// every injection folder, each annotated with its source collection and the
// folder that held it.
func extractRequests(items []any, collectionName, parentFolder string) (requests []map[string]any, injectionFolders []map[string]any) {
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		if postman.IsRequest(item) {
			clone := postman.CloneItem(item)
			annotate(clone, collectionName, parentFolder)
			requests = append(requests, clone)
			continue
		}

		if !postman.IsFolder(item) {
			continue
		}

		folderName := postman.ItemName(item)
		if postman.IsInjectionFolderName(folderName) {
			var injectionItems []any
			for _, subRaw := range postman.ItemChildren(item) {
				subItem, ok := subRaw.(map[string]any)
				if !ok {
					continue
				}
				if postman.IsRequest(subItem) {
					clone := postman.CloneItem(subItem)
					annotate(clone, collectionName, parentFolder)
					injectionItems = append(injectionItems, clone)
				} else if postman.IsFolder(subItem) {
					nestedReqs, nestedInj := extractRequests([]any{subItem}, collectionName, parentFolder)
					for _, r := range nestedReqs {
						injectionItems = append(injectionItems, r)
					}
					injectionFolders = append(injectionFolders, nestedInj...)
				}
			}
			injectionFolders = append(injectionFolders, map[string]any{
				"name":              folderName,
				"item":              injectionItems,
				parentFolderKey:     parentFolder,
				sourceCollectionKey: collectionName,
			})
			continue
		}

		nestedReqs, nestedInj := extractRequests(postman.ItemChildren(item), collectionName, folderName)
		requests = append(requests, nestedReqs...)
		injectionFolders = append(injectionFolders, nestedInj...)
	}
	return requests, injectionFolders
}

func annotate(item map[string]any, collectionName, parentFolder string) {
	if collectionName != "" {
		item[sourceCollectionKey] = collectionName
	}
	if parentFolder != "" {
		item[parentFolderKey] = parentFolder
	}
}

// groupRequestsByName buckets requests under their display name, preferring
// the per-request conversion folder when one held them. The insertion order
// of group keys is preserved.
func groupRequestsByName(requests []map[string]any) (map[string][]map[string]any, []string) {
	grouped := map[string][]map[string]any{}
	var order []string

	for _, request := range requests {
		name := postman.ItemName(request)
		if name == "" {
			name = "Unnamed Request"
		}
		if parent, _ := request[parentFolderKey].(string); parent != "" && !postman.IsInjectionFolderName(parent) {
			name = parent
		}
		if _, seen := grouped[name]; !seen {
			order = append(order, name)
		}
		grouped[name] = append(grouped[name], request)
	}
	return grouped, order
}

// renameDuplicates gives repeated (name, method) requests a suffix naming
// their source collection, or a copy counter when the source is unknown.
func renameDuplicates(requests []map[string]any) []map[string]any {
	seen := map[string]int{}
	renamed := make([]map[string]any, 0, len(requests))

	for _, request := range requests {
		name := postman.ItemName(request)
		if name == "" {
			name = "Unnamed Request"
		}
		key := name + "|" + strings.ToUpper(postman.ItemMethod(request))

		if count, dup := seen[key]; dup {
			seen[key] = count + 1
			if source, _ := request[sourceCollectionKey].(string); source != "" {
				request["name"] = fmt.Sprintf("%s (%s)", name, source)
			} else {
				request["name"] = fmt.Sprintf("%s (Copy %d)", name, count)
			}
		} else {
			seen[key] = 1
		}
		renamed = append(renamed, request)
	}
	return renamed
}

// buildFolderStructure creates one folder per request name, holding the
// renamed requests followed by any injection folders that belonged to it.
func buildFolderStructure(grouped map[string][]map[string]any, order []string, injectionFolders []map[string]any) []any {
	folders := []any{}

	for _, requestName := range order {
		folderItems := []any{}
		for _, request := range renameDuplicates(grouped[requestName]) {
			folderItems = append(folderItems, stripMetadata(request))
		}

		// Re-attach this request's injection folders, merged by folder name.
		injectionByName := map[string][]any{}
		var injectionOrder []string
		for _, injFolder := range injectionFolders {
			parent, _ := injFolder[parentFolderKey].(string)
			if parent != requestName {
				continue
			}
			folderName := postman.ItemName(injFolder)
			if _, seen := injectionByName[folderName]; !seen {
				injectionOrder = append(injectionOrder, folderName)
			}
			for _, item := range postman.ItemChildren(injFolder) {
				if m, ok := item.(map[string]any); ok {
					injectionByName[folderName] = append(injectionByName[folderName], stripMetadata(m))
				}
			}
		}
		for _, folderName := range injectionOrder {
			if items := injectionByName[folderName]; len(items) > 0 {
				folderItems = append(folderItems, map[string]any{
					"name": folderName,
					"item": items,
				})
			}
		}

		if len(folderItems) > 0 {
			folders = append(folders, map[string]any{
				"name": requestName,
				"item": folderItems,
			})
		}
	}
	return folders
}

// stripMetadata removes underscore-prefixed bookkeeping keys, including the
// item-level _postman_id carried over from exports.
func stripMetadata(item map[string]any) map[string]any {
	clean := make(map[string]any, len(item))
	for k, v := range item {
		if !strings.HasPrefix(k, "_") {
			clean[k] = v
		}
	}
	return clean
}

// unionVariables merges variable lists across sources, first definition of a
// key winning.
func unionVariables(sources []Source) []any {
	seen := map[string]bool{}
	union := []any{}
	for _, source := range sources {
		for _, raw := range source.Variables {
			variable, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			key, _ := variable["key"].(string)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			union = append(union, variable)
		}
	}
	return union
}
