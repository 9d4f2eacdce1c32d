// Package merge reconciles a user-edited collection tree against the stored
// original. Injection subtrees always survive verbatim, edited requests
// replace their originals wholesale, and cloned requests are re-homed into
// the folder they declare as their parent.
package merge

import (
	"github.com/swagforge/swagforge-cli/internal/core/postman"
	"github.com/swagforge/swagforge-cli/internal/infra/logger"
)

// bookkeepingFields are UI-tracking keys stripped from clones before they
// are inserted into the merged tree.
var bookkeepingFields = map[string]bool{
	"id":               true,
	"path":             true,
	"originalIndex":    true,
	"parentPath":       true,
	"parentFolderName": true,
	"folderReference":  true,
}

// node pairs an item with its kind, classified once when the updated tree
// is decoded.
type node struct {
	kind postman.Kind
	item map[string]any
}

// Collection merges an updated collection into the stored original and
// returns the original envelope carrying the merged item tree.
func Collection(original, updated map[string]any) (map[string]any, error) {
	if err := postman.Validate(original); err != nil {
		return nil, err
	}
	if err := postman.Validate(updated); err != nil {
		return nil, err
	}

	result := postman.CloneItem(original)
	result["item"] = Items(postman.Items(result), postman.Items(updated))
	return result, nil
}

// Items merges updated items into the original item tree. The updated tree
// is flattened before matching: folder shape on the updated side never
// constrains where a match is found.
func Items(original, updated []any) []any {
	flat := flatten(updated)
	merged := mergeRecursive(original, flat)
	return placeClones(updated, merged)
}

// flatten collects every leaf item of a tree in document order, classifying
// each once.
func flatten(items []any) []node {
	var flat []node
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if postman.IsFolder(item) {
			flat = append(flat, flatten(postman.ItemChildren(item))...)
		} else {
			flat = append(flat, node{kind: postman.Classify(item), item: item})
		}
	}
	return flat
}

// findMatch locates the updated counterpart of an original request by exact
// name and method. Injection and clone items never match.
func findMatch(original map[string]any, updated []node) map[string]any {
	name := postman.ItemName(original)
	method := postman.ItemMethod(original)

	for _, candidate := range updated {
		if candidate.kind != postman.KindNormal {
			continue
		}
		if postman.ItemName(candidate.item) == name && postman.ItemMethod(candidate.item) == method {
			return candidate.item
		}
	}
	return nil
}

func mergeRecursive(original []any, updated []node) []any {
	result := make([]any, 0, len(original))

	for _, raw := range original {
		item, ok := raw.(map[string]any)
		if !ok {
			result = append(result, raw)
			continue
		}

		switch {
		case postman.IsFolder(item):
			// Injection folders are never merged; they pass through whole.
			if postman.Classify(item) == postman.KindInjection {
				result = append(result, item)
				continue
			}
			folder := make(map[string]any, len(item))
			for k, v := range item {
				folder[k] = v
			}
			folder["item"] = mergeRecursive(postman.ItemChildren(item), updated)
			result = append(result, folder)

		case postman.IsRequest(item):
			if postman.Classify(item) == postman.KindInjection {
				result = append(result, item)
				continue
			}
			if matched := findMatch(item, updated); matched != nil {
				result = append(result, matched)
			} else {
				// An original request with no updated counterpart is kept,
				// never dropped.
				result = append(result, item)
			}

		default:
			result = append(result, item)
		}
	}

	return result
}

// placeClones extracts every clone from the updated tree and inserts it into
// the merged result under its declared parent folder, falling back to the
// root. Insertion is suppressed when the destination already holds a request
// with the same name and method.
func placeClones(updated []any, merged []any) []any {
	for _, raw := range updated {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		if postman.IsFolder(item) {
			merged = placeClones(postman.ItemChildren(item), merged)
			continue
		}
		if !postman.IsRequest(item) || postman.Classify(item) != postman.KindClone {
			continue
		}

		parentName, _ := item["parentFolderName"].(string)
		if parentName != "" {
			if folder := findFolder(merged, parentName); folder != nil {
				children := postman.ItemChildren(folder)
				if !containsRequest(children, postman.ItemName(item), postman.ItemMethod(item)) {
					folder["item"] = append(children, stripBookkeeping(item))
				}
				continue
			}
			logger.Debug("clone parent folder not found, placing at root",
				logger.String("folder", parentName),
				logger.String("clone", postman.ItemName(item)))
		}
		if !containsRequest(merged, postman.ItemName(item), postman.ItemMethod(item)) {
			merged = append(merged, stripBookkeeping(item))
		}
	}
	return merged
}

// findFolder locates a folder by name, depth-first; the first match in
// document order wins.
func findFolder(items []any, name string) map[string]any {
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok || !postman.IsFolder(item) {
			continue
		}
		if postman.ItemName(item) == name {
			return item
		}
		if found := findFolder(postman.ItemChildren(item), name); found != nil {
			return found
		}
	}
	return nil
}

func containsRequest(items []any, name, method string) bool {
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if postman.ItemName(item) == name && postman.ItemMethod(item) == method {
			return true
		}
	}
	return false
}

func stripBookkeeping(item map[string]any) map[string]any {
	clean := make(map[string]any, len(item))
	for k, v := range item {
		if !bookkeepingFields[k] {
			clean[k] = v
		}
	}
	return clean
}
