package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/swagforge/swagforge-cli/internal/core/openapi"
	"github.com/swagforge/swagforge-cli/internal/core/postman"
)

// CollectionInfo summarizes one stored collection.
type CollectionInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// CollectionID derives the stored identifier from a collection name:
// lowered, spaces and underscores hyphenated, special characters dropped.
func CollectionID(name string) string {
	return openapi.SanitizeName(strings.ReplaceAll(name, "_", "-"))
}

func collectionPath(id string) (string, error) {
	dir, err := ensureDir(collectionsDir)
	if err != nil {
		return "", err
	}
	id = SanitizeID(id)
	if id == "" {
		return "", fmt.Errorf("collection id is empty after sanitizing")
	}
	return filepath.Join(dir, id, id+collectionSuffix), nil
}

// SaveCollection writes a collection under its identifier's directory and
// returns the file path.
func SaveCollection(id string, collection map[string]any) (string, error) {
	if err := postman.Validate(collection); err != nil {
		return "", err
	}
	path, err := collectionPath(id)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create collection directory: %w", err)
	}
	if err := writeJSON(path, collection); err != nil {
		return "", err
	}
	return path, nil
}

func LoadCollection(id string) (map[string]any, error) {
	path, err := collectionPath(id)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("collection %q: %w", id, postman.ErrNotFound)
	}
	var collection map[string]any
	if err := readJSON(path, &collection); err != nil {
		return nil, err
	}
	return collection, nil
}

// ListCollections enumerates the stored collections, sorted by directory
// order (alphabetical on most filesystems).
func ListCollections() ([]CollectionInfo, error) {
	dir, err := ensureDir(collectionsDir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	var collections []CollectionInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name(), entry.Name()+collectionSuffix)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		collections = append(collections, CollectionInfo{
			ID:   entry.Name(),
			Name: entry.Name(),
			Path: path,
			Size: info.Size(),
		})
	}
	return collections, nil
}

// DeleteCollection removes a collection and its directory.
func DeleteCollection(id string) error {
	path, err := collectionPath(id)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("collection %q: %w", id, postman.ErrNotFound)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete collection %q: %w", id, err)
	}
	return nil
}

// CloneCollection copies a stored collection under a timestamped name and
// returns the new identifier and display name.
func CloneCollection(id string) (string, string, error) {
	collection, err := LoadCollection(id)
	if err != nil {
		return "", "", err
	}

	name := postman.CollectionName(collection)
	if name == "" {
		name = id
	}
	newName := fmt.Sprintf("%s (Copy %d)", name, time.Now().Unix())
	newID := CollectionID(newName)

	info, _ := collection["info"].(map[string]any)
	if info == nil {
		info = map[string]any{}
		collection["info"] = info
	}
	info["name"] = newName

	if _, err := SaveCollection(newID, collection); err != nil {
		return "", "", err
	}
	return newID, newName, nil
}

// CloneRequest duplicates a request inside a stored collection, appending
// the copy at the root, and returns the copy's name. The request is located
// by name or _postman_id.
func CloneRequest(collectionID, requestID string) (string, error) {
	collection, err := LoadCollection(collectionID)
	if err != nil {
		return "", err
	}

	original := findRequest(postman.Items(collection), requestID)
	if original == nil {
		return "", fmt.Errorf("request %q: %w", requestID, postman.ErrNotFound)
	}

	clone := postman.CloneItem(original)
	clone["name"] = fmt.Sprintf("%s (Copy %d)", postman.ItemName(original), time.Now().Unix())
	delete(clone, "_postman_id")

	items := postman.Items(collection)
	collection["item"] = append(items, clone)

	if _, err := SaveCollection(collectionID, collection); err != nil {
		return "", err
	}
	return clone["name"].(string), nil
}

func findRequest(items []any, requestID string) map[string]any {
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if children, isFolder := item["item"].([]any); isFolder {
			if found := findRequest(children, requestID); found != nil {
				return found
			}
			continue
		}
		if _, isRequest := item["request"]; !isRequest {
			continue
		}
		if item["name"] == requestID || item["_postman_id"] == requestID {
			return item
		}
	}
	return nil
}
