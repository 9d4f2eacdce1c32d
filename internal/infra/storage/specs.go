package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/swagforge/swagforge-cli/internal/core/postman"
)

var specExtensions = []string{".json", ".yaml", ".yml"}

// SaveSpec stores an uploaded OpenAPI document under the specs directory and
// returns the file path. The extension is kept from the original name.
func SaveSpec(name string, data []byte) (string, error) {
	dir, err := ensureDir(specsDir)
	if err != nil {
		return "", err
	}
	name = SanitizeID(name)
	if name == "" {
		return "", fmt.Errorf("spec name is empty after sanitizing")
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write spec %s: %w", name, err)
	}
	return path, nil
}

// FindSpec locates a stored spec by base name, trying the known extensions
// when the name has none.
func FindSpec(name string) (string, error) {
	dir, err := ensureDir(specsDir)
	if err != nil {
		return "", err
	}
	name = SanitizeID(name)

	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = candidates[:0]
		for _, ext := range specExtensions {
			candidates = append(candidates, name+ext)
		}
	}
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("spec %q: %w", name, postman.ErrNotFound)
}

// ListSpecs enumerates the stored spec files.
func ListSpecs() ([]string, error) {
	dir, err := ensureDir(specsDir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list specs: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
