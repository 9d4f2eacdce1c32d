// Package storage persists collections, environments and uploaded spec
// files as JSON under the application home directory.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/swagforge/swagforge-cli/internal/config"
)

const (
	collectionsDir  = "PostmanCollection"
	environmentsDir = "Environments"
	specsDir        = "Specs"
	masterDataDir   = "MasterData"

	collectionSuffix  = ".postman_collection.json"
	environmentSuffix = ".postman_environment.json"
)

var unsafeIDChars = regexp.MustCompile(`[<>:"|?*\x00-\x1f/\\]`)

// SanitizeID strips path separators and shell-unsafe characters from a
// stored identifier.
func SanitizeID(id string) string {
	return unsafeIDChars.ReplaceAllString(id, "")
}

// MasterDataDir returns the master data directory path, creating it.
func MasterDataDir() (string, error) {
	return ensureDir(masterDataDir)
}

func ensureDir(sub string) (string, error) {
	home, err := config.HomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, sub)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %w", sub, err)
	}
	return dir, nil
}

// writeJSON renders a document with two-space indentation and without HTML
// escaping, so payload markup survives byte-for-byte.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
