package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/swagforge/swagforge-cli/internal/core/postman"
)

// EnvironmentInfo summarizes one stored environment file.
type EnvironmentInfo struct {
	ID   string `json:"id"`
	API  string `json:"api"`
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// SaveEnvironment writes an environment file under the API's directory and
// returns the file path. The file is named "<api>-<envName>" with the
// standard environment suffix.
func SaveEnvironment(apiID, envName string, env map[string]any) (string, error) {
	dir, err := ensureDir(environmentsDir)
	if err != nil {
		return "", err
	}
	apiID = SanitizeID(apiID)
	if apiID == "" {
		return "", fmt.Errorf("environment api id is empty after sanitizing")
	}
	apiDir := filepath.Join(dir, apiID)
	if err := os.MkdirAll(apiDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create environment directory: %w", err)
	}

	path := filepath.Join(apiDir, fmt.Sprintf("%s-%s%s", apiID, envName, environmentSuffix))
	if err := writeJSON(path, env); err != nil {
		return "", err
	}
	return path, nil
}

// ListEnvironments enumerates all stored environment files across APIs.
func ListEnvironments() ([]EnvironmentInfo, error) {
	dir, err := ensureDir(environmentsDir)
	if err != nil {
		return nil, err
	}
	apiDirs, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list environments: %w", err)
	}

	var environments []EnvironmentInfo
	for _, apiDir := range apiDirs {
		if !apiDir.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(dir, apiDir.Name()))
		if err != nil {
			continue
		}
		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), environmentSuffix) {
				continue
			}
			path := filepath.Join(dir, apiDir.Name(), file.Name())
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			environments = append(environments, EnvironmentInfo{
				ID:   strings.TrimSuffix(file.Name(), environmentSuffix),
				API:  apiDir.Name(),
				Name: file.Name(),
				Path: path,
				Size: info.Size(),
			})
		}
	}
	return environments, nil
}

// FindEnvironment locates an environment file by its identifier, matching
// either the full file stem or the stem's suffix after the API prefix.
func FindEnvironment(envID string) (string, error) {
	envID = SanitizeID(envID)
	environments, err := ListEnvironments()
	if err != nil {
		return "", err
	}
	for _, env := range environments {
		if env.ID == envID || strings.HasSuffix(env.ID, "-"+envID) {
			return env.Path, nil
		}
	}
	return "", fmt.Errorf("environment %q: %w", envID, postman.ErrNotFound)
}

// LoadEnvironment reads an environment file by identifier.
func LoadEnvironment(envID string) (map[string]any, error) {
	path, err := FindEnvironment(envID)
	if err != nil {
		return nil, err
	}
	var env map[string]any
	if err := readJSON(path, &env); err != nil {
		return nil, err
	}
	return env, nil
}

// DeleteEnvironment removes an environment file, pruning its API directory
// when it becomes empty.
func DeleteEnvironment(envID string) error {
	path, err := FindEnvironment(envID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete environment %q: %w", envID, err)
	}
	apiDir := filepath.Dir(path)
	if entries, err := os.ReadDir(apiDir); err == nil && len(entries) == 0 {
		_ = os.Remove(apiDir)
	}
	return nil
}
