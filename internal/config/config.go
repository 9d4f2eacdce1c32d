package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration
type Config struct {
	Provider        string    `json:"provider,omitempty"`
	APIKey          string    `json:"api_key,omitempty"`
	BaseURL         string    `json:"base_url,omitempty"`
	Model           string    `json:"model,omitempty"`
	DataDir         string    `json:"data_dir,omitempty"`
	LastUpdateCheck time.Time `json:"last_update_check,omitempty"`
	LatestVersion   string    `json:"latest_version,omitempty"`
}

// ShouldCheckForUpdate returns true if more than 24 hours since last check
func (c *Config) ShouldCheckForUpdate() bool {
	return time.Since(c.LastUpdateCheck) > 24*time.Hour
}

// HomeDir returns the directory holding all swagforge state: config,
// uploaded specs, generated collections and environments, master data.
// Resolution order: SWAGFORGE_HOME, the data_dir config key, ~/.swagforge.
func HomeDir() (string, error) {
	if dir := GetEnv("home"); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(homeDir, ".swagforge")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	return dir, nil
}

// configPath returns the full path to the config file
func configPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load loads the configuration from disk
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil // No config yet
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetEnvVarName returns the environment variable name for a config key
func GetEnvVarName(key string) string {
	return "SWAGFORGE_" + strings.ToUpper(key)
}

// GetEnv retrieves an environment variable with the swagforge prefix
func GetEnv(key string) string {
	return os.Getenv(GetEnvVarName(key))
}
