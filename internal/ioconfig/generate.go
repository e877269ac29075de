package ioconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gnames/gnflora/pkg/config"
	"gopkg.in/yaml.v3"
)

// configYAML is the documented default configuration written on first run.
// All values are commented out; uncommenting overrides a default.
const configYAML = `# GNflora configuration.
# Values commented out below show the defaults.

api:
  # Root URL of the checklist JSON API.
  # base_url: https://gift.uni-goettingen.de/api/extended

  # API version to query. Resolve 'latest' explicitly with
  # 'gnflora version --remote' and pin the result here.
  # version: "3.0"

  # Rows requested per page.
  # page_size: 1000

  # Limit for a single HTTP request.
  # timeout: 30s

  # Tries for transient failures; 1 disables retries.
  # retry_attempts: 3

cache:
  # Toggle the local sqlite response cache.
  # enabled: true

  # How long a cached response stays fresh; 0 keeps entries forever.
  # ttl: 24h

log:
  # 'json' or 'text'
  # format: json
  # 'error', 'warn', 'info' or 'debug'
  # level: info
  # 'file', 'stdout' or 'stderr'
  # destination: file

# Number of concurrent workers for parallel fetches.
# jobs_number: 8
`

// GetDefaultConfigPath returns the full path to the default config file.
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return config.ConfigFilePath(home), nil
}

// GenerateDefaultConfig creates a documented default config file at the
// default location. Does NOT overwrite an existing file.
func GenerateDefaultConfig() (string, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}

	if _, err = os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists at %s", configPath)
	}

	configDir := filepath.Dir(configPath)
	if err = os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if err = os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}

// ConfigFileExists checks if a config file exists at the default location.
func ConfigFileExists() (bool, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return false, err
	}

	_, err = os.Stat(configPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ValidateGeneratedConfig reads a generated config file and checks that it
// is valid YAML for the Config structure. Used by tests.
func ValidateGeneratedConfig(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	return nil
}
