// Package config provides configuration management for GNflora.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
//
// # Environment Variables
//
// Use GNFLORA_ prefix with underscores for nesting:
//
//	GNFLORA_API_BASE_URL=https://gift.uni-goettingen.de/api/extended
//	GNFLORA_API_VERSION=3.0
//	GNFLORA_LOG_LEVEL=info
package config

import (
	"runtime"
	"time"
)

// Config represents the complete GNflora configuration.
type Config struct {
	// API contains settings for the checklist web service.
	API APIConfig `mapstructure:"api" yaml:"api"`

	// Cache contains settings for the local response cache.
	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel fetches
	// (raster layers, per-list species downloads). Defaults to the number
	// of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// APIConfig contains connection parameters for the data service.
type APIConfig struct {
	// BaseURL is the root URL of the JSON API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Version is the API version to query. Use an already-resolved version
	// string; "latest" resolution is an explicit call, never a hidden
	// default lookup.
	Version string `mapstructure:"version" yaml:"version"`

	// PageSize is the number of rows requested per page.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// Timeout limits a single HTTP request.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// RetryAttempts is the number of tries for transient failures
	// (network errors, 5xx responses). 1 disables retries.
	RetryAttempts int `mapstructure:"retry_attempts" yaml:"retry_attempts"`
}

// CacheConfig contains settings for the sqlite-backed response cache.
type CacheConfig struct {
	// Enabled toggles response caching.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// TTL is how long a cached response stays fresh. 0 means never expire.
	TTL time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		API: APIConfig{
			BaseURL:       "https://gift.uni-goettingen.de/api/extended",
			Version:       "3.0",
			PageSize:      1000,
			Timeout:       30 * time.Second,
			RetryAttempts: 3,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
