// Package ioconfig provides I/O operations for loading configuration from
// files and environment variables. This is an impure package that handles
// file system operations; the pure configuration model lives in pkg/config.
package ioconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/gnames/gnflora/pkg/config"
	"github.com/spf13/viper"
)

// LoadResult contains the loaded configuration and metadata about the source.
type LoadResult struct {
	Config     *config.Config
	SourcePath string // Path to config file used, or empty if using defaults
	Source     string // "file", "defaults", or "defaults+env"
}

// Load reads configuration from a YAML file and returns a Config with
// source info. If configPath is empty, the default location
// (~/.config/gnflora/config.yaml) is tried.
//
// Precedence: env vars > config file > defaults. CLI flags are applied by
// the caller on top of the result.
func Load(configPath string) (*LoadResult, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("GNFLORA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Defaults registered before reading so env vars resolve through
	// AutomaticEnv even without a config file.
	defaults := config.New()
	v.SetDefault("api.base_url", defaults.API.BaseURL)
	v.SetDefault("api.version", defaults.API.Version)
	v.SetDefault("api.page_size", defaults.API.PageSize)
	v.SetDefault("api.timeout", defaults.API.Timeout)
	v.SetDefault("api.retry_attempts", defaults.API.RetryAttempts)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.ttl", defaults.Cache.TTL)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.destination", defaults.Log.Destination)
	v.SetDefault("jobs_number", defaults.JobsNumber)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			defaultPath := config.ConfigFilePath(home)
			if _, statErr := os.Stat(defaultPath); statErr == nil {
				v.SetConfigFile(defaultPath)
			}
		}
	}

	configFileRead := false
	usedConfigPath := ""

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if configPath != "" {
				return nil, fmt.Errorf("config file not found: %s", configPath)
			}
		} else if configPath != "" || v.ConfigFileUsed() != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileRead = true
		usedConfigPath = v.ConfigFileUsed()
	}

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptAPIBaseURL(v.GetString("api.base_url")),
		config.OptAPIVersion(v.GetString("api.version")),
		config.OptAPIPageSize(v.GetInt("api.page_size")),
		config.OptAPITimeout(v.GetDuration("api.timeout")),
		config.OptAPIRetryAttempts(v.GetInt("api.retry_attempts")),
		config.OptCacheEnabled(v.GetBool("cache.enabled")),
		config.OptCacheTTL(v.GetDuration("cache.ttl")),
		config.OptLogFormat(v.GetString("log.format")),
		config.OptLogLevel(v.GetString("log.level")),
		config.OptLogDestination(v.GetString("log.destination")),
		config.OptJobsNumber(v.GetInt("jobs_number")),
	})

	source := "defaults"
	if configFileRead {
		source = "file"
	} else if hasEnvVars() {
		source = "defaults+env"
	}

	return &LoadResult{
		Config:     cfg,
		SourcePath: usedConfigPath,
		Source:     source,
	}, nil
}

// hasEnvVars checks if any GNFLORA_* environment variables are set.
func hasEnvVars() bool {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "GNFLORA_") {
			return true
		}
	}
	return false
}
