package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptAPIBaseURL sets the root URL of the JSON API.
func OptAPIBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("API BaseURL", s) {
			c.API.BaseURL = strings.TrimSuffix(s, "/")
		}
	}
}

// OptAPIVersion sets the API version to query.
func OptAPIVersion(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("API Version", s) {
			c.API.Version = s
		}
	}
}

// OptAPIPageSize sets the number of rows requested per page.
func OptAPIPageSize(i int) Option {
	return func(c *Config) {
		if isValidInt("API PageSize", i) {
			c.API.PageSize = i
		}
	}
}

// OptAPITimeout sets the limit for a single HTTP request.
func OptAPITimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("API Timeout", d) {
			c.API.Timeout = d
		}
	}
}

// OptAPIRetryAttempts sets the number of tries for transient failures.
func OptAPIRetryAttempts(i int) Option {
	return func(c *Config) {
		if isValidInt("API RetryAttempts", i) {
			c.API.RetryAttempts = i
		}
	}
}

// OptCacheEnabled toggles the local response cache.
func OptCacheEnabled(b bool) Option {
	return func(c *Config) {
		c.Cache.Enabled = b
	}
}

// OptCacheTTL sets how long a cached response stays fresh.
// Zero keeps entries forever.
func OptCacheTTL(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.Cache.TTL = d
		}
	}
}

// OptLogFormat sets the log format: 'json' or 'text'.
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogLevel sets the log level: 'error', 'warn', 'info' or 'debug'.
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogDestination sets the log destination: 'file', 'stdout' or 'stderr'.
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel fetches.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the directory under which config, cache and log
// directories reside.
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
