package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Fetch    FetchConfig    `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching configuration"`
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Sanitize SanitizeConfig `yaml:"sanitize" json:"sanitize" jsonschema:"description=HTML sanitizing of titles and descriptions"`
}

// FetchConfig holds http fetching settings for remote feeds
type FetchConfig struct {
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=rsskit/1.0,description=User agent for HTTP requests"`
	Retries    *int          `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=0,description=Retries on network errors and 5xx responses"`
	RetryDelay time.Duration `yaml:"retry_delay" json:"retry_delay" jsonschema:"default=500ms,description=Initial delay between retries"`
	MaxSize    int64         `yaml:"max_size" json:"max_size" jsonschema:"default=10485760,minimum=1,description=Maximum feed document size in bytes"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	MaxBody int64         `yaml:"max_body" json:"max_body" jsonschema:"default=1048576,minimum=1,description=Maximum request body size in bytes"`
}

// SanitizeConfig holds html sanitizing settings
type SanitizeConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Sanitize served and converted feeds"`
}

// Default returns configuration with all defaults set
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Load reads configuration from a YAML file. Empty path means defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify keys against embedded schema, typos are reported but not fatal
	if err := VerifyAgainstEmbeddedSchema(expanded); err != nil {
		lgr.Printf("[WARN] schema validation failed for %s: %v", path, err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "rsskit/1.0"
	}
	if cfg.Fetch.Retries == nil { // explicit 0 disables retries
		retries := 3
		cfg.Fetch.Retries = &retries
	}
	if cfg.Fetch.RetryDelay == 0 {
		cfg.Fetch.RetryDelay = 500 * time.Millisecond
	}
	if cfg.Fetch.MaxSize == 0 {
		cfg.Fetch.MaxSize = 10 * 1024 * 1024
	}

	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.MaxBody == 0 {
		cfg.Server.MaxBody = 1024 * 1024
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Fetch.Timeout < time.Second {
		return fmt.Errorf("fetch timeout must be at least 1 second")
	}
	if cfg.Fetch.Retries != nil && *cfg.Fetch.Retries < 0 {
		return fmt.Errorf("fetch retries must be non-negative")
	}
	if cfg.Fetch.RetryDelay < 0 {
		return fmt.Errorf("fetch retry_delay must be non-negative")
	}
	if cfg.Fetch.MaxSize < 0 {
		return fmt.Errorf("fetch max_size must be positive")
	}

	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Server.MaxBody < 0 {
		return fmt.Errorf("server max_body must be positive")
	}

	return nil
}
