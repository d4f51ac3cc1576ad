// Package config provides configuration management for the TB16Pix server.
//
// Configuration is layered: defaults, then the YAML config file, then the
// environment (including a .env file in the working directory). Command line
// flags are applied last by the caller.
//
// Config file locations (priority order):
//  1. $TB16PIX_CONFIG
//  2. ./tb16pix.yaml
//  3. $XDG_CONFIG_HOME/tb16pix/config.yaml
//  4. ~/.config/tb16pix/config.yaml
//  5. /etc/tb16pix/config.yaml
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"tb16pix/internal/vocab"
)

// Load finds and loads the config file, or starts from defaults if none is
// found, then applies the environment
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		cfg := DefaultConfig()
		if err := cfg.applyEnv(EnvFileName); err != nil {
			return nil, "", err
		}
		return cfg, "", cfg.Validate()
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.applyEnv(EnvFileName); err != nil {
		return nil, path, err
	}
	cfg.applyDefaults()

	return cfg, path, cfg.Validate()
}

// DefaultConfig returns the configuration of a local development server
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":5000"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = Duration(10 * time.Second)
	}
	if c.Server.WriteTimeout == 0 {
		// Proxied SPARQL queries may take the full upstream timeout
		c.Server.WriteTimeout = Duration(90 * time.Second)
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = Duration(10 * time.Second)
	}
	if c.Dataset.URI == "" {
		c.Dataset.URI = vocab.DefaultDatasetURI
	}
	c.Dataset.URI = strings.TrimRight(c.Dataset.URI, "/")
	if c.Data.Dir == "" {
		c.Data.Dir = "./data"
	}
	if c.Data.CacheFile == "" {
		c.Data.CacheFile = "./tb16pix-cache.db"
	}
	if c.Data.CacheHours == 0 {
		c.Data.CacheHours = 24
	}
	if c.SPARQL.Timeout == 0 {
		c.SPARQL.Timeout = Duration(60 * time.Second)
	}
	if c.SPARQL.Burst == 0 {
		c.SPARQL.Burst = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// applyEnv overlays environment variables, reading envFile first when it
// exists. Variables already set in the process environment win over the file.
func (c *Config) applyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", envFile, err)
		}
	}
	if err := envdecode.Decode(c); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("decode environment: %w", err)
	}
	return nil
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	u, err := url.Parse(c.Dataset.URI)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("dataset uri %q must be an absolute URI", c.Dataset.URI)
	}
	if c.SPARQL.Endpoint != "" {
		if u, err := url.Parse(c.SPARQL.Endpoint); err != nil || u.Scheme == "" {
			return fmt.Errorf("sparql endpoint %q must be an absolute URI", c.SPARQL.Endpoint)
		}
	}
	if c.Data.CacheHours < 0 {
		return fmt.Errorf("cache_hours must not be negative")
	}
	if c.SPARQL.RateLimit < 0 {
		return fmt.Errorf("sparql rate_limit must not be negative")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q must be text or json", c.Log.Format)
	}
	return nil
}

// LogLevel parses the configured level, defaulting to info
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// CacheExpiry is the lifetime of the on-disk triple cache
func (c *Config) CacheExpiry() time.Duration {
	return time.Duration(c.Data.CacheHours) * time.Hour
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	sparql := "disabled"
	if c.SPARQL.Endpoint != "" {
		sparql = c.SPARQL.Endpoint
	}
	return fmt.Sprintf("addr=%s dataset=%s data=%s cache=%s (%dh) sparql=%s local_uris=%t",
		c.Server.Addr, c.Dataset.URI, c.Data.Dir, c.Data.CacheFile, c.Data.CacheHours, sparql, c.LocalURIs)
}
