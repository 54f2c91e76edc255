// Package config loads the indexer configuration from YAML with
// environment-variable overrides.
//
// Configuration hierarchy:
//  1. Hardcoded defaults (NewConfig)
//  2. Config file (forgelode-indexer.yaml, or the --config flag)
//  3. Environment variables (FORGELODE_*)
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	ierrors "github.com/forgelode/indexer/internal/errors"
)

// Default cache sizing. Both loaded mappings are held in memory for a run's
// duration; the caches only smooth repeated runs.
const (
	DefaultProjectCacheEntries = 10000
	DefaultVersionCacheEntries = 50000
)

// Config represents the complete indexer configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Store   StoreConfig   `yaml:"store" json:"store"`
	Cache   CacheConfig   `yaml:"cache" json:"cache"`
	Index   IndexConfig   `yaml:"index" json:"index"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// StoreConfig configures the primary store connection.
type StoreConfig struct {
	// Path is the SQLite database path. Empty means in-memory (tests).
	Path string `yaml:"path" json:"path"`
}

// CacheConfig configures the record caches consulted before the store.
type CacheConfig struct {
	ProjectEntries int `yaml:"project_entries" json:"project_entries"`
	VersionEntries int `yaml:"version_entries" json:"version_entries"`
}

// IndexConfig configures the search index the run submits to.
type IndexConfig struct {
	// Path is the output index directory. Empty means in-memory (tests).
	Path string `yaml:"path" json:"path"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level    string `yaml:"level" json:"level"`
	FilePath string `yaml:"file_path" json:"file_path"`
}

// NewConfig returns a Config with all defaults applied.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Store: StoreConfig{
			Path: "forgelode.db",
		},
		Cache: CacheConfig{
			ProjectEntries: DefaultProjectCacheEntries,
			VersionEntries: DefaultVersionCacheEntries,
		},
		Index: IndexConfig{
			Path: "search-index",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the given path, falling back to defaults if
// the file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, ierrors.Wrap(ierrors.ErrCodeConfigNotFound, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, ierrors.ConfigError(fmt.Sprintf("invalid config file %s", path), err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies FORGELODE_* environment variables. Env vars have
// the highest priority.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FORGELODE_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("FORGELODE_INDEX_PATH"); v != "" {
		cfg.Index.Path = v
	}
	if v := os.Getenv("FORGELODE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("FORGELODE_PROJECT_CACHE_ENTRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.ProjectEntries = n
		}
	}
	if v := os.Getenv("FORGELODE_VERSION_CACHE_ENTRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.VersionEntries = n
		}
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Cache.ProjectEntries <= 0 {
		return ierrors.ConfigError("cache.project_entries must be positive", nil)
	}
	if c.Cache.VersionEntries <= 0 {
		return ierrors.ConfigError("cache.version_entries must be positive", nil)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return ierrors.ConfigError(
			fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level), nil)
	}
	return nil
}
