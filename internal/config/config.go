// Package config handles global configuration for the featurize CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/featurize/config.yml.
type Config struct {
	ProviderURL   string `yaml:"provider_url,omitempty"`
	DescriptorSet string `yaml:"descriptor_set,omitempty"`
	APIKey        string `yaml:"api_key,omitempty"`
	Workers       int    `yaml:"workers,omitempty"`
	CachePath     string `yaml:"cache_path,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "featurize"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// DefaultCacheFile is the cache file name under the config directory.
	DefaultCacheFile = "features.db"
)

// Environment variables overriding file configuration.
const (
	EnvProviderURL   = "FEATURIZE_PROVIDER_URL"
	EnvDescriptorSet = "FEATURIZE_DESCRIPTOR_SET"
	EnvAPIKey        = "FEATURIZE_API_KEY"
	EnvWorkers       = "FEATURIZE_WORKERS"
)

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the global config file. Respects
// XDG_CONFIG_HOME, defaults to ~/.config/featurize/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// DefaultCachePath returns the default feature cache location, next to the
// config file.
func DefaultCachePath() string {
	path := Path()
	if path == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(path), DefaultCacheFile)
}

// Load reads the global configuration file and applies environment
// overrides. A missing file yields a zero config, not an error.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	cfg := &Config{}

	path := Path()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No config file is fine
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	applyEnv(cfg)

	if cfg.CachePath != "" {
		cfg.CachePath = ExpandTilde(cfg.CachePath)
	} else {
		cfg.CachePath = DefaultCachePath()
	}

	configCache = cfg
	return cfg, nil
}

// ResetCache clears the in-process config cache. Intended for tests.
func ResetCache() {
	configCache = nil
}

// applyEnv overrides file values with environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvProviderURL); v != "" {
		cfg.ProviderURL = v
	}
	if v := os.Getenv(EnvDescriptorSet); v != "" {
		cfg.DescriptorSet = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
}

// Save writes the configuration to the global config file, creating the
// config directory if needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ExpandTilde expands ~ to the user's home directory. Returns the original
// path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
