package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of all environment overrides, e.g.
// STOREFRONT_CATALOG_SEEN_MAX_ITEMS
const EnvPrefix = "STOREFRONT"

// Load builds the configuration from defaults, the optional .env file, the
// optional YAML file and the environment, in that order.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := Default()
	if path != "" {
		if err := loadFile(path, &config); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, &config); err != nil {
		return nil, fmt.Errorf("error processing environment configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// loadFile merges the YAML file into config. A missing file is not an error.
func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("error parsing YAML: %w", err)
	}
	return nil
}

// Validate checks values that would break the fragment clients
func (c *Config) Validate() error {
	if c.Catalog.SeenMaxItems < 1 {
		return fmt.Errorf("catalog.seen_max_items must be a positive integer, got %d", c.Catalog.SeenMaxItems)
	}
	if c.Cache.Size < 1 {
		return fmt.Errorf("cache.size must be a positive integer, got %d", c.Cache.Size)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}
