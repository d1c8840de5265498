package config

import (
	"time"

	"storefront_poc/pkg"
)

// Config holds all configuration for the storefront service
type Config struct {
	Log      LogConfig      `yaml:"log" envconfig:"LOG"`
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Redis    RedisConfig    `yaml:"redis" envconfig:"REDIS"`
	Cache    CacheConfig    `yaml:"cache" envconfig:"CACHE"`
	Catalog  CatalogConfig  `yaml:"catalog" envconfig:"CATALOG"`
	Checkout CheckoutConfig `yaml:"checkout" envconfig:"CHECKOUT"`
}

// LogConfig configures the global zerolog logger
type LogConfig struct {
	Level      string `yaml:"level" split_words:"true"`
	Format     string `yaml:"format" split_words:"true"` // json, console
	Output     string `yaml:"output" split_words:"true"` // stdout, stderr, file
	FilePath   string `yaml:"file_path" split_words:"true"`
	TimeFormat string `yaml:"time_format" split_words:"true"` // rfc3339, unix, iso8601
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr          string `yaml:"addr" split_words:"true"`
	SessionSecret string `yaml:"session_secret" split_words:"true"`
	CookieName    string `yaml:"cookie_name" split_words:"true"`
	Mode          string `yaml:"mode" split_words:"true"` // debug, release, test
}

// RedisConfig holds Redis configuration. An empty URL selects the
// in-memory stores.
type RedisConfig struct {
	URL        string        `yaml:"url" split_words:"true"`
	SessionTTL time.Duration `yaml:"session_ttl" split_words:"true"`
}

// CacheConfig configures the content cache
type CacheConfig struct {
	Size int           `yaml:"size" split_words:"true"`
	TTL  time.Duration `yaml:"ttl" split_words:"true"`
}

// CatalogConfig configures the catalog fragments
type CatalogConfig struct {
	// Domains fetched for catalog products unless a fragment overrides them
	Domains []string `yaml:"domains" split_words:"true"`
	// DetailSeenDomains overrides Domains for the last seen fragments
	DetailSeenDomains []string `yaml:"detail_seen_domains" split_words:"true"`
	// SeenMaxItems limits the number of products in the last seen list
	SeenMaxItems int `yaml:"seen_max_items" split_words:"true"`
}

// SeenDomains returns the domains used for the last seen product fragments
func (c CatalogConfig) SeenDomains() []string {
	if len(c.DetailSeenDomains) > 0 {
		return c.DetailSeenDomains
	}
	if len(c.Domains) > 0 {
		return c.Domains
	}
	return []string{pkg.DomainMedia, pkg.DomainPrice, pkg.DomainText}
}

// CheckoutConfig configures the checkout steps
type CheckoutConfig struct {
	// OnePage lists the steps merged into one page
	OnePage []string `yaml:"onepage" split_words:"true"`
}

// Default returns the configuration used when nothing else is set
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			Output:     "stdout",
			FilePath:   "logs/storefront.log",
			TimeFormat: "rfc3339",
		},
		Server: ServerConfig{
			Addr:       ":8080",
			CookieName: "storefront",
			Mode:       "release",
		},
		Redis: RedisConfig{
			SessionTTL: 60 * time.Minute,
		},
		Cache: CacheConfig{
			Size: 512,
			TTL:  24 * time.Hour,
		},
		Catalog: CatalogConfig{
			Domains:      []string{pkg.DomainMedia, pkg.DomainPrice, pkg.DomainText},
			SeenMaxItems: 6,
		},
	}
}
