package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 6, config.Catalog.SeenMaxItems)
	assert.Equal(t, []string{"media", "price", "text"}, config.Catalog.Domains)
	assert.Empty(t, config.Checkout.OnePage)
	assert.Equal(t, 60*time.Minute, config.Redis.SessionTTL)
	assert.Equal(t, ":8080", config.Server.Addr)
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
catalog:
  seen_max_items: 3
  detail_seen_domains: [media, text]
checkout:
  onepage: [address, delivery, payment, summary]
cache:
  ttl: 1h
`)
	t.Setenv("STOREFRONT_SERVER_ADDR", ":9090")
	t.Setenv("STOREFRONT_CATALOG_SEEN_MAX_ITEMS", "4")

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, config.Catalog.SeenMaxItems)
	assert.Equal(t, []string{"media", "text"}, config.Catalog.SeenDomains())
	assert.Equal(t, []string{"address", "delivery", "payment", "summary"}, config.Checkout.OnePage)
	assert.Equal(t, time.Hour, config.Cache.TTL)
	assert.Equal(t, ":9090", config.Server.Addr)
}

func TestLoadRejectsInvalidMaxItems(t *testing.T) {
	path := writeConfig(t, "catalog:\n  seen_max_items: 0\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "seen_max_items")
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := writeConfig(t, "catalog: [\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "error parsing YAML")
}

func TestSeenDomainsFallback(t *testing.T) {
	assert.Equal(t, []string{"media", "price", "text"}, CatalogConfig{}.SeenDomains())
	assert.Equal(t, []string{"price"}, CatalogConfig{Domains: []string{"price"}}.SeenDomains())
}

func TestLoadIgnoresUnprefixedEnv(t *testing.T) {
	t.Setenv("URL", "https://shop.example.com")
	t.Setenv("SIZE", "3")
	t.Setenv("MODE", "debug")
	t.Setenv("ONE_PAGE", "summary")

	config, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, config.Redis.URL)
	assert.Equal(t, 512, config.Cache.Size)
	assert.Equal(t, "release", config.Server.Mode)
	assert.Empty(t, config.Checkout.OnePage)
}

func TestLoadPrefixedSplitWords(t *testing.T) {
	t.Setenv("STOREFRONT_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("STOREFRONT_REDIS_SESSION_TTL", "15m")
	t.Setenv("STOREFRONT_CACHE_SIZE", "64")
	t.Setenv("STOREFRONT_CHECKOUT_ONE_PAGE", "payment,summary")

	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "redis://localhost:6379/0", config.Redis.URL)
	assert.Equal(t, 15*time.Minute, config.Redis.SessionTTL)
	assert.Equal(t, 64, config.Cache.Size)
	assert.Equal(t, []string{"payment", "summary"}, config.Checkout.OnePage)
}
