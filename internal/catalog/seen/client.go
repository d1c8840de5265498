package seen

import (
	"context"
	"fmt"
	"html/template"
	"slices"
	"time"

	"storefront_poc/internal/config"
	"storefront_poc/internal/i18n"
	"storefront_poc/internal/logger"
	"storefront_poc/internal/services"
	"storefront_poc/internal/storage"
	"storefront_poc/pkg"

	"golang.org/x/text/language"
)

// Session keys
const (
	ListKey      = "catalog/session/seen/list"
	CacheListKey = "catalog/session/seen/cache"
	BodyKey      = "catalog/session/seen/body"
)

// Template names
const (
	PartialTemplate = "catalog/detail/seen-partial"
	BodyTemplate    = "catalog/session/seen-body"
)

// Renderer renders a named template
type Renderer interface {
	Render(name string, data any) (string, error)
}

// Client maintains the last seen products of a session and renders them
type Client struct {
	sessions storage.SessionStore
	cache    storage.ContentCache
	products services.ProductLookup
	renderer Renderer
	config   config.CatalogConfig
}

// NewClient creates a last seen client
func NewClient(sessions storage.SessionStore, cache storage.ContentCache, products services.ProductLookup, renderer Renderer, cfg config.CatalogConfig) *Client {
	return &Client{
		sessions: sessions,
		cache:    cache,
		products: products,
		renderer: renderer,
		config:   cfg,
	}
}

func (c *Client) maxItems() int {
	if c.config.SeenMaxItems > 0 {
		return c.config.SeenMaxItems
	}
	return DefaultMaxItems
}

// Process records that the product was viewed in the session. Cached
// renderings of the last seen section are dropped afterwards.
func (c *Client) Process(ctx context.Context, sessionID, productID string) error {
	if productID == "" {
		return nil
	}

	list, err := c.List(ctx, sessionID)
	if err != nil {
		return err
	}

	moved, err := list.Touch(productID, func() (string, error) {
		return c.HTML(ctx, productID)
	}, c.maxItems())
	if err != nil {
		return err
	}

	if err := c.sessions.Set(ctx, sessionID, ListKey, list); err != nil {
		return fmt.Errorf("failed to store seen list: %w", err)
	}

	logger.Debug().
		Str("session_id", sessionID).
		Str("product_id", productID).
		Bool("moved", moved).
		Int("items", list.Len()).
		Msg("seen list updated")

	return c.invalidate(ctx, sessionID)
}

// List returns the last seen products of the session
func (c *Client) List(ctx context.Context, sessionID string) (*List, error) {
	list := &List{}
	if _, err := c.sessions.Get(ctx, sessionID, ListKey, list); err != nil {
		return nil, fmt.Errorf("failed to load seen list: %w", err)
	}
	return list, nil
}

// invalidate removes every session key registered under CacheListKey
func (c *Client) invalidate(ctx context.Context, sessionID string) error {
	var keys []string
	found, err := c.sessions.Get(ctx, sessionID, CacheListKey, &keys)
	if err != nil {
		return fmt.Errorf("failed to load seen cache keys: %w", err)
	}
	if !found {
		return nil
	}

	if err := c.sessions.Delete(ctx, sessionID, append(keys, CacheListKey)...); err != nil {
		return fmt.Errorf("failed to invalidate seen cache: %w", err)
	}

	logger.Debug().
		Str("session_id", sessionID).
		Strs("keys", keys).
		Msg("seen section cache invalidated")
	return nil
}

// HTML returns the seen fragment of the product, from the content cache
// when available
func (c *Client) HTML(ctx context.Context, productID string) (string, error) {
	key := CacheKey(productID)

	html, found, err := c.cache.Get(ctx, key)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("content cache read failed")
	} else if found {
		logger.Debug().Str("product_id", productID).Msg("CACHE HIT for seen fragment")
		return html, nil
	}
	logger.Debug().Str("product_id", productID).Msg("CACHE MISS for seen fragment")

	product, err := c.products.GetItem(ctx, productID, c.config.SeenDomains())
	if err != nil {
		return "", fmt.Errorf("failed to load product %s: %w", productID, err)
	}

	html, err = c.renderer.Render(PartialTemplate, map[string]any{"Product": product})
	if err != nil {
		return "", err
	}

	expire, tags := meta(product)
	if err := c.cache.Set(ctx, key, html, expire, tags); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("content cache write failed")
	}
	return html, nil
}

// InvalidateProduct drops every cached fragment built from the product
func (c *Client) InvalidateProduct(ctx context.Context, productID string) error {
	if err := c.cache.DeleteByTags(ctx, ProductTag(productID)); err != nil {
		return fmt.Errorf("failed to invalidate product %s: %w", productID, err)
	}
	logger.Info().Str("product_id", productID).Msg("CACHE INVALIDATED for product")
	return nil
}

// Body renders the last seen section of the session, most recent product
// first. The rendering is kept in the session until the list changes.
func (c *Client) Body(ctx context.Context, sessionID string, tag language.Tag) (string, error) {
	bodyKey := BodyKey + "/" + tag.String()

	var body string
	found, err := c.sessions.Get(ctx, sessionID, bodyKey, &body)
	if err != nil {
		logger.Warn().Err(err).Str("session_id", sessionID).Msg("seen section cache read failed")
	} else if found {
		return body, nil
	}

	list, err := c.List(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if list.Len() == 0 {
		return "", nil
	}

	items := make([]template.HTML, 0, list.Len())
	for i := list.Len() - 1; i >= 0; i-- {
		// fragments were rendered by PartialTemplate
		items = append(items, template.HTML(list.Entries[i].HTML))
	}

	body, err = c.renderer.Render(BodyTemplate, map[string]any{
		"T":     i18n.NewTranslator(tag),
		"Items": items,
	})
	if err != nil {
		return "", err
	}

	if err := c.remember(ctx, sessionID, bodyKey, body); err != nil {
		logger.Warn().Err(err).Str("session_id", sessionID).Msg("seen section cache write failed")
	}
	return body, nil
}

// remember stores value under key and registers key for invalidation
func (c *Client) remember(ctx context.Context, sessionID, key, value string) error {
	var keys []string
	if _, err := c.sessions.Get(ctx, sessionID, CacheListKey, &keys); err != nil {
		return err
	}
	if !slices.Contains(keys, key) {
		keys = append(keys, key)
	}
	if err := c.sessions.Set(ctx, sessionID, key, value); err != nil {
		return err
	}
	return c.sessions.Set(ctx, sessionID, CacheListKey, keys)
}

// ProductTag is the content cache tag of everything built from a product
func ProductTag(productID string) string {
	return "product-" + productID
}

func meta(product *pkg.Product) (*time.Time, []string) {
	tags := []string{"product", ProductTag(product.ID)}
	for _, media := range product.Media {
		tags = append(tags, "media-"+media.ID)
	}
	if product.SupplierID != "" {
		tags = append(tags, "supplier-"+product.SupplierID)
	}
	return product.Expires, tags
}
