package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storefront_poc/internal/catalog/seen"
	"storefront_poc/internal/catalog/supplier"
	"storefront_poc/internal/checkout/summary"
	"storefront_poc/internal/config"
	"storefront_poc/internal/logger"
	"storefront_poc/internal/render"
	"storefront_poc/internal/server"
	"storefront_poc/internal/services"
	"storefront_poc/internal/storage"
	"storefront_poc/pkg"
)

func main() {
	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitLogger(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error().Err(err).Msg("storefront stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	sessions, cache, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	renderer, err := render.New()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	customers := services.NewCustomerService(
		pkg.Customer{ID: "cust-1", Email: "jane.doe@example.com", Name: "Jane Doe"},
	)

	clients := server.Clients{
		Seen:     seen.NewClient(sessions, cache, services.NewProductService(), renderer, cfg.Catalog),
		Supplier: supplier.NewClient(services.NewSupplierService(), renderer),
		Summary:  summary.NewClient(services.NewBasketService(sessions), customers, renderer, cfg.Checkout.OnePage),
	}

	logger.Info().
		Int("seen_max_items", cfg.Catalog.SeenMaxItems).
		Strs("onepage", cfg.Checkout.OnePage).
		Msg("storefront ready")

	return server.New(cfg.Server, clients, sessions).Run(ctx)
}

// openStores connects Redis when configured and falls back to in-memory
// stores otherwise
func openStores(ctx context.Context, cfg *config.Config) (storage.SessionStore, storage.ContentCache, func(), error) {
	if cfg.Redis.URL == "" {
		logger.Info().Int("cache_size", cfg.Cache.Size).Msg("using in-memory session store and content cache")
		cache, err := storage.NewMemoryContentCache(cfg.Cache.Size, cfg.Cache.TTL)
		if err != nil {
			return nil, nil, nil, err
		}
		return storage.NewMemorySessionStore(cfg.Redis.SessionTTL), cache, func() {}, nil
	}

	client, err := storage.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info().Msg("using Redis session store and content cache")

	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close Redis client")
		}
	}
	return storage.NewRedisSessionStore(client, cfg.Redis.SessionTTL),
		storage.NewRedisContentCache(client, cfg.Cache.TTL),
		closeFn, nil
}
