package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront_poc/internal/catalog/seen"
	"storefront_poc/internal/catalog/supplier"
	"storefront_poc/internal/checkout/summary"
	"storefront_poc/internal/config"
	"storefront_poc/internal/logger"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Pinger reports whether a backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Clients bundles the fragment clients served over HTTP
type Clients struct {
	Seen     *seen.Client
	Supplier *supplier.Client
	Summary  *summary.Client
}

// Server exposes the storefront fragments over HTTP
type Server struct {
	cfg     config.ServerConfig
	clients Clients
	health  Pinger
	engine  *gin.Engine
}

// New creates the server and registers its routes
func New(cfg config.ServerConfig, clients Clients, health Pinger) *Server {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	gin.DefaultWriter = logger.Writer(zerolog.DebugLevel)
	gin.DefaultErrorWriter = logger.Writer(zerolog.ErrorLevel)

	secret := cfg.SessionSecret
	if secret == "" {
		secret = uuid.NewString()
		logger.Warn().Msg("no session secret configured, sessions will not survive a restart")
	}
	name := cfg.CookieName
	if name == "" {
		name = "storefront"
	}

	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})

	engine := gin.New()
	engine.Use(gin.RecoveryWithWriter(gin.DefaultErrorWriter), requestLogger(), sessions.Sessions(name, store), sessionID(), resolveLanguage())

	s := &Server{cfg: cfg, clients: clients, health: health, engine: engine}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.healthz)
	s.engine.GET("/products/:id", s.productDetail)
	s.engine.GET("/seen", s.seenBody)
	s.engine.GET("/suppliers/:id", s.supplierDetail)
	s.engine.GET("/checkout", s.checkoutSummary)
	s.engine.POST("/checkout", s.checkoutProcess)

	// unauthenticated helpers for local development
	if gin.Mode() != gin.ReleaseMode {
		s.engine.DELETE("/products/:id/cache", s.invalidateProduct)
		s.engine.POST("/login", s.login)
		s.engine.POST("/logout", s.logout)
	}
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.cfg.Addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info().Msg("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
