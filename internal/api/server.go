// Package api provides the HTTP API server and handlers for the LuxList application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/luxlistapp/luxlist-server/internal/config"
	"github.com/luxlistapp/luxlist-server/internal/ratelimit"
	"github.com/luxlistapp/luxlist-server/internal/service"
	"github.com/luxlistapp/luxlist-server/internal/store"
	"github.com/luxlistapp/luxlist-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store     *store.Store
	inventory *service.InventoryService
	validator *validation.Validator
	limiter   *ratelimit.KeyedRateLimiter
	router    *chi.Mux
	api       huma.API
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, st *store.Store, inventory *service.InventoryService, limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	humaConfig := huma.DefaultConfig(cfg.Server.Name, "1.0.0")
	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:     st,
		inventory: inventory,
		validator: validation.New(),
		limiter:   limiter,
		router:    router,
		api:       api,
		logger:    logger,
	}

	s.setupMiddleware()
	s.registerHealthRoutes()
	s.registerInventoryRoutes()
	s.registerExportRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	// The companion app is served from its own origin during development.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if s.limiter != nil {
		s.router.Use(RateLimitMiddleware(s.limiter, s.logger))
	}
}
