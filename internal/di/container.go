// Package di provides dependency injection configuration for the LuxList server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/luxlistapp/luxlist-server/internal/config"
	"github.com/luxlistapp/luxlist-server/internal/di/providers"
	"github.com/luxlistapp/luxlist-server/internal/export"
	"github.com/luxlistapp/luxlist-server/internal/logger"
	"github.com/luxlistapp/luxlist-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideFormatter)
	do.Provide(injector, providers.ProvideInventoryService)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)

	// Business services
	_ = do.MustInvoke[*export.Formatter](injector)
	_ = do.MustInvoke[*service.InventoryService](injector)

	// Server
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
