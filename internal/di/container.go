// Package di provides dependency injection configuration for the GamesHub server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/gameshubapp/gameshub-server/internal/auth"
	"github.com/gameshubapp/gameshub-server/internal/config"
	"github.com/gameshubapp/gameshub-server/internal/di/providers"
	"github.com/gameshubapp/gameshub-server/internal/logger"
	"github.com/gameshubapp/gameshub-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSessionStore)

	// Upstream clients
	do.Provide(injector, providers.ProvideCatalogClient)
	do.Provide(injector, providers.ProvideMailSender)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)
	do.Provide(injector, providers.ProvideResetTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideAccountService)
	do.Provide(injector, providers.ProvideLibraryService)
	do.Provide(injector, providers.ProvideGamesService)
	do.Provide(injector, providers.ProvideServices)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
// This triggers lazy initialization of the full dependency graph.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SessionStoreHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*auth.ResetTokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.AccountService](injector)
	_ = do.MustInvoke[*service.LibraryService](injector)
	_ = do.MustInvoke[*service.GamesService](injector)
	_ = do.MustInvoke[*service.Services](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
