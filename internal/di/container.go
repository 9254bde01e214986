// Package di provides dependency injection configuration for the PageTurn server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/pageturnapp/pageturn-server/internal/auth"
	"github.com/pageturnapp/pageturn-server/internal/config"
	"github.com/pageturnapp/pageturn-server/internal/di/providers"
	"github.com/pageturnapp/pageturn-server/internal/logger"
	"github.com/pageturnapp/pageturn-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Metadata layer
	do.Provide(injector, providers.ProvideISBNdbClient)
	do.Provide(injector, providers.ProvideOpenLibraryClient)

	// Classification layer
	do.Provide(injector, providers.ProvideClassifier)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideSubjectResolver)
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideLogService)
	do.Provide(injector, providers.ProvideRewindService)
	do.Provide(injector, providers.ProvideDiscoveryService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.ISBNdbClientHandle](injector)
	_ = do.MustInvoke[*providers.OpenLibraryClientHandle](injector)
	_ = do.MustInvoke[*providers.ClassifierHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.SubjectResolver](injector)
	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.LogService](injector)
	_ = do.MustInvoke[*service.RewindService](injector)
	_ = do.MustInvoke[*service.DiscoveryService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
