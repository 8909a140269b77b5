//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/Stella-M-560/currency-bot-api/pkg/config"
	"github.com/Stella-M-560/currency-bot-api/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Infrastructure
		ProvideLogger,
		ProvideCache,
		ProvideMetrics,
		ProvideRateSource,

		// Domain services
		ProvideNormalizer,
		ProvideResolver,
		ProvideAggregator,

		// Use cases
		ProvideConverter,
		ProvideHistory,

		// HTTP
		ProvideHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
