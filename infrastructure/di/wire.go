//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"beadloom/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideMetrics,
	ProvideMatchRepository,
	ProvideMatchLocker,
	ProvideSQLiteStore,
	ProvideArchiveRepository,
	ProvideRatingRepository,
	ProvideHub,
	ProvideEventPublisher,
	ProvideMoveValidator,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
