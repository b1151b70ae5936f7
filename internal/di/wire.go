//go:build wireinject
// +build wireinject

package di

import (
	"recall-notes-backend/internal/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideAtomicLevel,
	ProvideLogger,
	ProvideMetrics,
	ProvideRecordStore,
	ProvideHTTPClient,
	ProvideRecallLookup,
	ProvideRecordService,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
