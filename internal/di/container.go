package di

import (
	"recall-notes-backend/internal/application/ports"
	"recall-notes-backend/internal/application/services"
	"recall-notes-backend/internal/config"
	"recall-notes-backend/internal/infrastructure/observability"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	LogLevel zap.AtomicLevel
	Logger   *zap.Logger
	Metrics  *observability.Collector
	Store    ports.RecordStore
	Recalls  ports.RecallLookup
	Service  *services.RecordService
	Router   *chi.Mux
}

// ApplyConfig updates the settings that can change without a restart.
// Everything else in cfg is ignored until the process restarts.
func (c *Container) ApplyConfig(cfg *config.Config) {
	level := ProvideAtomicLevel(cfg).Level()
	if level != c.LogLevel.Level() {
		c.Logger.Info("Changing log level",
			zap.Stringer("from", c.LogLevel.Level()),
			zap.Stringer("to", level),
		)
		c.LogLevel.SetLevel(level)
	}
}
