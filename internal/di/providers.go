package di

import (
	"net/http"
	"strings"

	"recall-notes-backend/internal/application/ports"
	"recall-notes-backend/internal/application/services"
	"recall-notes-backend/internal/config"
	"recall-notes-backend/internal/infrastructure/observability"
	"recall-notes-backend/internal/infrastructure/openfda"
	"recall-notes-backend/internal/interfaces/http/rest"
	"recall-notes-backend/internal/repository/memory"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ProvideAtomicLevel creates the log level shared by the logger and the
// config watcher, so a reload can change verbosity without a restart.
func ProvideAtomicLevel(cfg *config.Config) zap.AtomicLevel {
	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	return zap.NewAtomicLevelAt(level)
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	zapCfg.Level = level
	zapCfg.Encoding = strings.ToLower(cfg.Logging.Format)
	if zapCfg.Encoding == "json" {
		zapCfg.EncoderConfig = zap.NewProductionEncoderConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("environment", string(cfg.Environment))), nil
}

// ProvideMetrics creates the Prometheus collector, or nil when metrics are disabled.
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return observability.NewCollector(cfg.Metrics.Namespace)
}

// ProvideRecordStore creates the in-memory record store
func ProvideRecordStore() ports.RecordStore {
	return memory.NewStore()
}

// ProvideHTTPClient creates the client used for upstream calls. Per-call
// deadlines come from the openFDA timeout, not the client.
func ProvideHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 10
	return &http.Client{Transport: transport}
}

// ProvideRecallLookup creates the openFDA client
func ProvideRecallLookup(
	cfg *config.Config,
	httpClient *http.Client,
	metrics *observability.Collector,
	logger *zap.Logger,
) ports.RecallLookup {
	cb := cfg.OpenFDA.CircuitBreaker
	return openfda.NewClient(
		openfda.Config{
			BaseURL: cfg.OpenFDA.BaseURL,
			Timeout: cfg.OpenFDA.Timeout,
			Breaker: openfda.BreakerConfig{
				Enabled:          cb.Enabled,
				MaxRequests:      cb.MaxRequests,
				Interval:         cb.Interval,
				Timeout:          cb.Timeout,
				FailureThreshold: cb.FailureThreshold,
				MinRequests:      cb.MinRequests,
			},
		},
		httpClient,
		metrics,
		logger,
	)
}

// ProvideRecordService creates the application service
func ProvideRecordService(
	store ports.RecordStore,
	recalls ports.RecallLookup,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.RecordService {
	return services.NewRecordService(store, recalls, metrics, logger)
}

// ProvideRouter builds the HTTP router
func ProvideRouter(
	cfg *config.Config,
	service *services.RecordService,
	metrics *observability.Collector,
	logger *zap.Logger,
) *chi.Mux {
	return rest.NewRouter(service, metrics, logger, rest.Options{
		EnableCORS:     cfg.CORS.Enabled,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MetricsPath:    cfg.Metrics.Path,
		MaxBodyBytes:   cfg.Server.MaxRequestSize,
		Debug:          cfg.IsDevelopment(),
	}).Setup()
}
