package rest

import (
	"net/http"

	"recall-notes-backend/internal/application/services"
	"recall-notes-backend/internal/infrastructure/observability"
	"recall-notes-backend/internal/interfaces/http/rest/handlers"
	"recall-notes-backend/internal/interfaces/http/rest/middleware"
	"recall-notes-backend/pkg/api"
	appErrors "recall-notes-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Options tunes the router. The zero value serves the API without CORS or
// a metrics endpoint.
type Options struct {
	EnableCORS     bool
	AllowedOrigins []string
	MetricsPath    string
	MaxBodyBytes   int64
	Debug          bool
}

// Router creates and configures the HTTP router
type Router struct {
	service *services.RecordService
	metrics *observability.Collector
	logger  *zap.Logger
	opts    Options
}

// NewRouter creates a new router instance. metrics may be nil.
func NewRouter(
	service *services.RecordService,
	metrics *observability.Collector,
	logger *zap.Logger,
	opts Options,
) *Router {
	return &Router{
		service: service,
		metrics: metrics,
		logger:  logger,
		opts:    opts,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()
	errHandler := appErrors.NewErrorHandler(rt.logger, rt.opts.Debug)

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(rt.logger))
	if rt.metrics != nil {
		router.Use(middleware.Metrics(rt.metrics))
	}
	router.Use(errHandler.Middleware)

	if rt.opts.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	health := handlers.NewHealthHandler(rt.service, errHandler, rt.logger)
	router.Get("/health", health.Health)
	router.Get("/ready", health.Ready)

	router.Get("/openapi.yaml", api.YAMLHandler())
	router.Get("/openapi.json", api.JSONHandler())

	if rt.metrics != nil && rt.opts.MetricsPath != "" {
		router.Handle(rt.opts.MetricsPath, rt.metrics.Handler())
	}

	users := handlers.NewUserHandler(rt.service, errHandler, rt.logger, rt.opts.MaxBodyBytes)
	notes := handlers.NewNoteHandler(rt.service, errHandler, rt.logger, rt.opts.MaxBodyBytes)
	recalls := handlers.NewRecallHandler(rt.service, errHandler, rt.logger, rt.opts.MaxBodyBytes)

	router.Route("/users", func(r chi.Router) {
		r.Post("/", users.CreateUser)
		r.Route("/{userID}", func(r chi.Router) {
			r.Get("/", users.GetUser)
			r.Post("/notes", notes.CreateNote)
			r.Get("/notes", notes.ListNotes)
			r.Post("/fda-food-recalls", recalls.LookupRecalls)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errHandler.Handle(w, r, appErrors.NewNotFoundError("Route"))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errHandler.Handle(w, r, &appErrors.AppError{
			Type:       appErrors.ErrorTypeValidation,
			Message:    "Method not allowed",
			HTTPStatus: http.StatusMethodNotAllowed,
		})
	})

	return router
}
