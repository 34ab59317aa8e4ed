package rest

import (
	"net/http"

	"beadloom/application/commands/bus"
	querybus "beadloom/application/queries/bus"
	"beadloom/infrastructure/config"
	"beadloom/interfaces/http/rest/handlers"
	"beadloom/interfaces/http/rest/middleware"
	"beadloom/interfaces/ws"
	pkgerrors "beadloom/pkg/errors"
	"beadloom/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	hub        *ws.Hub
	metrics    *observability.Metrics
	cfg        *config.Config
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	hub *ws.Hub,
	metrics *observability.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		hub:        hub,
		metrics:    metrics,
		cfg:        cfg,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Health and readiness
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if rt.cfg.EnableMetrics {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	errorHandler := pkgerrors.NewErrorHandler(rt.logger, rt.cfg.IsDevelopment())

	// API routes
	router.Route("/api/v1", func(r chi.Router) {
		matchHandler := handlers.NewMatchHandler(rt.commandBus, rt.queryBus, errorHandler, rt.logger)
		r.Route("/match", func(r chi.Router) {
			r.Post("/", matchHandler.CreateMatch)
			r.Route("/{matchId}", func(r chi.Router) {
				r.Get("/", matchHandler.GetMatch)
				r.Get("/log", matchHandler.GetLog)
				r.Get("/export", matchHandler.ExportMatch)
				r.Get("/insights", matchHandler.GetInsights)
				r.Post("/join", matchHandler.JoinMatch)
				r.Post("/move", matchHandler.SubmitMove)
				r.Post("/twist", matchHandler.DrawTwist)
				r.Post("/concord", matchHandler.SealConcord)
				r.Post("/judge", matchHandler.JudgeMatch)
			})
		})

		ratingHandler := handlers.NewRatingHandler(rt.commandBus, rt.queryBus, errorHandler, rt.logger)
		r.Route("/ratings", func(r chi.Router) {
			r.Get("/", ratingHandler.GetStandings)
			r.Post("/", ratingHandler.RecordResult)
		})
	})

	// Live frames
	router.Get("/ws/{matchId}", rt.hub.HandleSubscribe)

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
