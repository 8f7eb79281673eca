package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"predstats/internal/middleware"
)

// RouterConfig carries the collaborators the router wires together.
type RouterConfig struct {
	Service       ReportService
	Runs          RunStore
	DefaultSource string
	Logger        *slog.Logger
}

// NewRouter assembles the middleware chain and all routes.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))

	NewHealthHandler().RegisterRoutes(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		NewReportHandler(cfg.Service, cfg.Runs, cfg.DefaultSource, logger).RegisterRoutes(r)
		NewSummaryHandler(cfg.Service, cfg.DefaultSource, logger).RegisterRoutes(r)
	})

	return r
}
