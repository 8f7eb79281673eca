package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "predstats/internal/errors"
	"predstats/internal/report"
	"predstats/internal/stats"
)

// SummaryHandler serves ad-hoc aggregations without persisting a run.
type SummaryHandler struct {
	service      ReportService
	defaultSrc   string
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(service ReportService, defaultSource string, logger *slog.Logger) *SummaryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryHandler{
		service:      service,
		defaultSrc:   defaultSource,
		logger:       logger,
		errorHandler: apierrors.NewErrorHandler(logger),
	}
}

// RegisterRoutes registers the summary routes
func (h *SummaryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/summary", h.GetSummary)
}

// GetSummary aggregates the source with a single reducer taken from the
// query string. Defaults to mean.
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	reducer := query.Get("reducer")
	if reducer == "" {
		reducer = "mean"
	}
	if _, ok := stats.ReducerByName(reducer); !ok {
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidReducer)
		return
	}

	req := report.Request{
		Source:   query.Get("source"),
		Team:     query.Get("team"),
		Reducers: []string{reducer},
	}
	if req.Source == "" {
		req.Source = h.defaultSrc
	}
	if req.Source == "" {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest, "MISSING_SOURCE",
			"No source URL given and no default configured", "source"))
		return
	}

	if raw := query.Get("season"); raw != "" {
		season, err := strconv.Atoi(raw)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusBadRequest, "INVALID_PARAMETER",
				"season must be an integer", raw))
			return
		}
		req.Season = season
	}

	h.logger.InfoContext(ctx, "ad-hoc summary requested",
		slog.String("reducer", reducer),
		slog.String("team", req.Team),
		slog.Int("season", req.Season))

	summary, err := h.service.Build(ctx, req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("X-Reducer", reducer)
	render.JSON(w, r, summary)
}
