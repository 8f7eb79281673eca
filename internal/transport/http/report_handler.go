package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "predstats/internal/errors"
	"predstats/internal/report"
	"predstats/internal/store"
)

// ReportHandler handles report build and retrieval requests
type ReportHandler struct {
	service      ReportService
	runs         RunStore
	defaultSrc   string
	logger       *slog.Logger
	validate     *validator.Validate
	errorHandler *apierrors.ErrorHandler
}

// NewReportHandler creates a new report handler. defaultSource is used when a
// request omits its source URL; it may be empty, in which case the source is
// required on every request.
func NewReportHandler(service ReportService, runs RunStore, defaultSource string, logger *slog.Logger) *ReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportHandler{
		service:      service,
		runs:         runs,
		defaultSrc:   defaultSource,
		logger:       logger,
		validate:     validator.New(),
		errorHandler: apierrors.NewErrorHandler(logger),
	}
}

// RegisterRoutes registers the report routes
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Post("/", h.CreateReport)
		r.Get("/", h.ListReports)
		r.Get("/{id}", h.GetReport)
	})
}

// CreateReport builds a report from the posted request and persists the run.
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req report.Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if req.Source == "" {
		req.Source = h.defaultSrc
	}

	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(validationDetails(err)))
		return
	}

	h.logger.InfoContext(ctx, "building report",
		slog.String("source", req.Source),
		slog.String("team", req.Team),
		slog.Int("season", req.Season))

	summary, err := h.service.Build(ctx, req)
	if err != nil {
		h.recordRun(r, store.Run{
			ID:        "failed-" + strconv.FormatInt(time.Now().UnixNano(), 10),
			Source:    req.Source,
			Team:      req.Team,
			Season:    req.Season,
			Status:    store.StatusFailed,
			Error:     err.Error(),
			CreatedAt: time.Now().UTC(),
		})
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.recordRun(r, store.Run{
		ID:        summary.ID,
		Source:    summary.Source,
		Team:      summary.Team,
		Season:    summary.Season,
		Status:    store.StatusCompleted,
		Summary:   summary,
		CreatedAt: summary.GeneratedAt,
	})

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, summary)
}

// recordRun persists a run, logging rather than failing the request when the
// store is unavailable. The report itself already succeeded or failed on its
// own terms.
func (h *ReportHandler) recordRun(r *http.Request, run store.Run) {
	if err := h.runs.SaveRun(r.Context(), run); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to persist report run",
			slog.String("run_id", run.ID),
			slog.String("error", err.Error()))
	}
}

// ListReports returns recent report runs, newest first.
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(errors.New("limit must be a positive integer")))
			return
		}
		limit = parsed
	}

	runs, err := h.runs.ListRuns(r.Context(), limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}

	render.JSON(w, r, runs)
}

// GetReport returns a single report run by ID.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.runs.GetRun(r.Context(), id)
	if errors.Is(err, store.ErrRunNotFound) {
		h.errorHandler.HandleError(w, r, apierrors.ErrRunNotFound)
		return
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, run)
}

// validationDetails flattens validator errors into the API's field errors.
func validationDetails(err error) []apierrors.ValidationError {
	var details []apierrors.ValidationError
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		for _, fe := range fieldErrors {
			details = append(details, apierrors.ValidationError{
				Field:   fe.Field(),
				Message: "failed " + fe.Tag() + " validation",
			})
		}
	}
	return details
}
