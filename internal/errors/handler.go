package errors

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"predstats/internal/report"
	"predstats/internal/stats"
)

// ErrorHandler provides centralized error handling for HTTP handlers
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError maps an error to the API error envelope and responds. Known
// domain errors get specific codes; anything else is an internal error.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	apiErr := h.classify(err)

	if apiErr.StatusCode >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	} else {
		h.logger.WarnContext(r.Context(), "request rejected",
			slog.String("path", r.URL.Path),
			slog.Int("status", apiErr.StatusCode),
			slog.String("error", err.Error()))
	}

	if renderErr := render.Render(w, r, NewErrorResponse(apiErr)); renderErr != nil {
		http.Error(w, apiErr.Message, apiErr.StatusCode)
	}
}

// classify maps domain errors onto API errors.
func (h *ErrorHandler) classify(err error) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	var emptyCol *stats.EmptyColumnError
	if stderrors.As(err, &emptyCol) {
		return NewWithDetails(http.StatusUnprocessableEntity, "EMPTY_COLUMN", emptyCol.Error(), emptyCol.Column)
	}

	var nonNumeric *stats.NonNumericColumnError
	if stderrors.As(err, &nonNumeric) {
		return NewWithDetails(http.StatusUnprocessableEntity, "NON_NUMERIC_COLUMN", nonNumeric.Error(), nonNumeric.Column)
	}

	if stderrors.Is(err, report.ErrSourceUnavailable) {
		return SourceUnavailableError(err)
	}
	if stderrors.Is(err, report.ErrNoMatchingRows) {
		return NewWithDetails(ErrEmptyDataset.StatusCode, ErrEmptyDataset.ErrorCode, ErrEmptyDataset.Message, err.Error())
	}

	return NewWithDetails(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error", err.Error())
}
