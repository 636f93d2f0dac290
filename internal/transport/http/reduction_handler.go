package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "aeroreduce/internal/errors"
	"aeroreduce/internal/middleware"
	api "aeroreduce/pkg/contracts/api/v1"
)

// ReductionHandler serves the case and sweep reduction endpoints
type ReductionHandler struct {
	service      ReductionService
	validator    *middleware.RequestValidator
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewReductionHandler creates a new reduction handler
func NewReductionHandler(service ReductionService, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *ReductionHandler {
	return &ReductionHandler{
		service:      service,
		validator:    middleware.NewRequestValidator(logger),
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("handler", "reduction")),
	}
}

// RegisterRoutes mounts the reduction routes under the API version prefix
func (h *ReductionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/cases/reduce", h.ReduceCase)
	r.Post("/sweeps/reduce", h.ReduceSweep)
}

// ReduceCase handles POST /api/v1/cases/reduce
func (h *ReductionHandler) ReduceCase(w http.ResponseWriter, r *http.Request) {
	var req api.CaseRequest
	if err := h.validator.Decode(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	resp, err := h.service.ReduceCase(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// ReduceSweep handles POST /api/v1/sweeps/reduce. Failed cases are reported
// in the response body; only an aborted sweep is an error response.
func (h *ReductionHandler) ReduceSweep(w http.ResponseWriter, r *http.Request) {
	var req api.SweepRequest
	if err := h.validator.Decode(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	resp, err := h.service.ReduceSweep(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if len(resp.Results) == 0 && len(resp.Failures) > 0 {
		h.logger.WarnContext(r.Context(), "every case of the sweep failed",
			slog.String("run_id", resp.RunID),
			slog.Int("failed", len(resp.Failures)))
		render.Status(r, http.StatusUnprocessableEntity)
	}
	render.JSON(w, r, resp)
}
