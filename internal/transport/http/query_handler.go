package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "waterpulse/internal/errors"
	"waterpulse/internal/infrastructure"
	"waterpulse/internal/services"
	apiv1 "waterpulse/pkg/contracts/api/v1"
)

// QueryHandler dispatches planner action requests to the analytics service.
type QueryHandler struct {
	service      *services.AnalyticsService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(service *services.AnalyticsService, logger *slog.Logger) *QueryHandler {
	return &QueryHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "query")),
		errorHandler: apierrors.NewErrorHandler(logger, false),
	}
}

// RegisterRoutes registers the query routes
func (h *QueryHandler) RegisterRoutes(r chi.Router) {
	r.Post("/query", h.Dispatch)
}

// Dispatch handles POST /api/query.
// The body is an action envelope: {"action": "...", "params": {...}}.
func (h *QueryHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req apiv1.ActionRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	h.logger.InfoContext(ctx, "dispatching action",
		slog.String("action", req.Action),
		slog.String("parameter", req.Params.Parameter))

	resp, err := h.service.Dispatch(ctx, req)
	if err != nil {
		traceID := infrastructure.GetTraceID(ctx)
		render.Render(w, r, apierrors.MapServiceError(err, traceID))
		return
	}

	render.JSON(w, r, resp)
}
