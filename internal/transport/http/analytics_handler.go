package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "waterpulse/internal/errors"
	"waterpulse/internal/infrastructure"
	"waterpulse/internal/services"
)

// AnalyticsHandler handles flow and quality analytics HTTP requests
type AnalyticsHandler struct {
	service      *services.AnalyticsService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service *services.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "analytics")),
		errorHandler: apierrors.NewErrorHandler(logger, false),
	}
}

// RegisterRoutes registers the analytics routes
func (h *AnalyticsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/flow", func(r chi.Router) {
		r.Get("/daily", h.GetDailyFlow)
		r.Get("/shift", h.GetShiftFlow)
		r.Get("/heatmap", h.GetHeatmap)
		r.Get("/monthly", h.GetMonthlyFlow)
		r.Get("/anomalies", h.GetAnomalies)
	})
	r.Route("/quality", func(r chi.Router) {
		r.Get("/compliance", h.GetCompliance)
		r.Get("/monthly", h.GetMonthlyCompliance)
		r.Get("/breaches", h.GetBreachEvents)
		r.Get("/latest-breaches", h.GetLatestBreaches)
		r.Get("/recommendations", h.GetRecommendations)
	})
	r.Get("/correlation", h.GetCorrelation)
	r.Post("/ingest", h.Ingest)
}

// ingestRequest names the export files to load.
type ingestRequest struct {
	FlowPath    string `json:"flow_path"`
	QualityPath string `json:"quality_path"`
}

// Ingest handles POST /api/ingest
func (h *AnalyticsHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ingestRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if req.FlowPath == "" || req.QualityPath == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("flow_path",
			"flow_path and quality_path are required"))
		return
	}

	if err := h.service.Load(ctx, req.FlowPath, req.QualityPath); err != nil {
		h.logger.ErrorContext(ctx, "ingest failed",
			slog.String("error", err.Error()),
			slog.String("flow_path", req.FlowPath),
			slog.String("quality_path", req.QualityPath))
		h.renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, map[string]string{"status": "loaded"})
}

// GetDailyFlow handles GET /api/flow/daily
func (h *AnalyticsHandler) GetDailyFlow(w http.ResponseWriter, r *http.Request) {
	rangeDays, ok := h.rangeDays(w, r)
	if !ok {
		return
	}
	rows, err := h.service.DailyFlow(r.Context(), rangeDays)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, rows)
}

// GetShiftFlow handles GET /api/flow/shift
func (h *AnalyticsHandler) GetShiftFlow(w http.ResponseWriter, r *http.Request) {
	rangeDays, ok := h.rangeDays(w, r)
	if !ok {
		return
	}
	rows, err := h.service.ShiftFlow(r.Context(), rangeDays)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, rows)
}

// GetHeatmap handles GET /api/flow/heatmap
func (h *AnalyticsHandler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	heat, err := h.service.Heatmap(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, heat)
}

// GetMonthlyFlow handles GET /api/flow/monthly
func (h *AnalyticsHandler) GetMonthlyFlow(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.MonthlyFlow(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, rows)
}

// GetAnomalies handles GET /api/flow/anomalies
func (h *AnalyticsHandler) GetAnomalies(w http.ResponseWriter, r *http.Request) {
	points, err := h.service.Anomalies(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, points)
}

// GetCompliance handles GET /api/quality/compliance
func (h *AnalyticsHandler) GetCompliance(w http.ResponseWriter, r *http.Request) {
	rangeDays, ok := h.rangeDays(w, r)
	if !ok {
		return
	}
	rows, err := h.service.Compliance(r.Context(), r.URL.Query().Get("parameter"), rangeDays)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, rows)
}

// GetMonthlyCompliance handles GET /api/quality/monthly
func (h *AnalyticsHandler) GetMonthlyCompliance(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.MonthlyCompliance(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, rows)
}

// GetBreachEvents handles GET /api/quality/breaches
func (h *AnalyticsHandler) GetBreachEvents(w http.ResponseWriter, r *http.Request) {
	rangeDays, ok := h.rangeDays(w, r)
	if !ok {
		return
	}

	minDuration := 0.0
	if raw := r.URL.Query().Get("min_duration_min"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("min_duration_min",
				"min_duration_min must be a non-negative number"))
			return
		}
		minDuration = v
	}

	events, err := h.service.BreachEvents(r.Context(), r.URL.Query().Get("parameter"), rangeDays, minDuration)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, events)
}

// GetLatestBreaches handles GET /api/quality/latest-breaches
func (h *AnalyticsHandler) GetLatestBreaches(w http.ResponseWriter, r *http.Request) {
	breaches, err := h.service.LatestBreaches(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, breaches)
}

// GetRecommendations handles GET /api/quality/recommendations
func (h *AnalyticsHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	tips, err := h.service.Recommendations(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, map[string][]string{"recommendations": tips})
}

// GetCorrelation handles GET /api/correlation
func (h *AnalyticsHandler) GetCorrelation(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Correlation(r.Context(), r.URL.Query().Get("parameter"))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// rangeDays parses the optional range_days query parameter.
func (h *AnalyticsHandler) rangeDays(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("range_days")
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("range_days",
			"range_days must be a positive integer"))
		return 0, false
	}
	return v, true
}

// renderServiceError maps service sentinels onto problem responses.
func (h *AnalyticsHandler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	traceID := infrastructure.GetTraceID(r.Context())
	render.Render(w, r, apierrors.MapServiceError(err, traceID))
}
