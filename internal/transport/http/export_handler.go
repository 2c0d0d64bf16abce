package http

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "waterpulse/internal/errors"
	"waterpulse/internal/infrastructure"
	"waterpulse/internal/services"
)

// ExportHandler triggers report generation over HTTP.
type ExportHandler struct {
	service *services.ReportService
	logger  *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(service *services.ReportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "export")),
	}
}

// RegisterRoutes registers the export routes
func (h *ExportHandler) RegisterRoutes(r chi.Router) {
	r.Post("/export", h.GenerateReports)
	r.Get("/reports/{filename}", h.DownloadReport)
	r.Get("/reports/{category}/{filename}", h.DownloadReport)
}

// GenerateReports handles POST /api/export. It writes the full report set
// and responds with the written file paths.
func (h *ExportHandler) GenerateReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	files, err := h.service.GenerateAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "report generation failed",
			slog.String("error", err.Error()))
		traceID := infrastructure.GetTraceID(ctx)
		render.Render(w, r, apierrors.MapServiceError(err, traceID))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "generated",
		"files":  files,
	})
}

// DownloadReport handles GET /api/reports/{category}/{filename}, serving a
// previously generated report as a CSV download.
func (h *ExportHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	filename := chi.URLParam(r, "filename")

	path, err := h.service.ReportFile(category, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			render.Render(w, r, apierrors.NotFoundError("report "+filename))
			return
		}
		render.Render(w, r, apierrors.ErrValidation("filename", err.Error()))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	http.ServeFile(w, r, path)
}
