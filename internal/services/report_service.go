package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"waterpulse/internal/config"
	"waterpulse/internal/exporter"
)

// ReportService generates the on-disk report set from the loaded dataset:
// one CSV per rollup table plus the combined dashboard workbook.
type ReportService struct {
	analytics *AnalyticsService
	paths     *config.Paths
	reports   *exporter.ReportExporter
	workbook  *exporter.WorkbookExporter
	logger    *slog.Logger
}

// NewReportService creates a new report service
func NewReportService(analytics *AnalyticsService, paths *config.Paths, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		analytics: analytics,
		paths:     paths,
		reports:   exporter.NewReportExporter(paths),
		workbook:  exporter.NewWorkbookExporter(paths),
		logger:    logger.With(slog.String("component", "report_service")),
	}
}

// GenerateAll writes every report and returns the written file paths. A
// dataset must be loaded first.
func (s *ReportService) GenerateAll(ctx context.Context) ([]string, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, config.ReportGenerationTimeout)
	defer cancel()

	daily, err := s.analytics.DailyFlow(ctx, 0)
	if err != nil {
		return nil, err
	}
	shifts, err := s.analytics.ShiftFlow(ctx, 0)
	if err != nil {
		return nil, err
	}
	heat, err := s.analytics.Heatmap(ctx)
	if err != nil {
		return nil, err
	}
	monthlyFlow, err := s.analytics.MonthlyFlow(ctx)
	if err != nil {
		return nil, err
	}
	compliance, err := s.analytics.Compliance(ctx, "", 0)
	if err != nil {
		return nil, err
	}
	monthlyCompliance, err := s.analytics.MonthlyCompliance(ctx)
	if err != nil {
		return nil, err
	}
	breaches, err := s.analytics.BreachEvents(ctx, "", 0, 0)
	if err != nil {
		return nil, err
	}
	anomalies, err := s.analytics.Anomalies(ctx)
	if err != nil {
		return nil, err
	}
	correlation, err := s.analytics.Correlation(ctx, "")
	if err != nil {
		return nil, err
	}
	tips, err := s.analytics.Recommendations(ctx)
	if err != nil {
		return nil, err
	}

	type job struct {
		path  string
		write func(string) error
	}
	jobs := []job{
		{"flow/daily_flow.csv", func(p string) error { return s.reports.ExportDailyFlow(daily, p) }},
		{"flow/shift_flow.csv", func(p string) error { return s.reports.ExportShiftFlow(shifts, p) }},
		{"flow/hour_day_heatmap.csv", func(p string) error { return s.reports.ExportHeatmap(&heat, p) }},
		{"flow/monthly_flow.csv", func(p string) error { return s.reports.ExportMonthlyFlow(monthlyFlow, p) }},
		{"flow/anomalies.csv", func(p string) error { return s.reports.ExportAnomalies(anomalies, p) }},
		{"quality/compliance.csv", func(p string) error { return s.reports.ExportCompliance(compliance, p) }},
		{"quality/monthly_compliance.csv", func(p string) error { return s.reports.ExportMonthlyCompliance(monthlyCompliance, p) }},
		{"quality/breach_events.csv", func(p string) error { return s.reports.ExportBreachEvents(breaches, p) }},
		{"quality/recommendations.csv", func(p string) error { return s.reports.ExportRecommendations(tips, p) }},
		{"correlation.csv", func(p string) error { return s.reports.ExportCorrelation(&correlation, p) }},
	}

	written := make([]string, 0, len(jobs)+1)
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := j.write(j.path); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", j.path, err)
		}
		written = append(written, j.path)
	}

	if err := s.workbook.ExportDashboard(exporter.DashboardData{
		DailyFlow:         daily,
		ShiftFlow:         shifts,
		MonthlyFlow:       monthlyFlow,
		Compliance:        compliance,
		MonthlyCompliance: monthlyCompliance,
		BreachEvents:      breaches,
		Recommendations:   tips,
	}); err != nil {
		return nil, fmt.Errorf("failed to write dashboard workbook: %w", err)
	}
	written = append(written, s.paths.DashboardWorkbook)

	s.logger.InfoContext(ctx, "report set generated",
		slog.Int("files", len(written)),
		slog.Duration("duration", time.Since(start)))

	return written, nil
}

// ReportFile resolves a generated report by category and filename. Category
// is "flow", "quality" or "" for the reports root. Names with path
// separators are rejected.
func (s *ReportService) ReportFile(category, filename string) (string, error) {
	if filename == "" || strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		return "", fmt.Errorf("invalid report name %q", filename)
	}

	var path string
	switch category {
	case "flow":
		path = s.paths.GetFlowReportPath(filename)
	case "quality":
		path = s.paths.GetQualityReportPath(filename)
	case "":
		path = s.paths.GetReportPath(filename)
	default:
		return "", fmt.Errorf("unknown report category %q", category)
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("report %s: %w", filename, err)
	}
	return path, nil
}
