package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waterpulse/internal/config"
	"waterpulse/pkg/contracts/domain"
)

func reportPaths(t *testing.T) *config.Paths {
	t.Helper()
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	reportsDir := filepath.Join(dataDir, "reports")
	p := &config.Paths{
		ExecutableDir:     root,
		DataDir:           dataDir,
		ReportsDir:        reportsDir,
		CacheDir:          filepath.Join(dataDir, "cache"),
		LogsDir:           filepath.Join(root, "logs"),
		FlowReportsDir:    filepath.Join(reportsDir, "flow"),
		QualityReportsDir: filepath.Join(reportsDir, "quality"),
		FlowExportCSV:     filepath.Join(dataDir, "flow_meter.csv"),
		QualityExportCSV:  filepath.Join(dataDir, "water_quality.csv"),
		DashboardWorkbook: filepath.Join(reportsDir, "utility_dashboard.xlsx"),
	}
	require.NoError(t, p.EnsureDirectories())
	return p
}

func seededReportService(t *testing.T) *ReportService {
	t.Helper()
	svc := newTestService(t)
	svc.LoadReadings(
		[]domain.FlowReading{
			flowAt(t, "2024-06-01 10:00", 10),
			flowAt(t, "2024-06-01 11:00", 15),
			flowAt(t, "2024-06-02 10:00", 8),
		},
		[]domain.QualityReading{
			qualityAt(t, "HUMIDITY (HUMIDITY)", "2024-06-01 10:00", 45, 30, 70),
			qualityAt(t, "HUMIDITY (HUMIDITY)", "2024-06-02 10:00", 90, 30, 70),
			qualityAt(t, "TDS (PPM)", "2024-06-01 10:00", 900, 100, 500),
		},
	)
	return NewReportService(svc, reportPaths(t), nil)
}

func TestGenerateAllWritesFullReportSet(t *testing.T) {
	rs := seededReportService(t)

	written, err := rs.GenerateAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, written, 11)

	assert.FileExists(t, rs.paths.GetFlowReportPath("daily_flow.csv"))
	assert.FileExists(t, rs.paths.GetFlowReportPath("shift_flow.csv"))
	assert.FileExists(t, rs.paths.GetFlowReportPath("hour_day_heatmap.csv"))
	assert.FileExists(t, rs.paths.GetFlowReportPath("monthly_flow.csv"))
	assert.FileExists(t, rs.paths.GetFlowReportPath("anomalies.csv"))
	assert.FileExists(t, rs.paths.GetQualityReportPath("compliance.csv"))
	assert.FileExists(t, rs.paths.GetQualityReportPath("monthly_compliance.csv"))
	assert.FileExists(t, rs.paths.GetQualityReportPath("breach_events.csv"))
	assert.FileExists(t, rs.paths.GetQualityReportPath("recommendations.csv"))
	assert.FileExists(t, rs.paths.GetReportPath("correlation.csv"))
	assert.FileExists(t, rs.paths.DashboardWorkbook)
}

func TestGenerateAllRequiresDataset(t *testing.T) {
	rs := NewReportService(newTestService(t), reportPaths(t), nil)

	_, err := rs.GenerateAll(context.Background())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestReportFile(t *testing.T) {
	rs := seededReportService(t)
	_, err := rs.GenerateAll(context.Background())
	require.NoError(t, err)

	path, err := rs.ReportFile("flow", "daily_flow.csv")
	require.NoError(t, err)
	assert.FileExists(t, path)

	path, err = rs.ReportFile("", "correlation.csv")
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = rs.ReportFile("flow", "missing.csv")
	assert.Error(t, err)

	_, err = rs.ReportFile("flow", "../secrets.csv")
	assert.Error(t, err)

	_, err = rs.ReportFile("cache", "daily_flow.csv")
	assert.Error(t, err)
}
