package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the application
type Paths struct {
	ExecutableDir string
	DataDir       string
	ReportsDir    string
	CacheDir      string
	LogsDir       string

	// Report subdirectories
	FlowReportsDir    string
	QualityReportsDir string

	// Well-known files
	FlowExportCSV     string
	QualityExportCSV  string
	DashboardWorkbook string
}

// GetPaths returns the application paths relative to the executable location.
// All paths are relative to the executable directory, never the current
// working directory.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	return pathsFor(filepath.Dir(exe)), nil
}

// pathsFor lays out the directory structure under one root:
//
//	data/
//	  flow_meter.csv       (totalizer export)
//	  water_quality.csv    (quality export)
//	  reports/             (generated CSV reports)
//	    flow/
//	    quality/
//	  cache/
//	logs/
func pathsFor(exeDir string) *Paths {
	dataDir := filepath.Join(exeDir, DefaultDataDir)
	reportsDir := filepath.Join(dataDir, DefaultReportsSubdir)

	return &Paths{
		ExecutableDir:     exeDir,
		DataDir:           dataDir,
		ReportsDir:        reportsDir,
		CacheDir:          filepath.Join(dataDir, DefaultCacheSubdir),
		LogsDir:           filepath.Join(exeDir, DefaultLogsDir),
		FlowReportsDir:    filepath.Join(reportsDir, "flow"),
		QualityReportsDir: filepath.Join(reportsDir, "quality"),
		FlowExportCSV:     filepath.Join(dataDir, "flow_meter.csv"),
		QualityExportCSV:  filepath.Join(dataDir, "water_quality.csv"),
		DashboardWorkbook: filepath.Join(reportsDir, "utility_dashboard.xlsx"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.ReportsDir,
		p.FlowReportsDir,
		p.QualityReportsDir,
		p.CacheDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
		if logger != nil {
			logger.Debug("Ensured directory exists",
				slog.String("directory", dir))
		}
	}

	return nil
}

// GetRelativePath returns a path relative to the executable directory
func (p *Paths) GetRelativePath(subpath string) string {
	return filepath.Join(p.ExecutableDir, subpath)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetReportPath returns the path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetFlowReportPath returns the path for a flow report file
func (p *Paths) GetFlowReportPath(filename string) string {
	return filepath.Join(p.FlowReportsDir, filename)
}

// GetQualityReportPath returns the path for a quality report file
func (p *Paths) GetQualityReportPath(filename string) string {
	return filepath.Join(p.QualityReportsDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetCachePath returns the path for a cache file
func (p *Paths) GetCachePath(filename string) string {
	return filepath.Join(p.CacheDir, filename)
}

// GetDailyFlowCSVPath returns the path for a daily flow CSV file
// (e.g., flow_daily_20240115.csv)
func (p *Paths) GetDailyFlowCSVPath(date time.Time) string {
	filename := fmt.Sprintf("flow_daily_%s.csv", date.Format("20060102"))
	return filepath.Join(p.FlowReportsDir, filename)
}

// GetParameterCSVPath returns the path for a per-parameter compliance CSV
// file (e.g., ETP_TDS_compliance.csv)
func (p *Paths) GetParameterCSVPath(parameter string) string {
	filename := fmt.Sprintf("%s_compliance.csv", sanitizeFilename(parameter))
	return filepath.Join(p.QualityReportsDir, filename)
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution() {
	logger := slog.Default()
	if logger == nil {
		return
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("executable", p.ExecutableDir),
			slog.String("data", p.DataDir),
			slog.String("reports", p.ReportsDir),
			slog.String("cache", p.CacheDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("report_files",
			slog.String("flow_export", p.FlowExportCSV),
			slog.String("quality_export", p.QualityExportCSV),
			slog.String("dashboard_workbook", p.DashboardWorkbook),
		))
}

// sanitizeFilename replaces characters that are unsafe in report filenames.
func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		case r == ' ', r == '(', r == ')', r == '.':
			out = append(out, '_')
		}
	}
	return string(out)
}
