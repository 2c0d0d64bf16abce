package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"waterpulse/internal/config"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	paths     config.PathsConfig
	analytics *AnalyticsService
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Dataset   *DatasetHealth         `json:"dataset,omitempty"`
}

// DatasetHealth describes the currently loaded snapshot.
type DatasetHealth struct {
	Loaded          bool      `json:"loaded"`
	LoadedAt        time.Time `json:"loaded_at,omitempty"`
	FlowReadings    int       `json:"flow_readings"`
	QualityReadings int       `json:"quality_readings"`
	Parameters      []string  `json:"parameters,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version string, paths config.PathsConfig, analytics *AnalyticsService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		paths:     paths,
		analytics: analytics,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// Check builds the current health report. The service is "degraded" until a
// dataset has been loaded, "healthy" afterwards.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
			"goroutines":     runtime.NumGoroutine(),
			"uptime_seconds": time.Since(s.startTime).Seconds(),
		},
	}

	dataset := &DatasetHealth{}
	if s.analytics != nil {
		if ds, err := s.analytics.Snapshot(); err == nil {
			dataset.Loaded = true
			dataset.LoadedAt = ds.LoadedAt()
			dataset.FlowReadings = len(ds.Flow)
			dataset.QualityReadings = len(ds.Quality)
			dataset.Parameters = ds.Parameters()
		}
	}
	if !dataset.Loaded {
		status.Status = "degraded"
	}
	status.Dataset = dataset

	s.logger.DebugContext(ctx, "health check",
		slog.String("status", status.Status),
		slog.Bool("dataset_loaded", dataset.Loaded))

	return status
}

// Liveness reports whether the process is running.
func (s *HealthService) Liveness(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now(),
	}
}

// Readiness reports whether the service can serve analytics queries.
func (s *HealthService) Readiness(ctx context.Context) map[string]interface{} {
	ready := false
	if s.analytics != nil {
		if _, err := s.analytics.Snapshot(); err == nil {
			ready = true
		}
	}
	return map[string]interface{}{
		"ready":     ready,
		"timestamp": time.Now(),
	}
}

// Version returns version information
func (s *HealthService) Version() map[string]string {
	return map[string]string{
		"version": s.version,
	}
}
