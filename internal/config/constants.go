package config

import "time"

// Application constants for the WaterPulse analytics service
const (
	// Directory names under the executable, laid out by pathsFor.
	DefaultDataDir       = "data"
	DefaultLogsDir       = "logs"
	DefaultReportsSubdir = "reports"
	DefaultCacheSubdir   = "cache"

	// Operation deadlines. Ingest covers reading and parsing both export
	// files; report generation additionally writes the full report set.
	IngestTimeout           = 5 * time.Minute
	ReportGenerationTimeout = 15 * time.Minute
)
