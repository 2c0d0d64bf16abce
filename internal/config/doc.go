// Package config provides centralized configuration management for the
// water utility analytics service. It handles loading configuration from
// multiple sources, validation, and a type-safe API for accessing values
// throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. Configuration files (YAML)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern WPL_* for namespacing:
//
//	WPL_SERVER_PORT=8080
//	WPL_LOGGING_LEVEL=info
//	WPL_PATHS_FLOW_FILE=data/flow_meter.csv
//	WPL_ENGINE_TIMEZONE=Asia/Kolkata
//	WPL_ENGINE_ANOMALY_WINDOW=24
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which handles all file system paths relative to the executable location:
//
//	paths, err := config.GetPaths()
//	reportPath := paths.GetReportPath("summary.csv")
//	flowReport := paths.GetFlowReportPath("daily_flow.csv")
//
// # Validation
//
// All configuration is validated at load time: the port and timeouts must
// be in range, the shift boundaries must be distinct hours, and the
// configured timezone must resolve.
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
