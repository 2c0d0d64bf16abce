package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"waterpulse/internal/config"
	"waterpulse/internal/infrastructure"
	"waterpulse/internal/services"
)

func main() {
	flowFile := flag.String("flow", "", "flow totalizer CSV export (defaults to data/flow_meter.csv relative to executable)")
	qualityFile := flag.String("quality", "", "water quality CSV export (defaults to data/water_quality.csv relative to executable)")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	if *flowFile == "" {
		*flowFile = paths.FlowExportCSV
	}
	if *qualityFile == "" {
		*qualityFile = paths.QualityExportCSV
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("analyzer.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	ctx := context.Background()
	start := time.Now()

	analytics, err := services.NewAnalyticsService(cfg.Engine, logger, nil)
	if err != nil {
		logger.Error("Failed to initialize analytics service", "error", err)
		os.Exit(1)
	}

	logger.Info("Loading exports",
		slog.String("flow_file", *flowFile),
		slog.String("quality_file", *qualityFile))

	if err := analytics.Load(ctx, *flowFile, *qualityFile); err != nil {
		logger.Error("Failed to load exports", "error", err)
		os.Exit(1)
	}

	reports := services.NewReportService(analytics, paths, logger)
	files, err := reports.GenerateAll(ctx)
	if err != nil {
		logger.Error("Report generation failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Report generation complete",
		slog.Int("files", len(files)),
		slog.Duration("elapsed", time.Since(start)))

	fmt.Printf("Wrote %d report files under %s\n", len(files), paths.ReportsDir)
	for _, f := range files {
		fmt.Printf("  %s\n", f)
	}
}
