package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"waterpulse/internal/analytics"
	"waterpulse/internal/anomaly"
	"waterpulse/internal/config"
	"waterpulse/internal/infrastructure"
	"waterpulse/internal/parser"
	apiv1 "waterpulse/pkg/contracts/api/v1"
	"waterpulse/pkg/contracts/domain"
)

// AnalyticsService owns the loaded dataset and runs every engine operation
// against an immutable snapshot of it. Reloads swap the snapshot atomically,
// so in-flight queries keep the series they started with.
type AnalyticsService struct {
	cfg      config.EngineConfig
	parser   *parser.Parser
	engine   *analytics.Engine
	detector *anomaly.Detector
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *infrastructure.BusinessMetrics

	dataset atomic.Pointer[Dataset]
}

// NewAnalyticsService wires the parser, aggregation engine and anomaly
// detector behind one service. metrics may be nil.
func NewAnalyticsService(cfg config.EngineConfig, logger *slog.Logger, metrics *infrastructure.BusinessMetrics) (*AnalyticsService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return &AnalyticsService{
		cfg:      cfg,
		parser:   parser.New(loc, logger),
		engine:   analytics.NewEngine(cfg.ShiftAStartHour, cfg.ShiftBStartHour, cfg.ShiftCStartHour, logger),
		detector: anomaly.NewDetector(cfg.AnomalyWindow, cfg.AnomalyMultiplier, logger),
		validate: validator.New(),
		logger:   logger.With(slog.String("component", "analytics_service")),
		metrics:  metrics,
	}, nil
}

// Load ingests the flow and quality export files and swaps in a fresh
// snapshot. The two files are read and parsed concurrently.
func (s *AnalyticsService) Load(ctx context.Context, flowPath, qualityPath string) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, config.IngestTimeout)
	defer cancel()

	var flow []domain.FlowReading
	var quality []domain.QualityReading

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows, err := parser.LoadTable(flowPath)
		if err != nil {
			return fmt.Errorf("%w: flow export %s: %v", ErrParseFailed, flowPath, err)
		}
		flow = s.parser.ParseFlow(rows)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows, err := parser.LoadTable(qualityPath)
		if err != nil {
			return fmt.Errorf("%w: quality export %s: %v", ErrParseFailed, qualityPath, err)
		}
		quality = s.parser.ParseQuality(rows)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.dataset.Store(NewDataset(flow, quality))

	infrastructure.RecordIngestMetrics(ctx, s.metrics, "exports", len(flow)+len(quality), 0, time.Since(start))
	s.logger.InfoContext(ctx, "dataset loaded",
		slog.String("flow_path", flowPath),
		slog.String("quality_path", qualityPath),
		slog.Int("flow_readings", len(flow)),
		slog.Int("quality_readings", len(quality)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// LoadReadings swaps in a snapshot built from already-parsed series.
// Used by batch tooling and tests.
func (s *AnalyticsService) LoadReadings(flow []domain.FlowReading, quality []domain.QualityReading) {
	s.dataset.Store(NewDataset(flow, quality))
}

// Snapshot returns the current dataset, or ErrNoData before the first load.
func (s *AnalyticsService) Snapshot() (*Dataset, error) {
	ds := s.dataset.Load()
	if ds == nil {
		return nil, ErrNoData
	}
	return ds, nil
}

// DailyFlow returns per-date consumption rollups.
func (s *AnalyticsService) DailyFlow(ctx context.Context, rangeDays int) ([]domain.DailyFlowRow, error) {
	ds, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.engine.DailyFlow(ds.FlowSince(rangeDays)), nil
}

// ShiftFlow returns per-date, per-shift consumption rollups.
func (s *AnalyticsService) ShiftFlow(ctx context.Context, rangeDays int) ([]domain.ShiftFlowRow, error) {
	ds, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.engine.ShiftFlow(ds.FlowSince(rangeDays)), nil
}

// Heatmap returns the weekday-by-hour mean consumption matrix.
func (s *AnalyticsService) Heatmap(ctx context.Context) (domain.HourDayHeatmap, error) {
	ds, err := s.Snapshot()
	if err != nil {
		return domain.HourDayHeatmap{}, err
	}
	return s.engine.HourDayHeatmap(ds.Flow), nil
}

// MonthlyFlow returns consumption totals per calendar month.
func (s *AnalyticsService) MonthlyFlow(ctx context.Context) ([]domain.MonthlyFlowRow, error) {
	ds, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.engine.MonthlyFlow(ds.Flow), nil
}

// Compliance returns per-parameter, per-date compliance rows. An empty
// parameter means all parameters; a named parameter must exist.
func (s *AnalyticsService) Compliance(ctx context.Context, parameter string, rangeDays int) ([]domain.ComplianceRow, error) {
	ds, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	quality := ds.QualitySince(rangeDays)
	if parameter != "" {
		if !ds.HasParameter(parameter) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, parameter)
		}
		quality = filterParameter(quality, parameter)
	}
	return s.engine.DailyCompliance(quality), nil
}

// MonthlyCompliance returns per-parameter in-range percentages by month.
func (s *AnalyticsService) MonthlyCompliance(ctx context.Context) ([]domain.MonthlyComplianceRow, error) {
	ds, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.engine.MonthlyCompliance(ds.Quality), nil
}

// BreachEvents segments out-of-range runs into events, optionally narrowed
// to one parameter, a trailing day window and a minimum duration.
func (s *AnalyticsService) BreachEvents(ctx context.Context, parameter string, rangeDays int, minDurationMin float64) ([]domain.BreachEvent, error) {
	ds, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	quality := ds.QualitySince(rangeDays)
	if parameter != "" {
		if !ds.HasParameter(parameter) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, parameter)
		}
		quality = filterParameter(quality, parameter)
	}
	events := s.engine.BreachEvents(quality)
	if minDurationMin > 0 {
		kept := events[:0]
		for _, ev := range events {
			if ev.DurationMin >= minDurationMin {
				kept = append(kept, ev)
			}
		}
		events = kept
	}
	return events, nil
}

// Correlation joins daily flow totals against one parameter's daily means.
// An empty parameter falls back to the configured default.
func (s *AnalyticsService) Correlation(ctx context.Context, parameter string) (domain.CorrelationResult, error) {
	ds, err := s.Snapshot()
	if err != nil {
		return domain.CorrelationResult{}, err
	}
	if parameter == "" {
		parameter = s.cfg.CorrelationParameter
	}
	if !ds.HasParameter(parameter) {
		return domain.CorrelationResult{}, fmt.Errorf("%w: %q", ErrUnknownParameter, parameter)
	}
	return s.engine.CorrelationWithParameter(ds.Flow, ds.Quality, parameter), nil
}

// Anomalies scores the flow series against the rolling baseline.
func (s *AnalyticsService) Anomalies(ctx context.Context) ([]domain.AnomalyPoint, error) {
	ds, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	points := s.detector.DetectFlowSpikes(ds.Flow)
	return points, nil
}

// LatestBreaches returns out-of-range readings inside the configured
// trailing lookback window.
func (s *AnalyticsService) LatestBreaches(ctx context.Context) ([]domain.QualityReading, error) {
	ds, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return anomaly.LatestBreaches(ds.Quality, s.cfg.BreachLookback), nil
}

// Recommendations maps the recent breaches onto operator actions.
func (s *AnalyticsService) Recommendations(ctx context.Context) ([]string, error) {
	breaches, err := s.LatestBreaches(ctx)
	if err != nil {
		return nil, err
	}
	return anomaly.Recommendations(breaches), nil
}

// Dispatch validates a structured action request and routes it to the
// matching operation. ActionNone maps to ErrNoOperation so callers can fall
// back to their unstructured path.
func (s *AnalyticsService) Dispatch(ctx context.Context, req apiv1.ActionRequest) (*apiv1.ActionResponse, error) {
	start := time.Now()

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownAction, err)
	}

	rangeDays := 0
	if req.Params.RangeDays != nil {
		rangeDays = *req.Params.RangeDays
	}
	minDuration := 0.0
	if req.Params.MinDurationMin != nil {
		minDuration = *req.Params.MinDurationMin
	}

	var result any
	var err error
	switch req.Action {
	case apiv1.ActionFlowShift:
		result, err = s.ShiftFlow(ctx, rangeDays)
	case apiv1.ActionFlowDaily:
		result, err = s.DailyFlow(ctx, rangeDays)
	case apiv1.ActionQualityCompliance:
		result, err = s.Compliance(ctx, req.Params.Parameter, rangeDays)
	case apiv1.ActionBreachEvents:
		result, err = s.BreachEvents(ctx, req.Params.Parameter, rangeDays, minDuration)
	case apiv1.ActionHumidityVsFlow:
		result, err = s.Correlation(ctx, req.Params.Parameter)
	case apiv1.ActionNone:
		err = ErrNoOperation
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}

	infrastructure.RecordQueryMetrics(ctx, s.metrics, req.Action, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "action dispatched",
		slog.String("action", req.Action),
		slog.String("parameter", req.Params.Parameter),
		slog.Duration("duration", time.Since(start)))

	return &apiv1.ActionResponse{Action: req.Action, Result: result}, nil
}

func filterParameter(quality []domain.QualityReading, parameter string) []domain.QualityReading {
	out := make([]domain.QualityReading, 0, len(quality))
	for _, r := range quality {
		if r.Parameter == parameter {
			out = append(out, r)
		}
	}
	return out
}
