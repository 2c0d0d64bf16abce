package exporter

import (
	"fmt"
	"time"

	"waterpulse/internal/config"
	"waterpulse/pkg/contracts/domain"
)

// ReportExporter writes the analytics rollups as CSV report files under the
// reports directory.
type ReportExporter struct {
	csvWriter *CSVWriter
}

// NewReportExporter creates a new report exporter
func NewReportExporter(paths *config.Paths) *ReportExporter {
	return &ReportExporter{
		csvWriter: NewCSVWriter(paths),
	}
}

// ExportDailyFlow writes the per-date flow consumption rollup.
func (e *ReportExporter) ExportDailyFlow(rows []domain.DailyFlowRow, filePath string) error {
	headers := []string{"Date", "TotalConsumption", "MeanInterval", "P95Interval", "Readings"}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.Date,
			formatFloat(row.TotalConsumption),
			formatFloat(row.MeanInterval),
			formatFloat(row.P95Interval),
			formatInt(row.Readings),
		})
	}
	return e.csvWriter.WriteSimpleCSV(filePath, headers, records)
}

// ExportShiftFlow writes the per-date, per-shift consumption rollup.
func (e *ReportExporter) ExportShiftFlow(rows []domain.ShiftFlowRow, filePath string) error {
	headers := []string{"Date", "Shift", "TotalConsumption", "Readings"}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.Date,
			row.Shift,
			formatFloat(row.TotalConsumption),
			formatInt(row.Readings),
		})
	}
	return e.csvWriter.WriteSimpleCSV(filePath, headers, records)
}

// ExportHeatmap writes the weekday-by-hour mean consumption matrix. Empty
// cells stay empty rather than zero.
func (e *ReportExporter) ExportHeatmap(heat *domain.HourDayHeatmap, filePath string) error {
	headers := make([]string, 0, len(heat.Hours)+1)
	headers = append(headers, "Day")
	for _, h := range heat.Hours {
		headers = append(headers, fmt.Sprintf("%02d:00", h))
	}

	records := make([][]string, 0, len(heat.Days))
	for i, day := range heat.Days {
		record := make([]string, 0, len(heat.Hours)+1)
		record = append(record, day)
		for j := range heat.Hours {
			record = append(record, formatOptFloat(heat.Cells[i][j]))
		}
		records = append(records, record)
	}
	return e.csvWriter.WriteSimpleCSV(filePath, headers, records)
}

// ExportMonthlyFlow writes the seasonal month-of-year consumption totals.
func (e *ReportExporter) ExportMonthlyFlow(rows []domain.MonthlyFlowRow, filePath string) error {
	headers := []string{"Month", "TotalConsumption"}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			time.Month(row.Month).String(),
			formatFloat(row.TotalConsumption),
		})
	}
	return e.csvWriter.WriteSimpleCSV(filePath, headers, records)
}

// ExportCompliance writes the per-parameter, per-date compliance rollup.
func (e *ReportExporter) ExportCompliance(rows []domain.ComplianceRow, filePath string) error {
	headers := []string{"Parameter", "Date", "PctInRange", "Breaches", "Readings", "AvgValue", "MinValue", "MaxValue"}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.Parameter,
			row.Date,
			formatFloat(row.PctInRange),
			formatInt(row.Breaches),
			formatInt(row.Readings),
			formatFloat(row.AvgValue),
			formatFloat(row.MinValue),
			formatFloat(row.MaxValue),
		})
	}
	return e.csvWriter.WriteSimpleCSV(filePath, headers, records)
}

// ExportMonthlyCompliance writes the per-parameter month-of-year compliance.
func (e *ReportExporter) ExportMonthlyCompliance(rows []domain.MonthlyComplianceRow, filePath string) error {
	headers := []string{"Parameter", "Month", "PctInRange"}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.Parameter,
			time.Month(row.Month).String(),
			formatFloat(row.PctInRange),
		})
	}
	return e.csvWriter.WriteSimpleCSV(filePath, headers, records)
}

// ExportBreachEvents writes the contiguous out-of-range runs per parameter.
func (e *ReportExporter) ExportBreachEvents(events []domain.BreachEvent, filePath string) error {
	headers := []string{"Parameter", "Start", "End", "DurationMin", "MinValue", "MaxValue", "Readings"}
	records := make([][]string, 0, len(events))
	for _, ev := range events {
		records = append(records, []string{
			ev.Parameter,
			ev.Start.Format(time.RFC3339),
			ev.End.Format(time.RFC3339),
			formatFloat(ev.DurationMin),
			formatFloat(ev.MinValue),
			formatFloat(ev.MaxValue),
			formatInt(ev.Readings),
		})
	}
	return e.csvWriter.WriteSimpleCSV(filePath, headers, records)
}

// ExportAnomalies writes the annotated flow series from the spike detector.
// For large series this streams rather than buffering all records.
func (e *ReportExporter) ExportAnomalies(points []domain.AnomalyPoint, filePath string) error {
	headers := []string{"Timestamp", "Consumption", "Baseline", "Threshold", "Anomaly"}

	stream, err := e.csvWriter.CreateStreamWriter(filePath, headers)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}
	for _, p := range points {
		record := []string{
			p.Timestamp.Format(time.RFC3339),
			formatFloat(p.Consumption),
			formatOptFloat(p.Baseline),
			formatOptFloat(p.Threshold),
			formatBool(p.Anomaly),
		}
		if err := stream.WriteRecord(record); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return stream.Close()
}

// ExportCorrelation writes the joined flow and parameter days with the
// Pearson coefficient in the trailing summary row.
func (e *ReportExporter) ExportCorrelation(result *domain.CorrelationResult, filePath string) error {
	headers := []string{"Date", "TotalConsumption", "ParameterMean"}
	records := make([][]string, 0, len(result.Days)+1)
	for _, day := range result.Days {
		records = append(records, []string{
			day.Date,
			formatFloat(day.TotalConsumption),
			formatFloat(day.ParameterMean),
		})
	}
	records = append(records, []string{"pearson_r", formatOptFloat(result.Correlation), ""})
	return e.csvWriter.WriteSimpleCSV(filePath, headers, records)
}

// ExportRecommendations writes the action tips derived from recent breaches.
func (e *ReportExporter) ExportRecommendations(tips []string, filePath string) error {
	headers := []string{"Recommendation"}
	records := make([][]string, 0, len(tips))
	for _, tip := range tips {
		records = append(records, []string{tip})
	}
	return e.csvWriter.WriteSimpleCSV(filePath, headers, records)
}
