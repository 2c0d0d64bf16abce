package exporter

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"waterpulse/internal/config"
	"waterpulse/pkg/contracts/domain"
)

// DashboardData is the full set of rollups written into the dashboard
// workbook, one sheet per table.
type DashboardData struct {
	DailyFlow         []domain.DailyFlowRow
	ShiftFlow         []domain.ShiftFlowRow
	MonthlyFlow       []domain.MonthlyFlowRow
	Compliance        []domain.ComplianceRow
	MonthlyCompliance []domain.MonthlyComplianceRow
	BreachEvents      []domain.BreachEvent
	Recommendations   []string
}

// WorkbookExporter writes the combined analytics dashboard as an Excel
// workbook.
type WorkbookExporter struct {
	paths *config.Paths
}

// NewWorkbookExporter creates a new workbook exporter
func NewWorkbookExporter(paths *config.Paths) *WorkbookExporter {
	return &WorkbookExporter{paths: paths}
}

// ExportDashboard writes all rollups into the dashboard workbook at the
// configured path.
func (e *WorkbookExporter) ExportDashboard(data DashboardData) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeDailyFlowSheet(f, data.DailyFlow); err != nil {
		return err
	}
	if err := e.writeShiftFlowSheet(f, data.ShiftFlow); err != nil {
		return err
	}
	if err := e.writeMonthlyFlowSheet(f, data.MonthlyFlow); err != nil {
		return err
	}
	if err := e.writeComplianceSheet(f, data.Compliance); err != nil {
		return err
	}
	if err := e.writeMonthlyComplianceSheet(f, data.MonthlyCompliance); err != nil {
		return err
	}
	if err := e.writeBreachSheet(f, data.BreachEvents); err != nil {
		return err
	}
	if err := e.writeRecommendationsSheet(f, data.Recommendations); err != nil {
		return err
	}

	// The default sheet is replaced by the first data sheet.
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(e.paths.DashboardWorkbook); err != nil {
		return fmt.Errorf("failed to save dashboard workbook: %w", err)
	}
	return nil
}

func (e *WorkbookExporter) writeDailyFlowSheet(f *excelize.File, rows []domain.DailyFlowRow) error {
	const sheet = "Daily Flow"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if err := setRow(f, sheet, 1, []interface{}{"Date", "TotalConsumption", "MeanInterval", "P95Interval", "Readings"}); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, []interface{}{
			row.Date, row.TotalConsumption, row.MeanInterval, row.P95Interval, row.Readings,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (e *WorkbookExporter) writeShiftFlowSheet(f *excelize.File, rows []domain.ShiftFlowRow) error {
	const sheet = "Shift Flow"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if err := setRow(f, sheet, 1, []interface{}{"Date", "Shift", "TotalConsumption", "Readings"}); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, []interface{}{
			row.Date, row.Shift, row.TotalConsumption, row.Readings,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (e *WorkbookExporter) writeMonthlyFlowSheet(f *excelize.File, rows []domain.MonthlyFlowRow) error {
	const sheet = "Monthly Flow"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if err := setRow(f, sheet, 1, []interface{}{"Month", "TotalConsumption"}); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, []interface{}{
			time.Month(row.Month).String(), row.TotalConsumption,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (e *WorkbookExporter) writeComplianceSheet(f *excelize.File, rows []domain.ComplianceRow) error {
	const sheet = "Compliance"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if err := setRow(f, sheet, 1, []interface{}{"Parameter", "Date", "PctInRange", "Breaches", "Readings", "AvgValue", "MinValue", "MaxValue"}); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, []interface{}{
			row.Parameter, row.Date, row.PctInRange, row.Breaches,
			row.Readings, row.AvgValue, row.MinValue, row.MaxValue,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (e *WorkbookExporter) writeMonthlyComplianceSheet(f *excelize.File, rows []domain.MonthlyComplianceRow) error {
	const sheet = "Monthly Compliance"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if err := setRow(f, sheet, 1, []interface{}{"Parameter", "Month", "PctInRange"}); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, []interface{}{
			row.Parameter, time.Month(row.Month).String(), row.PctInRange,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (e *WorkbookExporter) writeBreachSheet(f *excelize.File, events []domain.BreachEvent) error {
	const sheet = "Breach Events"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if err := setRow(f, sheet, 1, []interface{}{"Parameter", "Start", "End", "DurationMin", "MinValue", "MaxValue", "Readings"}); err != nil {
		return err
	}
	for i, ev := range events {
		if err := setRow(f, sheet, i+2, []interface{}{
			ev.Parameter,
			ev.Start.Format(time.RFC3339),
			ev.End.Format(time.RFC3339),
			ev.DurationMin, ev.MinValue, ev.MaxValue, ev.Readings,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (e *WorkbookExporter) writeRecommendationsSheet(f *excelize.File, tips []string) error {
	const sheet = "Recommendations"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if err := setRow(f, sheet, 1, []interface{}{"Recommendation"}); err != nil {
		return err
	}
	for i, tip := range tips {
		if err := setRow(f, sheet, i+2, []interface{}{tip}); err != nil {
			return err
		}
	}
	return nil
}

// setRow writes one row of cells starting at column A.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d on %s: %w", row, sheet, err)
	}
	return nil
}
