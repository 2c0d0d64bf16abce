// Package exporter writes the analytics rollups to disk.
//
// CSVWriter is the core CSV plumbing: headers, streaming, and a UTF-8 BOM
// for Excel compatibility. ReportExporter turns each rollup table (daily
// flow, shift flow, compliance, breach events, anomalies, correlation) into
// a CSV report under the reports directory. WorkbookExporter assembles the
// same tables into a single dashboard workbook, one sheet per table.
//
// Example usage:
//
//	reports := exporter.NewReportExporter(paths)
//	err := reports.ExportDailyFlow(rows, "flow/daily.csv")
//
//	workbook := exporter.NewWorkbookExporter(paths)
//	err = workbook.ExportDashboard(data)
package exporter
