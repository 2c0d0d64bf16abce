package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waterpulse/internal/config"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	reportsDir := filepath.Join(dataDir, "reports")
	return &config.Paths{
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
}

// readCSV loads a written report back, stripping the BOM first.
func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data = bytes.TrimPrefix(data, utf8BOM)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteSimpleCSV(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	target := filepath.Join(t.TempDir(), "out.csv")
	err := w.WriteSimpleCSV(target, []string{"Date", "Total"}, [][]string{
		{"2024-06-01", "10.50"},
		{"2024-06-02", "12.00"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, utf8BOM), "expected UTF-8 BOM prefix")

	rows := readCSV(t, target)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Total"}, rows[0])
	assert.Equal(t, []string{"2024-06-02", "12.00"}, rows[2])
}

func TestAppendToCSV(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	target := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, w.WriteSimpleCSV(target, []string{"Date"}, [][]string{{"2024-06-01"}}))
	require.NoError(t, w.AppendToCSV(target, [][]string{{"2024-06-02"}}))

	rows := readCSV(t, target)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2024-06-02"}, rows[2])
}

func TestResolvePath(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	abs := filepath.Join(t.TempDir(), "abs.csv")
	assert.Equal(t, abs, w.resolvePath(abs))
	assert.Equal(t, filepath.Join(paths.FlowReportsDir, "daily_flow.csv"), w.resolvePath("flow/daily_flow.csv"))
	assert.Equal(t, filepath.Join(paths.QualityReportsDir, "compliance.csv"), w.resolvePath("quality/compliance.csv"))
	assert.Equal(t, filepath.Join(paths.CacheDir, "snapshot.csv"), w.resolvePath("cache/snapshot.csv"))
	assert.Equal(t, filepath.Join(paths.ReportsDir, "correlation.csv"), w.resolvePath("correlation.csv"))
}

func TestStreamWriter(t *testing.T) {
	paths := testPaths(t)
	w := NewCSVWriter(paths)

	target := filepath.Join(t.TempDir(), "stream.csv")
	stream, err := w.CreateStreamWriter(target, []string{"Timestamp", "Value"})
	require.NoError(t, err)

	require.NoError(t, stream.WriteRecord([]string{"2024-06-01 10:00", "5.00"}))
	require.NoError(t, stream.WriteRecord([]string{"2024-06-01 11:00", "6.00"}))
	require.NoError(t, stream.Close())

	rows := readCSV(t, target)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Timestamp", "Value"}, rows[0])
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "10.50", formatFloat(10.5))
	assert.Equal(t, "7", formatInt(7))
	assert.Equal(t, "true", formatBool(true))

	v := 3.456
	assert.Equal(t, "3.46", formatOptFloat(&v))
	assert.Equal(t, "", formatOptFloat(nil))
}
