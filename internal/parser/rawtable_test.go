package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVStripsBOMAndRaggedRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")

	content := "\xEF\xBB\xBFDate,Time,Totalizer\n01/06/2024,06:00:00,100\nshort row\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rows, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Date", rows[0][0])
	assert.Len(t, rows[2], 1)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadTableDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n"), 0644))

	rows, err := LoadTable(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a", "b", "c"}, rows[0])
}
