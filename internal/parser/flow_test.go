package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParser(t *testing.T, tz string) *Parser {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	require.NoError(t, err)
	return New(loc, nil)
}

func TestParseFlowConsumption(t *testing.T) {
	p := testParser(t, "Asia/Kolkata")

	rows := [][]string{
		{"Date", "Time", "Totalizer (m3)"},
		{"01/06/2024", "06:00:00", "100"},
		{"01/06/2024", "07:00:00", "105"},
		{"01/06/2024", "08:00:00", "103"},
		{"01/06/2024", "09:00:00", "110"},
	}

	readings := p.ParseFlow(rows)
	require.Len(t, readings, 4)

	// First reading has no predecessor; negative deltas clamp to zero.
	assert.Equal(t, 0.0, readings[0].Consumption)
	assert.Equal(t, 5.0, readings[1].Consumption)
	assert.Equal(t, 0.0, readings[2].Consumption)
	assert.Equal(t, 7.0, readings[3].Consumption)
}

func TestParseFlowMultipleBlocks(t *testing.T) {
	p := testParser(t, "Asia/Kolkata")

	rows := [][]string{
		{"Date", "Time", "Totalizer"},
		{"02/06/2024", "10:00:00", "210"},
		{"Date", "Time", "Totalizer"},
		{"01/06/2024", "10:00:00", "200"},
		{"02/06/2024", "11:00:00", "215"},
	}

	readings := p.ParseFlow(rows)
	require.Len(t, readings, 3)

	// Blocks are concatenated and the merged series sorted by timestamp.
	assert.True(t, readings[0].Timestamp.Before(readings[1].Timestamp))
	assert.True(t, readings[1].Timestamp.Before(readings[2].Timestamp))
	assert.Equal(t, 200.0, readings[0].Totalizer)
	assert.Equal(t, 0.0, readings[0].Consumption)
	assert.Equal(t, 10.0, readings[1].Consumption)
	assert.Equal(t, 5.0, readings[2].Consumption)
}

func TestParseFlowDeduplicatesFirstWins(t *testing.T) {
	p := testParser(t, "Asia/Kolkata")

	rows := [][]string{
		{"Date", "Time", "Totalizer"},
		{"01/06/2024", "06:00:00", "100"},
		{"01/06/2024", "06:00:00", "999"},
		{"01/06/2024", "07:00:00", "104"},
	}

	readings := p.ParseFlow(rows)
	require.Len(t, readings, 2)
	assert.Equal(t, 100.0, readings[0].Totalizer)
	assert.Equal(t, 4.0, readings[1].Consumption)
}

func TestParseFlowCommaNumerics(t *testing.T) {
	p := testParser(t, "Asia/Kolkata")

	rows := [][]string{
		{"Date", "Time", "Totalizer"},
		{"01/06/2024", "06:00:00", "1,234.5"},
		{"01/06/2024", "07:00:00", "1,240.0"},
	}

	readings := p.ParseFlow(rows)
	require.Len(t, readings, 2)
	assert.Equal(t, 1234.5, readings[0].Totalizer)
	assert.InDelta(t, 5.5, readings[1].Consumption, 1e-9)
}

func TestParseFlowDropsMalformedRows(t *testing.T) {
	p := testParser(t, "Asia/Kolkata")

	rows := [][]string{
		{"Date", "Time", "Totalizer"},
		{"01/06/2024", "06:00:00", "100"},
		{"not a date", "06:30:00", "101"},
		{"01/06/2024", "bogus", "102"},
		{"01/06/2024", "07:00:00", "not a number"},
		{"", "", ""},
		{"01/06/2024", "08:00:00", "108"},
	}

	readings := p.ParseFlow(rows)
	require.Len(t, readings, 2)
	assert.Equal(t, 8.0, readings[1].Consumption)
}

func TestParseFlowDayFirstDates(t *testing.T) {
	p := testParser(t, "Asia/Kolkata")

	rows := [][]string{
		{"Date", "Time", "Totalizer"},
		{"03/02/2024", "12:00:00", "50"},
	}

	readings := p.ParseFlow(rows)
	require.Len(t, readings, 1)
	assert.Equal(t, time.February, readings[0].Timestamp.Month())
	assert.Equal(t, 3, readings[0].Timestamp.Day())
}

func TestParseFlowEmptyInput(t *testing.T) {
	p := testParser(t, "Asia/Kolkata")

	assert.Empty(t, p.ParseFlow(nil))
	assert.Empty(t, p.ParseFlow([][]string{{"just", "noise", "here"}}))
}
