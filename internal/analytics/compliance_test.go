package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waterpulse/pkg/contracts/domain"
)

func qualityReading(t *testing.T, parameter, ts string, value float64, lo, hi float64) domain.QualityReading {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", ts)
	require.NoError(t, err)
	return domain.QualityReading{
		Timestamp: parsed,
		Parameter: parameter,
		Value:     value,
		SafeMin:   &lo,
		SafeMax:   &hi,
	}
}

func TestDailyCompliance(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	quality := []domain.QualityReading{
		qualityReading(t, "ETP (TDS)", "2024-06-01 06:00", 1500, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 07:00", 2200, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 08:00", 1800, 100, 2100),
	}

	rows := e.DailyCompliance(quality)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "ETP (TDS)", row.Parameter)
	assert.Equal(t, "2024-06-01", row.Date)
	assert.Equal(t, 66.7, row.PctInRange)
	assert.Equal(t, 1, row.Breaches)
	assert.Equal(t, 3, row.Readings)
	assert.Equal(t, 1500.0, row.MinValue)
	assert.Equal(t, 2200.0, row.MaxValue)
	assert.InDelta(t, 1833.333, row.AvgValue, 0.001)
}

func TestDailyComplianceSortedByParameterThenDate(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	quality := []domain.QualityReading{
		qualityReading(t, "STP (pH)", "2024-06-01 06:00", 7, 6.5, 8.5),
		qualityReading(t, "ETP (TDS)", "2024-06-02 06:00", 1500, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 06:00", 1500, 100, 2100),
	}

	rows := e.DailyCompliance(quality)
	require.Len(t, rows, 3)
	assert.Equal(t, "ETP (TDS)", rows[0].Parameter)
	assert.Equal(t, "2024-06-01", rows[0].Date)
	assert.Equal(t, "2024-06-02", rows[1].Date)
	assert.Equal(t, "STP (pH)", rows[2].Parameter)
}

func TestBreachEventsSegmentation(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	quality := []domain.QualityReading{
		qualityReading(t, "ETP (TDS)", "2024-06-01 06:00", 2200, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 07:00", 2300, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 08:00", 1500, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 09:00", 2500, 100, 2100),
	}

	events := e.BreachEvents(quality)
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "ETP (TDS)", first.Parameter)
	assert.Equal(t, 60.0, first.DurationMin)
	assert.Equal(t, 2, first.Readings)
	assert.Equal(t, 2200.0, first.MinValue)
	assert.Equal(t, 2300.0, first.MaxValue)

	// A single-reading trailing run has zero duration.
	second := events[1]
	assert.Equal(t, 0.0, second.DurationMin)
	assert.Equal(t, 1, second.Readings)
	assert.Equal(t, 2500.0, second.MinValue)
	assert.Equal(t, 2500.0, second.MaxValue)
}

func TestBreachEventsUnorderedInput(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	// Out-of-order readings still segment on the time-sorted series.
	quality := []domain.QualityReading{
		qualityReading(t, "ETP (TDS)", "2024-06-01 08:00", 2400, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 06:00", 2200, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 07:00", 2300, 100, 2100),
	}

	events := e.BreachEvents(quality)
	require.Len(t, events, 1)
	assert.Equal(t, 120.0, events[0].DurationMin)
	assert.Equal(t, 3, events[0].Readings)
}

func TestBreachEventsNoBreaches(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	quality := []domain.QualityReading{
		qualityReading(t, "ETP (TDS)", "2024-06-01 06:00", 1500, 100, 2100),
	}

	assert.Empty(t, e.BreachEvents(quality))
}

func TestBreachEventsMissingBoundsAlwaysBreach(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	ts, err := time.Parse("2006-01-02 15:04", "2024-06-01 06:00")
	require.NoError(t, err)
	quality := []domain.QualityReading{
		{Timestamp: ts, Parameter: "ETP (TSS)", Value: 12},
	}

	events := e.BreachEvents(quality)
	require.Len(t, events, 1)
	assert.Equal(t, 1, events[0].Readings)
}

func TestMonthlyCompliance(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	quality := []domain.QualityReading{
		qualityReading(t, "ETP (TDS)", "2023-06-01 06:00", 1500, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 06:00", 2500, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-07-01 06:00", 1500, 100, 2100),
	}

	rows := e.MonthlyCompliance(quality)
	require.Len(t, rows, 2)

	// Years fold together: June has one in-range of two readings.
	assert.Equal(t, 6, rows[0].Month)
	assert.Equal(t, 50.0, rows[0].PctInRange)
	assert.Equal(t, 7, rows[1].Month)
	assert.Equal(t, 100.0, rows[1].PctInRange)
}

func TestBreachEventsRunInvariants(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	// Three runs for one parameter, split by single in-range readings,
	// plus a second parameter to keep runs isolated.
	quality := []domain.QualityReading{
		qualityReading(t, "ETP (TDS)", "2024-06-01 06:00", 2200, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 07:00", 2300, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 08:00", 1500, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 09:00", 2400, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 10:00", 1600, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 11:00", 2500, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 12:00", 2250, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 13:00", 2600, 100, 2100),
		qualityReading(t, "pH (pH)", "2024-06-01 06:00", 9.9, 6.5, 8.5),
	}

	events := e.BreachEvents(quality)
	require.Len(t, events, 4)

	tds := make([]domain.BreachEvent, 0, 3)
	for _, ev := range events {
		if ev.Parameter == "ETP (TDS)" {
			tds = append(tds, ev)
		}
	}
	require.Len(t, tds, 3)
	assert.Equal(t, 60.0, tds[0].DurationMin)
	assert.Equal(t, 0.0, tds[1].DurationMin)
	assert.Equal(t, 120.0, tds[2].DurationMin)
	assert.Equal(t, 2250.0, tds[2].MinValue)
	assert.Equal(t, 2600.0, tds[2].MaxValue)

	// Runs for one parameter never overlap: each event ends strictly
	// before the next begins.
	var total float64
	for i, ev := range tds {
		total += ev.DurationMin
		if i > 0 {
			assert.True(t, tds[i-1].End.Before(ev.Start),
				"event %d overlaps its predecessor", i)
		}
	}

	// Summed durations never exceed the parameter's observed span.
	span := tds[len(tds)-1].End.Sub(tds[0].Start).Minutes()
	assert.LessOrEqual(t, total, span)
}

func TestBreachEventsResegmentation(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	quality := []domain.QualityReading{
		qualityReading(t, "ETP (TDS)", "2024-06-01 06:00", 2200, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 07:00", 2300, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 08:00", 1500, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 09:00", 2400, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 11:00", 2500, 100, 2100),
		qualityReading(t, "ETP (TDS)", "2024-06-01 12:00", 2250, 100, 2100),
	}

	events := e.BreachEvents(quality)
	require.Len(t, events, 2)

	// Segmentation is deterministic on the same input.
	assert.Equal(t, events, e.BreachEvents(quality))

	// Re-segmenting the readings of a single event reproduces exactly
	// that event.
	for _, ev := range events {
		var run []domain.QualityReading
		for _, r := range quality {
			if r.Parameter != ev.Parameter {
				continue
			}
			if r.Timestamp.Before(ev.Start) || r.Timestamp.After(ev.End) {
				continue
			}
			run = append(run, r)
		}
		require.Len(t, run, ev.Readings)

		again := e.BreachEvents(run)
		require.Len(t, again, 1)
		assert.Equal(t, ev, again[0])
	}
}
