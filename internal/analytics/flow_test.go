package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waterpulse/pkg/contracts/domain"
)

func flowReading(t *testing.T, ts string, consumption float64) domain.FlowReading {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", ts)
	require.NoError(t, err)
	return domain.FlowReading{Timestamp: parsed, Consumption: consumption}
}

func TestDailyFlow(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	flow := []domain.FlowReading{
		flowReading(t, "2024-06-01 06:00", 0),
		flowReading(t, "2024-06-01 07:00", 5),
		flowReading(t, "2024-06-01 08:00", 7),
		flowReading(t, "2024-06-02 06:00", 3),
	}

	rows := e.DailyFlow(flow)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-06-01", rows[0].Date)
	assert.Equal(t, 12.0, rows[0].TotalConsumption)
	assert.Equal(t, 3, rows[0].Readings)
	assert.InDelta(t, 4.0, rows[0].MeanInterval, 1e-9)

	assert.Equal(t, "2024-06-02", rows[1].Date)
	assert.Equal(t, 3.0, rows[1].TotalConsumption)
	assert.Equal(t, 1, rows[1].Readings)
}

func TestDailyFlowEmpty(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)
	assert.Empty(t, e.DailyFlow(nil))
}

func TestShiftFlow(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	flow := []domain.FlowReading{
		flowReading(t, "2024-06-01 05:00", 2), // Shift C
		flowReading(t, "2024-06-01 06:00", 4), // Shift A
		flowReading(t, "2024-06-01 14:00", 6), // Shift B
		flowReading(t, "2024-06-01 23:00", 8), // Shift C
	}

	rows := e.ShiftFlow(flow)
	require.Len(t, rows, 3)

	assert.Equal(t, "Shift A", rows[0].Shift)
	assert.Equal(t, 4.0, rows[0].TotalConsumption)
	assert.Equal(t, "Shift B", rows[1].Shift)
	assert.Equal(t, 6.0, rows[1].TotalConsumption)
	assert.Equal(t, "Shift C", rows[2].Shift)
	assert.Equal(t, 10.0, rows[2].TotalConsumption)
	assert.Equal(t, 2, rows[2].Readings)
}

func TestHourDayHeatmap(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	// 2024-06-03 is a Monday, 2024-06-04 a Tuesday.
	flow := []domain.FlowReading{
		flowReading(t, "2024-06-03 06:00", 4),
		flowReading(t, "2024-06-03 06:30", 6),
		flowReading(t, "2024-06-04 08:00", 10),
	}

	heat := e.HourDayHeatmap(flow)
	require.Equal(t, []string{"Monday", "Tuesday"}, heat.Days)
	require.Equal(t, []int{6, 8}, heat.Hours)

	require.NotNil(t, heat.Cells[0][0])
	assert.InDelta(t, 5.0, *heat.Cells[0][0], 1e-9)
	// No Monday readings at 08:00 and no Tuesday readings at 06:00.
	assert.Nil(t, heat.Cells[0][1])
	assert.Nil(t, heat.Cells[1][0])
	require.NotNil(t, heat.Cells[1][1])
	assert.Equal(t, 10.0, *heat.Cells[1][1])
}

func TestMonthlyFlowFoldsYears(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	flow := []domain.FlowReading{
		flowReading(t, "2023-06-01 06:00", 5),
		flowReading(t, "2024-06-01 06:00", 7),
		flowReading(t, "2024-01-15 06:00", 3),
	}

	rows := e.MonthlyFlow(flow)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Month)
	assert.Equal(t, 3.0, rows[0].TotalConsumption)
	assert.Equal(t, 6, rows[1].Month)
	assert.Equal(t, 12.0, rows[1].TotalConsumption)
}
