package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waterpulse/pkg/contracts/domain"
)

func TestCorrelationWithParameter(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	flow := []domain.FlowReading{
		flowReading(t, "2024-06-01 06:00", 10),
		flowReading(t, "2024-06-02 06:00", 20),
		flowReading(t, "2024-06-03 06:00", 30),
	}
	quality := []domain.QualityReading{
		qualityReading(t, "HUMIDITY (HUMIDITY)", "2024-06-01 06:00", 40, 30, 70),
		qualityReading(t, "HUMIDITY (HUMIDITY)", "2024-06-02 06:00", 50, 30, 70),
		qualityReading(t, "HUMIDITY (HUMIDITY)", "2024-06-03 06:00", 60, 30, 70),
	}

	result := e.CorrelationWithParameter(flow, quality, "HUMIDITY (HUMIDITY)")
	require.Len(t, result.Days, 3)
	require.NotNil(t, result.Correlation)
	assert.InDelta(t, 1.0, *result.Correlation, 1e-9)
	assert.Equal(t, "2024-06-01", result.Days[0].Date)
}

func TestCorrelationInnerJoinDropsUnmatchedDays(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	flow := []domain.FlowReading{
		flowReading(t, "2024-06-01 06:00", 10),
	}
	quality := []domain.QualityReading{
		qualityReading(t, "HUMIDITY (HUMIDITY)", "2024-06-01 06:00", 40, 30, 70),
		qualityReading(t, "HUMIDITY (HUMIDITY)", "2024-06-05 06:00", 60, 30, 70),
	}

	result := e.CorrelationWithParameter(flow, quality, "HUMIDITY (HUMIDITY)")
	require.Len(t, result.Days, 1)
	assert.Nil(t, result.Correlation)
}

func TestCorrelationAbsentParameter(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	flow := []domain.FlowReading{
		flowReading(t, "2024-06-01 06:00", 10),
	}

	result := e.CorrelationWithParameter(flow, nil, "HUMIDITY (HUMIDITY)")
	assert.Empty(t, result.Days)
	assert.Nil(t, result.Correlation)
	assert.Equal(t, "HUMIDITY (HUMIDITY)", result.Parameter)
}

func TestCorrelationZeroVariance(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	flow := []domain.FlowReading{
		flowReading(t, "2024-06-01 06:00", 10),
		flowReading(t, "2024-06-02 06:00", 10),
	}
	quality := []domain.QualityReading{
		qualityReading(t, "HUMIDITY (HUMIDITY)", "2024-06-01 06:00", 40, 30, 70),
		qualityReading(t, "HUMIDITY (HUMIDITY)", "2024-06-02 06:00", 50, 30, 70),
	}

	result := e.CorrelationWithParameter(flow, quality, "HUMIDITY (HUMIDITY)")
	require.Len(t, result.Days, 2)
	assert.Nil(t, result.Correlation)
}

func TestCorrelationAveragesMultipleReadingsPerDay(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	flow := []domain.FlowReading{
		flowReading(t, "2024-06-01 06:00", 5),
		flowReading(t, "2024-06-01 07:00", 5),
	}
	quality := []domain.QualityReading{
		qualityReading(t, "HUMIDITY (HUMIDITY)", "2024-06-01 06:00", 40, 30, 70),
		qualityReading(t, "HUMIDITY (HUMIDITY)", "2024-06-01 12:00", 60, 30, 70),
	}

	result := e.CorrelationWithParameter(flow, quality, "HUMIDITY (HUMIDITY)")
	require.Len(t, result.Days, 1)
	assert.Equal(t, 10.0, result.Days[0].TotalConsumption)
	assert.InDelta(t, 50.0, result.Days[0].ParameterMean, 1e-9)
}
