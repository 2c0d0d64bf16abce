package anomaly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waterpulse/pkg/contracts/domain"
)

func hourlyFlow(t *testing.T, consumptions []float64) []domain.FlowReading {
	t.Helper()
	start, err := time.Parse("2006-01-02 15:04", "2024-06-01 00:00")
	require.NoError(t, err)

	flow := make([]domain.FlowReading, len(consumptions))
	for i, c := range consumptions {
		flow[i] = domain.FlowReading{
			Timestamp:   start.Add(time.Duration(i) * time.Hour),
			Consumption: c,
		}
	}
	return flow
}

func TestDetectFlowSpikesConstantSeriesNeverFlags(t *testing.T) {
	d := NewDetector(24, 3.0, nil)

	consumptions := make([]float64, 48)
	for i := range consumptions {
		consumptions[i] = 10
	}

	points := d.DetectFlowSpikes(hourlyFlow(t, consumptions))
	require.Len(t, points, 48)
	for i, p := range points {
		assert.False(t, p.Anomaly, "point %d", i)
		// Zero spread means no threshold is ever defined.
		assert.Nil(t, p.Threshold, "point %d", i)
	}
}

func TestDetectFlowSpikesWarmupUnflagged(t *testing.T) {
	d := NewDetector(24, 3.0, nil)

	// A huge outlier inside the warm-up period stays unflagged because the
	// baseline is not defined yet.
	consumptions := []float64{10, 11, 9, 1000, 10}
	points := d.DetectFlowSpikes(hourlyFlow(t, consumptions))
	require.Len(t, points, 5)
	for i, p := range points {
		assert.False(t, p.Anomaly, "point %d", i)
		assert.Nil(t, p.Baseline, "point %d", i)
	}
}

func TestDetectFlowSpikesFlagsSpike(t *testing.T) {
	d := NewDetector(24, 3.0, nil)

	consumptions := make([]float64, 0, 40)
	for i := 0; i < 39; i++ {
		// Alternating values keep the MAD strictly positive.
		if i%2 == 0 {
			consumptions = append(consumptions, 10)
		} else {
			consumptions = append(consumptions, 12)
		}
	}
	consumptions = append(consumptions, 500)

	points := d.DetectFlowSpikes(hourlyFlow(t, consumptions))
	require.Len(t, points, 40)

	last := points[len(points)-1]
	require.NotNil(t, last.Baseline)
	require.NotNil(t, last.Threshold)
	assert.True(t, last.Anomaly)

	for i := 0; i < len(points)-1; i++ {
		assert.False(t, points[i].Anomaly, "point %d", i)
	}
}

func TestDetectFlowSpikesEmpty(t *testing.T) {
	d := NewDetector(24, 3.0, nil)
	assert.Empty(t, d.DetectFlowSpikes(nil))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 3.0, median([]float64{5, 1, 3}))
	assert.Equal(t, 2.5, median([]float64{4, 1, 2, 3}))
	assert.Equal(t, 7.0, median([]float64{7}))
}

func TestLatestBreachesWindow(t *testing.T) {
	lo, hi := 100.0, 2100.0
	base, err := time.Parse("2006-01-02 15:04", "2024-06-10 12:00")
	require.NoError(t, err)

	mk := func(offset time.Duration, parameter string, value float64) domain.QualityReading {
		return domain.QualityReading{
			Timestamp: base.Add(offset),
			Parameter: parameter,
			Value:     value,
			SafeMin:   &lo,
			SafeMax:   &hi,
		}
	}

	quality := []domain.QualityReading{
		mk(0, "ETP (TDS)", 2500),             // breach, in window
		mk(-2*time.Hour, "STP (TDS)", 2400),  // breach, in window
		mk(-30*time.Hour, "ETP (TDS)", 2600), // breach, outside window
		mk(-1*time.Hour, "ETP (TDS)", 1500),  // in range
		mk(-23*time.Hour, "ETP (TDS)", 2300), // breach, at window edge
	}

	breaches := LatestBreaches(quality, 24*time.Hour)
	require.Len(t, breaches, 3)

	// Sorted by parameter then timestamp.
	assert.Equal(t, "ETP (TDS)", breaches[0].Parameter)
	assert.Equal(t, 2300.0, breaches[0].Value)
	assert.Equal(t, 2500.0, breaches[1].Value)
	assert.Equal(t, "STP (TDS)", breaches[2].Parameter)
}

func TestLatestBreachesEmptySeries(t *testing.T) {
	assert.Empty(t, LatestBreaches(nil, 24*time.Hour))
}

func TestRecommendationsAllClear(t *testing.T) {
	tips := Recommendations(nil)
	require.Len(t, tips, 1)
	assert.Equal(t, "All parameters within safe ranges in the last 24h.", tips[0])
}

func TestRecommendationsByParameter(t *testing.T) {
	tests := []struct {
		parameter string
		keyword   string
	}{
		{"ETP (TDS)", "TDS"},
		{"STP (pH)", "pH"},
		{"ETP (TSS)", "Suspended solids"},
		{"Inlet Turbidity", "turbidity"},
		{"ETP (BOD)", "BOD/COD"},
		{"ETP (COD)", "BOD/COD"},
		{"HUMIDITY (HUMIDITY)", "Humidity"},
	}

	for _, tt := range tests {
		t.Run(tt.parameter, func(t *testing.T) {
			tips := Recommendations([]domain.QualityReading{{Parameter: tt.parameter}})
			require.NotEmpty(t, tips)
			assert.Contains(t, tips[0], tt.keyword)
		})
	}
}

func TestRecommendationsDeduplicated(t *testing.T) {
	breaches := []domain.QualityReading{
		{Parameter: "ETP (TDS)"},
		{Parameter: "STP (TDS)"},
	}
	tips := Recommendations(breaches)
	require.Len(t, tips, 1)
	assert.Contains(t, tips[0], "TDS")
}

func BenchmarkDetectFlowSpikes(b *testing.B) {
	d := NewDetector(24, 3.0, nil)
	start := time.Now()
	flow := make([]domain.FlowReading, 10000)
	for i := range flow {
		flow[i] = domain.FlowReading{
			Timestamp:   start.Add(time.Duration(i) * time.Hour),
			Consumption: float64(i%7) + 10,
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.DetectFlowSpikes(flow)
	}
}
