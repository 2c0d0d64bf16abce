package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHourToShift(t *testing.T) {
	e := NewEngine(6, 14, 22, nil)

	tests := []struct {
		hour int
		want string
	}{
		{5, "Shift C"},
		{6, "Shift A"},
		{13, "Shift A"},
		{14, "Shift B"},
		{21, "Shift B"},
		{22, "Shift C"},
		{23, "Shift C"},
		{0, "Shift C"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, e.hourToShift(tt.hour), "hour %d", tt.hour)
	}
}

func TestPercentileLinearInterpolation(t *testing.T) {
	values := []float64{10, 20, 30, 40}

	assert.Equal(t, 10.0, percentile(values, 0))
	assert.Equal(t, 40.0, percentile(values, 100))
	assert.Equal(t, 25.0, percentile(values, 50))
	assert.InDelta(t, 38.5, percentile(values, 95), 1e-9)
	assert.True(t, math.IsNaN(percentile(nil, 50)))
}

func TestPearson(t *testing.T) {
	r, ok := pearson([]float64{1, 2, 3}, []float64{2, 4, 6})
	assert.True(t, ok)
	assert.InDelta(t, 1.0, r, 1e-9)

	r, ok = pearson([]float64{1, 2, 3}, []float64{6, 4, 2})
	assert.True(t, ok)
	assert.InDelta(t, -1.0, r, 1e-9)

	_, ok = pearson([]float64{1, 2, 3}, []float64{5, 5, 5})
	assert.False(t, ok)
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 66.7, round1(66.666666))
	assert.Equal(t, 100.0, round1(100))
	assert.Equal(t, 90.55, round2(90.554))
	assert.Equal(t, 0.0, round2(0.004))
}
