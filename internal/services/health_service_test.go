package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waterpulse/internal/config"
	"waterpulse/pkg/contracts/domain"
)

func TestHealthCheckDegradedBeforeLoad(t *testing.T) {
	svc := newTestService(t)
	health := NewHealthService("v1.0.0", config.Default().Paths, svc, nil)

	status := health.Check(context.Background())

	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "v1.0.0", status.Version)
	require.NotNil(t, status.Dataset)
	assert.False(t, status.Dataset.Loaded)
}

func TestHealthCheckHealthyAfterLoad(t *testing.T) {
	svc := newTestService(t)
	svc.LoadReadings(
		[]domain.FlowReading{flowAt(t, "2024-06-01 10:00", 5)},
		[]domain.QualityReading{qualityAt(t, "TDS (PPM)", "2024-06-01 10:00", 300, 100, 500)},
	)
	health := NewHealthService("v1.0.0", config.Default().Paths, svc, nil)

	status := health.Check(context.Background())

	assert.Equal(t, "healthy", status.Status)
	require.NotNil(t, status.Dataset)
	assert.True(t, status.Dataset.Loaded)
	assert.Equal(t, 1, status.Dataset.FlowReadings)
	assert.Equal(t, 1, status.Dataset.QualityReadings)
	assert.Equal(t, []string{"TDS (PPM)"}, status.Dataset.Parameters)
}

func TestReadinessTracksDataset(t *testing.T) {
	svc := newTestService(t)
	health := NewHealthService("v1.0.0", config.Default().Paths, svc, nil)

	assert.Equal(t, false, health.Readiness(context.Background())["ready"])

	svc.LoadReadings([]domain.FlowReading{flowAt(t, "2024-06-01 10:00", 5)}, nil)
	assert.Equal(t, true, health.Readiness(context.Background())["ready"])
}

func TestLivenessAlwaysAlive(t *testing.T) {
	health := NewHealthService("v1.0.0", config.Default().Paths, nil, nil)

	assert.Equal(t, "alive", health.Liveness(context.Background())["status"])
	assert.Equal(t, map[string]string{"version": "v1.0.0"}, health.Version())
}
