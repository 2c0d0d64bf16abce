// Package anomaly flags abnormal consumption intervals with a rolling
// median plus MAD threshold, and surfaces recent water-quality breaches
// with operator-facing recommendations.
package anomaly

import (
	"log/slog"
	"sort"
	"time"

	"waterpulse/pkg/contracts/domain"
)

// Detector scores interval consumption against a trailing robust baseline.
type Detector struct {
	window     int
	minPeriods int
	multiplier float64
	logger     *slog.Logger
}

// NewDetector builds a detector over a trailing window of the given size.
// The baseline needs at least max(6, window/4) readings before it is defined.
func NewDetector(window int, multiplier float64, logger *slog.Logger) *Detector {
	if window < 1 {
		window = 1
	}
	minPeriods := window / 4
	if minPeriods < 6 {
		minPeriods = 6
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{
		window:     window,
		minPeriods: minPeriods,
		multiplier: multiplier,
		logger:     logger,
	}
}

// DetectFlowSpikes annotates each reading with its rolling baseline and
// threshold. A reading is flagged only when it exceeds baseline plus
// multiplier times the rolling MAD, and the MAD is strictly positive. During
// warm-up, and whenever the window's spread collapses to zero, the threshold
// stays nil and nothing is flagged.
func (d *Detector) DetectFlowSpikes(flow []domain.FlowReading) []domain.AnomalyPoint {
	points := make([]domain.AnomalyPoint, len(flow))
	baselines := make([]*float64, len(flow))
	deviations := make([]*float64, len(flow))

	for i, r := range flow {
		points[i] = domain.AnomalyPoint{Timestamp: r.Timestamp, Consumption: r.Consumption}

		lo := i - d.window + 1
		if lo < 0 {
			lo = 0
		}
		values := make([]float64, 0, i-lo+1)
		for j := lo; j <= i; j++ {
			values = append(values, flow[j].Consumption)
		}
		if len(values) < d.minPeriods {
			continue
		}
		b := median(values)
		baselines[i] = &b
		dev := r.Consumption - b
		if dev < 0 {
			dev = -dev
		}
		deviations[i] = &dev
	}

	flagged := 0
	for i := range points {
		points[i].Baseline = baselines[i]
		if baselines[i] == nil {
			continue
		}
		lo := i - d.window + 1
		if lo < 0 {
			lo = 0
		}
		devs := make([]float64, 0, i-lo+1)
		for j := lo; j <= i; j++ {
			if deviations[j] != nil {
				devs = append(devs, *deviations[j])
			}
		}
		if len(devs) < d.minPeriods {
			continue
		}
		mad := median(devs)
		if mad <= 0 {
			continue
		}
		threshold := *baselines[i] + d.multiplier*mad
		points[i].Threshold = &threshold
		if points[i].Consumption > threshold {
			points[i].Anomaly = true
			flagged++
		}
	}

	d.logger.Debug("anomaly detection complete",
		slog.Int("readings", len(flow)),
		slog.Int("flagged", flagged))
	return points
}

// LatestBreaches returns the out-of-range quality readings inside the
// trailing lookback window, measured from the newest timestamp in the
// series, sorted by parameter then timestamp.
func LatestBreaches(quality []domain.QualityReading, lookback time.Duration) []domain.QualityReading {
	breaches := make([]domain.QualityReading, 0)
	if len(quality) == 0 {
		return breaches
	}

	var latest time.Time
	for _, r := range quality {
		if r.Timestamp.After(latest) {
			latest = r.Timestamp
		}
	}
	cutoff := latest.Add(-lookback)

	for _, r := range quality {
		if r.Timestamp.Before(cutoff) || r.InRange() {
			continue
		}
		breaches = append(breaches, r)
	}
	sort.SliceStable(breaches, func(i, j int) bool {
		if breaches[i].Parameter != breaches[j].Parameter {
			return breaches[i].Parameter < breaches[j].Parameter
		}
		return breaches[i].Timestamp.Before(breaches[j].Timestamp)
	})
	return breaches
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
