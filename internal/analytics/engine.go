// Package analytics derives reporting tables from parsed reading series.
// Every operation is a pure function of its inputs: it copies, groups and
// reduces, and returns a new table with a fixed column schema. Empty inputs
// produce empty tables of the same shape, never errors.
package analytics

import (
	"log/slog"
	"math"
	"sort"
)

// Shift is one operational window, [Start,End) in local hours. A window with
// Start > End wraps past midnight.
type Shift struct {
	Name  string
	Start int
	End   int
}

// UnknownShift buckets hours no window claims. The three shifts partition the
// day, so it only appears if the configured boundaries are inconsistent.
const UnknownShift = "Unknown"

// Engine evaluates rollups with the configured shift boundaries.
type Engine struct {
	shifts []Shift
	logger *slog.Logger
}

// NewEngine builds an engine from the three shift start hours. Each shift
// runs until the next one begins, Shift C wrapping past midnight into
// Shift A.
func NewEngine(shiftAStart, shiftBStart, shiftCStart int, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		shifts: []Shift{
			{Name: "Shift A", Start: shiftAStart, End: shiftBStart},
			{Name: "Shift B", Start: shiftBStart, End: shiftCStart},
			{Name: "Shift C", Start: shiftCStart, End: shiftAStart},
		},
		logger: logger,
	}
}

// hourToShift maps a local hour to its shift name.
func (e *Engine) hourToShift(hour int) string {
	for _, s := range e.shifts {
		if s.Start < s.End {
			if hour >= s.Start && hour < s.End {
				return s.Name
			}
		} else if hour >= s.Start || hour < s.End {
			return s.Name
		}
	}
	return UnknownShift
}

// mean of a non-empty group; NaN on an empty one.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

// percentile interpolates linearly between closest ranks; NaN on an empty
// group.
func percentile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := q / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// pearson computes the correlation coefficient of two equal-length columns.
// ok is false when either column has zero variance.
func pearson(xs, ys []float64) (r float64, ok bool) {
	mx, my := mean(xs), mean(ys)

	var sxy, sxx, syy float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, false
	}
	return sxy / math.Sqrt(sxx*syy), true
}

// round1 rounds a percentage to one decimal place for reporting.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds a duration in minutes to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

const dateLayout = "2006-01-02"
