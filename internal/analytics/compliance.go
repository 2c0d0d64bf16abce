package analytics

import (
	"sort"

	"waterpulse/pkg/contracts/domain"
)

// DailyCompliance summarizes each (parameter, date) bucket: the share of
// readings inside the safe range, breach count and basic value stats.
func (e *Engine) DailyCompliance(quality []domain.QualityReading) []domain.ComplianceRow {
	type key struct {
		parameter string
		date      string
	}
	groups := make(map[key][]domain.QualityReading)
	for _, r := range quality {
		k := key{parameter: r.Parameter, date: r.Timestamp.Format(dateLayout)}
		groups[k] = append(groups[k], r)
	}

	rows := make([]domain.ComplianceRow, 0, len(groups))
	for k, readings := range groups {
		inRange := 0
		values := make([]float64, len(readings))
		for i, r := range readings {
			values[i] = r.Value
			if r.InRange() {
				inRange++
			}
		}
		rows = append(rows, domain.ComplianceRow{
			Parameter:  k.parameter,
			Date:       k.date,
			PctInRange: round1(100 * float64(inRange) / float64(len(readings))),
			Breaches:   len(readings) - inRange,
			Readings:   len(readings),
			AvgValue:   mean(values),
			MinValue:   minOf(values),
			MaxValue:   maxOf(values),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Parameter != rows[j].Parameter {
			return rows[i].Parameter < rows[j].Parameter
		}
		return rows[i].Date < rows[j].Date
	})
	return rows
}

// BreachEvents segments each parameter's time-ordered readings into maximal
// runs of consecutive out-of-range readings. A run closes the moment an
// in-range reading appears; a trailing run closes at end of series.
func (e *Engine) BreachEvents(quality []domain.QualityReading) []domain.BreachEvent {
	byParam := make(map[string][]domain.QualityReading)
	var order []string
	for _, r := range quality {
		if _, seen := byParam[r.Parameter]; !seen {
			order = append(order, r.Parameter)
		}
		byParam[r.Parameter] = append(byParam[r.Parameter], r)
	}
	sort.Strings(order)

	events := make([]domain.BreachEvent, 0)
	for _, parameter := range order {
		readings := byParam[parameter]
		sort.SliceStable(readings, func(i, j int) bool {
			return readings[i].Timestamp.Before(readings[j].Timestamp)
		})

		var run []domain.QualityReading
		flush := func() {
			if len(run) == 0 {
				return
			}
			events = append(events, buildEvent(parameter, run))
			run = nil
		}
		for _, r := range readings {
			if r.InRange() {
				flush()
				continue
			}
			run = append(run, r)
		}
		flush()
	}
	return events
}

func buildEvent(parameter string, run []domain.QualityReading) domain.BreachEvent {
	minVal, maxVal := run[0].Value, run[0].Value
	for _, r := range run[1:] {
		if r.Value < minVal {
			minVal = r.Value
		}
		if r.Value > maxVal {
			maxVal = r.Value
		}
	}
	start := run[0].Timestamp
	end := run[len(run)-1].Timestamp
	return domain.BreachEvent{
		Parameter:   parameter,
		Start:       start,
		End:         end,
		DurationMin: round2(end.Sub(start).Minutes()),
		MinValue:    minVal,
		MaxValue:    maxVal,
		Readings:    len(run),
	}
}

// MonthlyCompliance folds each parameter's readings into per-month in-range
// percentages, years folded together.
func (e *Engine) MonthlyCompliance(quality []domain.QualityReading) []domain.MonthlyComplianceRow {
	type key struct {
		parameter string
		month     int
	}
	type bucket struct {
		inRange int
		total   int
	}
	groups := make(map[key]*bucket)
	for _, r := range quality {
		k := key{parameter: r.Parameter, month: int(r.Timestamp.Month())}
		b, ok := groups[k]
		if !ok {
			b = &bucket{}
			groups[k] = b
		}
		b.total++
		if r.InRange() {
			b.inRange++
		}
	}

	rows := make([]domain.MonthlyComplianceRow, 0, len(groups))
	for k, b := range groups {
		rows = append(rows, domain.MonthlyComplianceRow{
			Parameter:  k.parameter,
			Month:      k.month,
			PctInRange: round1(100 * float64(b.inRange) / float64(b.total)),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Parameter != rows[j].Parameter {
			return rows[i].Parameter < rows[j].Parameter
		}
		return rows[i].Month < rows[j].Month
	})
	return rows
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
