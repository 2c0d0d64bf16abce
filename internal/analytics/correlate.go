package analytics

import (
	"sort"

	"waterpulse/pkg/contracts/domain"
)

// CorrelationWithParameter joins daily flow totals against the daily mean of
// one quality parameter and reports the Pearson correlation over the joined
// days. Fewer than two joined days, or a parameter with no readings, yields
// an empty result with a nil coefficient.
func (e *Engine) CorrelationWithParameter(flow []domain.FlowReading, quality []domain.QualityReading, parameter string) domain.CorrelationResult {
	result := domain.CorrelationResult{Parameter: parameter, Days: []domain.CorrelationDay{}}

	flowByDate := make(map[string]float64)
	for _, r := range flow {
		flowByDate[r.Timestamp.Format(dateLayout)] += r.Consumption
	}

	paramByDate := make(map[string][]float64)
	for _, r := range quality {
		if r.Parameter != parameter {
			continue
		}
		date := r.Timestamp.Format(dateLayout)
		paramByDate[date] = append(paramByDate[date], r.Value)
	}

	for date, values := range paramByDate {
		total, ok := flowByDate[date]
		if !ok {
			continue
		}
		result.Days = append(result.Days, domain.CorrelationDay{
			Date:             date,
			TotalConsumption: total,
			ParameterMean:    mean(values),
		})
	}
	sort.Slice(result.Days, func(i, j int) bool { return result.Days[i].Date < result.Days[j].Date })

	if len(result.Days) < 2 {
		return result
	}

	xs := make([]float64, len(result.Days))
	ys := make([]float64, len(result.Days))
	for i, d := range result.Days {
		xs[i] = d.TotalConsumption
		ys[i] = d.ParameterMean
	}
	if r, ok := pearson(xs, ys); ok {
		result.Correlation = &r
	}
	return result
}
