package domain

import (
	"time"
)

// DailyFlowRow is one calendar date of flow consumption statistics.
type DailyFlowRow struct {
	Date             string  `json:"date" csv:"Date"`
	TotalConsumption float64 `json:"total_consumption" csv:"TotalConsumption"`
	MeanInterval     float64 `json:"mean_interval" csv:"MeanInterval"`
	P95Interval      float64 `json:"p95_interval" csv:"P95Interval"`
	Readings         int     `json:"readings" csv:"Readings"`
}

// ShiftFlowRow is one (date, shift) bucket of flow consumption.
type ShiftFlowRow struct {
	Date             string  `json:"date" csv:"Date"`
	Shift            string  `json:"shift" csv:"Shift"`
	TotalConsumption float64 `json:"total_consumption" csv:"TotalConsumption"`
	Readings         int     `json:"readings" csv:"Readings"`
}

// HourDayHeatmap is mean consumption by weekday and hour of day. Rows follow
// Days and columns follow Hours; a nil cell means no readings fell in that
// bucket (never zero-filled).
type HourDayHeatmap struct {
	Days  []string     `json:"days"`
	Hours []int        `json:"hours"`
	Cells [][]*float64 `json:"cells"`
}

// ComplianceRow is one (parameter, date) bucket of safe-range compliance.
type ComplianceRow struct {
	Parameter  string  `json:"parameter" csv:"Parameter"`
	Date       string  `json:"date" csv:"Date"`
	PctInRange float64 `json:"pct_in_range" csv:"PctInRange"`
	Breaches   int     `json:"breaches" csv:"Breaches"`
	Readings   int     `json:"readings" csv:"Readings"`
	AvgValue   float64 `json:"avg_value" csv:"AvgValue"`
	MinValue   float64 `json:"min_value" csv:"MinValue"`
	MaxValue   float64 `json:"max_value" csv:"MaxValue"`
}

// MonthlyFlowRow is total consumption for one calendar month (1-12), folding
// the same month across years into a seasonal view.
type MonthlyFlowRow struct {
	Month            int     `json:"month" csv:"Month"`
	TotalConsumption float64 `json:"total_consumption" csv:"TotalConsumption"`
}

// MonthlyComplianceRow is the mean in-range percentage for one parameter and
// calendar month.
type MonthlyComplianceRow struct {
	Parameter  string  `json:"parameter" csv:"Parameter"`
	Month      int     `json:"month" csv:"Month"`
	PctInRange float64 `json:"pct_in_range" csv:"PctInRange"`
}

// CorrelationDay is one joined day of daily flow total and the daily mean of
// a quality parameter.
type CorrelationDay struct {
	Date             string  `json:"date" csv:"Date"`
	TotalConsumption float64 `json:"total_consumption" csv:"TotalConsumption"`
	ParameterMean    float64 `json:"parameter_mean" csv:"ParameterMean"`
}

// CorrelationResult is the inner join of daily flow totals with a parameter's
// daily means plus their Pearson coefficient. Correlation is nil when fewer
// than two days join, the parameter is absent, or either column has zero
// variance.
type CorrelationResult struct {
	Parameter   string           `json:"parameter"`
	Days        []CorrelationDay `json:"days"`
	Correlation *float64         `json:"correlation"`
}

// AnomalyPoint is one flow reading annotated by the spike detector. Baseline
// and Threshold are nil while the rolling window is warming up or when the
// recent history is constant (zero dispersion); such points are never
// flagged.
type AnomalyPoint struct {
	Timestamp   time.Time `json:"timestamp" csv:"Timestamp"`
	Consumption float64   `json:"consumption" csv:"Consumption"`
	Baseline    *float64  `json:"baseline" csv:"Baseline"`
	Threshold   *float64  `json:"threshold" csv:"Threshold"`
	Anomaly     bool      `json:"anomaly" csv:"Anomaly"`
}
