package domain

import (
	"time"
)

// FlowReading is a single totalizer observation from a flow meter export.
// Consumption is the derived interval delta; the first reading of a series
// carries zero and negative deltas (device reset or rollover) are clamped to
// zero.
type FlowReading struct {
	Timestamp   time.Time `json:"timestamp" csv:"Timestamp"`
	Totalizer   float64   `json:"totalizer" csv:"Totalizer"`
	Consumption float64   `json:"consumption" csv:"Consumption"`
}

// QualityReading is a single observation of one water-quality parameter.
// SafeMin/SafeMax are nil when the export's safe-range text could not be
// parsed; such readings are never considered in range.
type QualityReading struct {
	Timestamp time.Time `json:"timestamp" csv:"Timestamp"`
	Parameter string    `json:"parameter" csv:"Parameter"`
	Value     float64   `json:"value" csv:"Value"`
	SafeMin   *float64  `json:"safe_min" csv:"SafeMin"`
	SafeMax   *float64  `json:"safe_max" csv:"SafeMax"`
}

// InRange reports whether the reading's value falls inside its inclusive
// safe range. Readings without parsed bounds are out of range.
func (r QualityReading) InRange() bool {
	if r.SafeMin == nil || r.SafeMax == nil {
		return false
	}
	return r.Value >= *r.SafeMin && r.Value <= *r.SafeMax
}

// BreachEvent is a maximal contiguous run of out-of-range readings for one
// parameter. Events are derived on demand and never persisted.
type BreachEvent struct {
	Parameter   string    `json:"parameter" csv:"Parameter"`
	Start       time.Time `json:"start" csv:"Start"`
	End         time.Time `json:"end" csv:"End"`
	DurationMin float64   `json:"duration_min" csv:"DurationMin"`
	MinValue    float64   `json:"min_value" csv:"MinValue"`
	MaxValue    float64   `json:"max_value" csv:"MaxValue"`
	Readings    int       `json:"readings" csv:"Readings"`
}
