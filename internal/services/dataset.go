package services

import (
	"sort"
	"time"

	"waterpulse/pkg/contracts/domain"
)

// Dataset is an immutable snapshot of one ingestion run: the parsed flow and
// quality series plus derived lookups. Services swap whole snapshots, never
// mutate one in place.
type Dataset struct {
	Flow    []domain.FlowReading
	Quality []domain.QualityReading

	parameters map[string]struct{}
	loadedAt   time.Time
}

// NewDataset builds a snapshot over parsed series.
func NewDataset(flow []domain.FlowReading, quality []domain.QualityReading) *Dataset {
	params := make(map[string]struct{})
	for _, r := range quality {
		params[r.Parameter] = struct{}{}
	}
	return &Dataset{
		Flow:       flow,
		Quality:    quality,
		parameters: params,
		loadedAt:   time.Now(),
	}
}

// HasParameter reports whether the quality series contains the parameter.
func (d *Dataset) HasParameter(parameter string) bool {
	_, ok := d.parameters[parameter]
	return ok
}

// Parameters returns the sorted parameter names present in the snapshot.
func (d *Dataset) Parameters() []string {
	names := make([]string, 0, len(d.parameters))
	for p := range d.parameters {
		names = append(names, p)
	}
	sort.Strings(names)
	return names
}

// LoadedAt reports when the snapshot was built.
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}

// FlowSince returns the flow readings inside the trailing window of the
// given number of days, measured from the newest flow timestamp.
func (d *Dataset) FlowSince(days int) []domain.FlowReading {
	if days <= 0 || len(d.Flow) == 0 {
		return d.Flow
	}
	cutoff := maxFlowTime(d.Flow).AddDate(0, 0, -days)
	out := make([]domain.FlowReading, 0, len(d.Flow))
	for _, r := range d.Flow {
		if !r.Timestamp.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// QualitySince returns the quality readings inside the trailing window of
// the given number of days, measured from the newest quality timestamp.
func (d *Dataset) QualitySince(days int) []domain.QualityReading {
	if days <= 0 || len(d.Quality) == 0 {
		return d.Quality
	}
	cutoff := maxQualityTime(d.Quality).AddDate(0, 0, -days)
	out := make([]domain.QualityReading, 0, len(d.Quality))
	for _, r := range d.Quality {
		if !r.Timestamp.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// QualityFor returns the quality readings for one parameter.
func (d *Dataset) QualityFor(parameter string) []domain.QualityReading {
	out := make([]domain.QualityReading, 0)
	for _, r := range d.Quality {
		if r.Parameter == parameter {
			out = append(out, r)
		}
	}
	return out
}

func maxFlowTime(flow []domain.FlowReading) time.Time {
	var latest time.Time
	for _, r := range flow {
		if r.Timestamp.After(latest) {
			latest = r.Timestamp
		}
	}
	return latest
}

func maxQualityTime(quality []domain.QualityReading) time.Time {
	var latest time.Time
	for _, r := range quality {
		if r.Timestamp.After(latest) {
			latest = r.Timestamp
		}
	}
	return latest
}
