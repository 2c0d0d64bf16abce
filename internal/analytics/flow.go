package analytics

import (
	"sort"
	"time"

	"waterpulse/pkg/contracts/domain"
)

// DailyFlow rolls consumption up by local calendar date: total, mean and
// 95th-percentile interval consumption plus reading count, sorted by date.
func (e *Engine) DailyFlow(flow []domain.FlowReading) []domain.DailyFlowRow {
	groups := make(map[string][]float64)
	for _, r := range flow {
		date := r.Timestamp.Format(dateLayout)
		groups[date] = append(groups[date], r.Consumption)
	}

	rows := make([]domain.DailyFlowRow, 0, len(groups))
	for date, values := range groups {
		rows = append(rows, domain.DailyFlowRow{
			Date:             date,
			TotalConsumption: sum(values),
			MeanInterval:     mean(values),
			P95Interval:      percentile(values, 95),
			Readings:         len(values),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows
}

// ShiftFlow rolls consumption up by (date, shift) bucket.
func (e *Engine) ShiftFlow(flow []domain.FlowReading) []domain.ShiftFlowRow {
	type key struct {
		date  string
		shift string
	}
	groups := make(map[key][]float64)
	for _, r := range flow {
		k := key{
			date:  r.Timestamp.Format(dateLayout),
			shift: e.hourToShift(r.Timestamp.Hour()),
		}
		groups[k] = append(groups[k], r.Consumption)
	}

	rows := make([]domain.ShiftFlowRow, 0, len(groups))
	for k, values := range groups {
		rows = append(rows, domain.ShiftFlowRow{
			Date:             k.date,
			Shift:            k.shift,
			TotalConsumption: sum(values),
			Readings:         len(values),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].Shift < rows[j].Shift
	})
	return rows
}

// HourDayHeatmap averages consumption by (weekday, hour). The matrix covers
// only the weekdays and hours present in the data; absent cells stay nil.
func (e *Engine) HourDayHeatmap(flow []domain.FlowReading) domain.HourDayHeatmap {
	type key struct {
		dow  int // 0 = Monday
		hour int
	}
	groups := make(map[key][]float64)
	for _, r := range flow {
		k := key{dow: mondayIndex(r.Timestamp.Weekday()), hour: r.Timestamp.Hour()}
		groups[k] = append(groups[k], r.Consumption)
	}

	daySet := make(map[int]struct{})
	hourSet := make(map[int]struct{})
	for k := range groups {
		daySet[k.dow] = struct{}{}
		hourSet[k.hour] = struct{}{}
	}
	days := sortedKeys(daySet)
	hours := sortedKeys(hourSet)

	heat := domain.HourDayHeatmap{
		Days:  make([]string, len(days)),
		Hours: hours,
		Cells: make([][]*float64, len(days)),
	}
	for i, dow := range days {
		heat.Days[i] = weekdayName(dow)
		heat.Cells[i] = make([]*float64, len(hours))
		for j, hour := range hours {
			if values, ok := groups[key{dow: dow, hour: hour}]; ok {
				m := mean(values)
				heat.Cells[i][j] = &m
			}
		}
	}
	return heat
}

// MonthlyFlow totals consumption per calendar month, folding years together
// into a seasonal profile.
func (e *Engine) MonthlyFlow(flow []domain.FlowReading) []domain.MonthlyFlowRow {
	groups := make(map[int]float64)
	for _, r := range flow {
		groups[int(r.Timestamp.Month())] += r.Consumption
	}

	rows := make([]domain.MonthlyFlowRow, 0, len(groups))
	for month, total := range groups {
		rows = append(rows, domain.MonthlyFlowRow{Month: month, TotalConsumption: total})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	return rows
}

// mondayIndex renumbers weekdays so Monday is 0, matching shift reporting.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func weekdayName(mondayIdx int) string {
	return time.Weekday((mondayIdx + 1) % 7).String()
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
