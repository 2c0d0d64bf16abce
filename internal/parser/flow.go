package parser

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"waterpulse/pkg/contracts/domain"
)

// Parser recovers typed reading series from the loosely structured exports
// the metering equipment writes. Malformed data rows are dropped, never
// fatal; only a structurally unreadable file surfaces as an error from the
// table loaders.
type Parser struct {
	loc    *time.Location
	logger *slog.Logger
}

// New creates a parser bound to the plant's local timezone.
func New(loc *time.Location, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{loc: loc, logger: logger}
}

// ParseFlow extracts an ordered, deduplicated flow series from a totalizer
// export. The file may contain several repeated header blocks, one per
// logging session; blocks are concatenated, deduplicated by timestamp (first
// occurrence wins) and sorted before consumption is derived as the clamped
// first difference of the totalizer.
func (p *Parser) ParseFlow(rows [][]string) []domain.FlowReading {
	headerIdxs := make([]int, 0, 4)
	for i, row := range rows {
		if isFlowHeader(row) {
			headerIdxs = append(headerIdxs, i)
		}
	}

	var dropped int
	readings := make([]domain.FlowReading, 0, len(rows))
	for k, start := range headerIdxs {
		end := len(rows)
		if k+1 < len(headerIdxs) {
			end = headerIdxs[k+1]
		}

		block := make([]domain.FlowReading, 0, end-start)
		for _, row := range rows[start+1 : end] {
			if len(row) < 3 {
				dropped++
				continue
			}
			dateStr := strings.TrimSpace(row[0])
			timeStr := strings.TrimSpace(row[1])
			valStr := strings.TrimSpace(row[2])
			if dateStr == "" || timeStr == "" || valStr == "" {
				dropped++
				continue
			}

			wall, err := parseWallClock(dateStr, timeStr)
			if err != nil {
				dropped++
				continue
			}
			ts, err := localize(wall, p.loc)
			if err != nil {
				dropped++
				continue
			}
			total, err := parseNumber(valStr)
			if err != nil {
				dropped++
				continue
			}

			block = append(block, domain.FlowReading{Timestamp: ts, Totalizer: total})
		}

		sort.SliceStable(block, func(i, j int) bool {
			return block[i].Timestamp.Before(block[j].Timestamp)
		})
		readings = append(readings, block...)
	}

	// First occurrence wins across concatenated blocks.
	seen := make(map[int64]struct{}, len(readings))
	deduped := readings[:0]
	for _, r := range readings {
		key := r.Timestamp.UnixNano()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, r)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Timestamp.Before(deduped[j].Timestamp)
	})

	for i := range deduped {
		if i == 0 {
			deduped[i].Consumption = 0
			continue
		}
		delta := deduped[i].Totalizer - deduped[i-1].Totalizer
		if delta < 0 {
			// Device reset or counter rollover.
			delta = 0
		}
		deduped[i].Consumption = delta
	}

	p.logger.Debug("parsed flow export",
		slog.Int("blocks", len(headerIdxs)),
		slog.Int("readings", len(deduped)),
		slog.Int("dropped_rows", dropped))

	return deduped
}

// isFlowHeader reports whether a row starts a logging session: the first
// three cells read "date", "time" and a totalizer column.
func isFlowHeader(row []string) bool {
	if len(row) < 3 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(row[0]), "date") &&
		strings.EqualFold(strings.TrimSpace(row[1]), "time") &&
		strings.Contains(strings.ToLower(row[2]), "totalizer")
}
