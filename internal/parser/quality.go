package parser

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"waterpulse/pkg/contracts/domain"
)

// Parameter block headers look like
// "1. HUMIDITY (HUMIDITY), Safe Range: (30 to 70)".
var paramHeaderRe = regexp.MustCompile(`(?i)^\s*\d+\.\s*(.+?)\s*,\s*Safe Range:\s*\(([^)]+)\)\s*$`)

// qualityState tracks where the scanner is inside a parameter block.
type qualityState int

const (
	seekingParameter qualityState = iota
	seekingTableHeader
	inTable
)

// ParseQuality extracts an ordered series of parameter observations from a
// quality export. The file alternates parameter headers, a Date/Time/Value
// column header, and data rows; the scanner walks rows with an explicit
// state machine so a malformed block can never bleed into the next one.
// Output is sorted by (parameter, timestamp); equal timestamps are kept.
func (p *Parser) ParseQuality(rows [][]string) []domain.QualityReading {
	var (
		state     = seekingParameter
		parameter string
		safeMin   *float64
		safeMax   *float64
		dropped   int
	)

	readings := make([]domain.QualityReading, 0, len(rows))
	for _, row := range rows {
		cells := nonEmptyCells(row)
		if len(cells) == 0 {
			continue
		}

		if name, lo, hi, ok := matchParameterHeader(cells); ok {
			parameter, safeMin, safeMax = name, lo, hi
			state = seekingTableHeader
			continue
		}

		if state != seekingParameter && isQualityTableHeader(cells) {
			state = inTable
			continue
		}

		if state != inTable {
			continue
		}

		if len(cells) < 3 {
			dropped++
			continue
		}

		wall, err := parseWallClock(cells[0], cells[1])
		if err != nil {
			dropped++
			continue
		}
		ts, err := localize(wall, p.loc)
		if err != nil {
			dropped++
			continue
		}
		value, err := parseNumber(cells[2])
		if err != nil {
			dropped++
			continue
		}

		readings = append(readings, domain.QualityReading{
			Timestamp: ts,
			Parameter: parameter,
			Value:     value,
			SafeMin:   safeMin,
			SafeMax:   safeMax,
		})
	}

	sort.SliceStable(readings, func(i, j int) bool {
		if readings[i].Parameter != readings[j].Parameter {
			return readings[i].Parameter < readings[j].Parameter
		}
		return readings[i].Timestamp.Before(readings[j].Timestamp)
	})

	p.logger.Debug("parsed quality export",
		slog.Int("readings", len(readings)),
		slog.Int("dropped_rows", dropped))

	return readings
}

// matchParameterHeader recognizes a parameter block header. The header may
// arrive quoted in a single cell or split across cells by the comma before
// "Safe Range"; both shapes occur in the exports.
func matchParameterHeader(cells []string) (name string, lo, hi *float64, ok bool) {
	m := paramHeaderRe.FindStringSubmatch(cells[0])
	if m == nil && len(cells) > 1 {
		m = paramHeaderRe.FindStringSubmatch(strings.Join(cells, ", "))
	}
	if m == nil {
		return "", nil, nil, false
	}
	lo, hi = parseSafeRange(m[2])
	return strings.TrimSpace(m[1]), lo, hi, true
}

// parseSafeRange parses "a to b". It fails closed: any deviation from two
// numeric halves yields nil bounds, never a partial match.
func parseSafeRange(text string) (*float64, *float64) {
	parts := strings.Split(text, "to")
	if len(parts) != 2 {
		return nil, nil
	}
	lo, err := parseNumber(parts[0])
	if err != nil {
		return nil, nil
	}
	hi, err := parseNumber(parts[1])
	if err != nil {
		return nil, nil
	}
	return &lo, &hi
}

func isQualityTableHeader(cells []string) bool {
	return len(cells) >= 3 &&
		strings.EqualFold(cells[0], "date") &&
		strings.EqualFold(cells[1], "time")
}

func nonEmptyCells(row []string) []string {
	cells := make([]string, 0, len(row))
	for _, c := range row {
		if t := strings.TrimSpace(c); t != "" {
			cells = append(cells, t)
		}
	}
	return cells
}
