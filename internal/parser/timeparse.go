package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// errAmbiguousTime marks wall-clock times that occur twice during a backward
// clock shift. Such rows are dropped rather than guessed at.
var errAmbiguousTime = errors.New("ambiguous local time")

// Exports write dates day-first.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2006-01-02",
}

var timeLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
}

// parseWallClock parses separate date and time cells into a naive wall-clock
// time carried in UTC. Localization happens separately so the timezone policy
// stays in one place.
func parseWallClock(dateStr, timeStr string) (time.Time, error) {
	var day time.Time
	var err error
	for _, layout := range dateLayouts {
		if day, err = time.Parse(layout, dateStr); err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q", dateStr)
	}

	var clock time.Time
	for _, layout := range timeLayouts {
		if clock, err = time.Parse(layout, timeStr); err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable time %q", timeStr)
	}

	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC), nil
}

// localize maps a naive wall-clock time onto loc. Times skipped by a forward
// clock shift are moved to the first valid instant after the gap; times
// repeated by a backward shift return errAmbiguousTime.
func localize(wall time.Time, loc *time.Location) (time.Time, error) {
	// Offsets in effect around the instant; covers any transition close
	// enough to affect this wall time.
	offsets := make(map[int]struct{})
	for _, d := range []time.Duration{-30 * time.Hour, 0, 30 * time.Hour} {
		_, off := wall.Add(d).In(loc).Zone()
		offsets[off] = struct{}{}
	}

	var candidates []time.Time
	for off := range offsets {
		cand := wall.Add(-time.Duration(off) * time.Second)
		if sameWall(cand.In(loc), wall) {
			candidates = append(candidates, cand)
		}
	}

	switch len(candidates) {
	case 1:
		return candidates[0].In(loc), nil
	case 0:
		return gapEnd(wall, loc, offsets), nil
	default:
		return time.Time{}, errAmbiguousTime
	}
}

// gapEnd finds the first valid instant after the forward shift that swallowed
// the given wall time.
func gapEnd(wall time.Time, loc *time.Location, offsets map[int]struct{}) time.Time {
	minOff, maxOff := 1<<31-1, -(1 << 31)
	for off := range offsets {
		if off < minOff {
			minOff = off
		}
		if off > maxOff {
			maxOff = off
		}
	}

	// The instant computed with the post-shift offset precedes the
	// transition; the one with the pre-shift offset follows it. Bisect for
	// the transition instant itself.
	before := wall.Add(-time.Duration(maxOff) * time.Second)
	after := wall.Add(-time.Duration(minOff) * time.Second)
	for after.Sub(before) > time.Second {
		mid := before.Add((after.Sub(before) / 2).Truncate(time.Second))
		if _, off := mid.In(loc).Zone(); off == maxOff {
			after = mid
		} else {
			before = mid
		}
	}
	return after.In(loc)
}

func sameWall(t, wall time.Time) bool {
	return t.Year() == wall.Year() && t.Month() == wall.Month() && t.Day() == wall.Day() &&
		t.Hour() == wall.Hour() && t.Minute() == wall.Minute() && t.Second() == wall.Second()
}

// parseNumber parses a numeric cell, tolerating thousands separators.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty numeric cell")
	}
	return strconv.ParseFloat(s, 64)
}
