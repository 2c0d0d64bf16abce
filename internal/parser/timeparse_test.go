package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWallClockLayouts(t *testing.T) {
	tests := []struct {
		name    string
		dateStr string
		timeStr string
		want    time.Time
		wantErr bool
	}{
		{
			name:    "slash day first",
			dateStr: "15/06/2024",
			timeStr: "14:30:00",
			want:    time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC),
		},
		{
			name:    "single digit day and month",
			dateStr: "5/6/2024",
			timeStr: "09:05",
			want:    time.Date(2024, 6, 5, 9, 5, 0, 0, time.UTC),
		},
		{
			name:    "iso date",
			dateStr: "2024-06-15",
			timeStr: "23:59:59",
			want:    time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC),
		},
		{
			name:    "twelve hour clock",
			dateStr: "15/06/2024",
			timeStr: "2:30:00 PM",
			want:    time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC),
		},
		{
			name:    "bad date",
			dateStr: "June 15",
			timeStr: "14:30:00",
			wantErr: true,
		},
		{
			name:    "bad time",
			dateStr: "15/06/2024",
			timeStr: "half past two",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseWallClock(tt.dateStr, tt.timeStr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestLocalizeUnambiguousTime(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	wall := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	got, err := localize(wall, loc)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Hour())
	assert.Equal(t, loc, got.Location())
}

func TestLocalizeDSTGapMovesForward(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 2024-03-31 02:30 does not exist in Berlin; clocks jump 02:00 -> 03:00.
	wall := time.Date(2024, 3, 31, 2, 30, 0, 0, time.UTC)
	got, err := localize(wall, loc)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Hour())
	assert.Equal(t, 0, got.Minute())
}

func TestLocalizeDSTAmbiguousTimeRejected(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 2024-10-27 02:30 occurs twice in Berlin; clocks fall 03:00 -> 02:00.
	wall := time.Date(2024, 10, 27, 2, 30, 0, 0, time.UTC)
	_, err = localize(wall, loc)
	assert.ErrorIs(t, err, errAmbiguousTime)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1234.5", 1234.5, false},
		{"1,234.5", 1234.5, false},
		{"  42 ", 42, false},
		{"-3.25", -3.25, false},
		{"", 0, true},
		{"n/a", 0, true},
	}

	for _, tt := range tests {
		got, err := parseNumber(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
