package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeStringWithNow(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		timeStr   string
		wantHour  int
		wantMin   int
		wantError bool
	}{
		{name: "24h evening", timeStr: "22:30", wantHour: 22, wantMin: 30},
		{name: "24h morning", timeStr: "09:45", wantHour: 9, wantMin: 45},
		{name: "24h midnight", timeStr: "00:00", wantHour: 0, wantMin: 0},
		{name: "12h PM", timeStr: "10:30PM", wantHour: 22, wantMin: 30},
		{name: "12h AM", timeStr: "09:45AM", wantHour: 9, wantMin: 45},
		{name: "12h with space", timeStr: "10:30 PM", wantHour: 22, wantMin: 30},
		{name: "12h lowercase", timeStr: "9:45am", wantHour: 9, wantMin: 45},
		{name: "surrounding spaces", timeStr: "  12:00 ", wantHour: 12, wantMin: 0},

		{name: "no minutes", timeStr: "22:", wantError: true},
		{name: "no separator", timeStr: "2230", wantError: true},
		{name: "wrong separator", timeStr: "22.30", wantError: true},
		{name: "trailing garbage", timeStr: "22:30xyz", wantError: true},
		{name: "hour out of range", timeStr: "25:00", wantError: true},
		{name: "minute out of range", timeStr: "22:60", wantError: true},
		{name: "empty", timeStr: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeStringWithNow(tt.timeStr, now)
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "Valid formats")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantHour, got.Hour())
			assert.Equal(t, tt.wantMin, got.Minute())
			assert.Equal(t, now.YearDay(), got.YearDay(), "should resolve to the same day as now")
		})
	}
}

func TestParseTimeStringUsesToday(t *testing.T) {
	got, err := ParseTimeString("12:00")
	require.NoError(t, err)

	now := time.Now()
	assert.Equal(t, now.Year(), got.Year())
	assert.Equal(t, now.Month(), got.Month())
	assert.Equal(t, now.Day(), got.Day())
}
