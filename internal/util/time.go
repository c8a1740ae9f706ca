package util

import (
	"fmt"
	"strings"
	"time"
)

var clockLayouts = []string{"15:04", "3:04PM", "3:04 PM", "03:04PM", "03:04 PM"}

// ParseTimeString parses a time of day ("23:30", "11:30PM", "9:45 AM") as
// that time today in the local zone.
func ParseTimeString(timeStr string) (time.Time, error) {
	return ParseTimeStringWithNow(timeStr, time.Now())
}

// ParseTimeStringWithNow is ParseTimeString relative to now instead of the wall clock.
func ParseTimeStringWithNow(timeStr string, now time.Time) (time.Time, error) {
	timeStr = strings.TrimSpace(strings.ToUpper(timeStr))
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, timeStr); err == nil {
			return midnight.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid time format: %s\n\nValid formats:\n"+
		"• 24-hour: HH:MM (e.g., '23:30', '09:45')\n"+
		"• 12-hour: HH:MM[AM|PM] (e.g., '11:30PM', '9:45 AM')", timeStr)
}
