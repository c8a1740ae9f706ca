package util

import (
	"fmt"
	"strconv"
	"time"
)

// ParseDuration accepts whole minutes ("150") or a Go duration ("2h30m").
func ParseDuration(input string) (time.Duration, error) {
	if minutes, err := strconv.Atoi(input); err == nil {
		if minutes < 0 {
			return 0, durationError(input)
		}
		return time.Duration(minutes) * time.Minute, nil
	}

	duration, err := time.ParseDuration(input)
	if err != nil || duration < 0 {
		return 0, durationError(input)
	}
	return duration, nil
}

func durationError(input string) error {
	return fmt.Errorf("invalid duration format: %s\n\nValid formats:\n"+
		"• Minutes: 150\n"+
		"• Duration: 2h30m, 45m, 1h30m45s", input)
}
