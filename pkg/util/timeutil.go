package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseClock parses a wall-clock value in "HH:MM" form.
func ParseClock(value string) (time.Time, error) {
	return time.Parse("15:04", value)
}
