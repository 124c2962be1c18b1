package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ClockLayout is the wall-clock stamp prefixed to broadcast updates.
const ClockLayout = "15:04:05"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatClock formats a time as HH:MM:SS in its current location.
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}
