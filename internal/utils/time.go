package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/focusflow/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// Today returns today's date string (YYYY-MM-DD) in the specified timezone.
// Streak accounting is date-based, so "today" must come from the user's
// configured timezone, not whatever zone the process happens to run in.
func Today(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// DateOf formats an instant as a date string (YYYY-MM-DD) in the given timezone.
func DateOf(t time.Time, timezone string) (string, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return t.In(loc).Format(constants.DateFormat), nil
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(constants.DateFormat, s)
}

// FormatClock renders a number of seconds as MM:SS for countdown display.
func FormatClock(seconds float64) string {
	total := int(seconds + 0.999999) // ceil to the next whole second
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
