package streak

import "github.com/julianstephens/focusflow/internal/utils"

// Advance computes the streak update produced by completing a task today.
// Inputs and outputs are calendar dates (YYYY-MM-DD) in a single,
// consistently chosen timezone: completing a second task on the same day
// keeps both values unchanged, a consecutive-day completion increments the
// streak, and any gap of two or more days resets it. A lastCompleted date
// in the future (clock skew) is neither today nor yesterday, so it resets
// too rather than crashing.
func Advance(streak int, lastCompleted, today string) (int, string) {
	if lastCompleted == "" {
		return 1, today
	}
	if lastCompleted == today {
		return streak, lastCompleted
	}
	if isYesterday(lastCompleted, today) {
		return streak + 1, today
	}
	return 1, today
}

func isYesterday(date, today string) bool {
	d, err := utils.ParseDate(date)
	if err != nil {
		return false
	}
	t, err := utils.ParseDate(today)
	if err != nil {
		return false
	}
	return d.AddDate(0, 0, 1).Equal(t)
}

// DaysBetween returns the whole calendar days from a to b, negative when b
// precedes a. Used for reporting, not for the streak decision itself.
func DaysBetween(a, b string) (int, error) {
	ta, err := utils.ParseDate(a)
	if err != nil {
		return 0, err
	}
	tb, err := utils.ParseDate(b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}
