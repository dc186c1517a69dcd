package nudge

import (
	"math"

	"github.com/julianstephens/focusflow/internal/constants"
)

// Schedule is the precomputed nudge plan for one session: an ordered
// (descending) list of seconds-remaining thresholds plus a cursor. It is
// derived at session start and discarded at session end, never persisted.
// Thresholds are measured in seconds remaining, so pausing naturally
// freezes them: remaining time is preserved exactly across a pause.
type Schedule struct {
	thresholds []int
	cursor     int
}

// Plan computes the nudge schedule for a session of the given length.
// The first quarter and final tenth of the session stay quiet; the
// cadence divisor controls how many nudges land in between (one per
// cadenceMin minutes of session length, never zero). Dividing the active
// window by count+1 places nudges strictly between its boundaries.
func Plan(durationMin, cadenceMin int) Schedule {
	if durationMin <= 0 {
		return Schedule{}
	}
	if cadenceMin <= 0 {
		cadenceMin = constants.DefaultCadenceMin
	}

	total := float64(durationMin * 60)
	count := int(math.Ceil(float64(durationMin) / float64(cadenceMin)))
	if count < 1 {
		count = 1
	}

	quietStart := total * constants.QuietStartFraction
	quietEnd := total * constants.QuietEndFraction
	activeWindow := total - quietStart - quietEnd
	if activeWindow < 1 {
		// Too short a session to nudge
		return Schedule{}
	}

	interval := activeWindow / float64(count+1)
	thresholds := make([]int, 0, count)
	for i := 1; i <= count; i++ {
		timeFromStart := quietStart + float64(i)*interval
		thresholds = append(thresholds, int(math.Floor(total-timeFromStart)))
	}

	// timeFromStart grows with i, so thresholds are already descending in
	// seconds remaining; keep them that way explicitly.
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] > thresholds[i-1] {
			thresholds[i-1], thresholds[i] = thresholds[i], thresholds[i-1]
		}
	}

	return Schedule{thresholds: thresholds}
}

// Len returns the number of thresholds in the schedule.
func (s *Schedule) Len() int {
	return len(s.thresholds)
}

// Thresholds returns a copy of the seconds-remaining thresholds.
func (s *Schedule) Thresholds() []int {
	out := make([]int, len(s.thresholds))
	copy(out, s.thresholds)
	return out
}

// Next returns the upcoming threshold, or false when the schedule is spent.
func (s *Schedule) Next() (int, bool) {
	if s.cursor >= len(s.thresholds) {
		return 0, false
	}
	return s.thresholds[s.cursor], true
}

// Due reports whether the upcoming threshold has been reached at the given
// remaining time.
func (s *Schedule) Due(remaining float64) bool {
	next, ok := s.Next()
	return ok && remaining <= float64(next)
}

// Advance moves past the current threshold. Advancement is monotonic and
// never rewinds; it happens whether the nudge succeeded or fell back, so a
// failed attempt does not retry on the next tick.
func (s *Schedule) Advance() {
	if s.cursor < len(s.thresholds) {
		s.cursor++
	}
}
