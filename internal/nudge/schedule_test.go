package nudge

import (
	"math"
	"testing"
)

func TestPlan_TenMinuteSession(t *testing.T) {
	// 10 minutes at a 5-minute cadence: two nudges, quiet first 150s and
	// last 60s, 390s active window split into 130s intervals.
	s := Plan(10, 5)

	want := []int{320, 190}
	got := s.Thresholds()
	if len(got) != len(want) {
		t.Fatalf("expected %d thresholds, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("threshold %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestPlan_Properties(t *testing.T) {
	for _, durationMin := range []int{1, 2, 5, 10, 25, 45, 60, 90, 120} {
		for _, cadenceMin := range []int{1, 5, 10, 30} {
			s := Plan(durationMin, cadenceMin)

			total := durationMin * 60
			quietStart := float64(total) * 0.25
			quietEnd := float64(total) * 0.10
			if float64(total)-quietStart-quietEnd < 1 {
				if s.Len() != 0 {
					t.Errorf("D=%d K=%d: expected empty schedule for tiny session", durationMin, cadenceMin)
				}
				continue
			}

			wantCount := int(math.Ceil(float64(durationMin) / float64(cadenceMin)))
			if wantCount < 1 {
				wantCount = 1
			}
			if s.Len() != wantCount {
				t.Errorf("D=%d K=%d: expected %d thresholds, got %d", durationMin, cadenceMin, wantCount, s.Len())
			}

			th := s.Thresholds()
			for i, v := range th {
				if i > 0 && v >= th[i-1] {
					t.Errorf("D=%d K=%d: thresholds not strictly descending: %v", durationMin, cadenceMin, th)
					break
				}
				if float64(v) <= quietEnd || float64(v) >= float64(total)-quietStart {
					t.Errorf("D=%d K=%d: threshold %d outside active window (%v, %v)",
						durationMin, cadenceMin, v, quietEnd, float64(total)-quietStart)
				}
			}
		}
	}
}

func TestPlan_ZeroDuration(t *testing.T) {
	s := Plan(0, 5)
	if s.Len() != 0 {
		t.Errorf("expected empty schedule, got %v", s.Thresholds())
	}
	if _, ok := s.Next(); ok {
		t.Error("empty schedule must not report a next threshold")
	}
}

func TestSchedule_CursorIsMonotonic(t *testing.T) {
	s := Plan(10, 5)

	first, ok := s.Next()
	if !ok {
		t.Fatal("expected a first threshold")
	}

	// Not yet due above the first threshold
	if s.Due(float64(first) + 10) {
		t.Error("nudge must not be due above its threshold")
	}
	if !s.Due(float64(first)) {
		t.Error("nudge must be due at its threshold")
	}
	if !s.Due(float64(first) - 5) {
		t.Error("nudge must stay due below its threshold")
	}

	s.Advance()
	second, ok := s.Next()
	if !ok || second >= first {
		t.Errorf("expected a smaller second threshold, got %d after %d", second, first)
	}

	s.Advance()
	if _, ok := s.Next(); ok {
		t.Error("expected schedule to be spent after advancing past all thresholds")
	}

	// Advancing a spent schedule stays spent
	s.Advance()
	if s.Due(0) {
		t.Error("spent schedule must not report due nudges")
	}
}
