package nudge

import (
	"testing"
	"time"
)

func TestGate_Visibility(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	g := NewGate()

	if !g.Permits(now) {
		t.Error("fresh gate should permit")
	}

	g.SetVisible(false)
	if g.Permits(now) {
		t.Error("hidden surface must suppress nudges")
	}

	g.SetVisible(true)
	if !g.Permits(now) {
		t.Error("restored visibility should permit again")
	}
}

func TestGate_Spacing(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		setup  func(g *Gate)
		at     time.Time
		permit bool
	}{
		{"recent interaction blocks", func(g *Gate) { g.TouchInteraction(now) }, now.Add(5 * time.Second), false},
		{"stale interaction permits", func(g *Gate) { g.TouchInteraction(now) }, now.Add(31 * time.Second), true},
		{"recent nudge blocks", func(g *Gate) { g.RecordNudge(now) }, now.Add(10 * time.Second), false},
		{"stale nudge permits", func(g *Gate) { g.RecordNudge(now) }, now.Add(30 * time.Second), true},
		{"both recent block", func(g *Gate) { g.TouchInteraction(now); g.RecordNudge(now) }, now.Add(29 * time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGate()
			tt.setup(g)
			if got := g.Permits(tt.at); got != tt.permit {
				t.Errorf("expected permit=%v, got %v", tt.permit, got)
			}
		})
	}
}

func TestFallbackBucket(t *testing.T) {
	tests := []struct {
		progress float64
		want     string
	}{
		{0, "gentle"},
		{0.49, "gentle"},
		{0.5, "playful"},
		{0.74, "playful"},
		{0.75, "motivating"},
		{0.99, "motivating"},
	}

	for _, tt := range tests {
		if got := FallbackBucket(tt.progress); got != tt.want {
			t.Errorf("FallbackBucket(%v) = %s, want %s", tt.progress, got, tt.want)
		}
	}
}

func TestFallback_NonEmpty(t *testing.T) {
	for _, p := range []float64{0.1, 0.6, 0.9} {
		if Fallback(p) == "" {
			t.Errorf("fallback for progress %v is empty", p)
		}
	}
	if FallbackFromPool("mindful", 0.5) == "" {
		t.Error("named pool fallback is empty")
	}
	if FallbackFromPool("nonexistent", 0.1) == "" {
		t.Error("unknown pool must fall back to progress bucket")
	}
}
