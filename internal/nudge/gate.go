package nudge

import (
	"time"

	"github.com/julianstephens/focusflow/internal/constants"
)

// Gate decides whether firing a due nudge is currently permitted. It keeps
// a nudge from landing on a hidden surface, right after the user acted, or
// back-to-back when a surface regains focus with several thresholds passed.
type Gate struct {
	MinSpacing time.Duration

	visible         bool
	lastInteraction time.Time
	lastNudge       time.Time
}

// NewGate returns a gate with the default minimum spacing. The surface
// starts visible; headless runs never report blur.
func NewGate() *Gate {
	return &Gate{MinSpacing: constants.MinNudgeSpacing, visible: true}
}

// SetVisible records whether the viewing surface is foregrounded.
func (g *Gate) SetVisible(visible bool) {
	g.visible = visible
}

// Visible reports the current surface visibility.
func (g *Gate) Visible() bool {
	return g.visible
}

// TouchInteraction records a user action at the given instant.
func (g *Gate) TouchInteraction(now time.Time) {
	g.lastInteraction = now
}

// RecordNudge records that a nudge was surfaced at the given instant.
func (g *Gate) RecordNudge(now time.Time) {
	g.lastNudge = now
}

// Permits reports whether a due nudge may fire right now.
func (g *Gate) Permits(now time.Time) bool {
	if !g.visible {
		return false
	}
	if !g.lastInteraction.IsZero() && now.Sub(g.lastInteraction) < g.MinSpacing {
		return false
	}
	if !g.lastNudge.IsZero() && now.Sub(g.lastNudge) < g.MinSpacing {
		return false
	}
	return true
}
