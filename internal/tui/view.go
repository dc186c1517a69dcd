package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StateStartForm || m.state == StateSettingsForm {
		return docStyle.Render(m.form.View())
	}

	var content string
	switch m.state {
	case StateTimer:
		content = m.viewTimer()
	case StateTasks:
		content = m.viewTasks()
	case StateStats:
		content = m.viewStats()
	case StateSettings:
		content = m.viewSettings()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Focus", "Tasks", "Stats", "Settings"} {
		if m.state == ViewState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTimer() string {
	state := m.engine.State()
	now := time.Now()

	var lines []string
	switch state.Phase {
	case constants.PhaseIdle:
		lines = append(lines,
			taskTitleStyle.Render("Ready to focus?"),
			"",
			mutedStyle.Render("[s] start a session"),
		)

	case constants.PhaseFocusing:
		lines = append(lines,
			taskTitleStyle.Render(state.CurrentTask),
			clockStyle.Render(utils.FormatClock(state.Remaining(now))),
			m.progress.ViewAs(state.Progress(now)),
			"",
			mutedStyle.Render("[space] pause  [f] finish early"),
		)

	case constants.PhasePaused:
		lines = append(lines,
			taskTitleStyle.Render(state.CurrentTask),
			clockStyle.Render(utils.FormatClock(state.Remaining(now))),
			pausedStyle.Render("⏸ paused"),
			"",
			mutedStyle.Render("[space] resume  [f] finish early"),
		)

	case constants.PhaseFinished:
		lines = append(lines,
			taskTitleStyle.Render(fmt.Sprintf("Session over: %s", state.CurrentTask)),
			"",
			mutedStyle.Render("[enter] complete task  [r] retry  [n] new session"),
		)
	}

	if m.lastNudge != "" {
		lines = append(lines, "", nudgeStyle.Render("💬 "+m.lastNudge))
	}
	if m.statusMessage != "" {
		lines = append(lines, "", mutedStyle.Render(m.statusMessage))
	}

	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...),
	)
}

func (m Model) viewTasks() string {
	tasks, err := m.sync.Tasks()
	if err != nil {
		return docStyle.Render(dangerStyle.Render(err.Error()))
	}
	if len(tasks) == 0 {
		return docStyle.Render(mutedStyle.Render("No sessions recorded yet."))
	}

	var b strings.Builder
	b.WriteString("Recent sessions:\n\n")
	for _, task := range tasks {
		b.WriteString(cli.FormatTask(task, false))
		b.WriteString("\n")
	}
	return docStyle.Render(b.String())
}

func (m Model) viewStats() string {
	stats, err := m.sync.Stats()
	if err != nil {
		return docStyle.Render(dangerStyle.Render(err.Error()))
	}

	var b strings.Builder
	b.WriteString("Focus Stats:\n\n")
	fmt.Fprintf(&b, "  Current Streak:     %d day(s)\n", stats.Streak)
	fmt.Fprintf(&b, "  Sessions Recorded:  %d\n", len(stats.Tasks))
	fmt.Fprintf(&b, "  Tasks Completed:    %d\n", stats.CompletedCount)
	fmt.Fprintf(&b, "  Total Focus Time:   %dm\n", stats.TotalFocusMin)
	return docStyle.Render(b.String())
}

func (m Model) viewSettings() string {
	profile := m.sync.Profile()
	settings := profile.Settings

	var b strings.Builder
	b.WriteString("Settings:\n\n")
	fmt.Fprintf(&b, "  Plan:              %s\n", profile.Plan)
	fmt.Fprintf(&b, "  Session Duration:  %d min\n", settings.DurationMin)
	fmt.Fprintf(&b, "  Tone:              %s\n", settings.Tone)
	fmt.Fprintf(&b, "  Timezone:          %s\n", settings.Timezone)
	fmt.Fprintf(&b, "  Nudge Cadence:     %d min\n", settings.CadenceMin)
	fmt.Fprintf(&b, "  Nudges Enabled:    %v\n", settings.NudgesEnabled)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("[enter] edit settings"))
	if m.statusMessage != "" {
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render(m.statusMessage))
	}
	return docStyle.Render(b.String())
}
