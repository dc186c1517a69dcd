package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/focusflow/internal/constants"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(msg.Width-8, 40)
		return m, nil

	case tea.FocusMsg:
		m.engine.SetVisible(true)
		return m, nil

	case tea.BlurMsg:
		m.engine.SetVisible(false)
		return m, nil

	case TickMsg:
		m.engine.Tick(time.Time(msg))
		if m.lastNudge != "" && time.Since(m.lastNudgeAt) > nudgeDisplayFor {
			m.lastNudge = ""
		}
		return m, tick()

	case NudgeMsg:
		m.lastNudge = string(msg)
		m.lastNudgeAt = time.Now()
		return m, m.waitForNudge()

	case tea.KeyMsg:
		m.engine.TouchInteraction()
		if m.state == StateStartForm || m.state == StateSettingsForm {
			return m.updateForm(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
		return m, nil
	}

	switch m.state {
	case StateTimer:
		return m.updateTimerKeys(msg)
	case StateSettings:
		if key.Matches(msg, m.keys.Complete) {
			return m.openSettingsForm()
		}
	}
	return m, nil
}

func (m Model) updateTimerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.engine.State()
	m.statusMessage = ""

	switch state.Phase {
	case constants.PhaseIdle:
		if key.Matches(msg, m.keys.Start) {
			return m.openStartForm()
		}

	case constants.PhaseFocusing:
		switch {
		case key.Matches(msg, m.keys.Pause):
			if err := m.engine.Pause(); err != nil {
				m.statusMessage = err.Error()
			}
		case key.Matches(msg, m.keys.Finish):
			if err := m.engine.Finish(); err != nil {
				m.statusMessage = err.Error()
			}
		}

	case constants.PhasePaused:
		switch {
		case key.Matches(msg, m.keys.Pause):
			if err := m.engine.Resume(); err != nil {
				m.statusMessage = err.Error()
			}
		case key.Matches(msg, m.keys.Finish):
			if err := m.engine.Finish(); err != nil {
				m.statusMessage = err.Error()
			}
		}

	case constants.PhaseFinished:
		switch {
		case key.Matches(msg, m.keys.Complete):
			if task, ok := m.engine.LastTask(); ok {
				profile, err := m.sync.CompleteTask(task.ID)
				if err != nil {
					m.statusMessage = err.Error()
					return m, nil
				}
				m.statusMessage = fmt.Sprintf("Task completed. Streak: %d day(s)", profile.Streak)
			}
			if err := m.engine.Reset(); err != nil {
				m.statusMessage = err.Error()
			}
		case key.Matches(msg, m.keys.Retry):
			// Run the same task again without completing it
			if err := m.engine.Reset(); err != nil {
				m.statusMessage = err.Error()
				return m, nil
			}
			if err := m.engine.Start(state.CurrentTask, state.DurationMin); err != nil {
				m.statusMessage = err.Error()
			}
		case key.Matches(msg, m.keys.New):
			if err := m.engine.Reset(); err != nil {
				m.statusMessage = err.Error()
				return m, nil
			}
			return m.openStartForm()
		}
	}
	return m, nil
}

func (m Model) openStartForm() (tea.Model, tea.Cmd) {
	settings := m.sync.Profile().Settings
	m.startForm = &StartFormModel{
		Duration: strconv.Itoa(settings.DurationMin),
	}
	m.form = newStartForm(m.startForm)
	m.state = StateStartForm
	return m, m.form.Init()
}

func (m Model) openSettingsForm() (tea.Model, tea.Cmd) {
	profile := m.sync.Profile()
	m.settingsForm = &SettingsFormModel{
		Duration: strconv.Itoa(profile.Settings.DurationMin),
		Tone:     profile.Settings.Tone,
		Cadence:  strconv.Itoa(profile.Settings.CadenceMin),
		Nudges:   profile.Settings.NudgesEnabled,
	}
	m.form = newSettingsForm(m.settingsForm, profile.Plan)
	m.state = StateSettingsForm
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.form = nil
		if m.state == StateSettingsForm {
			m.state = StateSettings
		} else {
			m.state = StateTimer
		}
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		switch m.state {
		case StateStartForm:
			return m.submitStartForm()
		case StateSettingsForm:
			return m.submitSettingsForm()
		}
	}
	return m, cmd
}

func (m Model) submitStartForm() (tea.Model, tea.Cmd) {
	duration, err := strconv.Atoi(strings.TrimSpace(m.startForm.Duration))
	if err != nil {
		duration = m.sync.Profile().Settings.DurationMin
	}
	if err := m.engine.Start(strings.TrimSpace(m.startForm.Task), duration); err != nil {
		m.statusMessage = err.Error()
	}
	m.form = nil
	m.state = StateTimer
	return m, nil
}

func (m Model) submitSettingsForm() (tea.Model, tea.Cmd) {
	settings := m.sync.Profile().Settings
	if duration, err := strconv.Atoi(strings.TrimSpace(m.settingsForm.Duration)); err == nil {
		settings.DurationMin = duration
	}
	if cadence, err := strconv.Atoi(strings.TrimSpace(m.settingsForm.Cadence)); err == nil {
		settings.CadenceMin = cadence
	}
	if m.settingsForm.Tone != "" {
		settings.Tone = m.settingsForm.Tone
	}
	settings.NudgesEnabled = m.settingsForm.Nudges

	if err := m.sync.SetSettings(settings); err != nil {
		m.statusMessage = err.Error()
	} else {
		m.statusMessage = "Settings saved."
	}
	m.form = nil
	m.state = StateSettings
	return m, nil
}
