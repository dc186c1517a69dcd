package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/engine"
	"github.com/julianstephens/focusflow/internal/syncer"
	"github.com/julianstephens/focusflow/internal/validation"
)

type ViewState int

const (
	StateTimer ViewState = iota
	StateTasks
	StateStats
	StateSettings
	StateStartForm
	StateSettingsForm
)

// tabCount covers the cycling tabs; form states sit outside the cycle.
const tabCount = 4

// nudgeDisplayFor is how long a nudge stays on screen.
const nudgeDisplayFor = 15 * time.Second

type StartFormModel struct {
	Task     string
	Duration string
}

type SettingsFormModel struct {
	Duration string
	Tone     constants.Tone
	Cadence  string
	Nudges   bool
}

type Model struct {
	engine *engine.Engine
	sync   *syncer.Synchronizer

	state         ViewState
	keys          KeyMap
	help          help.Model
	progress      progress.Model
	form          *huh.Form
	startForm     *StartFormModel
	settingsForm  *SettingsFormModel
	nudgeCh       chan string
	lastNudge     string
	lastNudgeAt   time.Time
	statusMessage string
	quitting      bool
	width         int
	height        int
}

func NewModel(eng *engine.Engine, sync *syncer.Synchronizer) Model {
	m := Model{
		engine:   eng,
		sync:     sync,
		state:    StateTimer,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient()),
		nudgeCh:  make(chan string, 4),
	}
	eng.OnNudge = func(text string) { m.nudgeCh <- text }
	return m
}

type TickMsg time.Time

type NudgeMsg string

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) waitForNudge() tea.Cmd {
	return func() tea.Msg {
		return NudgeMsg(<-m.nudgeCh)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.waitForNudge())
}

func newStartForm(fm *StartFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What are you focusing on?").
				Value(&fm.Task).
				Validate(validation.TaskName),
			huh.NewInput().
				Title("Duration (min)").
				Value(&fm.Duration).
				Validate(func(s string) error {
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return err
					}
					return validation.Duration(i)
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func newSettingsForm(fm *SettingsFormModel, plan constants.Plan) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Default duration (min)").
			Value(&fm.Duration).
			Validate(func(s string) error {
				i, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil {
					return err
				}
				return validation.Duration(i)
			}),
		huh.NewInput().
			Title("Nudge cadence (min)").
			Value(&fm.Cadence).
			Validate(func(s string) error {
				i, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil {
					return err
				}
				return validation.Cadence(i)
			}),
		huh.NewConfirm().
			Title("Nudges enabled").
			Value(&fm.Nudges),
	}
	if plan == constants.PlanPro {
		fields = append(fields, huh.NewSelect[constants.Tone]().
			Title("Tone").
			Options(
				huh.NewOption("Calm", constants.ToneCalm),
				huh.NewOption("Fun", constants.ToneFun),
				huh.NewOption("Firm", constants.ToneFirm),
			).
			Value(&fm.Tone))
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula())
}
