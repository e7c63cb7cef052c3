package tui

import (
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chaos-rings/internal/app"
	"github.com/vovakirdan/chaos-rings/internal/core"
)

const (
	// fpsInterval is the number of frames between FPS readouts.
	fpsInterval = 60

	// maxFrameMs caps a single frame delta after a stalled terminal.
	maxFrameMs = 100.0

	// helpRows is the help bar below the screen buffer.
	helpRows = 1
)

// Model is the Bubble Tea model for one rings game.
type Model struct {
	ctrl         *app.Controller
	screen       *core.Screen
	keys         *KeyMapper
	help         help.Model
	settings     SettingsForm
	showSettings bool
	config       core.RuntimeConfig
	lastTick     time.Time
	frames       int
	fps          int
	quitting     bool
}

// NewModel creates a model driving ctrl at cfg.TickRate on a
// cfg.ScreenW x cfg.ScreenH terminal.
func NewModel(ctrl *app.Controller, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	m := Model{
		ctrl:   ctrl,
		screen: core.NewScreen(cfg.ScreenW, max(0, cfg.ScreenH-helpRows)),
		keys:   NewKeyMapper(),
		help:   help.New(),
		config: cfg,
		fps:    cfg.TickRate,
	}
	m.help.Width = cfg.ScreenW
	ctrl.SetViewport(cfg.ScreenW, FieldRows(m.screen.Height()))
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showSettings {
			return m.updateSettings(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	if m.showSettings {
		return m.updateSettings(msg)
	}
	return m, nil
}

// handleKey processes keyboard input on the game screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionPause:
		m.ctrl.TogglePause()
	case core.ActionRestart:
		m.ctrl.Restart()
	case core.ActionSettings:
		m.settings = NewSettingsForm(m.ctrl.Config())
		m.showSettings = true
		return m, textinput.Blink
	}
	return m, nil
}

// updateSettings routes input to the settings form and applies it on Enter.
func (m Model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.settings, cmd = m.settings.Update(msg)

	switch {
	case m.settings.Closed():
		m.showSettings = false
	case m.settings.Applied():
		cfg, err := m.settings.Config(m.ctrl.Config())
		if err == nil {
			err = m.ctrl.ApplySettings(cfg)
		}
		if err != nil {
			m.settings.SetError(err)
			return m, cmd
		}
		m.showSettings = false
	}
	return m, cmd
}

// handleResize keeps the running game and refits the view.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(0, msg.Height-helpRows))
	m.help.Width = msg.Width
	m.ctrl.SetViewport(msg.Width, FieldRows(m.screen.Height()))
	return m, nil
}

// handleTick advances the game by the wall time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	delta := 1000.0 / float64(m.config.TickRate)
	if !m.lastTick.IsZero() {
		delta = float64(now.Sub(m.lastTick)) / float64(time.Millisecond)
	}
	m.lastTick = now

	m.frames++
	if m.frames%fpsInterval == 0 && delta > 0 {
		m.fps = int(math.Round(1000 / delta))
	}

	m.ctrl.Advance(core.ClampF(delta, 0, maxFrameMs))
	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showSettings {
		panel := lipgloss.Place(m.screen.Width(), m.screen.Height(),
			lipgloss.Center, lipgloss.Center, m.settings.View())
		return panel + "\n" + m.help.View(m.settings.Keys())
	}

	DrawScene(m.screen, SceneFrom(m.ctrl, m.fps))
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys.Keys())
}

// FPS returns the last frame rate readout.
func (m Model) FPS() int {
	return m.fps
}

// Run starts the Bubble Tea program for ctrl.
func Run(ctrl *app.Controller, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(ctrl, cfg),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
