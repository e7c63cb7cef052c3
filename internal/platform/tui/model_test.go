package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chaos-rings/internal/app"
	"github.com/vovakirdan/chaos-rings/internal/config"
	"github.com/vovakirdan/chaos-rings/internal/core"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	ctrl, err := app.New(config.DefaultRingsConfig(), app.Options{Seed: 7})
	if err != nil {
		t.Fatalf("app.New() failed: %v", err)
	}
	return NewModel(ctrl, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return nm, cmd
}

func TestNewModelFitsViewport(t *testing.T) {
	m := newTestModel(t)

	if m.screen.Width() != 80 || m.screen.Height() != 23 {
		t.Errorf("screen = %dx%d, expected 80x23", m.screen.Width(), m.screen.Height())
	}
	if m.ctrl.Sim().Zoom() <= 0 {
		t.Errorf("Zoom() = %v, expected a positive fit", m.ctrl.Sim().Zoom())
	}
	if m.Init() == nil {
		t.Error("Init() should start the tick loop")
	}
}

func TestModelPauseAndQuit(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, runeKey('p'))
	if !m.ctrl.Paused() {
		t.Error("p should pause the game")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("View() should show the paused panel")
	}
	m, _ = update(t, m, runeKey(' '))
	if m.ctrl.Paused() {
		t.Error("space should resume the game")
	}

	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Error("q should return a quit command")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t)
	before := m.ctrl.Sim().Zoom()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
	if m.screen.Width() != 160 || m.screen.Height() != 49 {
		t.Errorf("screen = %dx%d, expected 160x49", m.screen.Width(), m.screen.Height())
	}
	if after := m.ctrl.Sim().Zoom(); after <= before {
		t.Errorf("Zoom() after growing = %v, expected more than %v", after, before)
	}
}

func TestModelTickFPS(t *testing.T) {
	m := newTestModel(t)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < fpsInterval; i++ {
		var cmd tea.Cmd
		m, cmd = update(t, m, TickMsg(start.Add(time.Duration(i)*20*time.Millisecond)))
		if cmd == nil {
			t.Fatal("tick should schedule the next tick")
		}
	}
	if m.FPS() != 50 {
		t.Errorf("FPS() = %d, expected 50", m.FPS())
	}
}

func TestModelSettings(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, runeKey('s'))
	if !m.showSettings {
		t.Fatal("s should open the settings form")
	}
	if !strings.Contains(m.View(), "SETTINGS") {
		t.Error("View() should show the settings form")
	}

	// Invalid input keeps the form open and the game untouched
	m.settings.SetField(fieldRingCount, "lots")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.showSettings {
		t.Error("invalid settings should keep the form open")
	}
	if !strings.Contains(m.View(), "ring count") {
		t.Error("View() should show the validation error")
	}

	m.settings.SetField(fieldRingCount, "3")
	m.settings.SetField(fieldQuestion, "Pizza tonight?")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.showSettings {
		t.Error("valid settings should close the form")
	}
	if got := len(m.ctrl.Sim().Rings()); got != 3 {
		t.Errorf("len(Rings()) = %d, expected 3", got)
	}
	if !strings.Contains(m.View(), "Pizza tonight?") {
		t.Error("View() should show the new question")
	}

	m, _ = update(t, m, runeKey('s'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showSettings {
		t.Error("esc should close the settings form")
	}
	if m.ctrl.Config().Question != "Pizza tonight?" {
		t.Error("cancelling should keep the applied settings")
	}
}
