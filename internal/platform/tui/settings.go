package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chaos-rings/internal/config"
)

// Settings form fields, in display order.
const (
	fieldQuestion = iota
	fieldLeftLabel
	fieldLeftColor
	fieldRightLabel
	fieldRightColor
	fieldRingCount
	fieldGapSize
	fieldBallSpeed
	fieldCount
)

var fieldTitles = [fieldCount]string{
	"Question",
	"Answer 1",
	"Answer 1 color",
	"Answer 2",
	"Answer 2 color",
	"Ring count",
	"Gap size (deg)",
	"Ball speed",
}

// SettingsKeyMap defines the key bindings for the settings form.
type SettingsKeyMap struct {
	Next  key.Binding
	Prev  key.Binding
	Apply key.Binding
	Close key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SettingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Apply, k.Close}
}

// FullHelp returns key bindings for the full help view.
func (k SettingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultSettingsKeyMap returns default key bindings.
func DefaultSettingsKeyMap() SettingsKeyMap {
	return SettingsKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-tab", "prev field"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// SettingsForm edits the question, answers and game parameters.
// Applying it starts a new game.
type SettingsForm struct {
	inputs  [fieldCount]textinput.Model
	focus   int
	keys    SettingsKeyMap
	err     string
	applied bool
	closed  bool
}

// NewSettingsForm creates a form prefilled from cfg.
func NewSettingsForm(cfg config.RingsConfig) SettingsForm {
	values := [fieldCount]string{
		cfg.Question,
		cfg.Sides.Left.Label,
		cfg.Sides.Left.Color,
		cfg.Sides.Right.Label,
		cfg.Sides.Right.Color,
		strconv.Itoa(cfg.Rings.Count),
		strconv.FormatFloat(cfg.Rings.GapSize, 'g', -1, 64),
		strconv.FormatFloat(cfg.Balls.Speed, 'g', -1, 64),
	}

	f := SettingsForm{keys: DefaultSettingsKeyMap()}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Width = 32
		ti.SetValue(values[i])
		f.inputs[i] = ti
	}
	f.inputs[0].Focus()
	return f
}

// Update handles key input. Enter and Esc are reported through
// Applied and Closed.
func (f SettingsForm) Update(msg tea.Msg) (SettingsForm, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, f.keys.Close):
			f.closed = true
			return f, nil
		case key.Matches(km, f.keys.Apply):
			f.applied = true
			return f, nil
		case key.Matches(km, f.keys.Next):
			f.setFocus((f.focus + 1) % fieldCount)
			return f, nil
		case key.Matches(km, f.keys.Prev):
			f.setFocus((f.focus + fieldCount - 1) % fieldCount)
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *SettingsForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

// Applied reports whether Enter was pressed.
func (f SettingsForm) Applied() bool {
	return f.applied
}

// Closed reports whether the form was cancelled.
func (f SettingsForm) Closed() bool {
	return f.closed
}

// SetError shows a validation error and keeps the form open.
func (f *SettingsForm) SetError(err error) {
	f.applied = false
	f.err = err.Error()
}

// SetField replaces the text of one field.
func (f *SettingsForm) SetField(field int, v string) {
	f.inputs[field].SetValue(v)
}

// Config merges the form fields into base and validates the result.
func (f SettingsForm) Config(base config.RingsConfig) (config.RingsConfig, error) {
	cfg := base
	val := func(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }

	cfg.Question = val(fieldQuestion)
	cfg.Sides.Left.Label = val(fieldLeftLabel)
	cfg.Sides.Left.Color = val(fieldLeftColor)
	cfg.Sides.Right.Label = val(fieldRightLabel)
	cfg.Sides.Right.Color = val(fieldRightColor)

	count, err := strconv.Atoi(val(fieldRingCount))
	if err != nil {
		return base, fmt.Errorf("ring count: %q is not a whole number", val(fieldRingCount))
	}
	gap, err := strconv.ParseFloat(val(fieldGapSize), 64)
	if err != nil {
		return base, fmt.Errorf("gap size: %q is not a number", val(fieldGapSize))
	}
	speed, err := strconv.ParseFloat(val(fieldBallSpeed), 64)
	if err != nil {
		return base, fmt.Errorf("ball speed: %q is not a number", val(fieldBallSpeed))
	}
	cfg.Rings.Count = count
	cfg.Rings.GapSize = gap
	cfg.Balls.Speed = speed

	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// View renders the form panel.
func (f SettingsForm) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	labelStyle := lipgloss.NewStyle().Width(16).Foreground(lipgloss.Color("245"))
	activeStyle := labelStyle.Foreground(lipgloss.Color("229")).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("SETTINGS"))
	b.WriteString("\n\n")
	for i := range f.inputs {
		style := labelStyle
		if i == f.focus {
			style = activeStyle
		}
		b.WriteString(style.Render(fieldTitles[i]))
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(f.err))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2).
		Render(b.String())
}

// Keys returns the bindings, for the help view.
func (f SettingsForm) Keys() SettingsKeyMap {
	return f.keys
}
