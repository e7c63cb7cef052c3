package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chaos-rings/internal/config"
)

func TestSettingsFormRoundTrip(t *testing.T) {
	base := config.DefaultRingsConfig()
	f := NewSettingsForm(base)

	cfg, err := f.Config(base)
	if err != nil {
		t.Fatalf("Config() failed: %v", err)
	}
	if cfg != base {
		t.Errorf("Config() = %+v, expected unchanged %+v", cfg, base)
	}
}

func TestSettingsFormConfig(t *testing.T) {
	base := config.DefaultRingsConfig()
	f := NewSettingsForm(base)
	f.SetField(fieldQuestion, "  Tea or coffee?  ")
	f.SetField(fieldLeftLabel, "Tea")
	f.SetField(fieldRightLabel, "Coffee")
	f.SetField(fieldRightColor, "#8b4513")
	f.SetField(fieldRingCount, "5")
	f.SetField(fieldGapSize, "12.5")
	f.SetField(fieldBallSpeed, "4")

	cfg, err := f.Config(base)
	if err != nil {
		t.Fatalf("Config() failed: %v", err)
	}
	if cfg.Question != "Tea or coffee?" {
		t.Errorf("Question = %q, expected %q", cfg.Question, "Tea or coffee?")
	}
	if cfg.Sides.Left.Label != "Tea" || cfg.Sides.Right.Label != "Coffee" {
		t.Errorf("labels = %q/%q, expected Tea/Coffee", cfg.Sides.Left.Label, cfg.Sides.Right.Label)
	}
	if cfg.Sides.Right.Color != "#8b4513" {
		t.Errorf("right color = %q, expected #8b4513", cfg.Sides.Right.Color)
	}
	if cfg.Rings.Count != 5 || cfg.Rings.GapSize != 12.5 || cfg.Balls.Speed != 4 {
		t.Errorf("count/gap/speed = %d/%v/%v, expected 5/12.5/4",
			cfg.Rings.Count, cfg.Rings.GapSize, cfg.Balls.Speed)
	}
	if cfg.Rings.BaseRadius != base.Rings.BaseRadius {
		t.Errorf("BaseRadius = %v, expected untouched %v", cfg.Rings.BaseRadius, base.Rings.BaseRadius)
	}
}

func TestSettingsFormConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		field int
		value string
		want  string
	}{
		{"ring count not a number", fieldRingCount, "many", "ring count"},
		{"ring count fractional", fieldRingCount, "2.5", "ring count"},
		{"gap not a number", fieldGapSize, "wide", "gap size"},
		{"speed not a number", fieldBallSpeed, "fast", "ball speed"},
		{"negative ring count", fieldRingCount, "-1", "rings.count"},
		{"zero gap", fieldGapSize, "0", "rings.gap_size"},
		{"zero speed", fieldBallSpeed, "0", "balls.speed"},
	}

	base := config.DefaultRingsConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewSettingsForm(base)
			f.SetField(tt.field, tt.value)

			cfg, err := f.Config(base)
			if err == nil {
				t.Fatal("Config() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Config() error = %q, expected it to mention %q", err, tt.want)
			}
			if cfg != base {
				t.Error("Config() should return the base config on error")
			}
		})
	}
}

func TestSettingsFormKeys(t *testing.T) {
	f := NewSettingsForm(config.DefaultRingsConfig())

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	if f.focus != fieldLeftLabel {
		t.Errorf("focus after tab = %d, expected %d", f.focus, fieldLeftLabel)
	}
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if f.focus != fieldBallSpeed {
		t.Errorf("focus after wrapping back = %d, expected %d", f.focus, fieldBallSpeed)
	}

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !f.Applied() {
		t.Error("enter should apply the form")
	}
	f.SetError(errTest("balls.speed must be positive"))
	if f.Applied() {
		t.Error("SetError should clear the applied flag")
	}
	if !strings.Contains(f.View(), "balls.speed must be positive") {
		t.Error("View() should show the error")
	}

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !f.Closed() {
		t.Error("esc should close the form")
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
