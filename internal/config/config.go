// Package config provides YAML-based configuration loading and presets
// for the rings simulation.
package config

import (
	"fmt"

	"github.com/vovakirdan/chaos-rings/internal/sim"
)

// RingsConfig contains all configuration for one game.
type RingsConfig struct {
	Question string         `yaml:"question"`
	Sides    SidesConfig    `yaml:"sides"`
	Rings    RingsLayout    `yaml:"rings"`
	Balls    BallsConfig    `yaml:"balls"`
	View     ViewConfig     `yaml:"view"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Audio    AudioConfig    `yaml:"audio"`
	MIDI     MIDIConfig     `yaml:"midi"`
}

// SidesConfig holds the two competing answers.
type SidesConfig struct {
	Left  SideConfig `yaml:"left"`
	Right SideConfig `yaml:"right"`
}

// SideConfig is the label and color of one ball.
type SideConfig struct {
	Label string `yaml:"label"`
	Color string `yaml:"color"` // Hex color, e.g. "#00ff00"
}

// RingsLayout defines ring geometry.
type RingsLayout struct {
	Count      int     `yaml:"count"`
	BaseRadius float64 `yaml:"base_radius"`
	Spacing    float64 `yaml:"spacing"`
	GapSize    float64 `yaml:"gap_size"` // Degrees
	GapSpin    float64 `yaml:"gap_spin"` // Degrees per frame, 0 = fixed gap
}

// BallsConfig defines ball parameters.
type BallsConfig struct {
	Speed  float64 `yaml:"speed"`
	Radius float64 `yaml:"radius"`
	Inset  float64 `yaml:"inset"` // Distance from ring 0 when placing balls
}

// ViewConfig defines how world units map onto the terminal.
type ViewConfig struct {
	Padding    float64 `yaml:"padding"`     // Canvas units around the outermost ring
	CellWidth  float64 `yaml:"cell_width"`  // Canvas units per terminal column
	CellHeight float64 `yaml:"cell_height"` // Canvas units per terminal row
}

// GameplayConfig defines game flow parameters.
type GameplayConfig struct {
	GameOverDelayMs int `yaml:"game_over_delay_ms"` // Summary time before reset
}

// AudioConfig defines note synthesis parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	DurationMs int     `yaml:"duration_ms"`
	Gain       float64 `yaml:"gain"`
	SampleRate int     `yaml:"sample_rate"`
}

// MIDIConfig points at an optional note source.
type MIDIConfig struct {
	File string `yaml:"file"` // Standard MIDI File; empty = no notes
}

// Validate checks that the config describes a playable game.
// A ring count of zero is allowed and ends the game immediately.
func (c RingsConfig) Validate() error {
	switch {
	case c.Rings.Count < 0:
		return fmt.Errorf("config: rings.count must not be negative, got %d", c.Rings.Count)
	case c.Rings.BaseRadius <= 0:
		return fmt.Errorf("config: rings.base_radius must be positive, got %v", c.Rings.BaseRadius)
	case c.Rings.Spacing <= 0:
		return fmt.Errorf("config: rings.spacing must be positive, got %v", c.Rings.Spacing)
	case c.Rings.GapSize <= 0 || c.Rings.GapSize > 360:
		return fmt.Errorf("config: rings.gap_size must be in (0, 360], got %v", c.Rings.GapSize)
	case c.Balls.Speed <= 0:
		return fmt.Errorf("config: balls.speed must be positive, got %v", c.Balls.Speed)
	case c.Balls.Radius <= 0:
		return fmt.Errorf("config: balls.radius must be positive, got %v", c.Balls.Radius)
	case c.View.CellWidth <= 0 || c.View.CellHeight <= 0:
		return fmt.Errorf("config: view cell size must be positive, got %vx%v", c.View.CellWidth, c.View.CellHeight)
	case c.Gameplay.GameOverDelayMs < 0:
		return fmt.Errorf("config: gameplay.game_over_delay_ms must not be negative, got %d", c.Gameplay.GameOverDelayMs)
	}
	return nil
}

// Simulation converts the config into simulation parameters.
func (c RingsConfig) Simulation() sim.Config {
	return sim.Config{
		RingCount:   c.Rings.Count,
		GapSize:     c.Rings.GapSize,
		BallSpeed:   c.Balls.Speed,
		BaseRadius:  c.Rings.BaseRadius,
		RingSpacing: c.Rings.Spacing,
		BallRadius:  c.Balls.Radius,
		BallInset:   c.Balls.Inset,
		GapSpin:     c.Rings.GapSpin,
		ZoomPadding: c.View.Padding,
		Left:        sim.SideInfo{Label: c.Sides.Left.Label, Color: c.Sides.Left.Color},
		Right:       sim.SideInfo{Label: c.Sides.Right.Label, Color: c.Sides.Right.Color},
	}
}

// Preset represents a named tuning of gap size and ball speed.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
	PresetSpin   Preset = "spin"
)

// ParsePreset validates a preset name. Empty means no preset.
func ParsePreset(name string) (Preset, error) {
	switch p := Preset(name); p {
	case "", PresetEasy, PresetNormal, PresetHard, PresetSpin:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown preset %q (want easy, normal, hard or spin)", name)
	}
}

// ApplyPreset modifies the config based on a preset.
func ApplyPreset(cfg *RingsConfig, preset Preset) {
	switch preset {
	case PresetEasy:
		cfg.Rings.GapSize = 14
		cfg.Balls.Speed = 2.5
	case PresetNormal:
		cfg.Rings.GapSize = 8
		cfg.Balls.Speed = 3
	case PresetHard:
		cfg.Rings.GapSize = 5
		cfg.Balls.Speed = 4
	case PresetSpin:
		cfg.Rings.GapSize = 8
		cfg.Rings.GapSpin = 0.6
	}
}
