package config

import (
	_ "embed"
)

//go:embed defaults/rings.yaml
var defaultRingsYAML []byte

// DefaultRingsConfig returns the default configuration.
func DefaultRingsConfig() RingsConfig {
	return RingsConfig{
		Question: "Are you dumb? (respectfully)",
		Sides: SidesConfig{
			Left:  SideConfig{Label: "Yes", Color: "#00ff00"},
			Right: SideConfig{Label: "No", Color: "#ff0000"},
		},
		Rings: RingsLayout{
			Count:      15,
			BaseRadius: 50,
			Spacing:    30,
			GapSize:    8,
			GapSpin:    0,
		},
		Balls: BallsConfig{
			Speed:  3,
			Radius: 8,
			Inset:  15,
		},
		View: ViewConfig{
			Padding:    50,
			CellWidth:  8,  // Terminal cells are about twice as tall as wide
			CellHeight: 16, // so rings render round
		},
		Gameplay: GameplayConfig{
			GameOverDelayMs: 1000,
		},
		Audio: AudioConfig{
			Enabled:    true,
			DurationMs: 300,
			Gain:       0.1,
			SampleRate: 44100,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultRingsYAML
}
