package config

import (
	"fmt"
	"strings"
)

// Preset names a tuning variation applied on top of a loaded config.
type Preset string

const (
	PresetDefault Preset = "default"
	PresetStiff   Preset = "stiff"
	PresetLoose   Preset = "loose"
	PresetFloaty  Preset = "floaty"
	PresetStill   Preset = "still"
)

// Presets lists every preset in display order.
func Presets() []Preset {
	return []Preset{PresetDefault, PresetStiff, PresetLoose, PresetFloaty, PresetStill}
}

// ParsePreset resolves a preset name, case-insensitively. Empty means default.
func ParsePreset(name string) (Preset, error) {
	if name == "" {
		return PresetDefault, nil
	}
	p := Preset(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown preset %q", name)
}

// ApplyPreset modifies the config based on a tuning preset.
func ApplyPreset(cfg *RopeConfig, preset Preset) {
	switch preset {
	case PresetStiff:
		// More and stronger relaxation: less stretch, heavier CPU
		cfg.Solver.RelaxPasses = 16
		cfg.Solver.RelaxGain = 0.4
	case PresetLoose:
		cfg.Solver.RelaxPasses = 4
		cfg.Solver.RelaxGain = 0.1
	case PresetFloaty:
		cfg.Physics.Gravity = 25
		cfg.Physics.AirResistance = true
		cfg.Physics.Drag = 0.3
	case PresetStill:
		cfg.Solver.Damping = 0.9
		cfg.Physics.AirResistance = true
		cfg.Physics.Drag = 0.5
	}
}
