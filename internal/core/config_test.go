package core

import (
	"testing"
	"time"
)

func TestRuntimeConfigFrameTime(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		expected float64
	}{
		{"default 60", 60, 1.0 / 60.0},
		{"30 fps", 30, 1.0 / 30.0},
		{"zero falls back", 0, 1.0 / 60.0},
		{"negative falls back", -5, 1.0 / 60.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := RuntimeConfig{TickRate: tc.rate}
			if got := cfg.FrameTime(); got != tc.expected {
				t.Errorf("FrameTime() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRuntimeConfigTickInterval(t *testing.T) {
	cfg := RuntimeConfig{TickRate: 50}
	if got := cfg.TickInterval(); got != 20*time.Millisecond {
		t.Errorf("TickInterval() = %v, expected 20ms", got)
	}
}
