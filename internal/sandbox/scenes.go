package sandbox

import (
	"github.com/vovakirdan/tui-rope/internal/config"
	"github.com/vovakirdan/tui-rope/internal/core"
	"github.com/vovakirdan/tui-rope/internal/registry"
	"github.com/vovakirdan/tui-rope/internal/rope"
)

// Bridge hangs a chain between two anchors at the configured span.
func Bridge(cfg config.RopeConfig) (*rope.Chain, error) {
	return rope.New(core.V(0, 0), core.V(cfg.Chain.Span, 0), cfg.Chain.Points, cfg.Params())
}

// Pendulum anchors a horizontal chain at one end and lets the other swing.
func Pendulum(cfg config.RopeConfig) (*rope.Chain, error) {
	half := cfg.Chain.Span / 2
	c, err := rope.New(core.V(half, 0), core.V(cfg.Chain.Span, 0), cfg.Chain.Points, cfg.Params())
	if err != nil {
		return nil, err
	}
	ids := c.PointIDs()
	if err := c.Unlock(ids[len(ids)-1]); err != nil {
		return nil, err
	}
	return c, nil
}

// Slack builds a bridge and then pulls both anchors inward, so the chain
// hangs with more length than the gap.
func Slack(cfg config.RopeConfig) (*rope.Chain, error) {
	c, err := Bridge(cfg)
	if err != nil {
		return nil, err
	}
	ids := c.PointIDs()
	span := cfg.Chain.Span
	if err := c.MoveTo(ids[0], core.V(span*0.2, 0)); err != nil {
		return nil, err
	}
	if err := c.MoveTo(ids[len(ids)-1], core.V(span*0.8, 0)); err != nil {
		return nil, err
	}
	return c, nil
}

func init() {
	registry.Register("bridge", func(cfg config.RopeConfig) registry.Scene {
		return New("bridge", "Bridge", "Chain hanging between two anchors", cfg, Bridge)
	})
	registry.Register("pendulum", func(cfg config.RopeConfig) registry.Scene {
		return New("pendulum", "Pendulum", "Chain anchored at one end, free to swing", cfg, Pendulum)
	})
	registry.Register("slack", func(cfg config.RopeConfig) registry.Scene {
		return New("slack", "Slack Line", "Anchors pulled together so the chain sags", cfg, Slack)
	})
}
