package flappy

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// DefaultVariant is used when no variant is requested.
const DefaultVariant = "classic"

// ClassicConfig is the baseline single-obstacle tuning.
func ClassicConfig() config.FlappyConfig {
	return config.Defaults()
}

// WideConfig is a low, wide world with two staggered obstacles.
func WideConfig() config.FlappyConfig {
	return config.FlappyConfig{
		World:  config.FlappyWorld{Width: 600, Height: 300},
		Player: config.FlappyPlayer{X: 50, Size: 50, Centered: true}, // Rest Y 125
		Physics: config.FlappyPhysics{
			Gravity:        0.5,
			JumpImpulse:    -10,
			HorizontalStep: 10,
			ObstacleSpeed:  1.8,
		},
		Obstacles: config.FlappyObstacles{
			Width:        60,
			GapHeight:    120,
			PoolSize:     2,
			TopMargin:    20,
			BottomMargin: 20,
		},
		Timing: config.FlappyTiming{TickInterval: 20 * time.Millisecond},
	}
}

// DriftConfig is the classic world with faster obstacles that reappear at
// irregular distances and a capped fall speed.
func DriftConfig() config.FlappyConfig {
	cfg := ClassicConfig()
	cfg.Physics.ObstacleSpeed = 2.5
	cfg.Physics.MaxFallSpeed = 7
	cfg.Obstacles.RecycleJitter = 120
	return cfg
}

func init() {
	registry.Register(DefaultVariant, "Classic", ClassicConfig)
	registry.Register("wide", "Wide (two obstacles)", WideConfig)
	registry.Register("drift", "Drift (jittered pipes)", DriftConfig)
}
