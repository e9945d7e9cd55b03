package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default engine configuration.
// It mirrors the embedded defaults/flappy.yaml.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: FlappyWorld{
			Width:  400,
			Height: 500,
		},
		Player: FlappyPlayer{
			X:    80,
			Y:    250,
			Size: 42,
		},
		Physics: FlappyPhysics{
			Gravity:        0.25,
			JumpImpulse:    -5,
			MaxFallSpeed:   0,
			HorizontalStep: 10,
			ObstacleSpeed:  2,
		},
		Obstacles: FlappyObstacles{
			Width:         60,
			GapHeight:     150,
			PoolSize:      1,
			TopMargin:     50,
			BottomMargin:  80,
			RecycleJitter: 0,
		},
		Timing: FlappyTiming{
			TickInterval: 20 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
