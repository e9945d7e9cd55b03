// Package config provides YAML-based engine configuration loading and
// validation for the flappy engine.
package config

import "time"

// FlappyConfig contains all configuration for one engine instance.
// It is supplied at construction and never mutated afterwards.
type FlappyConfig struct {
	World     FlappyWorld     `yaml:"world"`
	Player    FlappyPlayer    `yaml:"player"`
	Physics   FlappyPhysics   `yaml:"physics"`
	Obstacles FlappyObstacles `yaml:"obstacles"`
	Timing    FlappyTiming    `yaml:"timing"`
}

// FlappyWorld defines the playfield in world units.
type FlappyWorld struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FlappyPlayer defines the player's bounding box and rest position.
type FlappyPlayer struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Centered bool    `yaml:"centered"` // Ignores Y and centers the body vertically
	Size     float64 `yaml:"size"`
}

// FlappyPhysics defines integration parameters, all per tick.
type FlappyPhysics struct {
	Gravity        float64 `yaml:"gravity"`
	JumpImpulse    float64 `yaml:"jump_impulse"`   // Negative = up
	MaxFallSpeed   float64 `yaml:"max_fall_speed"` // 0 disables the cap
	HorizontalStep float64 `yaml:"horizontal_step"`
	ObstacleSpeed  float64 `yaml:"obstacle_speed"`
}

// FlappyObstacles defines the obstacle pool.
type FlappyObstacles struct {
	Width         float64 `yaml:"width"`
	GapHeight     float64 `yaml:"gap_height"`
	PoolSize      int     `yaml:"pool_size"`
	Spacing       float64 `yaml:"spacing"` // 0 means evenly staggered
	TopMargin     float64 `yaml:"top_margin"`
	BottomMargin  float64 `yaml:"bottom_margin"`
	RecycleJitter float64 `yaml:"recycle_jitter"`
}

// FlappyTiming defines the scheduler cadence.
type FlappyTiming struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

// StartY returns the player's rest Y position. y: 0 is the top edge.
func (c FlappyConfig) StartY() float64 {
	if c.Player.Centered {
		return (c.World.Height - c.Player.Size) / 2
	}
	return c.Player.Y
}

// MaxPlayerX returns the largest X the player may occupy.
func (c FlappyConfig) MaxPlayerX() float64 {
	return c.World.Width - c.Player.Size
}

// ObstacleSpacing returns the horizontal distance between consecutive obstacles
// at pool initialization.
func (c FlappyConfig) ObstacleSpacing() float64 {
	if c.Obstacles.Spacing > 0 {
		return c.Obstacles.Spacing
	}
	if c.Obstacles.PoolSize <= 1 {
		return 0
	}
	// One full recycle cycle divided evenly keeps the stagger stable.
	return (c.World.Width + c.Obstacles.Width) / float64(c.Obstacles.PoolSize)
}

// GapRange returns the inclusive range a gap top may be drawn from.
func (c FlappyConfig) GapRange() (lo, hi float64) {
	return c.Obstacles.TopMargin, c.World.Height - c.Obstacles.GapHeight - c.Obstacles.BottomMargin
}
