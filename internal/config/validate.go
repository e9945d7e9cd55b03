package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// FieldError describes one violated configuration rule.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate checks that a configuration can produce a playable session.
// All violations are reported together.
func Validate(cfg FlappyConfig) error {
	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	positive := []struct {
		field string
		value float64
	}{
		{"world.width", cfg.World.Width},
		{"world.height", cfg.World.Height},
		{"player.size", cfg.Player.Size},
		{"physics.horizontal_step", cfg.Physics.HorizontalStep},
		{"physics.obstacle_speed", cfg.Physics.ObstacleSpeed},
		{"obstacles.width", cfg.Obstacles.Width},
		{"obstacles.gap_height", cfg.Obstacles.GapHeight},
	}
	for _, p := range positive {
		if p.value <= 0 {
			fail(p.field, "must be positive, got %g", p.value)
		}
	}

	nonNegative := []struct {
		field string
		value float64
	}{
		{"physics.gravity", cfg.Physics.Gravity},
		{"physics.max_fall_speed", cfg.Physics.MaxFallSpeed},
		{"obstacles.spacing", cfg.Obstacles.Spacing},
		{"obstacles.top_margin", cfg.Obstacles.TopMargin},
		{"obstacles.bottom_margin", cfg.Obstacles.BottomMargin},
		{"obstacles.recycle_jitter", cfg.Obstacles.RecycleJitter},
	}
	for _, n := range nonNegative {
		if n.value < 0 {
			fail(n.field, "must not be negative, got %g", n.value)
		}
	}

	if cfg.Physics.JumpImpulse >= 0 {
		fail("physics.jump_impulse", "must be negative (upward), got %g", cfg.Physics.JumpImpulse)
	}
	if cfg.Obstacles.PoolSize <= 0 {
		fail("obstacles.pool_size", "must be positive, got %d", cfg.Obstacles.PoolSize)
	}
	if cfg.Timing.TickInterval <= 0 {
		fail("timing.tick_interval", "must be positive, got %s", cfg.Timing.TickInterval)
	}

	if cfg.Player.Size > cfg.World.Width || cfg.Player.Size > cfg.World.Height {
		fail("player.size", "%g does not fit a %gx%g world", cfg.Player.Size, cfg.World.Width, cfg.World.Height)
	} else {
		if cfg.Player.X < 0 || cfg.Player.X > cfg.MaxPlayerX() {
			fail("player.x", "must be within [0, %g], got %g", cfg.MaxPlayerX(), cfg.Player.X)
		}
		if y := cfg.StartY(); y < 0 || y+cfg.Player.Size > cfg.World.Height {
			fail("player.y", "rest position %g leaves the world", y)
		}
	}

	usable := cfg.World.Height - cfg.Obstacles.TopMargin - cfg.Obstacles.BottomMargin
	if cfg.Obstacles.GapHeight > 0 && cfg.Obstacles.GapHeight >= usable {
		fail("obstacles.gap_height", "%g leaves no valid gap position within %g units between margins",
			cfg.Obstacles.GapHeight, usable)
	}

	if cfg.Obstacles.PoolSize > 1 && cfg.Obstacles.Width > 0 && cfg.ObstacleSpacing() < cfg.Obstacles.Width {
		fail("obstacles.spacing", "%g is narrower than obstacle width %g", cfg.ObstacleSpacing(), cfg.Obstacles.Width)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
