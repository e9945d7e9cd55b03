// Package flappy implements the side-scrolling obstacle-avoidance engine.
// A body falls under gravity, the player issues upward impulses and must pass
// through the gaps of recurring obstacles; each obstacle cleared scores a point.
//
// Session is the deterministic, single-threaded simulation. Engine wraps it
// with a fixed-cadence Scheduler and makes inputs safe to issue from any
// goroutine.
package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Body is the player's kinematic state. The origin is the top-left corner of
// its square bounding box and Y grows downward.
type Body struct {
	X         float64
	Y         float64
	VelocityY float64 // Negative = up
	Size      float64
}

// Jump overwrites the vertical velocity with the (negative) impulse.
func (b *Body) Jump(impulse float64) {
	b.VelocityY = impulse
}

// MoveHorizontal shifts the body by direction*step, clamped to [0, maxX].
func (b *Body) MoveHorizontal(direction int, step, maxX float64) {
	b.X = core.ClampF(b.X+float64(direction)*step, 0, maxX)
}

// Tick integrates one step of gravity and reports whether the body left the
// world vertically. The position is not corrected on violation.
func (b *Body) Tick(gravity, maxFall, worldHeight float64) bool {
	b.VelocityY += gravity
	if maxFall > 0 && b.VelocityY > maxFall {
		b.VelocityY = maxFall
	}
	b.Y += b.VelocityY

	return b.Y < 0 || b.Y+b.Size > worldHeight
}

// Rect returns the body's collision rectangle.
func (b Body) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.Size, b.Size)
}
