package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Collides reports whether the player rectangle hits either barrier of o.
// While the horizontal spans interpenetrate the player must lie entirely
// within [GapTop, GapBottom]; touching an edge is not a hit.
func Collides(player core.Rect, o Obstacle) bool {
	column := core.NewRect(o.X, 0, o.Width, 0)
	if !player.OverlapsX(column) {
		return false
	}
	return player.Top() < o.GapTop || player.Bottom() > o.GapBottom()
}

// FirstCollision checks the player against every obstacle and returns the
// index of the first hit.
func FirstCollision(player core.Rect, obstacles []Obstacle) (int, bool) {
	for i, o := range obstacles {
		if Collides(player, o) {
			return i, true
		}
	}
	return -1, false
}
