package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Autopilot is a scripted player for headless runs and replay tests.
// It flaps whenever the body is falling below the aim line of the next gap.
type Autopilot struct {
	// Margin keeps the aim line this far above the bottom of the gap.
	Margin float64
}

// NextObstacle returns the first obstacle whose trailing edge is not yet
// behind the player.
func NextObstacle(snap Snapshot) (ObstacleView, bool) {
	var next ObstacleView
	found := false
	for _, o := range snap.Obstacles {
		if o.X+o.Width < snap.PlayerX {
			continue
		}
		if !found || o.X < next.X {
			next = o
			found = true
		}
	}
	return next, found
}

// ShouldJump decides the jump intent for the next tick.
func (a Autopilot) ShouldJump(snap Snapshot) bool {
	aim := snap.WorldHeight/2 + snap.PlayerSize/2
	if next, ok := NextObstacle(snap); ok {
		aim = next.GapTop + next.GapHeight - a.Margin
	}
	bottom := snap.PlayerY + snap.PlayerSize
	return bottom > aim && snap.VelocityY >= 0
}

// Frame builds the input frame for the next tick. Idle and finished sessions
// get the intent that starts a new run.
func (a Autopilot) Frame(snap Snapshot) core.InputFrame {
	frame := core.NewInputFrame()
	switch snap.State {
	case StateIdle:
		frame.Set(core.ActionJump)
	case StateGameOver:
		frame.Set(core.ActionRestart)
	case StateRunning:
		if a.ShouldJump(snap) {
			frame.Set(core.ActionJump)
		}
	}
	return frame
}
