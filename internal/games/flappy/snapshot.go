package flappy

// ObstacleView is the renderable part of an obstacle.
type ObstacleView struct {
	X         float64
	GapTop    float64
	GapHeight float64
	Width     float64
}

// Snapshot is an immutable copy of everything a renderer needs for one frame.
type Snapshot struct {
	Seq         uint64 // Monotonic per engine; lets consumers drop stale frames
	Tick        uint64
	State       State
	Reason      EndReason
	PlayerX     float64
	PlayerY     float64
	PlayerSize  float64
	VelocityY   float64
	Obstacles   []ObstacleView
	Score       int
	BestScore   int
	WorldWidth  float64
	WorldHeight float64
}

// Snapshot captures the current session state. It is a pure read.
func (s *Session) Snapshot() Snapshot {
	views := make([]ObstacleView, len(s.pool.obstacles))
	for i, o := range s.pool.obstacles {
		views[i] = ObstacleView{
			X:         o.X,
			GapTop:    o.GapTop,
			GapHeight: o.GapHeight,
			Width:     o.Width,
		}
	}

	return Snapshot{
		Tick:        s.ticks,
		State:       s.state,
		Reason:      s.reason,
		PlayerX:     s.body.X,
		PlayerY:     s.body.Y,
		PlayerSize:  s.body.Size,
		VelocityY:   s.body.VelocityY,
		Obstacles:   views,
		Score:       s.score.Score(),
		BestScore:   s.score.Best(),
		WorldWidth:  s.cfg.World.Width,
		WorldHeight: s.cfg.World.Height,
	}
}
