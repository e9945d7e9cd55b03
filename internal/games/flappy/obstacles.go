package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Obstacle is a vertical barrier pair with a passable gap.
type Obstacle struct {
	X         float64 // Horizontal position (left edge)
	GapTop    float64 // Y position where gap starts (top of gap)
	GapHeight float64 // Height of the passable gap
	Width     float64
	Passed    bool // Whether the player has passed this obstacle (for scoring)
}

// Right returns the x-coordinate of the trailing edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// GapBottom returns the y-coordinate where the lower barrier starts.
func (o Obstacle) GapBottom() float64 {
	return o.GapTop + o.GapHeight
}

// TopRect returns the collision rectangle for the upper barrier.
func (o Obstacle) TopRect() core.Rect {
	return core.NewRect(o.X, 0, o.Width, o.GapTop)
}

// BottomRect returns the collision rectangle for the lower barrier.
func (o Obstacle) BottomRect(worldHeight float64) core.Rect {
	return core.NewRect(o.X, o.GapBottom(), o.Width, worldHeight-o.GapBottom())
}

// Placement decides where gaps open and how far recycled obstacles are pushed
// beyond the right edge.
type Placement interface {
	// GapTop returns a gap top within [lo, hi].
	GapTop(lo, hi float64) float64
	// Jitter returns an extra offset within [0, max).
	Jitter(max float64) float64
}

// RandomPlacement draws gap tops and jitter uniformly from a seeded source.
type RandomPlacement struct {
	rng *rand.Rand
}

// NewRandomPlacement creates a uniform placement with the given seed.
func NewRandomPlacement(seed int64) *RandomPlacement {
	return &RandomPlacement{rng: rand.New(rand.NewSource(seed))}
}

// GapTop implements Placement.
func (p *RandomPlacement) GapTop(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + p.rng.Float64()*(hi-lo)
}

// Jitter implements Placement.
func (p *RandomPlacement) Jitter(max float64) float64 {
	if max <= 0 {
		return 0
	}
	return p.rng.Float64() * max
}

// FixedPlacement replays a fixed sequence of gap tops, cycling when exhausted.
// With no tops it centers every gap.
type FixedPlacement struct {
	Tops   []float64
	Offset float64 // Returned by Jitter, capped below max
	next   int
}

// GapTop implements Placement.
func (p *FixedPlacement) GapTop(lo, hi float64) float64 {
	if len(p.Tops) == 0 {
		return (lo + hi) / 2
	}
	top := p.Tops[p.next%len(p.Tops)]
	p.next++
	return top
}

// Jitter implements Placement.
func (p *FixedPlacement) Jitter(max float64) float64 {
	if p.Offset <= 0 || p.Offset >= max {
		return 0
	}
	return p.Offset
}

// Pool is the fixed-size ordered set of recyclable obstacles of a session.
// Obstacles are plain values; the only way to change them is through Pool.
type Pool struct {
	obstacles []Obstacle
	placement Placement
	cfg       config.FlappyConfig
}

// NewPool creates a pool laid out for the start of a session.
func NewPool(cfg config.FlappyConfig, placement Placement) *Pool {
	p := &Pool{
		obstacles: make([]Obstacle, cfg.Obstacles.PoolSize),
		placement: placement,
		cfg:       cfg,
	}
	p.Reset()
	return p
}

// Reset restores the staggered initial layout with freshly drawn gaps.
func (p *Pool) Reset() {
	spacing := p.cfg.ObstacleSpacing()
	for i := range p.obstacles {
		p.obstacles[i] = Obstacle{
			X:         p.cfg.World.Width + float64(i)*spacing, // First obstacle enters from the right edge
			GapTop:    p.drawGap(),
			GapHeight: p.cfg.Obstacles.GapHeight,
			Width:     p.cfg.Obstacles.Width,
		}
	}
}

// Tick moves every obstacle left, scores the ones whose trailing edge crossed
// playerX and then recycles the ones that left the world.
// Returns the number of obstacles passed this tick.
func (p *Pool) Tick(speed, playerX float64) int {
	p.Advance(speed)
	passed := p.DetectPass(playerX)
	p.Recycle()
	return passed
}

// Advance moves every obstacle left by speed.
func (p *Pool) Advance(speed float64) {
	for i := range p.obstacles {
		p.obstacles[i].X -= speed
	}
}

// DetectPass marks obstacles whose trailing edge is behind playerX.
// Each obstacle is counted once per traversal; only Recycle clears the flag.
func (p *Pool) DetectPass(playerX float64) int {
	passed := 0
	for i := range p.obstacles {
		if !p.obstacles[i].Passed && p.obstacles[i].Right() < playerX {
			p.obstacles[i].Passed = true
			passed++
		}
	}
	return passed
}

// Recycle moves obstacles that left the world back beyond the right edge,
// never closer than the configured spacing behind the rightmost other obstacle.
// Returns the number of obstacles recycled.
func (p *Pool) Recycle() int {
	recycled := 0
	for i := range p.obstacles {
		o := &p.obstacles[i]
		if o.Right() >= 0 {
			continue
		}
		o.X = p.recycleX(i) + p.placement.Jitter(p.cfg.Obstacles.RecycleJitter)
		o.Passed = false
		o.GapTop = p.drawGap()
		recycled++
	}
	return recycled
}

// recycleX returns where obstacle i re-enters before jitter.
func (p *Pool) recycleX(i int) float64 {
	x := p.cfg.World.Width
	spacing := p.cfg.ObstacleSpacing()
	for j := range p.obstacles {
		if j != i {
			x = max(x, p.obstacles[j].X+spacing)
		}
	}
	return x
}

// drawGap samples a gap top and clamps it into the margin-bounded range.
func (p *Pool) drawGap() float64 {
	lo, hi := p.cfg.GapRange()
	return core.ClampF(p.placement.GapTop(lo, hi), lo, hi)
}

// Obstacles returns a copy of the current obstacles in pool order.
func (p *Pool) Obstacles() []Obstacle {
	out := make([]Obstacle, len(p.obstacles))
	copy(out, p.obstacles)
	return out
}

// Len returns the fixed pool cardinality.
func (p *Pool) Len() int {
	return len(p.obstacles)
}
