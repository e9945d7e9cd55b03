package flappy

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// State is the session state machine position.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateGameOver
)

// String returns the state name used in logs and snapshots.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// EndReason tells why the last run ended. It only drives the user-facing
// message; both reasons are the same transition.
type EndReason string

const (
	ReasonNone        EndReason = ""
	ReasonOutOfBounds EndReason = "out_of_bounds"
	ReasonCollision   EndReason = "collision"
)

// StepResult is returned by Session.Step after each simulation tick.
type StepResult struct {
	State   State
	Passed  int  // Obstacles passed this tick
	Started bool // A run started while applying the frame
	Ended   bool // The run ended on this tick
}

// Session is the game state machine. It owns the body, the obstacle pool and
// the score keeper and resets them on every new run. A Session is not safe for
// concurrent use; Engine serializes access to it.
type Session struct {
	cfg    config.FlappyConfig
	body   Body
	pool   *Pool
	score  ScoreKeeper
	state  State
	reason EndReason
	ticks  uint64 // Ticks since the current run started
}

// NewSession validates cfg and creates an idle session.
// A nil placement draws gaps from a time-seeded uniform source.
func NewSession(cfg config.FlappyConfig, placement Placement) (*Session, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if placement == nil {
		placement = NewRandomPlacement(time.Now().UnixNano())
	}

	s := &Session{
		cfg:  cfg,
		pool: NewPool(cfg, placement),
	}
	s.resetBody()
	return s, nil
}

// resetBody puts the body back at its rest position.
func (s *Session) resetBody() {
	s.body = Body{
		X:    s.cfg.Player.X,
		Y:    s.cfg.StartY(),
		Size: s.cfg.Player.Size,
	}
}

// reset prepares a fresh run. The best score survives.
func (s *Session) reset() {
	s.resetBody()
	s.pool.Reset()
	s.score.Reset()
	s.reason = ReasonNone
	s.ticks = 0
}

// Jump applies an upward impulse. From Idle it first starts a fresh run.
// Ignored after game over; a run restarts only through Restart.
// Returns true if a run was started.
func (s *Session) Jump() bool {
	switch s.state {
	case StateIdle:
		s.reset()
		s.state = StateRunning
		s.body.Jump(s.cfg.Physics.JumpImpulse)
		return true
	case StateRunning:
		s.body.Jump(s.cfg.Physics.JumpImpulse)
	}
	return false
}

// MoveLeft moves the body one horizontal step left while running.
func (s *Session) MoveLeft() {
	s.move(-1)
}

// MoveRight moves the body one horizontal step right while running.
func (s *Session) MoveRight() {
	s.move(1)
}

func (s *Session) move(direction int) {
	if s.state != StateRunning {
		return
	}
	s.body.MoveHorizontal(direction, s.cfg.Physics.HorizontalStep, s.cfg.MaxPlayerX())
}

// Restart starts a fresh run after game over. Ignored in other states.
// Returns true if a run was started.
func (s *Session) Restart() bool {
	if s.state != StateGameOver {
		return false
	}
	s.reset()
	s.state = StateRunning
	return true
}

// Step applies the frame's intents and, while running, advances the
// simulation by one tick: body physics, obstacle movement with pass detection,
// then collision checks against every obstacle.
func (s *Session) Step(in core.InputFrame) StepResult {
	var result StepResult

	if in.Has(core.ActionRestart) && s.Restart() {
		result.Started = true
	}
	if in.Has(core.ActionJump) && s.Jump() {
		result.Started = true
	}
	for i := 0; i < in.Moves; i++ {
		s.MoveRight()
	}
	for i := 0; i > in.Moves; i-- {
		s.MoveLeft()
	}

	if s.state != StateRunning {
		result.State = s.state
		return result
	}

	s.ticks++

	violated := s.body.Tick(s.cfg.Physics.Gravity, s.cfg.Physics.MaxFallSpeed, s.cfg.World.Height)

	result.Passed = s.pool.Tick(s.cfg.Physics.ObstacleSpeed, s.body.X)
	for i := 0; i < result.Passed; i++ {
		s.score.RegisterPass()
	}

	switch {
	case violated:
		s.end(ReasonOutOfBounds)
		result.Ended = true
	case s.collides():
		s.end(ReasonCollision)
		result.Ended = true
	}

	result.State = s.state
	return result
}

// collides checks the body against every live obstacle.
func (s *Session) collides() bool {
	_, hit := FirstCollision(s.body.Rect(), s.pool.obstacles)
	return hit
}

// end performs the Running to GameOver transition.
func (s *Session) end(reason EndReason) {
	s.state = StateGameOver
	s.reason = reason
	s.score.Finalize()
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Body returns a copy of the player's kinematic state.
func (s *Session) Body() Body {
	return s.body
}

// Obstacles returns a copy of the obstacle pool.
func (s *Session) Obstacles() []Obstacle {
	return s.pool.Obstacles()
}

// Score returns the running score.
func (s *Session) Score() int {
	return s.score.Score()
}

// BestScore returns the best score of this process.
func (s *Session) BestScore() int {
	return s.score.Best()
}

// Reason returns why the last run ended.
func (s *Session) Reason() EndReason {
	return s.reason
}

// Ticks returns the number of ticks of the current run.
func (s *Session) Ticks() uint64 {
	return s.ticks
}

// Config returns the session configuration.
func (s *Session) Config() config.FlappyConfig {
	return s.cfg
}
