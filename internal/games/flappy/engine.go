package flappy

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// RunResult describes one finished run.
type RunResult struct {
	Variant   string
	Score     int
	BestScore int
	Ticks     uint64
	Reason    EndReason
	EndedAt   time.Time
}

// Recorder receives every finished run.
type Recorder interface {
	RecordRun(RunResult) error
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithPlacement sets the gap placement source.
func WithPlacement(p Placement) Option {
	return func(e *Engine) { e.placement = p }
}

// WithSink sets the function receiving published snapshots.
// It is called outside the engine lock and must not block for long.
func WithSink(sink func(Snapshot)) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithRecorder sets the recorder for finished runs. It is called from the
// tick goroutine outside the engine lock.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithTicker overrides the scheduler's ticker.
func WithTicker(f TickerFunc) Option {
	return func(e *Engine) { e.newTicker = f }
}

// WithVariant names the variant reported in run results.
func WithVariant(id string) Option {
	return func(e *Engine) { e.variant = id }
}

// Engine drives a Session at the configured tick interval. Inputs may be
// issued from any goroutine; each one is applied immediately and atomically.
type Engine struct {
	mu      sync.Mutex
	session *Session
	sched   *Scheduler
	seq     uint64
	closed  bool

	logger    *log.Logger
	placement Placement
	sink      func(Snapshot)
	recorder  Recorder
	newTicker TickerFunc
	variant   string
}

// NewEngine validates cfg and creates an idle engine.
func NewEngine(cfg config.FlappyConfig, opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}

	session, err := NewSession(cfg, e.placement)
	if err != nil {
		return nil, err
	}
	e.session = session
	e.sched = NewScheduler(cfg.Timing.TickInterval, e.tick, e.newTicker)

	return e, nil
}

// Jump applies an upward impulse, starting a run from Idle.
func (e *Engine) Jump() {
	e.apply(func(s *Session) bool { return s.Jump() })
}

// MoveLeft moves the player one step left.
func (e *Engine) MoveLeft() {
	e.apply(func(s *Session) bool {
		s.MoveLeft()
		return false
	})
}

// MoveRight moves the player one step right.
func (e *Engine) MoveRight() {
	e.apply(func(s *Session) bool {
		s.MoveRight()
		return false
	})
}

// Restart starts a fresh run after game over.
func (e *Engine) Restart() {
	e.apply(func(s *Session) bool { return s.Restart() })
}

// apply runs one input against the session under the lock and publishes the
// resulting snapshot.
func (e *Engine) apply(input func(*Session) bool) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}

	if started := input(e.session); started {
		e.sched.Start()
		e.logger.Info("run started", "variant", e.variant, "best", e.session.BestScore())
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.publish(snap)
}

// tick is the scheduler step.
func (e *Engine) tick() {
	e.mu.Lock()
	if e.session.State() != StateRunning {
		e.sched.Halt()
		e.mu.Unlock()
		return
	}

	result := e.session.Step(core.InputFrame{})
	if result.Passed > 0 {
		e.logger.Debug("obstacle passed", "score", e.session.Score(), "tick", e.session.Ticks())
	}

	var run *RunResult
	if result.Ended {
		// Halting under the lock keeps a concurrent Restart from seeing a
		// scheduler that is about to stop.
		e.sched.Halt()
		run = &RunResult{
			Variant:   e.variant,
			Score:     e.session.Score(),
			BestScore: e.session.BestScore(),
			Ticks:     e.session.Ticks(),
			Reason:    e.session.Reason(),
			EndedAt:   time.Now(),
		}
		e.logger.Info("game over",
			"score", run.Score,
			"best", run.BestScore,
			"reason", string(run.Reason),
			"ticks", run.Ticks,
		)
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	// Recorded before publishing so a renderer reacting to game over already
	// finds the run in the history.
	if run != nil && e.recorder != nil {
		if err := e.recorder.RecordRun(*run); err != nil {
			e.logger.Warn("could not record run", "error", err)
		}
	}

	e.publish(snap)
}

func (e *Engine) snapshotLocked() Snapshot {
	e.seq++
	snap := e.session.Snapshot()
	snap.Seq = e.seq
	return snap
}

func (e *Engine) publish(snap Snapshot) {
	if e.sink != nil {
		e.sink(snap)
	}
}

// Snapshot returns the current state without publishing it.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := e.session.Snapshot()
	snap.Seq = e.seq
	return snap
}

// Running reports whether the scheduler is ticking.
func (e *Engine) Running() bool {
	return e.sched.Running()
}

// Close stops the scheduler and ignores later inputs. Idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	e.sched.Stop()
}
