package flappy

import (
	"sync"
	"time"
)

// Ticker delivers tick times until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

// timeTicker adapts time.Ticker.
type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTimeTicker returns a wall-clock Ticker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Scheduler invokes step at a fixed interval from a single goroutine.
type Scheduler struct {
	interval  time.Duration
	step      func()
	newTicker TickerFunc

	mu   sync.Mutex
	stop chan struct{} // nil while not running
	wg   sync.WaitGroup
}

// NewScheduler creates a stopped scheduler. A nil newTicker uses wall-clock time.
func NewScheduler(interval time.Duration, step func(), newTicker TickerFunc) *Scheduler {
	if newTicker == nil {
		newTicker = NewTimeTicker
	}
	return &Scheduler{
		interval:  interval,
		step:      step,
		newTicker: newTicker,
	}
}

// Start begins ticking. Returns false if the scheduler was already running.
func (s *Scheduler) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		return false
	}

	stop := make(chan struct{})
	s.stop = stop
	ticker := s.newTicker(s.interval)

	s.wg.Add(1)
	go s.run(stop, ticker)
	return true
}

// run is the tick loop. A closed stop channel wins over a ready tick.
func (s *Scheduler) run(stop chan struct{}, ticker Ticker) {
	defer s.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			// Check stop signal again before stepping
			select {
			case <-stop:
				return
			default:
				s.step()
			}
		}
	}
}

// Halt signals the loop to stop without waiting for it. Safe to call from
// inside step and when already stopped.
func (s *Scheduler) Halt() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop == nil {
		return
	}
	close(s.stop)
	s.stop = nil
}

// Stop halts the loop and waits until no tick goroutine remains, so no step
// runs after it returns. Idempotent. Must not be called from inside step.
func (s *Scheduler) Stop() {
	s.Halt()
	s.wg.Wait()
}

// Running reports whether the scheduler is ticking.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}
