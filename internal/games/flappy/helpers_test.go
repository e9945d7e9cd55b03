package flappy

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// manualTicker is a Ticker driven by the test.
type manualTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }

func (m *manualTicker) Stop() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
}

func (m *manualTicker) isStopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// manualClock hands out manual tickers and fires the most recent one.
type manualClock struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

func (c *manualClock) NewTicker(time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &manualTicker{ch: make(chan time.Time)}
	c.tickers = append(c.tickers, t)
	return t
}

func (c *manualClock) latest() *manualTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.tickers) == 0 {
		return nil
	}
	return c.tickers[len(c.tickers)-1]
}

func (c *manualClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

// Fire delivers one tick; false if no loop received it in time.
func (c *manualClock) Fire() bool {
	t := c.latest()
	if t == nil {
		return false
	}
	select {
	case t.ch <- time.Now():
		return true
	case <-time.After(100 * time.Millisecond):
		return false
	}
}

// wideConfig is the tuning most scenario tests start from:
// 600x300 world, body 50, gravity 0.5, impulse -10, speed 1.8, gap 120.
func wideConfig() config.FlappyConfig {
	return WideConfig()
}

func newTestSession(t *testing.T, cfg config.FlappyConfig, placement Placement) *Session {
	t.Helper()
	if placement == nil {
		placement = &FixedPlacement{}
	}
	s, err := NewSession(cfg, placement)
	require.NoError(t, err)
	return s
}

func waitSnapshot(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return Snapshot{}
	}
}
