// Package tui provides the Bubble Tea front end for the flappy engine.
// It handles the terminal UI loop, key bindings, variant selection and the
// run history screen; the simulation itself runs on the engine's scheduler.
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// SnapshotMsg carries a published engine snapshot into the Bubble Tea loop.
type SnapshotMsg flappy.Snapshot

// SnapshotChannel hands snapshots from the engine to the UI. It holds only the
// latest unread snapshot; older unread ones are dropped so a slow renderer
// never blocks the tick goroutine.
type SnapshotChannel struct {
	ch   chan flappy.Snapshot
	done chan struct{}
	once sync.Once
}

// NewSnapshotChannel creates an empty channel.
func NewSnapshotChannel() *SnapshotChannel {
	return &SnapshotChannel{
		ch:   make(chan flappy.Snapshot, 1),
		done: make(chan struct{}),
	}
}

// Close releases a pending waitForSnapshot. Publishing after Close is allowed
// and has no reader.
func (c *SnapshotChannel) Close() {
	c.once.Do(func() { close(c.done) })
}

// Publish is the engine sink. It never blocks.
func (c *SnapshotChannel) Publish(snap flappy.Snapshot) {
	for {
		select {
		case c.ch <- snap:
			return
		default:
		}
		// Full: drop the stale one and retry
		select {
		case <-c.ch:
		default:
		}
	}
}

// waitForSnapshot returns a command that blocks until the next snapshot.
func waitForSnapshot(c *SnapshotChannel) tea.Cmd {
	return func() tea.Msg {
		select {
		case snap := <-c.ch:
			return SnapshotMsg(snap)
		case <-c.done:
			return nil
		}
	}
}
