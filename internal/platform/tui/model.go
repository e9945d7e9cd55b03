package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// topRunsShown is the number of runs listed on the game over panel.
const topRunsShown = 5

// Controller is the part of the engine the model drives.
type Controller interface {
	Jump()
	MoveLeft()
	MoveRight()
	Restart()
	Snapshot() flappy.Snapshot
}

// Model is the Bubble Tea model for one play session.
type Model struct {
	engine   Controller
	snaps    *SnapshotChannel
	snap     flappy.Snapshot
	screen   *core.Screen
	store    *storage.Store
	variant  string
	keys     KeyMap
	help     help.Model
	top      []storage.RunEntry // Loaded when a run ends
	quitting bool
}

// NewModel creates a model rendering snapshots from snaps and forwarding
// intents to engine.
func NewModel(engine Controller, snaps *SnapshotChannel, store *storage.Store, variant string, cfg core.RuntimeConfig) Model {
	return Model{
		engine:  engine,
		snaps:   snaps,
		snap:    engine.Snapshot(),
		screen:  core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-1, 1)), // Last row is the help line
		store:   store,
		variant: variant,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

// Init starts listening for engine snapshots.
func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.snaps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, core.Max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case SnapshotMsg:
		m.handleSnapshot(flappy.Snapshot(msg))
		return m, waitForSnapshot(m.snaps)
	}

	return m, nil
}

// handleKey forwards intents to the engine. The engine applies them
// immediately and publishes the result.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		//nolint:errcheck // Best-effort save, game continues regardless
		m.saveScreenshot()
		return m, nil
	}

	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionJump:
		m.engine.Jump()
	case core.ActionMoveLeft:
		m.engine.MoveLeft()
	case core.ActionMoveRight:
		m.engine.MoveRight()
	case core.ActionRestart:
		m.engine.Restart()
	}

	return m, nil
}

// handleSnapshot keeps the newest snapshot; publishers race, so an older
// sequence number may arrive late.
func (m *Model) handleSnapshot(snap flappy.Snapshot) {
	if snap.Seq < m.snap.Seq {
		return
	}
	ended := snap.State == flappy.StateGameOver && m.snap.State != flappy.StateGameOver
	m.snap = snap

	if ended {
		m.loadTopRuns()
	}
	if snap.State != flappy.StateGameOver {
		m.top = nil
	}
}

// loadTopRuns reads the best runs of this variant from the history.
func (m *Model) loadTopRuns() {
	if m.store == nil {
		return
	}
	top, err := m.store.TopRuns(m.variant, topRunsShown)
	if err != nil {
		m.top = nil
		return
	}
	m.top = top
}

// render draws the current snapshot into the screen buffer.
func (m Model) render() {
	DrawSnapshot(m.screen, m.snap)
	if m.snap.State == flappy.StateGameOver {
		DrawGameOver(m.screen, m.snap, m.top)
	}
}

// saveScreenshot saves the current screen under ~/.flappy/screenshots and
// returns the file path.
func (m Model) saveScreenshot() (string, error) {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	dir := filepath.Join(home, ".flappy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.variant, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.render()

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Options configures a play session.
type Options struct {
	Variant string
	Config  config.FlappyConfig
	Store   *storage.Store // Optional run history
	Logger  *log.Logger
	Runtime core.RuntimeConfig
}

// Run starts an engine for opts and drives it from a Bubble Tea program until
// the player quits.
func Run(opts Options) error {
	snaps := NewSnapshotChannel()
	defer snaps.Close()

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	engineOpts := []flappy.Option{
		flappy.WithSink(snaps.Publish),
		flappy.WithLogger(logger),
		flappy.WithVariant(opts.Variant),
	}
	if opts.Store != nil {
		engineOpts = append(engineOpts, flappy.WithRecorder(opts.Store))
	}
	if opts.Runtime.Seed != 0 {
		engineOpts = append(engineOpts, flappy.WithPlacement(flappy.NewRandomPlacement(opts.Runtime.Seed)))
	}

	engine, err := flappy.NewEngine(opts.Config, engineOpts...)
	if err != nil {
		return err
	}
	defer engine.Close()

	model := NewModel(engine, snaps, opts.Store, opts.Variant, opts.Runtime)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
