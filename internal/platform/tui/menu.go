package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// MenuItem represents a selectable variant in the menu.
type MenuItem struct {
	VariantID string
	Title     string
	Best      int // Best score in this process's history
	Summary   string
}

var (
	menuTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuCursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	menuSummaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// MenuModel is the Bubble Tea model for the variant picker.
type MenuModel struct {
	items  []MenuItem
	cursor int
	width  int
	height int
	config core.RuntimeConfig
	result MenuResult
	done   bool
}

// NewMenuModel creates a menu listing every registered variant.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	variants := registry.List()
	items := make([]MenuItem, 0, len(variants))

	for _, v := range variants {
		item := MenuItem{VariantID: v.ID, Title: v.Title}
		if vc, err := registry.Create(v.ID); err == nil {
			item.Summary = variantSummary(vc)
		}
		if store != nil {
			if best, err := store.BestScore(v.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:  items,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
	}
}

// variantSummary describes the parameters that make a variant feel different.
func variantSummary(c config.FlappyConfig) string {
	return fmt.Sprintf("gap %.0f  speed %.1f  gravity %.2f  %d obstacles",
		c.Obstacles.GapHeight, c.Physics.ObstacleSpeed, c.Physics.Gravity, c.Obstacles.PoolSize)
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)

	case MenuActionDown:
		m.cursor = min(m.cursor+1, len(m.items)-1)

	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		return m.finish(MenuResult{VariantID: m.items[m.cursor].VariantID})

	case MenuActionHistory:
		return m.finish(MenuResult{WantsHistory: true})

	case MenuActionQuit:
		return m.finish(MenuResult{Quit: true})
	}

	return m, nil
}

// finish records the outcome and exits the program.
func (m MenuModel) finish(r MenuResult) (tea.Model, tea.Cmd) {
	m.result = r
	m.done = true
	return m, tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.done && m.result.Quit {
		return ""
	}

	lines := []string{
		"",
		menuTitleStyle.Render("  F L A P P Y  "),
		"",
		"Select a variant",
		"",
	}

	for i, item := range m.items {
		line := "  " + item.Title
		if item.Best > 0 {
			line += fmt.Sprintf("  (best %d)", item.Best)
		}
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + strings.TrimPrefix(line, "  "))
		}
		lines = append(lines, line)
	}

	if len(m.items) > 0 && m.items[m.cursor].Summary != "" {
		lines = append(lines, "", menuSummaryStyle.Render(m.items[m.cursor].Summary))
	}

	lines = append(lines, "", "Up/Down: Navigate  |  Enter: Play  |  Tab: History  |  Q: Quit")

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds what the user picked before the menu exited.
type MenuResult struct {
	VariantID    string
	Config       core.RuntimeConfig
	WantsHistory bool
	Quit         bool
}

// Result returns the menu outcome. A menu that exited without a choice quits.
func (m MenuModel) Result() MenuResult {
	r := m.result
	if !m.done {
		r = MenuResult{Quit: true}
	}
	r.Config = m.config
	return r
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
