package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// Glyphs
const (
	playerRune   = '@'
	obstacleRune = '█'
	hudRule      = '─'
)

// hudRows is the number of rows above the playfield.
const hudRows = 2

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// viewport scales world coordinates onto the playfield rows of a screen.
type viewport struct {
	top    int
	cols   int
	rows   int
	scaleX float64
	scaleY float64
}

func newViewport(s *core.Screen, snap flappy.Snapshot) viewport {
	v := viewport{
		top:  hudRows,
		cols: s.Width(),
		rows: s.Height() - hudRows,
	}
	if v.rows < 1 || snap.WorldWidth <= 0 || snap.WorldHeight <= 0 {
		v.rows = 0
		return v
	}
	v.scaleX = float64(v.cols) / snap.WorldWidth
	v.scaleY = float64(v.rows) / snap.WorldHeight
	return v
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.scaleX))
}

func (v viewport) row(y float64) int {
	return v.top + int(math.Floor(y*v.scaleY))
}

// span converts a world interval to a cell interval at least one cell wide.
func span(from, to int) (int, int) {
	if to <= from {
		to = from + 1
	}
	return from, to - from
}

// DrawSnapshot renders the playfield and HUD of snap into s.
func DrawSnapshot(s *core.Screen, snap flappy.Snapshot) {
	s.Clear()
	drawHUD(s, snap)

	v := newViewport(s, snap)
	if v.rows == 0 {
		return
	}
	bottom := v.top + v.rows

	for _, o := range snap.Obstacles {
		x, w := span(v.col(o.X), v.col(o.X+o.Width))
		gapTop := core.Clamp(v.row(o.GapTop), v.top, bottom)
		gapBottom := core.Clamp(v.row(o.GapTop+o.GapHeight), v.top, bottom)
		s.FillRect(x, v.top, w, gapTop-v.top, obstacleRune, core.ColorGreen)
		s.FillRect(x, gapBottom, w, bottom-gapBottom, obstacleRune, core.ColorGreen)
	}

	px, pw := span(v.col(snap.PlayerX), v.col(snap.PlayerX+snap.PlayerSize))
	py, ph := span(v.row(snap.PlayerY), v.row(snap.PlayerY+snap.PlayerSize))
	playerColor := core.ColorBrightYellow
	if snap.State == flappy.StateGameOver {
		playerColor = core.ColorBrightRed
	}
	s.FillRect(px, py, pw, ph, playerRune, playerColor)

	if snap.State == flappy.StateIdle {
		mid := v.top + v.rows/2
		s.DrawTextCentered(mid, "Press SPACE to flap", core.ColorBrightWhite)
	}
}

func drawHUD(s *core.Screen, snap flappy.Snapshot) {
	s.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", snap.Score), core.ColorBrightWhite)
	best := fmt.Sprintf("Best: %d", snap.BestScore)
	s.DrawTextColored(s.Width()-len(best)-1, 0, best, core.ColorCyan)
	s.DrawHLine(0, 1, s.Width(), hudRule, core.ColorGray)
}

// reasonText is the user-facing message for an end reason.
func reasonText(r flappy.EndReason) string {
	switch r {
	case flappy.ReasonOutOfBounds:
		return "Flew out of the sky"
	case flappy.ReasonCollision:
		return "Hit an obstacle"
	default:
		return ""
	}
}

// DrawGameOver overlays the game over panel with the best runs of the variant.
func DrawGameOver(s *core.Screen, snap flappy.Snapshot, top []storage.RunEntry) {
	lines := []string{
		"GAME OVER",
		reasonText(snap.Reason),
		fmt.Sprintf("Score %d   Best %d", snap.Score, snap.BestScore),
	}
	if len(top) > 0 {
		lines = append(lines, "", "Top runs")
		for i, e := range top {
			lines = append(lines, fmt.Sprintf("#%d  %4d  %6d ticks", i+1, e.Score, e.Ticks))
		}
	}
	lines = append(lines, "", "R to restart, Q to quit")

	width := 0
	for _, l := range lines {
		width = core.Max(width, len(l))
	}
	boxW := width + 4
	boxH := len(lines) + 2
	x := (s.Width() - boxW) / 2
	y := core.Max(hudRows, (s.Height()-boxH)/2)

	s.FillRect(x, y, boxW, boxH, ' ', core.ColorDefault)
	s.DrawBox(x, y, boxW, boxH)
	for i, l := range lines {
		c := core.ColorBrightWhite
		if i == 0 {
			c = core.ColorBrightRed
		}
		s.DrawTextCentered(y+1+i, l, c)
	}
}
