package core

// Color represents a foreground color for a screen cell.
// The terminal platform maps each value to an ANSI style.
type Color uint8

// Colors used by the renderer.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorYellow
	ColorCyan
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightWhite
	ColorGray
)
