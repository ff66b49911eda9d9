package core

// Color is the foreground color of a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorOrange
	ColorGray
)

// Semantic colors used by the sandbox renderer.
const (
	ColorSegment  = ColorWhite
	ColorNode     = ColorBrightYellow
	ColorAnchor   = ColorRed
	ColorSelected = ColorBrightGreen
	ColorHover    = ColorOrange
	ColorStrained = ColorMagenta
	ColorHint     = ColorGray
)
