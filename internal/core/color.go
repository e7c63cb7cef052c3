package core

// Color is a foreground color for a screen cell. It holds either an ANSI
// 256-color code ("15") or a hex color ("#00ff00"), the two forms lipgloss
// accepts, so ball colors from the config pass through unchanged.
type Color string

// Predefined colors for HUD and ring elements.
const (
	ColorDefault     Color = ""
	ColorRed         Color = "1"
	ColorGreen       Color = "2"
	ColorYellow      Color = "3"
	ColorWhite       Color = "7"
	ColorBrightWhite Color = "15"
	ColorGray        Color = "245"
)
