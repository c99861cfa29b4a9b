package render

import "github.com/charmbracelet/lipgloss"

// Color palette using ANSI color codes for terminal compatibility.

// Semantic colors for status indication
const (
	ColorOK       lipgloss.Color = "2" // Green
	ColorCritical lipgloss.Color = "1" // Red
	ColorWarning  lipgloss.Color = "3" // Yellow
	ColorInfo     lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

var (
	styleOK       = lipgloss.NewStyle().Foreground(ColorOK)
	styleWarn     = lipgloss.NewStyle().Foreground(ColorWarning)
	styleCrit     = lipgloss.NewStyle().Foreground(ColorCritical)
	styleInfo     = lipgloss.NewStyle().Foreground(ColorInfo)
	styleMuted    = lipgloss.NewStyle().Foreground(ColorMuted)
	styleLabel    = lipgloss.NewStyle().Foreground(ColorSecondary)
	styleTitle    = lipgloss.NewStyle().Foreground(ColorInfo).Bold(true)
	styleDivider  = lipgloss.NewStyle().Foreground(ColorMuted)
	styleMenuKey  = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	styleMenuText = lipgloss.NewStyle().Foreground(ColorPrimary)
)

// bandStyle maps a clamped percentage onto the metric's threshold band.
func bandStyle(pct, warn, crit int) lipgloss.Style {
	switch {
	case pct >= crit:
		return styleCrit
	case pct >= warn:
		return styleWarn
	default:
		return styleOK
	}
}
