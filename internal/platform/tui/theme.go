package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/woods/internal/core"
)

// Theme contains all configurable visual styles for the watch screen.
type Theme struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	Done    lipgloss.Style
	Meeting lipgloss.Style
	Panel   lipgloss.Style
	Empty   lipgloss.Style
	Help    lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		Running: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),  // Lime green
		Paused:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")), // Bright yellow
		Done:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51")),  // Bright cyan
		Meeting: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),            // Hot pink
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2),
		Help: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Swatch renders a small block in the given color.
func Swatch(c core.Color) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("■")
}
