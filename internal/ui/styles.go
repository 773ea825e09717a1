// Package ui provides terminal styling for CLI output.
package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - gold accent to match the star theme.
const (
	ColorGold     = "220" // Primary accent, star counts and highlights
	ColorGoldDim  = "178" // Dimmed gold for secondary accents
	ColorWhite    = "255" // Repository names, important text
	ColorGray     = "245" // Descriptions, secondary text
	ColorDarkGray = "238" // Separators, URLs
	ColorRed      = "196" // Errors
	ColorGreen    = "114" // Success messages
	ColorCyan     = "81"  // Search source banner
)

// Styles holds the lipgloss styles used across CLI commands.
type Styles struct {
	Header  lipgloss.Style
	Repo    lipgloss.Style
	Stars   lipgloss.Style
	Desc    lipgloss.Style
	URL     lipgloss.Style
	Source  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
	Prompt  lipgloss.Style
}

// DefaultStyles returns the colored style set.
func DefaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorGold)),
		Repo:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Stars:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGold)),
		Desc:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		URL:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)).Underline(true),
		Source:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCyan)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGoldDim)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Prompt:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorCyan)),
	}
}

// NoColorStyles returns an unstyled set for pipes and NO_COLOR terminals.
func NoColorStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle(),
		Repo:    lipgloss.NewStyle(),
		Stars:   lipgloss.NewStyle(),
		Desc:    lipgloss.NewStyle(),
		URL:     lipgloss.NewStyle(),
		Source:  lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Dim:     lipgloss.NewStyle(),
		Prompt:  lipgloss.NewStyle(),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
