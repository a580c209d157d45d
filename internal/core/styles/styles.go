// Package styles provides shared lipgloss styles for CLI output.
package styles

import "github.com/charmbracelet/lipgloss"

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

var (
	NameStyle     lipgloss.Style
	LabelStyle    lipgloss.Style
	ActiveStyle   lipgloss.Style
	CompleteStyle lipgloss.Style
	OverdueStyle  lipgloss.Style
	PriorityStyle map[string]lipgloss.Style
	ErrorStyle    lipgloss.Style
	SuccessStyle  lipgloss.Style
	WarnStyle     lipgloss.Style
)

func init() {
	SetTheme(themes[DefaultTheme])
}

// SetTheme rebuilds every exported style from p.
func SetTheme(p Palette) {
	CurrentPalette = p

	NameStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	LabelStyle = lipgloss.NewStyle().Foreground(p.Muted)
	ActiveStyle = lipgloss.NewStyle().Foreground(p.Warning)
	CompleteStyle = lipgloss.NewStyle().Foreground(p.Success)
	OverdueStyle = lipgloss.NewStyle().Foreground(p.Error)
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Error)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	WarnStyle = lipgloss.NewStyle().Foreground(p.Warning)

	PriorityStyle = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Bold(true).Foreground(p.Error),
		"medium": lipgloss.NewStyle().Foreground(p.Warning),
		"low":    lipgloss.NewStyle().Foreground(p.Muted),
	}
}

// Priority returns the style for a priority label, unstyled when unknown.
func Priority(label string) lipgloss.Style {
	if s, ok := PriorityStyle[label]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
