package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary lipgloss.TerminalColor
	Muted   lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "default"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"default": {
		Primary: lipgloss.Color("#7aa2f7"),
		Muted:   lipgloss.Color("#565f89"),
		Success: lipgloss.Color("#9ece6a"),
		Warning: lipgloss.Color("#e0af68"),
		Error:   lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary: lipgloss.Color("#83a598"),
		Muted:   lipgloss.Color("#665c54"),
		Success: lipgloss.Color("#b8bb26"),
		Warning: lipgloss.Color("#fabd2f"),
		Error:   lipgloss.Color("#fb4934"),
	},
	"plain": {
		Primary: lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetTheme returns the palette for the given theme name.
func GetTheme(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}
