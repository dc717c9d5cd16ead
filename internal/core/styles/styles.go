// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
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

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports, rebuilt by SetTheme.
var (
	TitleStyle    lipgloss.Style
	MutedStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	NormalStyle   lipgloss.Style
	BadgeStyle    lipgloss.Style
	UnreadStyle   lipgloss.Style
	TimeStyle     lipgloss.Style
	StatusStyle   lipgloss.Style

	ToastSuccessStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
	ToastInfoStyle    lipgloss.Style

	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style

	SelectedBorderStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	TitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	SelectedStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true)
	NormalStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	BadgeStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)
	UnreadStyle = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)
	TimeStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	StatusStyle = lipgloss.NewStyle().
		Foreground(p.Secondary)

	toastBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastSuccessStyle = toastBase.BorderForeground(p.Success)
	ToastErrorStyle = toastBase.BorderForeground(p.Error)
	ToastInfoStyle = toastBase.BorderForeground(p.Primary)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	SelectedBorderStyle = lipgloss.NewStyle().
		Foreground(p.Primary)
}

// KindStyle returns the toast style for a notification kind string.
func KindStyle(kind string) lipgloss.Style {
	switch kind {
	case "success":
		return ToastSuccessStyle
	case "error":
		return ToastErrorStyle
	default:
		return ToastInfoStyle
	}
}

func init() {
	SetTheme(themes[DefaultTheme])
}
