package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the player's lipgloss styles.
type Styles struct {
	Title    lipgloss.Style
	Progress lipgloss.Style
	Label    lipgloss.Style
	URL      lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Primary  lipgloss.Style
	Terminal lipgloss.Style
	Disabled lipgloss.Style
	Frame    lipgloss.Style
}

func DefaultStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89b4fa")),

		Progress: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7")),

		Label: lipgloss.NewStyle().
			Bold(true),

		URL: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94e2d5")).
			Underline(true),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086")),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f38ba8")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#f38ba8")).
			Padding(0, 1),

		Primary: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1e1e2e")).
			Background(lipgloss.Color("#89b4fa")).
			Padding(0, 1),

		Terminal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1e1e2e")).
			Background(lipgloss.Color("#a6e3a1")).
			Padding(0, 1),

		Disabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086")).
			Padding(0, 1),

		Frame: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475a")).
			Padding(1, 2),
	}
}
