package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(t.Danger)).
			Foreground(lipgloss.Color(t.Danger)).
			Padding(0, 1),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Card     lipgloss.Style
	ErrorBox lipgloss.Style
}

var themes = []Theme{
	{
		Name:        "Dracula",
		Background:  "#282a36",
		Surface:     "#343746",
		Border:      "#44475a",
		BorderFocus: "#bd93f9",
		Text:        "#f8f8f2",
		Muted:       "#9ea8c7",
		Faint:       "#6272a4",
		Accent:      "#bd93f9",
		Success:     "#50fa7b",
		Warning:     "#f1fa8c",
		Danger:      "#ff5555",
	},
	{
		Name:        "Nord",
		Background:  "#2e3440",
		Surface:     "#3b4252",
		Border:      "#4c566a",
		BorderFocus: "#88c0d0",
		Text:        "#eceff4",
		Muted:       "#a8b3c4",
		Faint:       "#616e88",
		Accent:      "#88c0d0",
		Success:     "#a3be8c",
		Warning:     "#ebcb8b",
		Danger:      "#bf616a",
	},
	{
		Name:        "Gruvbox",
		Background:  "#282828",
		Surface:     "#3c3836",
		Border:      "#504945",
		BorderFocus: "#d79921",
		Text:        "#ebdbb2",
		Muted:       "#bdae93",
		Faint:       "#7c6f64",
		Accent:      "#d79921",
		Success:     "#b8bb26",
		Warning:     "#fabd2f",
		Danger:      "#fb4934",
	},
}

// GetTheme returns the named theme, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the name following the given theme, wrapping around.
func NextTheme(name string) string {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}
