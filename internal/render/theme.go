package render

import (
	"github.com/charmbracelet/lipgloss"

	"fintrack/internal/dashboard"
)

// Palette holds the semantic colors of one theme.
type Palette struct {
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Income  lipgloss.Color
	Expense lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Border  lipgloss.Color
}

// Catppuccin Latte for light, Mocha for dark.
var (
	LightPalette = Palette{
		Text:    "#4c4f69",
		Muted:   "#8c8fa1",
		Accent:  "#8839ef",
		Income:  "#1e66f5",
		Expense: "#d20f39",
		Warning: "#df8e1d",
		Error:   "#d20f39",
		Border:  "#bcc0cc",
	}
	DarkPalette = Palette{
		Text:    "#cdd6f4",
		Muted:   "#7f849c",
		Accent:  "#cba6f7",
		Income:  "#89b4fa",
		Expense: "#f38ba8",
		Warning: "#f9e2af",
		Error:   "#f38ba8",
		Border:  "#45475a",
	}
)

// Theme is the set of styles the views draw with.
type Theme struct {
	Name    dashboard.Theme
	Palette Palette

	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Value   lipgloss.Style
	Income  lipgloss.Style
	Expense lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Card    lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
}

func ThemeFor(name dashboard.Theme) Theme {
	p := LightPalette
	if name == dashboard.ThemeDark {
		p = DarkPalette
	} else {
		name = dashboard.ThemeLight
	}

	return Theme{
		Name:    name,
		Palette: p,
		Title:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Label:   lipgloss.NewStyle().Foreground(p.Muted),
		Muted:   lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		Value:   lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		Income:  lipgloss.NewStyle().Foreground(p.Income),
		Expense: lipgloss.NewStyle().Foreground(p.Expense),
		Warning: lipgloss.NewStyle().Foreground(p.Warning),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(p.Error),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		Header: lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Padding(0, 1),
		Cell:   lipgloss.NewStyle().Foreground(p.Text).Padding(0, 1),
	}
}
