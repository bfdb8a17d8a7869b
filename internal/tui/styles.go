package tui

import "github.com/charmbracelet/lipgloss"

var (
	cyan   = lipgloss.Color("#22D3EE")
	blue   = lipgloss.Color("#3B82F6")
	gray   = lipgloss.Color("#9CA3AF")
	red    = lipgloss.Color("#FCA5A5")
	subtle = lipgloss.Color("#4B5563")
)

type styles struct {
	title     lipgloss.Style
	subtitle  lipgloss.Style
	status    lipgloss.Style
	welcome   lipgloss.Style
	user      lipgloss.Style
	assistant lipgloss.Style
	speaker   lipgloss.Style
	errBanner lipgloss.Style
	thinking  lipgloss.Style
	input     lipgloss.Style
	help      lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(cyan),
		subtitle:  lipgloss.NewStyle().Foreground(gray),
		status:    lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80")),
		welcome:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(subtle).Padding(0, 2),
		user:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(blue).Padding(0, 1),
		assistant: lipgloss.NewStyle().Foreground(lipgloss.Color("#F3F4F6")).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(cyan).PaddingLeft(1),
		speaker:   lipgloss.NewStyle().Foreground(gray).Italic(true),
		errBanner: lipgloss.NewStyle().Foreground(red).Border(lipgloss.NormalBorder()).BorderForeground(red).Padding(0, 1),
		thinking:  lipgloss.NewStyle().Foreground(gray),
		input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(subtle).Padding(0, 1),
		help:      lipgloss.NewStyle().Foreground(subtle),
	}
}
