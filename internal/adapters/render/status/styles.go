package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	device   lipgloss.Style
	active   lipgloss.Style
	detail   lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	key      lipgloss.Style
	selected lipgloss.Style
	enabled  lipgloss.Style
	disabled lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		device:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		active:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		key:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		enabled:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
