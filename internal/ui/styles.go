package ui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	user       lipgloss.Style
	bot        lipgloss.Style
	timestamp  lipgloss.Style
	status     lipgloss.Style
	hint       lipgloss.Style
	modal      lipgloss.Style
	modalTitle lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("25")).
			Padding(0, 1),
		user:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		bot:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		timestamp: r.NewStyle().Faint(true),
		status:    r.NewStyle().Foreground(lipgloss.Color("11")),
		hint:      r.NewStyle().Faint(true),
		modal: r.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("10")).
			Padding(1, 2),
		modalTitle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	}
}
