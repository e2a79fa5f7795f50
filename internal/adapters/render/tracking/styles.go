package tracking

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title       lipgloss.Style
	header      lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
	errorText   lipgloss.Style
	section     lipgloss.Style
	empty       lipgloss.Style
	stage       lipgloss.Style
	stageActive lipgloss.Style
	connector   lipgloss.Style
	node        lipgloss.Style
	nodeCurrent lipgloss.Style
	eventTitle  lipgloss.Style
	eventMeta   lipgloss.Style
	code        lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true),
		header:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		label:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		value:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		errorText:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:     lipgloss.NewStyle().MarginTop(1),
		empty:       lipgloss.NewStyle().Faint(true),
		stage:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		stageActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("77")),
		connector:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		node:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		nodeCurrent: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("77")),
		eventTitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		eventMeta:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		code:        lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	}
}
