package ui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title       lipgloss.Style
	counts      lipgloss.Style
	cursor      lipgloss.Style
	task        lipgloss.Style
	done        lipgloss.Style
	filter      lipgloss.Style
	filterOn    lipgloss.Style
	action      lipgloss.Style
	empty       lipgloss.Style
	warning     lipgloss.Style
	status      lipgloss.Style
	help        lipgloss.Style
	recoveryBox lipgloss.Style
	errorText   lipgloss.Style
}

func defaultStyles() styles {
	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	accent := lipgloss.AdaptiveColor{Light: "#AF4448", Dark: "#E06C75"}
	warn := lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#E5C07B"}

	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		counts:   lipgloss.NewStyle().Foreground(subtle),
		cursor:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		task:     lipgloss.NewStyle(),
		done:     lipgloss.NewStyle().Foreground(subtle).Strikethrough(true),
		filter:   lipgloss.NewStyle(),
		filterOn: lipgloss.NewStyle().Bold(true).Foreground(accent),
		action:   lipgloss.NewStyle().Foreground(subtle).Underline(true),
		empty:    lipgloss.NewStyle().Foreground(subtle).Italic(true).PaddingLeft(2),
		warning:  lipgloss.NewStyle().Foreground(warn),
		status:   lipgloss.NewStyle().Foreground(subtle).Italic(true),
		help:     lipgloss.NewStyle().Foreground(subtle),
		recoveryBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2),
		errorText: lipgloss.NewStyle().Foreground(accent),
	}
}
