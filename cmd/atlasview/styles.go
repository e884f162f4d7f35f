package main

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	primaryColor = lipgloss.Color("#7D56F4")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF4B4B")
	mutedColor   = lipgloss.Color("#666666")
	borderColor  = lipgloss.Color("#383838")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	freeCellStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	selectedCellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(primaryColor).
				Bold(true)

	listEntryStyle = lipgloss.NewStyle()

	listSelectedStyle = lipgloss.NewStyle().
				Background(primaryColor).
				Foreground(lipgloss.Color("#FFFFFF")).
				Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(successColor)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// regionColors cycle across allocated regions in the occupancy grid.
	regionColors = []lipgloss.Color{
		"#F25D94", "#00D7FF", "#FFA500", "#04B575",
		"#BD93F9", "#F1FA8C", "#FF79C6", "#8BE9FD",
	}
)

func regionCellStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(regionColors[i%len(regionColors)])
}
