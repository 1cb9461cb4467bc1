package styles

import "github.com/charmbracelet/lipgloss"

// Panel returns the bordered style of the queue and history panels.
// The panel holding the next track to play is highlighted.
func Panel(active bool) lipgloss.Style {
	border := T().Border
	if active {
		border = T().BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}
