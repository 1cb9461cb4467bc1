package render

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "▓"
	emptyBlock  = "░"

	PlaySymbol  = "▶"
	PauseSymbol = "⏸"
)

// ProgressBar renders "▶  1:23  ▓▓▓▓░░░░  4:56" in width cells. With an
// unknown duration the bar stays empty. Too narrow for a bar, only the
// times are shown.
func ProgressBar(position, duration time.Duration, known bool, width int, playing bool) string {
	status := PlaySymbol
	if !playing {
		status = PauseSymbol
	}

	posStr := Duration(position, true)
	durStr := Duration(duration, known)

	fixed := lipgloss.Width(status) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixed
	if barWidth < 3 {
		return status + "  " + posStr + " / " + durStr
	}

	var ratio float64
	if known && duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	filled := min(max(int(float64(barWidth)*ratio), 0), barWidth)

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, barWidth-filled)
	return status + "  " + posStr + "  " + bar + "  " + durStr
}
