package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"firstthought/internal/ui/theme"
)

// Bar is one column of a BarChart.
type Bar struct {
	Label string
	Value int64
	Note  string
}

var barStyle = lipgloss.NewStyle().Foreground(theme.Lavender)

// BarChart draws horizontal bars scaled to the largest value.
func BarChart(bars []Bar, width int) string {
	labelW, noteW := 0, 0
	var peak int64
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
		noteW = max(noteW, lipgloss.Width(b.Note))
		peak = max(peak, b.Value)
	}
	room := width - labelW - noteW - 4
	if room < 4 {
		room = 4
	}

	var sb strings.Builder
	for _, b := range bars {
		n := 0
		if peak > 0 {
			n = int(b.Value * int64(room) / peak)
		}
		if n == 0 && b.Value > 0 {
			n = 1
		}
		sb.WriteString(theme.Muted.Render(padRight(b.Label, labelW)))
		sb.WriteString(" ")
		sb.WriteString(barStyle.Render(strings.Repeat("█", n)))
		sb.WriteString(strings.Repeat(" ", room-n+1))
		sb.WriteString(b.Note)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func padRight(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
