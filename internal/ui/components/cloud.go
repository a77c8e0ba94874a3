package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"firstthought/internal/ui/theme"
)

type Word struct {
	Text   string
	Weight int
}

var cloudColors = []lipgloss.Color{theme.Lavender, theme.Sapphire, theme.Green, theme.Peach, theme.Mauve}

// Cloud lays words out in wrapped lines. Heavier words are bold and
// upper-cased at the top weights since a terminal has one font size.
func Cloud(words []Word, width int) string {
	if width < 10 {
		width = 40
	}
	var lines []string
	var line []string
	lineW := 0
	for i, w := range words {
		style := lipgloss.NewStyle().Foreground(cloudColors[i%len(cloudColors)])
		text := w.Text
		switch {
		case w.Weight >= 5:
			style = style.Bold(true)
			text = strings.ToUpper(text)
		case w.Weight >= 3:
			style = style.Bold(true)
		case w.Weight <= 1:
			style = style.Faint(true)
		}
		rendered := style.Render(text)
		cellW := lipgloss.Width(rendered) + 2
		if lineW+cellW > width && len(line) > 0 {
			lines = append(lines, strings.Join(line, "  "))
			line, lineW = nil, 0
		}
		line = append(line, rendered)
		lineW += cellW
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, "  "))
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
}
