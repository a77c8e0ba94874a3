package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"firstthought/internal/platform/tagword"
	"firstthought/internal/ui/theme"
)

// TagSubmitMsg is emitted when the user confirms a tag.
type TagSubmitMsg struct{ Tag string }

// TagCancelMsg is emitted when the user presses esc.
type TagCancelMsg struct{}

// TagQueryMsg asks the owner for suggestions matching Prefix.
type TagQueryMsg struct{ Prefix string }

var (
	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle     = lipgloss.NewStyle().Foreground(theme.Subtext0)
	hintActive    = lipgloss.NewStyle().Foreground(theme.Lavender).Bold(true)
	maxSuggestion = 5
)

// Suggestion is one completion candidate with its usage count.
type Suggestion struct {
	Tag   string
	Count int
}

// TagInput is a one-word text field with completions underneath. Tab and
// the arrow keys pick a suggestion; enter submits the normalized word.
type TagInput struct {
	input       textinput.Model
	suggestions []Suggestion
	selected    int
	width       int
}

func NewTagInput() TagInput {
	ti := textinput.New()
	ti.Placeholder = "one word…"
	ti.CharLimit = tagword.MaxRunes
	return TagInput{input: ti, selected: -1}
}

// Focus clears the field and returns the cursor blink command.
func (t *TagInput) Focus() tea.Cmd {
	t.input.SetValue("")
	t.suggestions = nil
	t.selected = -1
	return tea.Batch(t.input.Focus(), query(""))
}

func (t *TagInput) Blur() { t.input.Blur() }

func (t *TagInput) SetValue(v string) {
	t.input.SetValue(v)
	t.input.CursorEnd()
}

func (t *TagInput) SetWidth(w int) { t.width = w }

// SetSuggestions replaces the completion list, keeping at most five.
func (t *TagInput) SetSuggestions(items []Suggestion) {
	if len(items) > maxSuggestion {
		items = items[:maxSuggestion]
	}
	t.suggestions = items
	t.selected = -1
}

func (t TagInput) Value() string { return t.input.Value() }

func (t TagInput) Update(msg tea.Msg) (TagInput, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			t.input.Blur()
			return t, func() tea.Msg { return TagCancelMsg{} }
		case "enter":
			tag := tagword.Normalize(t.input.Value())
			if t.selected >= 0 && t.selected < len(t.suggestions) {
				tag = t.suggestions[t.selected].Tag
			}
			if tag == "" {
				return t, nil
			}
			return t, func() tea.Msg { return TagSubmitMsg{Tag: tag} }
		case "down", "tab":
			if len(t.suggestions) > 0 {
				t.selected = (t.selected + 1) % len(t.suggestions)
			}
			return t, nil
		case "up", "shift+tab":
			if len(t.suggestions) > 0 {
				t.selected = (t.selected - 1 + len(t.suggestions)) % len(t.suggestions)
			}
			return t, nil
		case " ", "space":
			// tags are single words
			return t, nil
		}
	}

	before := t.input.Value()
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	if after := t.input.Value(); after != before {
		t.selected = -1
		return t, tea.Batch(cmd, query(after))
	}
	return t, cmd
}

func (t TagInput) View() string {
	var sb strings.Builder
	sb.WriteString("> " + t.input.View() + "\n")
	if len(t.suggestions) > 0 {
		sb.WriteString("\n")
		for i, s := range t.suggestions {
			line := "  " + s.Tag + hintStyle.Render(" ×"+strconv.Itoa(s.Count))
			if i == t.selected {
				line = hintActive.Render("› "+s.Tag) + hintStyle.Render(" ×"+strconv.Itoa(s.Count))
			}
			sb.WriteString(line + "\n")
		}
	}

	w := t.width
	if w < 20 {
		w = 40
	}
	return inputStyle.Width(w - 2).Render(strings.TrimRight(sb.String(), "\n"))
}

func query(prefix string) tea.Cmd {
	return func() tea.Msg { return TagQueryMsg{Prefix: prefix} }
}
