package capture

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "firstthought/internal/modules/session/dto"
	timerdto "firstthought/internal/modules/timer/dto"
	"firstthought/internal/platform/format"
	"firstthought/internal/ui/components"
	"firstthought/internal/ui/theme"
)

type SessionPort interface {
	Suggest(ctx context.Context, prefix string) ([]sessiondto.TagFrequencyOutput, error)
	Record(ctx context.Context, tag string) (sessiondto.RecordOutput, error)
}

type TimerResetter interface {
	Reset(ctx context.Context) (timerdto.StateOutput, error)
}

// RecordedMsg carries the outcome of saving the session.
type RecordedMsg struct {
	Output sessiondto.RecordOutput
	Err    error
}

// DiscardedMsg is sent after the user abandons a completed run.
type DiscardedMsg struct{ Err error }

type suggestionsMsg struct {
	prefix string
	items  []sessiondto.TagFrequencyOutput
	err    error
}

// Model asks for the one-word first thought after a completed run.
type Model struct {
	sessions   SessionPort
	timer      TimerResetter
	input      components.TagInput
	durationMs int64
	prefix     string
	saving     bool
	err        error
	width      int
	height     int
}

func New(sessions SessionPort, timer TimerResetter) Model {
	return Model{sessions: sessions, timer: timer, input: components.NewTagInput()}
}

// Begin resets the form for a run of durationMs.
func (m *Model) Begin(durationMs int64) tea.Cmd {
	m.durationMs = durationMs
	m.saving = false
	m.err = nil
	m.prefix = ""
	return m.input.Focus()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(min(msg.Width-8, 60))
		return m, nil

	case components.TagQueryMsg:
		m.prefix = msg.Prefix
		return m, m.suggestCmd(msg.Prefix)

	case suggestionsMsg:
		if msg.prefix != m.prefix || msg.err != nil {
			return m, nil
		}
		items := make([]components.Suggestion, 0, len(msg.items))
		for _, it := range msg.items {
			items = append(items, components.Suggestion{Tag: it.Tag, Count: it.Count})
		}
		m.input.SetSuggestions(items)
		return m, nil

	case components.TagSubmitMsg:
		if m.saving {
			return m, nil
		}
		m.saving = true
		return m, m.recordCmd(msg.Tag)

	case components.TagCancelMsg:
		return m, m.discardCmd()

	case RecordedMsg:
		m.saving = false
		m.err = msg.Err
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("You sat for "+format.DurationLong(m.durationMs)) + "\n\n")
	sb.WriteString("What was your first thought?\n\n")
	sb.WriteString(m.input.View() + "\n\n")
	if m.saving {
		sb.WriteString(theme.Muted.Render("saving…") + "\n")
	}
	if m.err != nil {
		sb.WriteString(theme.Error.Render(m.err.Error()) + "\n")
	}
	sb.WriteString(theme.Muted.Render("enter save · tab pick suggestion · esc discard"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.PaneActive.Render(sb.String()))
}

func (m Model) suggestCmd(prefix string) tea.Cmd {
	return func() tea.Msg {
		items, err := m.sessions.Suggest(context.Background(), prefix)
		return suggestionsMsg{prefix: prefix, items: items, err: err}
	}
}

func (m Model) recordCmd(tag string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.sessions.Record(context.Background(), tag)
		return RecordedMsg{Output: out, Err: err}
	}
}

func (m Model) discardCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.timer.Reset(context.Background())
		return DiscardedMsg{Err: err}
	}
}
