package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "firstthought/internal/modules/session/dto"
	statsdto "firstthought/internal/modules/stats/dto"
	"firstthought/internal/platform/format"
	"firstthought/internal/ui/components"
	"firstthought/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type SessionPort interface {
	List(ctx context.Context) (sessiondto.ListOutput, error)
	Suggest(ctx context.Context, prefix string) ([]sessiondto.TagFrequencyOutput, error)
	Retag(ctx context.Context, id, tag string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Clear(ctx context.Context) error
	LoadExample(ctx context.Context) (sessiondto.ListOutput, error)
	History(ctx context.Context, days int) (sessiondto.HistoryOutput, error)
}

type CloudPort interface {
	Cloud(ctx context.Context) ([]statsdto.CloudWordOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type loadedMsg struct {
	list  sessiondto.ListOutput
	days  []sessiondto.DailyTotalOutput
	cloud []statsdto.CloudWordOutput
	err   error
}

type changedMsg struct{ err error }

type suggestionsMsg struct {
	prefix string
	items  []sessiondto.TagFrequencyOutput
}

// ChangedMsg tells the app that stored sessions were modified.
type ChangedMsg struct{}

// CloseMsg asks the app to leave the history screen.
type CloseMsg struct{}

// ─── list item ───────────────────────────────────────────────────────────────

type sessionItem struct {
	session sessiondto.SessionOutput
}

func (i sessionItem) Title() string { return i.session.Tag }
func (i sessionItem) Description() string {
	return fmt.Sprintf("%s  ·  %s", format.Duration(i.session.DurationMs), format.DateTime(i.session.StartedAt))
}
func (i sessionItem) FilterValue() string { return i.session.Tag }

// ─── model ───────────────────────────────────────────────────────────────────

type tab int

const (
	tabList tab = iota
	tabGraph
	tabCloud
	tabCount
)

var tabLabels = [tabCount]string{"Sessions", "Graph", "Cloud"}

type mode int

const (
	modeBrowse mode = iota
	modeRetag
	modeConfirmDelete
	modeConfirmClear
	modeConfirmExample
)

type Model struct {
	sessions SessionPort
	cloud    CloudPort
	days     int

	list    list.Model
	spinner spinner.Model
	input   components.TagInput
	tab     tab
	mode    mode
	loading bool
	prefix  string

	example bool
	totals  []sessiondto.DailyTotalOutput
	words   []statsdto.CloudWordOutput
	err     error
	width   int
	height  int
}

func New(sessions SessionPort, cloud CloudPort, days int) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Sessions"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		sessions: sessions,
		cloud:    cloud,
		days:     days,
		list:     l,
		spinner:  sp,
		input:    components.NewTagInput(),
		loading:  true,
	}
}

// Open reloads everything shown on the screen.
func (m *Model) Open() tea.Cmd {
	m.loading = true
	m.mode = modeBrowse
	m.err = nil
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// Capturing reports whether keystrokes belong to a text field or prompt.
func (m Model) Capturing() bool {
	return m.mode != modeBrowse || m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, max(1, msg.Height-4))
		m.input.SetWidth(min(msg.Width-4, 60))
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.example = msg.list.IsExampleData
		m.totals = msg.days
		m.words = msg.cloud
		items := make([]list.Item, len(msg.list.Sessions))
		for i, s := range msg.list.Sessions {
			items[i] = sessionItem{session: s}
		}
		m.list.Title = "Sessions"
		if m.example {
			m.list.Title = "Sessions (example data)"
		}
		return m, m.list.SetItems(items)

	case changedMsg:
		m.mode = modeBrowse
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, tea.Batch(m.loadCmd(), func() tea.Msg { return ChangedMsg{} })

	case components.TagQueryMsg:
		m.prefix = msg.Prefix
		return m, m.suggestCmd(msg.Prefix)

	case suggestionsMsg:
		if msg.prefix == m.prefix {
			items := make([]components.Suggestion, 0, len(msg.items))
			for _, it := range msg.items {
				items = append(items, components.Suggestion{Tag: it.Tag, Count: it.Count})
			}
			m.input.SetSuggestions(items)
		}
		return m, nil

	case components.TagSubmitMsg:
		if item, ok := m.selected(); ok {
			return m, m.retagCmd(item.session.ID, msg.Tag)
		}
		m.mode = modeBrowse
		return m, nil

	case components.TagCancelMsg:
		m.mode = modeBrowse
		return m, nil
	}

	switch m.mode {
	case modeRetag:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	case modeConfirmDelete, modeConfirmClear, modeConfirmExample:
		if key, ok := msg.(tea.KeyMsg); ok {
			return m.confirm(key)
		}
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch key.String() {
		case "esc":
			if m.list.FilterState() == list.Unfiltered {
				return m, func() tea.Msg { return CloseMsg{} }
			}
		case "left", "shift+tab":
			m.tab = (m.tab + tabCount - 1) % tabCount
			return m, nil
		case "right", "tab":
			m.tab = (m.tab + 1) % tabCount
			return m, nil
		case "e":
			if item, ok := m.selected(); ok && m.tab == tabList {
				m.mode = modeRetag
				cmd := m.input.Focus()
				m.input.SetValue(item.session.Tag)
				return m, cmd
			}
		case "d":
			if _, ok := m.selected(); ok && m.tab == tabList {
				m.mode = modeConfirmDelete
				return m, nil
			}
		case "C":
			m.mode = modeConfirmClear
			return m, nil
		case "x":
			m.mode = modeConfirmExample
			return m, nil
		}
	}

	if m.tab != tabList {
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading history…")
	}

	var body string
	switch m.tab {
	case tabGraph:
		body = m.graphView()
	case tabCloud:
		body = m.cloudView()
	default:
		body = m.list.View()
	}

	var footer string
	switch m.mode {
	case modeRetag:
		footer = theme.Muted.Render("New tag") + "\n" + m.input.View()
	case modeConfirmDelete:
		footer = theme.Hot.Render("Delete this session? y/n")
	case modeConfirmClear:
		footer = theme.Hot.Render("Delete ALL sessions? y/n")
	case modeConfirmExample:
		footer = theme.Hot.Render("Replace all sessions with example data? y/n")
	default:
		footer = theme.Muted.Render("←/→ switch · e retag · d delete · x example data · C clear all · esc back")
	}
	if m.err != nil {
		footer = theme.Error.Render(m.err.Error()) + "\n" + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.tabsView(), body, footer)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) tabsView() string {
	parts := make([]string, tabCount)
	for i, label := range tabLabels {
		if tab(i) == m.tab {
			parts[i] = theme.Hot.Render("[" + label + "]")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) graphView() string {
	if len(m.totals) == 0 {
		return theme.Muted.Render("No sessions yet.")
	}
	bars := make([]components.Bar, len(m.totals))
	for i, d := range m.totals {
		note := ""
		if d.Count > 0 {
			note = format.Duration(d.TotalMs)
		}
		bars[i] = components.Bar{Label: d.Day.Format("Mon 02 Jan"), Value: d.TotalMs, Note: note}
	}
	title := theme.Title.Render(fmt.Sprintf("Last %d days", len(m.totals)))
	return title + "\n\n" + components.BarChart(bars, max(20, m.width-4))
}

func (m Model) cloudView() string {
	if len(m.words) == 0 {
		return theme.Muted.Render("No first thoughts yet.")
	}
	words := make([]components.Word, len(m.words))
	for i, w := range m.words {
		words[i] = components.Word{Text: w.Tag, Weight: w.Weight}
	}
	return theme.Title.Render("First thoughts") + "\n\n" + components.Cloud(words, max(20, m.width-4))
}

func (m Model) selected() (sessionItem, bool) {
	item, ok := m.list.SelectedItem().(sessionItem)
	return item, ok
}

func (m Model) confirm(key tea.KeyMsg) (Model, tea.Cmd) {
	switch key.String() {
	case "y", "Y":
		switch m.mode {
		case modeConfirmClear:
			return m, m.clearCmd()
		case modeConfirmExample:
			return m, m.exampleCmd()
		}
		if item, ok := m.selected(); ok {
			return m, m.deleteCmd(item.session.ID)
		}
	}
	m.mode = modeBrowse
	return m, nil
}

func (m Model) loadCmd() tea.Cmd {
	days := m.days
	return func() tea.Msg {
		ctx := context.Background()
		out, err := m.sessions.List(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		hist, err := m.sessions.History(ctx, days)
		if err != nil {
			return loadedMsg{err: err}
		}
		var words []statsdto.CloudWordOutput
		if m.cloud != nil {
			if words, err = m.cloud.Cloud(ctx); err != nil {
				return loadedMsg{err: err}
			}
		}
		return loadedMsg{list: out, days: hist.Days, cloud: words}
	}
}

func (m Model) suggestCmd(prefix string) tea.Cmd {
	return func() tea.Msg {
		items, _ := m.sessions.Suggest(context.Background(), prefix)
		return suggestionsMsg{prefix: prefix, items: items}
	}
}

func (m Model) retagCmd(id, tag string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.sessions.Retag(context.Background(), id, tag)
		return changedMsg{err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.sessions.Delete(context.Background(), id)
		return changedMsg{err: err}
	}
}

func (m Model) clearCmd() tea.Cmd {
	return func() tea.Msg {
		return changedMsg{err: m.sessions.Clear(context.Background())}
	}
}

func (m Model) exampleCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.sessions.LoadExample(context.Background())
		return changedMsg{err: err}
	}
}
