package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "firstthought/internal/modules/session/dto"
	statsdto "firstthought/internal/modules/stats/dto"
	timerdto "firstthought/internal/modules/timer/dto"
	"firstthought/internal/ui/theme"
	captureview "firstthought/internal/ui/views/capture"
	historyview "firstthought/internal/ui/views/history"
	resultsview "firstthought/internal/ui/views/results"
	timerview "firstthought/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the union of what the screens below need. Sub-view ports are
// defined in their own packages and narrowed further.

type timerPort interface {
	Start(ctx context.Context) (timerdto.StateOutput, error)
	Complete(ctx context.Context) (timerdto.StateOutput, error)
	Reset(ctx context.Context) (timerdto.StateOutput, error)
	Status(ctx context.Context) (timerdto.StateOutput, error)
	Visibility(ctx context.Context, foreground bool) (timerdto.VisibilityOutput, error)
}

type sessionPort interface {
	Record(ctx context.Context, tag string) (sessiondto.RecordOutput, error)
	Suggest(ctx context.Context, prefix string) ([]sessiondto.TagFrequencyOutput, error)
	List(ctx context.Context) (sessiondto.ListOutput, error)
	Retag(ctx context.Context, id, tag string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Clear(ctx context.Context) error
	LoadExample(ctx context.Context) (sessiondto.ListOutput, error)
	History(ctx context.Context, days int) (sessiondto.HistoryOutput, error)
}

type statsPort interface {
	Summary(ctx context.Context) (statsdto.SummaryOutput, error)
	Cloud(ctx context.Context) ([]statsdto.CloudWordOutput, error)
}

// Options carries the display settings taken from config.
type Options struct {
	ShareURL    string
	HistoryDays int
}

// ─── screens ─────────────────────────────────────────────────────────────────

type screen int

const (
	screenTimer screen = iota
	screenCapture
	screenResults
	screenHistory
)

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Begin   key.Binding
	History key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Begin:   key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "begin / finish")),
		History: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Begin, k.History, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Begin, k.History},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes between the timer, the
// first-thought prompt, the results cards and history. Terminal focus
// changes reach the timer screen as the foreground signal.
type Model struct {
	opts Options

	timerView   timerview.Model
	captureView captureview.Model
	resultsView resultsview.Model
	historyView historyview.Model

	screen   screen
	keys     keyMap
	help     help.Model
	showHelp bool
	status   string
	width    int
	height   int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(timer timerPort, sessions sessionPort, stats statsPort, opts Options) Model {
	if opts.HistoryDays <= 0 {
		opts.HistoryDays = 14
	}
	return Model{
		opts:        opts,
		timerView:   timerview.New(timer, stats),
		captureView: captureview.New(sessions, timer),
		resultsView: resultsview.New(),
		historyView: historyview.New(sessions, stats, opts.HistoryDays),
		screen:      screenTimer,
		keys:        defaultKeys(),
		help:        help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.timerView.Init()
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case timerview.CompletedMsg:
		m.screen = screenCapture
		m.status = ""
		return m, m.captureView.Begin(msg.DurationMs)

	case captureview.RecordedMsg:
		if msg.Err != nil {
			var cmd tea.Cmd
			m.captureView, cmd = m.captureView.Update(msg)
			return m, cmd
		}
		m.resultsView.Show(msg.Output, m.opts.ShareURL)
		m.screen = screenResults
		return m, nil

	case captureview.DiscardedMsg:
		m.screen = screenTimer
		m.status = "session discarded"
		if msg.Err != nil {
			m.status = "discard: " + msg.Err.Error()
		}
		return m, m.timerView.Refresh()

	case resultsview.DoneMsg:
		m.screen = screenTimer
		m.status = "session saved"
		return m, m.timerView.Refresh()

	case historyview.CloseMsg:
		m.screen = screenTimer
		return m, m.timerView.Refresh()

	case historyview.ChangedMsg:
		m.status = "history updated"
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.screen == screenTimer {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case "h":
				if !m.timerView.Running() {
					m.screen = screenHistory
					return m, m.historyView.Open()
				}
			}
		}
		return m.routeKey(msg)
	}

	// Non-key messages always reach the timer so its tick loop survives
	// while another screen is showing.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.timerView, cmd = m.timerView.Update(msg)
	cmds = append(cmds, cmd)

	switch m.screen {
	case screenCapture:
		m.captureView, cmd = m.captureView.Update(msg)
		cmds = append(cmds, cmd)
	case screenHistory:
		m.historyView, cmd = m.historyView.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenTimer:
		m.timerView, cmd = m.timerView.Update(msg)
	case screenCapture:
		m.captureView, cmd = m.captureView.Update(msg)
	case screenResults:
		m.resultsView, cmd = m.resultsView.Update(msg)
	case screenHistory:
		m.historyView, cmd = m.historyView.Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	statusBar := m.renderStatusBar()
	contentH := max(1, m.height-lipgloss.Height(statusBar))

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center,
			theme.Pane.Render(m.help.View(m.keys)))
	case m.screen == screenCapture:
		content = m.captureView.View()
	case m.screen == screenResults:
		content = m.resultsView.View()
	case m.screen == screenHistory:
		content = m.historyView.View()
	default:
		content = m.timerView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.timerView.Running() {
		left = theme.Hot.Render("● meditating") + "  " + left
	}
	right := theme.Muted.Render("?:help  q:quit")
	if m.screen != screenTimer {
		right = ""
	}
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 1}
	m.timerView, _ = m.timerView.Update(sz)
	m.captureView, _ = m.captureView.Update(sz)
	m.resultsView, _ = m.resultsView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
}
