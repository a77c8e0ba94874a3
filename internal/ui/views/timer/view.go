package timer

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "firstthought/internal/modules/stats/dto"
	timerdto "firstthought/internal/modules/timer/dto"
	"firstthought/internal/platform/format"
	"firstthought/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type TimerPort interface {
	Start(ctx context.Context) (timerdto.StateOutput, error)
	Complete(ctx context.Context) (timerdto.StateOutput, error)
	Status(ctx context.Context) (timerdto.StateOutput, error)
	Visibility(ctx context.Context, foreground bool) (timerdto.VisibilityOutput, error)
}

type SummaryPort interface {
	Summary(ctx context.Context) (statsdto.SummaryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type StateMsg struct {
	State timerdto.StateOutput
	Err   error
}

type visibilityMsg struct {
	out timerdto.VisibilityOutput
	err error
}

type SummaryMsg struct {
	Summary statsdto.SummaryOutput
	Err     error
}

type tickMsg time.Time

// CompletedMsg reports a finished run that still needs a tag.
type CompletedMsg struct {
	DurationMs int64
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model shows the home screen while idle and the live clock while running.
// It samples the wall clock once a second for display only; the stored
// start time stays authoritative.
type Model struct {
	timer   TimerPort
	stats   SummaryPort
	state   timerdto.StateOutput
	summary statsdto.SummaryOutput
	now     time.Time
	err     error
	width   int
	height  int
}

func New(timer TimerPort, stats SummaryPort) Model {
	return Model{timer: timer, stats: stats, state: timerdto.StateOutput{Status: "idle"}, now: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), tick())
}

// Refresh reloads the timer and the home summary.
func (m Model) Refresh() tea.Cmd {
	return tea.Batch(m.statusCmd(), m.summaryCmd())
}

func (m Model) Running() bool { return m.state.Status == "running" }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()

	case StateMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.state = msg.State
		if msg.State.Status == "completed" {
			return m, completed(msg.State.DurationMs)
		}

	case visibilityMsg:
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.state = msg.out.State
		if msg.out.Completed {
			return m, completed(msg.out.State.DurationMs)
		}

	case SummaryMsg:
		if msg.Err == nil {
			m.summary = msg.Summary
		}

	case tea.BlurMsg:
		if m.Running() {
			return m, m.visibilityCmd(false)
		}

	case tea.FocusMsg:
		if m.Running() {
			return m, m.visibilityCmd(true)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "space", "enter":
			switch m.state.Status {
			case "running":
				return m, m.completeCmd()
			case "completed":
				return m, completed(m.state.DurationMs)
			default:
				return m, m.startCmd()
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	if m.Running() {
		body = m.runningView()
	} else {
		body = m.homeView()
	}
	if m.err != nil {
		body += "\n\n" + theme.Error.Render(m.err.Error())
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) homeView() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("First Thought") + "\n\n")
	sb.WriteString("Sit. Breathe. Notice the first thought that pulls you away.\n")
	sb.WriteString(theme.Muted.Render("Switch away from the terminal while you sit; coming back ends the session.") + "\n\n")
	sb.WriteString(theme.Hot.Render("space") + " begin    " + theme.Hot.Render("h") + " history\n")

	if len(m.summary.Periods) > 0 {
		today := m.summary.Periods[0]
		sb.WriteString("\n")
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%s: %d sessions, %s",
			today.Label, today.Count, format.DurationLong(today.TotalMs))))
		if m.summary.Streak.Current > 0 {
			sb.WriteString(theme.Muted.Render(fmt.Sprintf("  ·  %d-day streak", m.summary.Streak.Current)))
		}
	}
	return theme.Pane.Render(sb.String())
}

func (m Model) runningView() string {
	elapsed := m.state.ElapsedMs
	if m.state.StartedAt != nil {
		elapsed = max(0, m.now.Sub(*m.state.StartedAt).Milliseconds())
	}
	var sb strings.Builder
	sb.WriteString(theme.Clock.Render(format.Duration(elapsed)) + "\n")
	sb.WriteString(theme.Muted.Render("meditating…  space to finish") + "\n")
	return theme.PaneActive.Render(lipgloss.JoinVertical(lipgloss.Center, sb.String()))
}

// ─── commands ────────────────────────────────────────────────────────────────

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func completed(durationMs int64) tea.Cmd {
	return func() tea.Msg { return CompletedMsg{DurationMs: durationMs} }
}

func (m Model) statusCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.timer.Status(context.Background())
		return StateMsg{State: state, Err: err}
	}
}

func (m Model) startCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.timer.Start(context.Background())
		return StateMsg{State: state, Err: err}
	}
}

func (m Model) completeCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.timer.Complete(context.Background())
		return StateMsg{State: state, Err: err}
	}
}

func (m Model) visibilityCmd(foreground bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.timer.Visibility(context.Background(), foreground)
		return visibilityMsg{out: out, err: err}
	}
}

func (m Model) summaryCmd() tea.Cmd {
	if m.stats == nil {
		return nil
	}
	return func() tea.Msg {
		summary, err := m.stats.Summary(context.Background())
		return SummaryMsg{Summary: summary, Err: err}
	}
}
