package timer

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	statsdto "firstthought/internal/modules/stats/dto"
	timerdto "firstthought/internal/modules/timer/dto"
)

type fakeTimer struct {
	state      timerdto.StateOutput
	visibility []bool
}

func (f *fakeTimer) Start(context.Context) (timerdto.StateOutput, error) {
	now := time.Now()
	f.state = timerdto.StateOutput{Status: "running", StartedAt: &now}
	return f.state, nil
}

func (f *fakeTimer) Complete(context.Context) (timerdto.StateOutput, error) {
	f.state = timerdto.StateOutput{Status: "completed", StartedAt: f.state.StartedAt, DurationMs: 61_000}
	return f.state, nil
}

func (f *fakeTimer) Status(context.Context) (timerdto.StateOutput, error) { return f.state, nil }

func (f *fakeTimer) Visibility(_ context.Context, foreground bool) (timerdto.VisibilityOutput, error) {
	f.visibility = append(f.visibility, foreground)
	if !foreground {
		f.state.Hidden = true
		return timerdto.VisibilityOutput{State: f.state}, nil
	}
	f.state = timerdto.StateOutput{Status: "completed", DurationMs: 90_000}
	return timerdto.VisibilityOutput{Completed: true, State: f.state}, nil
}

type fakeSummary struct{}

func (fakeSummary) Summary(context.Context) (statsdto.SummaryOutput, error) {
	return statsdto.SummaryOutput{
		Periods: []statsdto.PeriodOutput{{Period: "day", Label: "Today", Count: 2, TotalMs: 600_000}},
		Streak:  statsdto.StreakOutput{Current: 3, Longest: 5},
	}, nil
}

// run feeds msg through Update and then every message its command yields.
func run(m Model, msg tea.Msg) (Model, []tea.Msg) {
	var out []tea.Msg
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		var cmd tea.Cmd
		m, cmd = m.Update(next)
		if cmd == nil {
			continue
		}
		if produced := cmd(); produced != nil {
			out = append(out, produced)
			queue = append(queue, produced)
		}
	}
	return m, out
}

func TestSpaceStartsThenCompletes(t *testing.T) {
	fake := &fakeTimer{state: timerdto.StateOutput{Status: "idle"}}
	m := New(fake, fakeSummary{})

	m, _ = run(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.True(t, m.Running())

	m, msgs := run(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.False(t, m.Running())
	require.NotEmpty(t, msgs)
	assert.Equal(t, CompletedMsg{DurationMs: 61_000}, msgs[len(msgs)-1])
}

func TestReturningToForegroundCompletes(t *testing.T) {
	now := time.Now()
	fake := &fakeTimer{state: timerdto.StateOutput{Status: "running", StartedAt: &now}}
	m := New(fake, nil)
	m, _ = run(m, StateMsg{State: fake.state})

	m, msgs := run(m, tea.BlurMsg{})
	assert.True(t, m.Running())
	for _, msg := range msgs {
		_, done := msg.(CompletedMsg)
		assert.False(t, done)
	}

	m, msgs = run(m, tea.FocusMsg{})
	assert.Equal(t, []bool{false, true}, fake.visibility)
	require.NotEmpty(t, msgs)
	assert.Equal(t, CompletedMsg{DurationMs: 90_000}, msgs[len(msgs)-1])
	assert.False(t, m.Running())
}

func TestFocusIgnoredWhileIdle(t *testing.T) {
	fake := &fakeTimer{state: timerdto.StateOutput{Status: "idle"}}
	m := New(fake, nil)

	_, msgs := run(m, tea.FocusMsg{})
	assert.Empty(t, msgs)
	assert.Empty(t, fake.visibility)
}

func TestHomeShowsTodaySummary(t *testing.T) {
	m := New(&fakeTimer{state: timerdto.StateOutput{Status: "idle"}}, fakeSummary{})
	m, _ = run(m, m.summaryCmd()())

	view := m.View()
	assert.Contains(t, view, "Today: 2 sessions")
	assert.Contains(t, view, "3-day streak")
}
