package results

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	achievementdto "firstthought/internal/modules/achievement/dto"
	sessiondto "firstthought/internal/modules/session/dto"
)

func titles(m Model) []string {
	out := make([]string, len(m.cards))
	for i, c := range m.cards {
		out[i] = c.title
	}
	return out
}

func TestShowCollapsesMilestonesAcrossPeriods(t *testing.T) {
	fiveMin := achievementdto.MilestoneOutput{ID: "5m", Label: "5 minutes", ThresholdMs: 5 * 60 * 1000}
	oneMin := achievementdto.MilestoneOutput{ID: "1m", Label: "1 minute", ThresholdMs: 60 * 1000}
	out := sessiondto.RecordOutput{
		Session: sessiondto.SessionOutput{ID: "s1", Tag: "work", DurationMs: 6 * 60 * 1000, StartedAt: time.Now()},
		Achievements: achievementdto.EvaluateOutput{
			Unlocked: []achievementdto.UnlockedOutput{
				{Period: "day", Milestone: oneMin},
				{Period: "day", Milestone: fiveMin},
				{Period: "week", Milestone: oneMin},
				{Period: "week", Milestone: fiveMin},
			},
			NewRecords: []achievementdto.RecordOutput{
				{Period: "day", DurationMs: 6 * 60 * 1000},
				{Period: "allTime", DurationMs: 6 * 60 * 1000},
			},
		},
	}

	m := New()
	m.Show(out, "https://example.test/")

	assert.Equal(t, []string{
		"Milestone unlocked: 1 minute",
		"Milestone unlocked: 5 minutes",
		"New personal record",
		"Session saved",
	}, titles(m))
	assert.Equal(t, []string{"Today", "This week"}, m.cards[0].periods)
	assert.Equal(t, []string{"Today", "All time"}, m.cards[2].periods)
	assert.Contains(t, m.cards[1].share, "5 minutes")
	assert.Contains(t, m.cards[1].share, "https://example.test/")
	assert.Empty(t, m.cards[3].share)
}

func TestEnterAdvancesThenFinishes(t *testing.T) {
	m := New()
	m.Show(sessiondto.RecordOutput{Session: sessiondto.SessionOutput{Tag: "tea"}}, "")
	require.Equal(t, 1, m.Len())

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	m, cmd := m.Update(enter)
	require.NotNil(t, cmd)
	assert.IsType(t, DoneMsg{}, cmd())
}

func TestShareToggleOnlyOnShareableCards(t *testing.T) {
	m := New()
	m.Show(sessiondto.RecordOutput{
		Achievements: achievementdto.EvaluateOutput{
			NewRecords: []achievementdto.RecordOutput{{Period: "day", DurationMs: 1000}},
		},
	}, "")

	s := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}
	m, _ = m.Update(s)
	assert.True(t, m.showShare)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, m.index)
	assert.False(t, m.showShare)

	m, _ = m.Update(s)
	assert.False(t, m.showShare)
}
