package results

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "firstthought/internal/modules/session/dto"
	"firstthought/internal/platform/format"
	"firstthought/internal/platform/period"
	"firstthought/internal/ui/theme"
)

// DoneMsg is sent once the last card has been dismissed.
type DoneMsg struct{}

type cardKind int

const (
	cardMilestone cardKind = iota
	cardRecord
	cardSaved
)

type card struct {
	kind    cardKind
	title   string
	body    []string
	share   string
	periods []string
}

// Model walks through what a recorded session earned: unlocked milestones,
// then personal records, then a confirmation of the saved session.
type Model struct {
	cards     []card
	index     int
	showShare bool
	width     int
	height    int
}

func New() Model { return Model{} }

// Show builds the cards for out. Milestones unlocked in several periods at
// once collapse into one card listing those periods.
func (m *Model) Show(out sessiondto.RecordOutput, shareURL string) {
	m.cards = buildCards(out, shareURL)
	m.index = 0
	m.showShare = false
}

func (m Model) Len() int { return len(m.cards) }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", " ", "space", "right", "l":
			m.showShare = false
			if m.index+1 >= len(m.cards) {
				return m, func() tea.Msg { return DoneMsg{} }
			}
			m.index++
		case "left", "h":
			if m.index > 0 {
				m.index--
				m.showShare = false
			}
		case "s":
			if m.index < len(m.cards) && m.cards[m.index].share != "" {
				m.showShare = !m.showShare
			}
		case "esc":
			return m, func() tea.Msg { return DoneMsg{} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.cards) == 0 {
		return ""
	}
	c := m.cards[m.index]
	var sb strings.Builder

	title := theme.Title.Render(c.title)
	if c.kind != cardSaved {
		title = theme.Good.Render(c.title)
	}
	sb.WriteString(title + "\n\n")
	for _, line := range c.body {
		sb.WriteString(line + "\n")
	}
	if len(c.periods) > 0 {
		sb.WriteString("\n" + theme.Muted.Render(strings.Join(c.periods, " · ")) + "\n")
	}
	if m.showShare {
		sb.WriteString("\n" + theme.Hot.Render("share") + "\n" + c.share + "\n")
	}

	hint := fmt.Sprintf("%d/%d  enter next", m.index+1, len(m.cards))
	if c.share != "" {
		hint += " · s share"
	}
	sb.WriteString("\n" + theme.Muted.Render(hint))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		theme.PaneActive.Render(sb.String()))
}

func buildCards(out sessiondto.RecordOutput, shareURL string) []card {
	var cards []card

	byMilestone := map[string]int{}
	for _, u := range out.Achievements.Unlocked {
		label := periodLabel(u.Period)
		if i, ok := byMilestone[u.Milestone.ID]; ok {
			cards[i].periods = append(cards[i].periods, label)
			continue
		}
		body := []string{
			fmt.Sprintf("You have meditated %s.", format.DurationLong(u.Milestone.ThresholdMs)),
		}
		if u.Next != nil {
			body = append(body, theme.Muted.Render(fmt.Sprintf("%s to go until %s.",
				format.DurationLong(max(0, u.Next.ThresholdMs-u.TotalMs)), u.Next.Label)))
		}
		byMilestone[u.Milestone.ID] = len(cards)
		cards = append(cards, card{
			kind:    cardMilestone,
			title:   "Milestone unlocked: " + u.Milestone.Label,
			body:    body,
			share:   format.MilestoneShare(u.Milestone.Label, shareURL),
			periods: []string{label},
		})
	}

	if len(out.Achievements.NewRecords) > 0 {
		best := out.Achievements.NewRecords[0]
		periods := make([]string, 0, len(out.Achievements.NewRecords))
		for _, r := range out.Achievements.NewRecords {
			periods = append(periods, periodLabel(r.Period))
		}
		cards = append(cards, card{
			kind:    cardRecord,
			title:   "New personal record",
			body:    []string{format.DurationLong(best.DurationMs) + " in a single sitting."},
			share:   format.RecordShare(best.DurationMs, shareURL),
			periods: periods,
		})
	}

	s := out.Session
	body := []string{
		theme.Hot.Render(s.Tag) + "  " + format.Duration(s.DurationMs),
		theme.Muted.Render(format.DateTime(s.StartedAt)),
	}
	if out.DiscardedExample {
		body = append(body, "", theme.Muted.Render("Example data was cleared to make room for your own sessions."))
	}
	cards = append(cards, card{kind: cardSaved, title: "Session saved", body: body})
	return cards
}

func periodLabel(raw string) string {
	return period.Period(raw).Label()
}
