package domain

import (
	"math/rand/v2"
	"sort"
	"time"
)

var ExampleTags = []string{
	"work", "family", "health", "exercise", "pets", "sleep",
	"stress", "gratitude", "reading", "writing", "music", "cooking",
	"creativity", "career", "relationships", "finances", "goals", "productivity",
	"ideas", "happiness", "dreams", "nature", "learning", "gardening",
}

const exampleDays = 14

// GenerateExample builds two weeks of plausible history ending at now: each
// day gets 0-60 minutes split over 1-3 sessions between 06:00 and 22:00.
func GenerateExample(now time.Time, rng *rand.Rand, newID func() string) Collection {
	var sessions []Session
	first := now.AddDate(0, 0, -exampleDays)

	for day := 0; day < exampleDays; day++ {
		dayStart := first.AddDate(0, 0, day)
		dayStart = time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), 0, 0, 0, 0, now.Location())

		totalMinutes := rng.IntN(61)
		if totalMinutes == 0 {
			continue
		}
		count := min(1+rng.IntN(3), (totalMinutes+4)/5)
		remaining := totalMinutes

		for n := 0; n < count && remaining > 0; n++ {
			minutes := remaining
			if n < count-1 {
				minutes = max(1, int(float64(rng.IntN(remaining))*0.7))
			}
			remaining -= minutes

			startedAt := dayStart.Add(time.Duration(6+rng.IntN(16))*time.Hour + time.Duration(rng.IntN(60))*time.Minute)
			duration := time.Duration(minutes) * time.Minute
			endedAt := startedAt.Add(duration)
			sessions = append(sessions, Session{
				ID:         newID(),
				StartedAt:  startedAt,
				EndedAt:    endedAt,
				DurationMs: duration.Milliseconds(),
				Tag:        ExampleTags[rng.IntN(len(ExampleTags))],
				CreatedAt:  endedAt,
				TaggedAt:   endedAt,
			})
		}
	}

	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].CreatedAt.After(sessions[j].CreatedAt) })
	return Collection{
		Sessions:       sessions,
		TagFrequencies: RebuildTagFrequencies(sessions),
		IsExampleData:  true,
	}
}
