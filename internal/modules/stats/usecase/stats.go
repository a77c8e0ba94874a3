package usecase

import (
	"context"
	"fmt"

	"firstthought/internal/modules/stats/domain"
	statsdto "firstthought/internal/modules/stats/dto"
	statsin "firstthought/internal/modules/stats/port/in"
	"firstthought/internal/modules/stats/service"
	apperrors "firstthought/internal/platform/errors"
	"firstthought/internal/platform/period"
)

type Interactor struct {
	svc *service.StatsService
}

func NewInteractor(svc *service.StatsService) statsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Period(ctx context.Context, input statsdto.PeriodInput) (statsdto.PeriodOutput, error) {
	p, err := period.Parse(input.Period)
	if err != nil {
		return statsdto.PeriodOutput{}, err
	}
	sessions, now, err := i.svc.Snapshot(ctx)
	if err != nil {
		return statsdto.PeriodOutput{}, err
	}
	return toPeriodOutput(domain.ForPeriod(sessions, p, now)), nil
}

func (i *Interactor) Summary(ctx context.Context) (statsdto.SummaryOutput, error) {
	sessions, now, err := i.svc.Snapshot(ctx)
	if err != nil {
		return statsdto.SummaryOutput{}, err
	}
	out := statsdto.SummaryOutput{Periods: make([]statsdto.PeriodOutput, 0, len(period.All))}
	for _, p := range period.All {
		out.Periods = append(out.Periods, toPeriodOutput(domain.ForPeriod(sessions, p, now)))
	}
	streak := domain.Streaks(sessions, now)
	out.Streak = statsdto.StreakOutput{Current: streak.Current, Longest: streak.Longest}
	return out, nil
}

func (i *Interactor) Calendar(ctx context.Context, input statsdto.CalendarInput) ([]statsdto.DayTotalOutput, error) {
	if input.Days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", apperrors.ErrInvalidInput)
	}
	sessions, now, err := i.svc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	totals := domain.DailyTotals(sessions, now, input.Days)
	out := make([]statsdto.DayTotalOutput, 0, len(totals))
	for _, total := range totals {
		out = append(out, statsdto.DayTotalOutput{Day: total.Day, TotalMs: total.TotalMs, Count: total.Count})
	}
	return out, nil
}

func (i *Interactor) Cloud(ctx context.Context) ([]statsdto.CloudWordOutput, error) {
	counts, err := i.svc.TagCounts(ctx)
	if err != nil {
		return nil, err
	}
	words := domain.TagCloud(counts)
	out := make([]statsdto.CloudWordOutput, 0, len(words))
	for _, w := range words {
		out = append(out, statsdto.CloudWordOutput{Tag: w.Tag, Count: w.Count, Weight: w.Weight})
	}
	return out, nil
}

func toPeriodOutput(stats domain.PeriodStats) statsdto.PeriodOutput {
	out := statsdto.PeriodOutput{
		Period:    string(stats.Period),
		Label:     stats.Period.Label(),
		Count:     stats.Count,
		TotalMs:   stats.TotalMs,
		AverageMs: stats.AverageMs,
		MedianMs:  stats.MedianMs,
	}
	if stats.Best != nil {
		out.Best = &statsdto.SessionOutput{
			ID:         stats.Best.ID,
			Tag:        stats.Best.Tag,
			DurationMs: stats.Best.DurationMs,
			StartedAt:  stats.Best.StartedAt,
			CreatedAt:  stats.Best.CreatedAt,
		}
	}
	return out
}
