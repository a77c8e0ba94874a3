package usecase

import (
	"context"
	"log/slog"

	"firstthought/internal/modules/achievement/domain"
	achievementdto "firstthought/internal/modules/achievement/dto"
	achievementin "firstthought/internal/modules/achievement/port/in"
	"firstthought/internal/modules/achievement/service"
	"firstthought/internal/platform/period"
)

type Interactor struct {
	svc    *service.AchievementService
	logger *slog.Logger
}

func NewInteractor(svc *service.AchievementService, logger *slog.Logger) achievementin.Usecase {
	return &Interactor{svc: svc, logger: logger}
}

// Evaluate checks a freshly stored session against every period. Records are
// compared with the prior sessions only; milestones use prior plus the new
// session. Everything found is written to the ledger before returning.
func (i *Interactor) Evaluate(ctx context.Context, input achievementdto.EvaluateInput) (achievementdto.EvaluateOutput, error) {
	unlock := i.svc.Lock()
	defer unlock()

	now := i.svc.Now()
	ledger := i.svc.Ledger(ctx)
	current := toDomain(input.Session)
	prior := toDomainList(input.Prior)
	all := append(append(make([]domain.Session, 0, len(prior)+1), prior...), current)

	out := achievementdto.EvaluateOutput{}
	for _, p := range period.All {
		if current.DurationMs > 0 && domain.CheckForNewRecord(current.DurationMs, prior, p, now) {
			ledger.SetPersonalRecord(p, current.DurationMs, current.ID, now)
			record, _ := ledger.PersonalRecord(p)
			out.NewRecords = append(out.NewRecords, toRecordOutput(record))
		}

		reached := domain.UnlockedMilestones(all, p, now, ledger.IsUnlocked)
		if len(reached) == 0 {
			continue
		}
		total := domain.TotalDurationInPeriod(all, p, now)
		next := toNextOutput(domain.NextMilestone(all, p, now))
		for _, m := range reached {
			ledger.Unlock(m.ID, p, now)
			out.Unlocked = append(out.Unlocked, achievementdto.UnlockedOutput{
				Period:    string(p),
				Milestone: toMilestoneOutput(m),
				TotalMs:   total,
				Next:      next,
			})
		}
	}

	if len(out.Unlocked) == 0 && len(out.NewRecords) == 0 {
		return out, nil
	}
	if err := i.svc.Save(ctx, ledger); err != nil {
		return achievementdto.EvaluateOutput{}, err
	}
	i.logger.Info("achievements evaluated", "session_id", current.ID, "unlocked", len(out.Unlocked), "records", len(out.NewRecords))
	return out, nil
}

func (i *Interactor) Progress(ctx context.Context, input achievementdto.ProgressInput) (achievementdto.ProgressOutput, error) {
	p, err := period.Parse(input.Period)
	if err != nil {
		return achievementdto.ProgressOutput{}, err
	}
	now := i.svc.Now()
	ledger := i.svc.Ledger(ctx)
	sessions := toDomainList(input.Sessions)

	out := achievementdto.ProgressOutput{
		Period:  string(p),
		Label:   p.Label(),
		TotalMs: domain.TotalDurationInPeriod(sessions, p, now),
		Next:    toNextOutput(domain.NextMilestone(sessions, p, now)),
	}
	if record, ok := ledger.PersonalRecord(p); ok {
		r := toRecordOutput(record)
		out.Record = &r
	}
	for _, m := range ledger.UnlockedIn(p) {
		out.Unlocked = append(out.Unlocked, toMilestoneOutput(m))
	}
	return out, nil
}

func (i *Interactor) Catalog(_ context.Context) ([]achievementdto.MilestoneOutput, error) {
	out := make([]achievementdto.MilestoneOutput, 0, len(domain.Milestones))
	for _, m := range domain.Milestones {
		out = append(out, toMilestoneOutput(m))
	}
	return out, nil
}

func toDomain(s achievementdto.SessionInput) domain.Session {
	return domain.Session{ID: s.ID, DurationMs: s.DurationMs, CreatedAt: s.CreatedAt}
}

func toDomainList(items []achievementdto.SessionInput) []domain.Session {
	out := make([]domain.Session, 0, len(items))
	for _, item := range items {
		out = append(out, toDomain(item))
	}
	return out
}

func toMilestoneOutput(m domain.Milestone) achievementdto.MilestoneOutput {
	return achievementdto.MilestoneOutput{ID: m.ID, Label: m.Label, ThresholdMs: m.ThresholdMs}
}

func toNextOutput(m domain.Milestone, ok bool) *achievementdto.MilestoneOutput {
	if !ok {
		return nil
	}
	out := toMilestoneOutput(m)
	return &out
}

func toRecordOutput(r domain.PersonalRecord) achievementdto.RecordOutput {
	return achievementdto.RecordOutput{Period: string(r.Period), DurationMs: r.DurationMs, SessionID: r.SessionID, AchievedAt: r.AchievedAt}
}
