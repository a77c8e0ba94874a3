package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	achievementdto "firstthought/internal/modules/achievement/dto"
	achievementin "firstthought/internal/modules/achievement/port/in"
	"firstthought/internal/modules/session/domain"
	sessiondto "firstthought/internal/modules/session/dto"
	sessionin "firstthought/internal/modules/session/port/in"
	"firstthought/internal/modules/session/service"
	timerin "firstthought/internal/modules/timer/port/in"
	apperrors "firstthought/internal/platform/errors"
	"firstthought/internal/platform/tagword"
	"firstthought/internal/platform/validation"
)

type newSession struct {
	Tag        string    `json:"tag" validate:"required,max=64,tagword"`
	StartedAt  time.Time `json:"started_at" validate:"required"`
	EndedAt    time.Time `json:"ended_at" validate:"required,gtefield=StartedAt"`
	DurationMs int64     `json:"duration_ms" validate:"gte=0"`
}

type retag struct {
	ID  string `json:"id" validate:"required"`
	Tag string `json:"tag" validate:"required,max=64,tagword"`
}

type Interactor struct {
	svc          *service.SessionService
	timer        timerin.Usecase
	achievements achievementin.Usecase
	validator    *validation.Validator
	logger       *slog.Logger
}

// NewInteractor builds the session usecase. timer and achievements are only
// needed by Record and may be nil otherwise.
func NewInteractor(svc *service.SessionService, timer timerin.Usecase, achievements achievementin.Usecase, validator *validation.Validator, logger *slog.Logger) sessionin.Usecase {
	return &Interactor{svc: svc, timer: timer, achievements: achievements, validator: validator, logger: logger}
}

func (i *Interactor) Record(ctx context.Context, input sessiondto.RecordInput) (sessiondto.RecordOutput, error) {
	if i.timer == nil {
		return sessiondto.RecordOutput{}, apperrors.ErrTimerNotCompleted
	}
	// held across the timer hand-off so one completed run yields one session
	unlock := i.svc.Lock()
	defer unlock()

	state, err := i.timer.Status(ctx)
	if err != nil {
		return sessiondto.RecordOutput{}, err
	}
	switch state.Status {
	case "completed":
	case "running":
		return sessiondto.RecordOutput{}, apperrors.ErrTimerRunning
	default:
		return sessiondto.RecordOutput{}, apperrors.ErrTimerNotCompleted
	}

	// A completion without a start degrades to an empty session ending now.
	startedAt := i.svc.Now()
	if state.StartedAt != nil {
		startedAt = *state.StartedAt
	}
	endedAt := startedAt.Add(time.Duration(state.DurationMs) * time.Millisecond)

	candidate := newSession{
		Tag:        tagword.Normalize(input.Tag),
		StartedAt:  startedAt,
		EndedAt:    endedAt,
		DurationMs: state.DurationMs,
	}
	if err := i.validator.Validate(candidate); err != nil {
		return sessiondto.RecordOutput{}, err
	}

	collection, discarded := i.loadForInsert(ctx)
	prior := toAchievementInputs(collection.Sessions)

	session := i.svc.NewSession(candidate.StartedAt, candidate.EndedAt, candidate.DurationMs, candidate.Tag)
	collection.Add(session)
	if err := i.svc.Save(ctx, collection); err != nil {
		return sessiondto.RecordOutput{}, err
	}
	i.svc.Project(ctx, session)
	i.logger.Info("session recorded", "session_id", session.ID, "tag", session.Tag, "duration_ms", session.DurationMs)

	out := sessiondto.RecordOutput{Session: toSessionOutput(session), DiscardedExample: discarded}
	if i.achievements != nil {
		evaluation, err := i.achievements.Evaluate(ctx, achievementdto.EvaluateInput{Session: toAchievementInput(session), Prior: prior})
		if err != nil {
			// session is stored; evaluation errors are logged only
			i.logger.Error("achievement evaluation failed", "session_id", session.ID, "error", err)
		} else {
			out.Achievements = evaluation
		}
	}

	if _, err := i.timer.Reset(ctx); err != nil {
		return sessiondto.RecordOutput{}, err
	}
	return out, nil
}

func (i *Interactor) Add(ctx context.Context, input sessiondto.AddInput) (sessiondto.AddOutput, error) {
	candidate := newSession{
		Tag:        tagword.Normalize(input.Tag),
		StartedAt:  input.StartedAt,
		EndedAt:    input.EndedAt,
		DurationMs: input.DurationMs,
	}
	if err := i.validator.Validate(candidate); err != nil {
		return sessiondto.AddOutput{}, err
	}
	if want := candidate.EndedAt.Sub(candidate.StartedAt).Milliseconds(); candidate.DurationMs != want {
		return sessiondto.AddOutput{}, fmt.Errorf("%w: duration_ms must equal ended_at - started_at (%d)", apperrors.ErrInvalidInput, want)
	}

	unlock := i.svc.Lock()
	defer unlock()

	collection, discarded := i.loadForInsert(ctx)
	session := i.svc.NewSession(candidate.StartedAt, candidate.EndedAt, candidate.DurationMs, candidate.Tag)
	collection.Add(session)
	if err := i.svc.Save(ctx, collection); err != nil {
		return sessiondto.AddOutput{}, err
	}
	i.svc.Project(ctx, session)
	return sessiondto.AddOutput{Session: toSessionOutput(session), DiscardedExample: discarded}, nil
}

// loadForInsert returns the stored collection ready for a real session.
// Example data never mixes with real sessions, so it is dropped first.
func (i *Interactor) loadForInsert(ctx context.Context) (domain.Collection, bool) {
	collection := i.svc.Load(ctx)
	if !collection.IsExampleData {
		return collection, false
	}
	collection.Clear()
	if err := i.svc.Reproject(ctx, nil); err != nil {
		i.logger.Warn("history reset failed", "error", err)
	}
	i.logger.Info("example data discarded")
	return collection, true
}

func (i *Interactor) Update(ctx context.Context, input sessiondto.UpdateInput) (sessiondto.UpdateOutput, error) {
	change := retag{ID: strings.TrimSpace(input.ID), Tag: tagword.Normalize(input.Tag)}
	if err := i.validator.Validate(change); err != nil {
		return sessiondto.UpdateOutput{}, err
	}
	unlock := i.svc.Lock()
	defer unlock()

	collection := i.svc.Load(ctx)
	if !collection.Update(change.ID, change.Tag, i.svc.Now()) {
		return sessiondto.UpdateOutput{}, nil
	}
	if err := i.svc.Save(ctx, collection); err != nil {
		return sessiondto.UpdateOutput{}, err
	}
	if session, ok := collection.Find(change.ID); ok {
		i.svc.Project(ctx, session)
	}
	return sessiondto.UpdateOutput{Found: true}, nil
}

func (i *Interactor) Delete(ctx context.Context, input sessiondto.DeleteInput) (sessiondto.DeleteOutput, error) {
	unlock := i.svc.Lock()
	defer unlock()

	collection := i.svc.Load(ctx)
	id := strings.TrimSpace(input.ID)
	if !collection.Delete(id) {
		return sessiondto.DeleteOutput{}, nil
	}
	if err := i.svc.Save(ctx, collection); err != nil {
		return sessiondto.DeleteOutput{}, err
	}
	i.svc.Unproject(ctx, id)
	return sessiondto.DeleteOutput{Found: true}, nil
}

func (i *Interactor) Clear(ctx context.Context) error {
	unlock := i.svc.Lock()
	defer unlock()

	collection := domain.Collection{}
	if err := i.svc.Save(ctx, collection); err != nil {
		return err
	}
	if err := i.svc.Reproject(ctx, nil); err != nil {
		i.logger.Warn("history reset failed", "error", err)
	}
	i.logger.Info("sessions cleared")
	return nil
}

func (i *Interactor) List(ctx context.Context) (sessiondto.ListOutput, error) {
	return toListOutput(i.svc.Load(ctx)), nil
}

func (i *Interactor) Suggest(ctx context.Context, input sessiondto.SuggestInput) ([]sessiondto.TagFrequencyOutput, error) {
	collection := i.svc.Load(ctx)
	return toFrequencyOutputs(collection.Suggestions(tagword.Normalize(input.Prefix))), nil
}

func (i *Interactor) LoadExample(ctx context.Context) (sessiondto.ListOutput, error) {
	unlock := i.svc.Lock()
	defer unlock()

	collection := i.svc.Example()
	if err := i.svc.Save(ctx, collection); err != nil {
		return sessiondto.ListOutput{}, err
	}
	if err := i.svc.Reproject(ctx, collection.Sessions); err != nil {
		i.logger.Warn("history projection failed", "error", err)
	}
	i.logger.Info("example data loaded", "sessions", len(collection.Sessions))
	return toListOutput(collection), nil
}

// History returns one entry per local day for the last input.Days days,
// oldest first, including days without sessions.
func (i *Interactor) History(ctx context.Context, input sessiondto.HistoryInput) (sessiondto.HistoryOutput, error) {
	if input.Days <= 0 {
		return sessiondto.HistoryOutput{}, fmt.Errorf("%w: days must be positive", apperrors.ErrInvalidInput)
	}
	now := i.svc.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	since := today.AddDate(0, 0, -(input.Days - 1))

	totals, err := i.svc.DailyTotals(ctx, since)
	if err != nil {
		return sessiondto.HistoryOutput{}, err
	}
	byDay := make(map[string]domain.DailyTotal, len(totals))
	for _, total := range totals {
		byDay[total.Day] = total
	}

	out := sessiondto.HistoryOutput{Days: make([]sessiondto.DailyTotalOutput, 0, input.Days)}
	for day := since; !day.After(today); day = day.AddDate(0, 0, 1) {
		total := byDay[day.Format(domain.DayLayout)]
		out.Days = append(out.Days, sessiondto.DailyTotalOutput{Day: day, TotalMs: total.TotalMs, Count: total.Count})
	}
	return out, nil
}

func (i *Interactor) Export(ctx context.Context, input sessiondto.ExportInput) (sessiondto.ExportOutput, error) {
	if strings.TrimSpace(input.Dir) == "" {
		return sessiondto.ExportOutput{}, fmt.Errorf("%w: export dir is required", apperrors.ErrInvalidInput)
	}
	collection := i.svc.Load(ctx)
	paths, err := i.svc.Export(ctx, input.Dir, collection.Sessions)
	if err != nil {
		return sessiondto.ExportOutput{Paths: paths}, err
	}
	return sessiondto.ExportOutput{Paths: paths}, nil
}

func (i *Interactor) Reindex(ctx context.Context) (sessiondto.ReindexOutput, error) {
	unlock := i.svc.Lock()
	defer unlock()

	collection := i.svc.Load(ctx)
	if err := i.svc.Reproject(ctx, collection.Sessions); err != nil {
		return sessiondto.ReindexOutput{}, err
	}
	return sessiondto.ReindexOutput{Sessions: len(collection.Sessions)}, nil
}

func toSessionOutput(s domain.Session) sessiondto.SessionOutput {
	return sessiondto.SessionOutput{
		ID:         s.ID,
		StartedAt:  s.StartedAt,
		EndedAt:    s.EndedAt,
		DurationMs: s.DurationMs,
		Tag:        s.Tag,
		CreatedAt:  s.CreatedAt,
		TaggedAt:   s.TaggedAt,
	}
}

func toFrequencyOutputs(items []domain.TagFrequency) []sessiondto.TagFrequencyOutput {
	out := make([]sessiondto.TagFrequencyOutput, 0, len(items))
	for _, tf := range items {
		out = append(out, sessiondto.TagFrequencyOutput{Tag: tf.Tag, Count: tf.Count, LastUsedAt: tf.LastUsedAt})
	}
	return out
}

func toListOutput(c domain.Collection) sessiondto.ListOutput {
	sessions := make([]sessiondto.SessionOutput, 0, len(c.Sessions))
	for _, s := range c.Sessions {
		sessions = append(sessions, toSessionOutput(s))
	}
	return sessiondto.ListOutput{
		Sessions:       sessions,
		TagFrequencies: toFrequencyOutputs(c.TagFrequencies),
		IsExampleData:  c.IsExampleData,
	}
}

func toAchievementInput(s domain.Session) achievementdto.SessionInput {
	return achievementdto.SessionInput{ID: s.ID, DurationMs: s.DurationMs, CreatedAt: s.CreatedAt}
}

func toAchievementInputs(sessions []domain.Session) []achievementdto.SessionInput {
	out := make([]achievementdto.SessionInput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toAchievementInput(s))
	}
	return out
}
