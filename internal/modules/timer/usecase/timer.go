package usecase

import (
	"context"
	"log/slog"
	"time"

	"firstthought/internal/modules/timer/domain"
	timerdto "firstthought/internal/modules/timer/dto"
	timerin "firstthought/internal/modules/timer/port/in"
	"firstthought/internal/modules/timer/service"
)

type Interactor struct {
	svc    *service.TimerService
	logger *slog.Logger
}

func NewInteractor(svc *service.TimerService, logger *slog.Logger) timerin.Usecase {
	return &Interactor{svc: svc, logger: logger}
}

func (i *Interactor) Start(ctx context.Context) (timerdto.StateOutput, error) {
	state, err := i.svc.Apply(ctx, func(state *domain.State, now time.Time) {
		if state.Status == domain.StatusRunning {
			i.logger.Info("timer restarted while running")
		}
		state.Start(now)
	})
	if err != nil {
		return timerdto.StateOutput{}, err
	}
	i.logger.Debug("timer started", "started_at", state.StartedAt)
	return toOutput(state, i.svc.Now()), nil
}

func (i *Interactor) Pause(ctx context.Context) (timerdto.StateOutput, error) {
	state, err := i.svc.Apply(ctx, func(state *domain.State, now time.Time) {
		state.Pause(now)
	})
	if err != nil {
		return timerdto.StateOutput{}, err
	}
	return toOutput(state, i.svc.Now()), nil
}

func (i *Interactor) Complete(ctx context.Context) (timerdto.StateOutput, error) {
	state, err := i.svc.Apply(ctx, func(state *domain.State, now time.Time) {
		state.Complete(now)
	})
	if err != nil {
		return timerdto.StateOutput{}, err
	}
	i.logger.Info("timer completed", "duration_ms", state.DurationMs)
	return toOutput(state, i.svc.Now()), nil
}

func (i *Interactor) Reset(ctx context.Context) (timerdto.StateOutput, error) {
	state, err := i.svc.Apply(ctx, func(state *domain.State, _ time.Time) {
		state.Reset()
	})
	if err != nil {
		return timerdto.StateOutput{}, err
	}
	return toOutput(state, i.svc.Now()), nil
}

func (i *Interactor) Status(ctx context.Context) (timerdto.StateOutput, error) {
	return toOutput(i.svc.Current(ctx), i.svc.Now()), nil
}

func (i *Interactor) ObserveVisibility(ctx context.Context, input timerdto.VisibilityInput) (timerdto.VisibilityOutput, error) {
	var fired bool
	state, err := i.svc.Apply(ctx, func(state *domain.State, now time.Time) {
		fired = state.ObserveVisibility(input.Foreground, now)
	})
	if err != nil {
		return timerdto.VisibilityOutput{}, err
	}
	if fired {
		i.logger.Info("timer completed on return to foreground", "duration_ms", state.DurationMs)
	}
	return timerdto.VisibilityOutput{Completed: fired, State: toOutput(state, i.svc.Now())}, nil
}

func toOutput(state domain.State, now time.Time) timerdto.StateOutput {
	return timerdto.StateOutput{
		Status:     string(state.Status),
		StartedAt:  state.StartedAt,
		PausedAt:   state.PausedAt,
		DurationMs: state.DurationMs,
		ElapsedMs:  state.Elapsed(now),
		Hidden:     state.Hidden,
	}
}
