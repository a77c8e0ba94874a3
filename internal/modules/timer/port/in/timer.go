package in

import (
	"context"

	"firstthought/internal/modules/timer/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.StateOutput, error)
	Pause(ctx context.Context) (dto.StateOutput, error)
	Complete(ctx context.Context) (dto.StateOutput, error)
	Reset(ctx context.Context) (dto.StateOutput, error)
	Status(ctx context.Context) (dto.StateOutput, error)
	ObserveVisibility(ctx context.Context, input dto.VisibilityInput) (dto.VisibilityOutput, error)
}
